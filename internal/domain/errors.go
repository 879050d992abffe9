package domain

import "errors"

// Sentinel errors returned by TagManager operations. Compare with errors.Is.
var (
	ErrTagAlreadyExists = errors.New("tag already exists")
	ErrNoSuchTag        = errors.New("no such tag")
	ErrNoSuchFile       = errors.New("no such file")
	ErrTagNotEmpty      = errors.New("tag still has files")
	ErrReservedTag      = errors.New("tag name is reserved")
	ErrAlreadyInit      = errors.New("tag manager already initialized")
	ErrInvalidStamp     = errors.New("stamp does not match a held lock")
)
