package controllers

import (
	"log/slog"
	"net/http"

	"filetags/internal/delivery/http/helpers"
	"filetags/internal/domain"
)

// FileTagRequest is the request body for POST /files/tags.
type FileTagRequest struct {
	Path string `json:"path"`
	Tag  string `json:"tag"`
}

// Validate implements Validator.
func (f FileTagRequest) Validate() []string {
	var errs []string
	if f.Path == "" {
		errs = append(errs, "path is required")
	}
	if f.Tag == "" {
		errs = append(errs, "tag is required")
	}
	return errs
}

// ChangedResponse reports whether a relation operation changed anything.
// False means the call was a no-op.
type ChangedResponse struct {
	Changed bool `json:"changed"`
}

// ListFilesResponse is the data payload for GET /files.
type ListFilesResponse struct {
	Items      []domain.TaggedFile    `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListFilesSuccessResponse is the success envelope for GET /files (200).
type ListFilesSuccessResponse struct {
	Data  ListFilesResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ChangedSuccessResponse is the success envelope for relation mutations.
type ChangedSuccessResponse struct {
	Data  ChangedResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type FileController struct {
	Logger  *slog.Logger
	Manager domain.TagManager
}

func NewFileController(logger *slog.Logger, manager domain.TagManager) *FileController {
	return &FileController{
		Logger:  logger,
		Manager: manager,
	}
}

// ListFiles godoc
// @Summary List tracked files
// @Description Paginated list of every tracked file and its tags, in tracking order.
// @Tags files
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListFilesSuccessResponse
// @Router /files [get]
func (c *FileController) ListFiles(w http.ResponseWriter, r *http.Request) {
	items, meta := helpers.Paginate(c.Manager.ListAllFiles(), helpers.ParsePageRequest(r))
	helpers.WriteJSONSuccess(w, http.StatusOK, ListFilesResponse{Items: items, Pagination: meta})
}

// GetTags godoc
// @Summary Tags of a file
// @Tags files
// @Produce json
// @Param path query string true "Tracked file path"
// @Success 200 {object} controllers.TagListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /files/tags [get]
func (c *FileController) GetTags(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing path")
		return
	}
	tags, err := c.Manager.GetTags(path)
	if err != nil {
		writeManagerError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tags)
}

// TagFile godoc
// @Summary Tag a file
// @Description Attaches a tag to a file. changed is false when the file already carries the tag or the tag is the untagged sentinel.
// @Tags files
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body FileTagRequest true "File and tag"
// @Success 200 {object} controllers.ChangedSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /files/tags [post]
func (c *FileController) TagFile(w http.ResponseWriter, r *http.Request) {
	var req FileTagRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	changed, err := c.Manager.TagFile(req.Path, req.Tag)
	if err != nil {
		writeManagerError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ChangedResponse{Changed: changed})
}

// RemoveTag godoc
// @Summary Untag a file
// @Description Detaches a tag from a file. changed is false when the file does not carry the tag or the tag is the untagged sentinel.
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param path query string true "Tracked file path"
// @Param tag query string true "Tag name"
// @Success 200 {object} controllers.ChangedSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /files/tags [delete]
func (c *FileController) RemoveTag(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := FileTagRequest{Path: q.Get("path"), Tag: q.Get("tag")}
	if errs := req.Validate(); len(errs) > 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, errs[0])
		return
	}
	changed, err := c.Manager.RemoveTag(req.Path, req.Tag)
	if err != nil {
		writeManagerError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ChangedResponse{Changed: changed})
}
