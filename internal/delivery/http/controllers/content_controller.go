package controllers

import (
	"encoding/hex"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/zeebo/blake3"

	"filetags/internal/delivery/http/helpers"
	"filetags/internal/domain"
)

// EchoRequest is the request body for PUT /tags/{tag}/content.
type EchoRequest struct {
	Content *string `json:"content"`
}

// Validate implements Validator.
func (e EchoRequest) Validate() []string {
	if e.Content == nil {
		return []string{"content is required"}
	}
	return nil
}

// EchoResponse is the data payload for PUT /tags/{tag}/content.
type EchoResponse struct {
	Tag   string `json:"tag"`
	Bytes int    `json:"bytes"`
}

// EchoSuccessResponse is the success envelope for PUT /tags/{tag}/content (200).
type EchoSuccessResponse struct {
	Data  EchoResponse      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type ContentController struct {
	Logger  *slog.Logger
	Manager domain.TagManager
}

func NewContentController(logger *slog.Logger, manager domain.TagManager) *ContentController {
	return &ContentController{
		Logger:  logger,
		Manager: manager,
	}
}

// contentETag is a strong ETag over the concatenated content.
func contentETag(content string) string {
	sum := blake3.Sum256([]byte(content))
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

// Cat godoc
// @Summary Concatenated content of a tag's files
// @Description Returns the content of every file carrying the tag, concatenated in tag order, read under one consistent view. Supports If-None-Match.
// @Tags content
// @Produce plain
// @Param tag path string true "Tag name"
// @Success 200 {string} string "concatenated content"
// @Success 304 "content unchanged"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tags/{tag}/content [get]
func (c *ContentController) Cat(w http.ResponseWriter, r *http.Request) {
	content, err := c.Manager.CatAllFiles(r.Context(), r.PathValue("tag"))
	if err != nil {
		writeManagerError(w, r, c.Logger, err)
		return
	}
	etag := contentETag(content)
	w.Header().Set("ETag", etag)
	if inm := r.Header.Get("If-None-Match"); inm != "" && etagMatches(inm, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(content))
}

// Echo godoc
// @Summary Overwrite every file carrying a tag
// @Description Writes content to each file carrying the tag. Concurrent readers see all or none of the writes. A failed write stops the operation and earlier files keep the new content.
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tag path string true "Tag name"
// @Param body body EchoRequest true "Content to write"
// @Success 200 {object} controllers.EchoSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tags/{tag}/content [put]
func (c *ContentController) Echo(w http.ResponseWriter, r *http.Request) {
	tag := r.PathValue("tag")
	var req EchoRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Manager.EchoToAllFiles(r.Context(), tag, *req.Content); err != nil {
		writeManagerError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EchoResponse{Tag: tag, Bytes: len(*req.Content)})
}
