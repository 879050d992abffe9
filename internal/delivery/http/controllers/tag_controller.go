package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"filetags/internal/delivery/http/helpers"
	"filetags/internal/domain"
)

const maxTagNameLen = 128

// TagRequest is the request body for POST /tags and PATCH /tags/{tag}.
type TagRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (t TagRequest) Validate() []string {
	return validateTagName(t.Name)
}

func validateTagName(name string) []string {
	var errs []string
	switch {
	case strings.TrimSpace(name) == "":
		errs = append(errs, "name is required")
	case name != strings.TrimSpace(name):
		errs = append(errs, "name must not have leading or trailing spaces")
	case len(name) > maxTagNameLen:
		errs = append(errs, "name must be at most 128 bytes")
	}
	if strings.Contains(name, "/") {
		errs = append(errs, "name must not contain '/'")
	}
	return errs
}

// TagListSuccessResponse is the success envelope for GET /tags (200).
type TagListSuccessResponse struct {
	Data  []domain.Tag      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// TagSuccessResponse is the success envelope for tag mutations.
type TagSuccessResponse struct {
	Data  domain.Tag        `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// FileListSuccessResponse is the success envelope for GET /tags/{tag}/files (200).
type FileListSuccessResponse struct {
	Data  []domain.TaggedFile `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

type TagController struct {
	Logger  *slog.Logger
	Manager domain.TagManager
}

func NewTagController(logger *slog.Logger, manager domain.TagManager) *TagController {
	return &TagController{
		Logger:  logger,
		Manager: manager,
	}
}

// ListTags godoc
// @Summary List tags
// @Description Returns every tag, including the untagged sentinel, with the number of files carrying it.
// @Tags tags
// @Produce json
// @Success 200 {object} controllers.TagListSuccessResponse
// @Router /tags [get]
func (c *TagController) ListTags(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Manager.ListTags())
}

// AddTag godoc
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body TagRequest true "Tag name"
// @Success 201 {object} controllers.TagSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (name taken)"
// @Router /tags [post]
func (c *TagController) AddTag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	tag, err := c.Manager.AddTag(req.Name)
	if err != nil {
		writeManagerError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, tag)
}

// EditTag godoc
// @Summary Rename a tag
// @Description Renames a tag. Files carrying it see the new name. The untagged sentinel cannot be renamed.
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tag path string true "Current tag name"
// @Param body body TagRequest true "New name"
// @Success 200 {object} controllers.TagSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid or reserved name)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (name taken)"
// @Router /tags/{tag} [patch]
func (c *TagController) EditTag(w http.ResponseWriter, r *http.Request) {
	oldName := r.PathValue("tag")
	if oldName == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing tag")
		return
	}
	var req TagRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	tag, err := c.Manager.EditTag(oldName, req.Name)
	if err != nil {
		writeManagerError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tag)
}

// DeleteTag godoc
// @Summary Delete a tag
// @Description Deletes a tag that no file carries. The untagged sentinel cannot be deleted.
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param tag path string true "Tag name"
// @Success 200 {object} controllers.TagSuccessResponse "data contains the deleted tag"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (reserved tag)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (tag still has files)"
// @Router /tags/{tag} [delete]
func (c *TagController) DeleteTag(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("tag")
	if name == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing tag")
		return
	}
	tag, err := c.Manager.DeleteTag(name)
	if err != nil {
		writeManagerError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tag)
}

// ListFilesByTag godoc
// @Summary List files carrying a tag
// @Description Files are returned in the order they were tagged.
// @Tags tags
// @Produce json
// @Param tag path string true "Tag name"
// @Success 200 {object} controllers.FileListSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /tags/{tag}/files [get]
func (c *TagController) ListFilesByTag(w http.ResponseWriter, r *http.Request) {
	files, err := c.Manager.ListFilesByTag(r.PathValue("tag"))
	if err != nil {
		writeManagerError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, files)
}
