package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filetags/internal/delivery/http/helpers"
	"filetags/internal/domain"
)

func TestFileController_ListFiles(t *testing.T) {
	var files []domain.TaggedFile
	for i := 0; i < 5; i++ {
		files = append(files, domain.TaggedFile{Name: fmt.Sprintf("f%d", i), Tags: []string{domain.UntaggedTagName}})
	}

	tests := []struct {
		name      string
		query     string
		wantNames []string
		wantMeta  helpers.PaginationMeta
	}{
		{
			name:      "default page",
			query:     "",
			wantNames: []string{"f0", "f1", "f2", "f3", "f4"},
			wantMeta:  helpers.PaginationMeta{Page: 1, PageSize: helpers.DefaultPageSize, Total: 5, TotalPages: 1},
		},
		{
			name:      "second page",
			query:     "?page=2&page_size=2",
			wantNames: []string{"f2", "f3"},
			wantMeta:  helpers.PaginationMeta{Page: 2, PageSize: 2, Total: 5, TotalPages: 3},
		},
		{
			name:      "past the end",
			query:     "?page=9&page_size=2",
			wantNames: []string{},
			wantMeta:  helpers.PaginationMeta{Page: 9, PageSize: 2, Total: 5, TotalPages: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewFileController(testLogger, &fakeTagManager{files: files})
			rr := httptest.NewRecorder()

			ctrl.ListFiles(rr, httptest.NewRequest(http.MethodGet, "/files"+tt.query, nil))

			require.Equal(t, http.StatusOK, rr.Code)
			var data ListFilesResponse
			require.Nil(t, decodeEnvelope(t, rr, &data))
			names := []string{}
			for _, f := range data.Items {
				names = append(names, f.Name)
			}
			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, tt.wantMeta, data.Pagination)
		})
	}
}

func TestFileController_GetTags(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		fakeErr    error
		wantStatus int
		wantCode   string
	}{
		{name: "success", query: "?path=notes/a.txt", wantStatus: http.StatusOK},
		{name: "missing path", query: "", wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "unknown file", query: "?path=z", fakeErr: domain.ErrNoSuchFile, wantStatus: http.StatusNotFound, wantCode: helpers.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTagManager{tags: []domain.Tag{{Name: "red", FileCount: 1}}, err: tt.fakeErr}
			ctrl := NewFileController(testLogger, fake)
			rr := httptest.NewRecorder()

			ctrl.GetTags(rr, httptest.NewRequest(http.MethodGet, "/files/tags"+tt.query, nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			var tags []domain.Tag
			apiErr := decodeEnvelope(t, rr, &tags)
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, apiErr)
				assert.Equal(t, fake.tags, tags)
				assert.Equal(t, "notes/a.txt", fake.lastFile)
				return
			}
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestFileController_TagFile(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		changed     bool
		fakeErr     error
		wantStatus  int
		wantChanged bool
		wantCode    string
	}{
		{name: "changed", body: `{"path":"a","tag":"red"}`, changed: true, wantStatus: http.StatusOK, wantChanged: true},
		{name: "no-op", body: `{"path":"a","tag":"untagged"}`, changed: false, wantStatus: http.StatusOK, wantChanged: false},
		{name: "missing fields", body: `{"path":"a"}`, wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "unknown tag", body: `{"path":"a","tag":"blue"}`, fakeErr: domain.ErrNoSuchTag, wantStatus: http.StatusNotFound, wantCode: helpers.ErrCodeNotFound},
		{name: "unknown file", body: `{"path":"z","tag":"red"}`, fakeErr: domain.ErrNoSuchFile, wantStatus: http.StatusNotFound, wantCode: helpers.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTagManager{changed: tt.changed, err: tt.fakeErr}
			ctrl := NewFileController(testLogger, fake)
			rr := httptest.NewRecorder()

			ctrl.TagFile(rr, httptest.NewRequest(http.MethodPost, "/files/tags", strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, rr.Code)
			var data ChangedResponse
			apiErr := decodeEnvelope(t, rr, &data)
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, apiErr)
				assert.Equal(t, tt.wantChanged, data.Changed)
				return
			}
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestFileController_RemoveTag(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		changed     bool
		fakeErr     error
		wantStatus  int
		wantChanged bool
	}{
		{name: "changed", query: "?path=a&tag=red", changed: true, wantStatus: http.StatusOK, wantChanged: true},
		{name: "not linked", query: "?path=a&tag=red", wantStatus: http.StatusOK},
		{name: "missing tag", query: "?path=a", wantStatus: http.StatusBadRequest},
		{name: "unknown file", query: "?path=z&tag=red", fakeErr: domain.ErrNoSuchFile, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTagManager{changed: tt.changed, err: tt.fakeErr}
			ctrl := NewFileController(testLogger, fake)
			rr := httptest.NewRecorder()

			ctrl.RemoveTag(rr, httptest.NewRequest(http.MethodDelete, "/files/tags"+tt.query, nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			var data ChangedResponse
			apiErr := decodeEnvelope(t, rr, &data)
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, apiErr)
				assert.Equal(t, tt.wantChanged, data.Changed)
				assert.Equal(t, "a", fake.lastFile)
				assert.Equal(t, "red", fake.lastTag)
				return
			}
			require.NotNil(t, apiErr)
		})
	}
}
