package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"servicehub/services/storage"

	"github.com/gin-gonic/gin"
)

// maxFormMemory is how much of a multipart body is held in memory before spilling to disk.
const maxFormMemory = 32 << 20

// parseForm reads a multipart or urlencoded body and returns its values and files.
func parseForm(c *gin.Context) (url.Values, map[string][]*multipart.FileHeader, error) {
	err := c.Request.ParseMultipartForm(maxFormMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		if err := c.Request.ParseForm(); err != nil {
			return nil, nil, err
		}
		return c.Request.PostForm, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return c.Request.PostForm, c.Request.MultipartForm.File, nil
}

func toUpload(fh *multipart.FileHeader) storage.Upload {
	return storage.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open:        func() (io.ReadCloser, error) { return fh.Open() },
	}
}

func toUploads(files []*multipart.FileHeader) []storage.Upload {
	out := make([]storage.Upload, 0, len(files))
	for _, fh := range files {
		out = append(out, toUpload(fh))
	}
	return out
}
