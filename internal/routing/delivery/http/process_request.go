package http

import (
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"agent-gateway/internal/routing"
)

// processRouteReq binds and validates the multipart routing request.
// All failures here happen before any event is streamed.
func (h *handler) processRouteReq(c *gin.Context) (routing.UserRequest, []routing.File, error) {
	req := routing.UserRequest{
		SessionID: strings.TrimSpace(c.PostForm("session_id")),
		Query:     strings.TrimSpace(c.PostForm("query")),
		Route:     strings.TrimSpace(c.PostForm("route")),
	}

	if req.SessionID == "" {
		return req, nil, &routing.ValidationError{Reason: "session_id cannot be empty"}
	}
	if req.Query == "" {
		return req, nil, &routing.ValidationError{Reason: "query cannot be empty"}
	}

	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body at all is fine when the fields arrived
		// as ordinary form values.
		return req, nil, nil
	}

	var files []routing.File
	for _, fh := range form.File["files"] {
		if h.maxFileSize > 0 && fh.Size > h.maxFileSize {
			return req, nil, &fileTooLargeError{Name: fh.Filename, Max: h.maxFileSize}
		}

		f, err := fh.Open()
		if err != nil {
			return req, nil, fmt.Errorf("failed to open uploaded file %s: %w", fh.Filename, err)
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return req, nil, fmt.Errorf("failed to read uploaded file %s: %w", fh.Filename, err)
		}

		files = append(files, routing.File{Name: fh.Filename, Content: content})
	}

	return req, files, nil
}
