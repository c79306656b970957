package freeagent

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

// Upload performs a multipart POST, e.g. for the attachments endpoint.
// The form fields are sent alongside a single file part named "file".
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, fileName string, file io.Reader, fileContentType string) (map[string]any, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
	if fileContentType == "" {
		fileContentType = "application/octet-stream"
	}
	header.Set("Content-Type", fileContentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read upload file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return c.doRaw(ctx, http.MethodPost, path, nil, buf.Bytes(), writer.FormDataContentType())
}
