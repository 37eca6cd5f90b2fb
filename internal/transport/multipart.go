package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"fieldtask/internal/domain"
	"fieldtask/internal/errors"
)

// UploadImage pushes a device-local photo to the image store and
// returns the public reference. The backend answers with either a url
// or a path field; both are accepted.
func (c *Client) UploadImage(ctx context.Context, localRef string) (string, error) {
	if localRef == "" {
		return "", errors.NewTransportError("upload image", fmt.Errorf("no image to upload"))
	}

	body, contentType, err := fileForm("file", localRef, nil)
	if err != nil {
		return "", errors.NewTransportError("upload image", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/images", body, true)
	if err != nil {
		return "", errors.NewTransportError("upload image", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.NewTransportError("upload image", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "upload image"); err != nil {
		return "", err
	}

	var result struct {
		Data struct {
			URL  string `json:"url"`
			Path string `json:"path"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.NewTransportError("upload image", err)
	}
	if result.Data.URL != "" {
		return result.Data.URL, nil
	}
	if result.Data.Path != "" {
		return result.Data.Path, nil
	}
	return "", errors.NewTransportError("upload image", fmt.Errorf("response carried no image reference"))
}

// sendTaskMultipart sends task fields plus the image bytes in a single
// multipart request and decodes the canonical task from the envelope.
func (c *Client) sendTaskMultipart(ctx context.Context, method string, path string, draft domain.TaskDraft, operation string) (*domain.Task, error) {
	fields := map[string]string{
		"title":        draft.Title,
		"description":  draft.Description,
		"locationName": draft.LocationName,
	}
	body, contentType, err := fileForm("image", draft.PhotoRef, fields)
	if err != nil {
		return nil, errors.NewTransportError(operation, err)
	}

	req, err := c.newRequest(ctx, method, path, body, true)
	if err != nil {
		return nil, errors.NewTransportError(operation, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewTransportError(operation, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, operation); err != nil {
		return nil, err
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, errors.NewTransportError(operation, err)
	}
	if !env.Success {
		return nil, errors.NewTransportError(operation, fmt.Errorf("backend rejected the request: %s", env.Message))
	}
	return decodeTask(env.Data, operation)
}

// fileForm builds a multipart body with the given text fields and one
// file part read from localRef.
func fileForm(fileField string, localRef string, fields map[string]string) (io.Reader, string, error) {
	file, err := os.Open(localRef)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", err
		}
	}

	filename := filepath.Base(localRef)
	part, err := writer.CreateFormFile(fileField, filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", err
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}
