// Package client is a typed client for the SynergeReader server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/a-h/jsonapi"
	"github.com/synerge/synergereader/models"
)

func New(baseURL string) Client {
	return Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func (c Client) Ask(ctx context.Context, req models.AskRequest) (resp models.AskResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("ask").String()
	if err != nil {
		return resp, err
	}
	return jsonapi.Post[models.AskRequest, models.AskResponse](ctx, url, req)
}

func (c Client) History(ctx context.Context) (resp models.HistoryResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("history").String()
	if err != nil {
		return resp, err
	}
	resp, _, err = jsonapi.Get[models.HistoryResponse](ctx, url)
	return resp, err
}

// Upload sends a document as a multipart form. The filename's extension
// selects the server-side handling, so it must be one of .pdf, .txt, .docx.
func (c Client) Upload(ctx context.Context, filename string, content io.Reader) (resp models.UploadResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("upload").String()
	if err != nil {
		return resp, err
	}

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return resp, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err = io.Copy(fw, content); err != nil {
		return resp, fmt.Errorf("failed to copy file content: %w", err)
	}
	if err = mw.Close(); err != nil {
		return resp, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return resp, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return resp, fmt.Errorf("failed to perform HTTP request: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		respBody, _ := io.ReadAll(res.Body)
		return resp, jsonapi.InvalidStatusError{
			Status: res.StatusCode,
			Body:   string(respBody),
		}
	}
	err = json.NewDecoder(res.Body).Decode(&resp)
	return resp, err
}
