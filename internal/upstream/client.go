package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/lanhtutoicao123/TSL-CLIENT/internal/model"
	"github.com/lanhtutoicao123/TSL-CLIENT/pkg/logger"
)

var ErrUpstreamStatus = errors.New("upstream returned non-success status")

// endpoint paths of the encoder service, per mode
var paths = map[model.Mode]string{
	model.ModeEncode: "/api/files/upload",
	model.ModeDecode: "/api/files/decode",
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, l logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  l,
	}
}

// Submit uploads content as the multipart field "file" and decodes the JSON response.
func (c *Client) Submit(ctx context.Context, mode model.Mode, filename string, content []byte) (*model.RawUpstreamResult, error) {
	path, ok := paths[mode]
	if !ok {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(content); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	c.logger.Debugf("POST %s -> %d (%d bytes, %s)", path, resp.StatusCode, len(data), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrUpstreamStatus, resp.Status)
	}

	var raw model.RawUpstreamResult
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode upstream response: %w", err)
	}
	return &raw, nil
}
