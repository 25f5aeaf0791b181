// Package uploadclient posts spreadsheets to a running ChargeSense server.
package uploadclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/okian/chargesense/internal/domain/types"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 30 * time.Second

// ErrUnexpectedResponse is returned when the server answers with a body the
// client cannot decode.
var ErrUnexpectedResponse = errors.New("unexpected response")

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode  int      `json:"-"`
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	MissingTabs []string `json:"missingTabs,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Client wraps http.Client with the service base URL.
type Client struct {
	baseURL string
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// New creates a client for the server at baseURL, e.g. http://localhost:9080.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ping returns the banner of GET /.
func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Upload sends r as the multipart file field named filename.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (types.Summary, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return types.Summary{}, fmt.Errorf("failed to create form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return types.Summary{}, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return types.Summary{}, fmt.Errorf("failed to close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return types.Summary{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var summary types.Summary
	if err := c.do(req, &summary); err != nil {
		return types.Summary{}, err
	}
	return summary, nil
}

// UploadFile uploads the file at path under its base name.
func (c *Client) UploadFile(ctx context.Context, path string) (types.Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Summary{}, err
	}
	defer func() { _ = f.Close() }()
	return c.Upload(ctx, filepath.Base(path), f)
}

// Result is the outcome of one file in UploadAll.
type Result struct {
	Path    string
	Summary types.Summary
	Err     error
}

// UploadAll uploads paths with up to workers concurrent requests. Results
// are returned in the order of paths.
func (c *Client) UploadAll(ctx context.Context, paths []string, workers int) []Result {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(paths))
	jobs := make(chan int, workers*2)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				s, err := c.UploadFile(ctx, paths[i])
				results[i] = Result{Path: paths[i], Summary: s, Err: err}
			}
		}()
	}

	for i := range paths {
		select {
		case <-ctx.Done():
			results[i] = Result{Path: paths[i], Err: ctx.Err()}
			continue
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return results
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Code == "" {
			apiErr.Code = "http_error"
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	return nil
}
