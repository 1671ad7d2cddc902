package pollinations

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/basel-ax/deckgen/internal/domain"
)

const (
	// DefaultEndpoint is the prompt URL prefix of the public Pollinations image API
	DefaultEndpoint = "https://image.pollinations.ai/prompt/"

	// defaultMaxBodySize caps how much of a response is read into memory
	defaultMaxBodySize = 32 << 20
)

// ErrBodyTooLarge is returned when an image response exceeds the body limit
var ErrBodyTooLarge = errors.New("response body exceeds size limit")

// StatusError is returned when the API answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.StatusCode, e.Body)
}

// Client represents the Pollinations image API client
type Client struct {
	httpClient  *http.Client
	endpoint    string
	maxBodySize int64
}

// NewClient creates a new client; the timeout bounds the whole request
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		endpoint:    endpoint,
		maxBodySize: defaultMaxBodySize,
	}
}

// BuildURL returns the GET URL for a generation request
func (c *Client) BuildURL(req domain.ImageGenerationRequest) string {
	query := url.Values{}
	query.Set("width", strconv.Itoa(req.Width))
	query.Set("height", strconv.Itoa(req.Height))
	if req.NoLogo {
		query.Set("nologo", "1")
	}
	return c.endpoint + url.PathEscape(req.Prompt) + "?" + query.Encode()
}

// GenerateImage requests one image for the prompt and returns its bytes
func (c *Client) GenerateImage(ctx context.Context, req domain.ImageGenerationRequest) (*domain.ImageGenerationResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BuildURL(req), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "image/*")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(data)) > c.maxBodySize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, c.maxBodySize)
	}

	// full decode so a truncated body is not mistaken for an image
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotImage, err)
	}

	return &domain.ImageGenerationResponse{
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
