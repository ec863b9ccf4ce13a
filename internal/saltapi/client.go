package saltapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the salt-server generation API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type Options struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

type TypographyRequest struct {
	Headline    string `json:"headline"`
	SubHeadline string `json:"subHeadline"`
	Style       string `json:"style"`
}

type TypographyResponse struct {
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
}

type FinalRequest struct {
	TypographyURL    string `json:"typographyUrl"`
	ImageDescription string `json:"imageDescription"`
}

type FinalResponse struct {
	ImageURL string `json:"imageUrl"`
}

type SuggestRequest struct {
	Headline    string `json:"headline"`
	SubHeadline string `json:"subHeadline"`
}

type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

type AnimateRequest struct {
	ImageBase64 string `json:"imageBase64"`
}

type AnimateResponse struct {
	VideoURL string `json:"videoUrl"`
}

// APIError is a non-2xx response. Message holds the body's "error" field
// when the body was JSON, and is empty otherwise.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("status %d, body: %s", e.StatusCode, e.Body)
}

// UserMessage returns the remote error message carried by err, or fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 180 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		httpClient: httpClient,
	}
}

func (c *Client) GenerateTypography(ctx context.Context, in TypographyRequest) ([]string, error) {
	var out TypographyResponse
	if err := c.post(ctx, "/api/generate-typography", in, &out); err != nil {
		return nil, fmt.Errorf("failed to generate typography: %w", err)
	}

	urls := make([]string, 0, len(out.Images))
	for _, img := range out.Images {
		if img.URL != "" {
			urls = append(urls, img.URL)
		}
	}
	if len(urls) == 0 {
		return nil, errors.New("failed to generate typography: no images in response")
	}
	return urls, nil
}

func (c *Client) GenerateFinal(ctx context.Context, in FinalRequest) (string, error) {
	var out FinalResponse
	if err := c.post(ctx, "/api/generate-final", in, &out); err != nil {
		return "", fmt.Errorf("failed to generate poster: %w", err)
	}
	if out.ImageURL == "" {
		return "", errors.New("failed to generate poster: imageUrl is empty in response")
	}
	return out.ImageURL, nil
}

func (c *Client) SuggestBackgrounds(ctx context.Context, in SuggestRequest) ([]string, error) {
	var out SuggestResponse
	if err := c.post(ctx, "/api/suggest-backgrounds", in, &out); err != nil {
		return nil, fmt.Errorf("failed to suggest backgrounds: %w", err)
	}
	return out.Suggestions, nil
}

func (c *Client) Animate(ctx context.Context, imageBase64 string) (string, error) {
	var out AnimateResponse
	if err := c.post(ctx, "/api/animate", AnimateRequest{ImageBase64: imageBase64}, &out); err != nil {
		return "", fmt.Errorf("failed to animate poster: %w", err)
	}
	if out.VideoURL == "" {
		return "", errors.New("failed to animate poster: videoUrl is empty in response")
	}
	return out.VideoURL, nil
}

// FetchDataURL downloads a file and returns it as a base64 data URL.
func (c *Client) FetchDataURL(ctx context.Context, fileURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("failed to download file: status %d, body: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	mimeType := resp.Header.Get("Content-Type")
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	jsonData, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(body)}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))
	}
	return nil
}
