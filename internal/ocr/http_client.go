package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// HTTPClient implements Engine against a hosted OCR HTTP API.
// The API accepts a JSON body carrying the image URL and responds with the
// recognized text, or an error object on failure.
type HTTPClient struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClient constructs an OCR client for the given endpoint.
func NewHTTPClient(apiURL, apiKey string) (*HTTPClient, error) {
	if strings.TrimSpace(apiURL) == "" {
		return nil, fmt.Errorf("OCR_API_URL is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OCR_API_KEY is required")
	}
	timeout := 60 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OCR_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &HTTPClient{
		apiURL: apiURL,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type extractRequest struct {
	URL string `json:"url"`
}

type extractResponse struct {
	Text  string `json:"text"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// ExtractText posts the stored file URL to the OCR API and returns the text.
func (c *HTTPClient) ExtractText(ctx context.Context, fileURL string) (string, error) {
	if strings.TrimSpace(fileURL) == "" {
		return "", fmt.Errorf("file url is required")
	}

	payload, err := json.Marshal(extractRequest{URL: fileURL})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ocr response: %w", err)
	}

	var parsed extractResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("ocr response status %d: invalid body", resp.StatusCode)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("ocr error: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ocr response status %d", resp.StatusCode)
	}

	return parsed.Text, nil
}

var _ Engine = (*HTTPClient)(nil)
