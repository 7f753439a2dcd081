package imgbb

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hospinv/hospinv-backend/pkg/config"
	"github.com/hospinv/hospinv-backend/pkg/logger"
)

var (
	errAPIKeyRequired = errors.New("imgbb api key is required")
	errLoggerRequired = errors.New("imgbb logger is required")
)

// Client wraps the ImgBB upload API with centralized auth, logging, and error
// mapping. Image bytes go out base64-encoded; the hosted URL, thumbnail URL,
// and delete URL come back.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	logger     *logger.Logger
}

// UploadResult carries the hosted locations for an uploaded image.
type UploadResult struct {
	URL          string
	ThumbnailURL string
	DeleteURL    string
}

// NewClient initializes the ImgBB wrapper and validates the credentials.
func NewClient(cfg config.ImgBBConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = "https://api.imgbb.com/1/upload"
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiKey:     apiKey,
		baseURL:    baseURL,
		logger:     logg,
	}, nil
}

type uploadResponse struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Data    struct {
		URL       string `json:"url"`
		DeleteURL string `json:"delete_url"`
		Thumb     struct {
			URL string `json:"url"`
		} `json:"thumb"`
	} `json:"data"`
}

// Upload pushes the image bytes to ImgBB and returns the hosted URLs.
func (c *Client) Upload(ctx context.Context, image []byte) (*UploadResult, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("image payload is empty")
	}

	form := url.Values{}
	form.Set("image", base64.StdEncoding.EncodeToString(image))

	endpoint := fmt.Sprintf("%s?key=%s", c.baseURL, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build imgbb request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imgbb upload: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read imgbb response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imgbb upload failed with status %d", resp.StatusCode)
	}

	var parsed uploadResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode imgbb response: %w", err)
	}
	if !parsed.Success || parsed.Data.URL == "" {
		return nil, fmt.Errorf("imgbb upload rejected (status %d)", parsed.Status)
	}

	c.logger.Info(ctx, "image uploaded to imgbb")

	return &UploadResult{
		URL:          parsed.Data.URL,
		ThumbnailURL: parsed.Data.Thumb.URL,
		DeleteURL:    parsed.Data.DeleteURL,
	}, nil
}
