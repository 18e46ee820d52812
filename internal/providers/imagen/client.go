package imagen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"studio/internal/infra"
)

// ErrNoImage indicates the API answered 2xx but carried no usable prediction.
var ErrNoImage = errors.New("imagen: no image data in response")

// Options configures the Imagen text-to-image client.
type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client performs HTTP calls to the Imagen predict API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *infra.Logger
}

// StatusError carries the upstream HTTP status and error message for non-2xx
// responses.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("imagen: status %d", e.Status)
	}
	return fmt.Sprintf("imagen: status %d: %s", e.Status, e.Message)
}

type predictRequest struct {
	Instances  predictInstance `json:"instances"`
	Parameters predictParams   `json:"parameters"`
}

type predictInstance struct {
	Prompt    string `json:"prompt"`
	ImageSize string `json:"imageSize"`
}

type predictParams struct {
	SampleCount int `json:"sampleCount"`
}

type predictResponse struct {
	Predictions []prediction `json:"predictions"`
}

type prediction struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MimeType           string `json:"mimeType,omitempty"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

// NewClient constructs an Imagen client with sane defaults.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("imagen: api key is required")
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	model := opts.Model
	if model == "" {
		model = "imagen-3.0-generate-002"
	}

	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}

	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		model:      model,
		httpClient: client,
		logger:     logger,
	}, nil
}

// Model returns the configured Imagen model identifier.
func (c *Client) Model() string {
	return c.model
}

// Generate requests a single image at the given resolution and returns the
// decoded bitmap bytes.
func (c *Client) Generate(ctx context.Context, prompt string, width, height int) ([]byte, error) {
	payload := predictRequest{
		Instances: predictInstance{
			Prompt:    prompt,
			ImageSize: fmt.Sprintf("%dx%d", width, height),
		},
		Parameters: predictParams{SampleCount: 1},
	}

	endpoint := fmt.Sprintf("%s/models/%s:predict", c.baseURL, url.PathEscape(c.model))
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("invoke imagen: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &StatusError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode imagen response: %w", err)
	}

	if len(out.Predictions) == 0 || out.Predictions[0].BytesBase64Encoded == "" {
		return nil, ErrNoImage
	}

	data, err := base64.StdEncoding.DecodeString(out.Predictions[0].BytesBase64Encoded)
	if err != nil {
		return nil, fmt.Errorf("decode image data: %w", err)
	}

	c.logger.Debug().
		Str("model", c.model).
		Int("width", width).
		Int("height", height).
		Int("bytes", len(data)).
		Msg("imagen: generated image")

	return data, nil
}

func readErrorMessage(body io.Reader) string {
	data, _ := io.ReadAll(body)
	var apiErr errorResponse
	if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}
	return strings.TrimSpace(string(data))
}
