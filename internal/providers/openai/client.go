package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kuromame0210/ai-skincare-predictor/internal/infra"
)

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("openai: api key is required")

// Options configures the OpenAI images client.
type Options struct {
	APIKey         string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the OpenAI image edit API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// EditRequest captures one images/edits invocation. Image must be an RGBA PNG
// payload; ResponseFormat is only sent when set, since gpt-image-1 rejects
// the field.
type EditRequest struct {
	Model          string
	Image          []byte
	Filename       string
	Prompt         string
	Size           string
	ResponseFormat string
}

// EditResult is the normalized first datum of a successful edit response.
// Exactly one of URL and B64JSON is populated, depending on the model.
type EditResult struct {
	URL     string
	B64JSON string
}

type editResponse struct {
	Created int64 `json:"created"`
	Data    []struct {
		URL     string `json:"url"`
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) (*Client, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 120 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
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
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// Edit invokes the images/edits endpoint once and returns the first datum.
func (c *Client) Edit(ctx context.Context, req EditRequest) (*EditResult, error) {
	if !c.HasCredentials() {
		return nil, ErrMissingAPIKey
	}
	if len(req.Image) == 0 {
		return nil, errors.New("openai: image payload is required")
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, errors.New("openai: prompt is required")
	}
	model := strings.TrimSpace(req.Model)
	if model == "" {
		return nil, errors.New("openai: model is required")
	}

	body, contentType, err := encodeEditForm(req, model, prompt)
	if err != nil {
		return nil, err
	}
	endpoint := c.baseURL + "/images/edits"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		var detail errorResponse
		if err := json.Unmarshal(raw, &detail); err == nil && detail.Error.Message != "" {
			return nil, fmt.Errorf("openai: %s (%s)", detail.Error.Message, detail.Error.Type)
		}
		return nil, fmt.Errorf("openai: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded editResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("openai: decode response: %w", err)
	}
	if len(decoded.Data) == 0 {
		return nil, errors.New("openai: response carries no image data")
	}
	first := decoded.Data[0]
	if first.URL == "" && first.B64JSON == "" {
		return nil, errors.New("openai: response carries neither url nor inline payload")
	}
	c.logger.Debug().
		Str("model", model).
		Bool("inline", first.B64JSON != "").
		Msg("openai: edited image")
	return &EditResult{URL: first.URL, B64JSON: first.B64JSON}, nil
}

func encodeEditForm(req EditRequest, model, prompt string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	fields := [][2]string{
		{"model", model},
		{"prompt", prompt},
		{"n", "1"},
	}
	if size := strings.TrimSpace(req.Size); size != "" {
		fields = append(fields, [2]string{"size", size})
	}
	if format := strings.TrimSpace(req.ResponseFormat); format != "" {
		fields = append(fields, [2]string{"response_format", format})
	}
	for _, field := range fields {
		if err := mw.WriteField(field[0], field[1]); err != nil {
			return nil, "", fmt.Errorf("openai: encode form field %s: %w", field[0], err)
		}
	}

	filename := strings.TrimSpace(req.Filename)
	if filename == "" {
		filename = "image.png"
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("openai: create image part: %w", err)
	}
	if _, err := part.Write(req.Image); err != nil {
		return nil, "", fmt.Errorf("openai: write image part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("openai: finalize form: %w", err)
	}
	return body, mw.FormDataContentType(), nil
}
