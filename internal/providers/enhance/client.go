package enhance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pixlift/internal/domain"
	"pixlift/internal/infra"
)

// Options controls how the enhancement client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client calls the external enhancement API over HTTP and normalizes every
// outcome into either a Result or a classified *Error.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *infra.Logger
}

// NewClient builds an enhancement client, applying defaults for anything the
// options leave unset.
func NewClient(opts Options) (*Client, error) {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash-image"
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

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

type enhanceAPIRequest struct {
	Image struct {
		URI string `json:"uri"`
	} `json:"image"`
	Options struct {
		Quality string `json:"quality"`
		Style   string `json:"style"`
	} `json:"options"`
	RequestID string `json:"requestId,omitempty"`
}

type enhanceAPIResponse struct {
	Output struct {
		URI    string `json:"uri"`
		Format string `json:"format"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	} `json:"output"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Enhance submits one image for enhancement and waits for the provider's
// answer, bounded by the caller's context deadline.
func (c *Client) Enhance(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.InputHandle) == "" {
		return nil, NewError(domain.ErrorKindInvalidInput, "image handle is required")
	}

	var payload enhanceAPIRequest
	payload.Image.URI = req.InputHandle
	payload.Options.Quality = string(req.Quality)
	payload.Options.Style = string(req.Style)
	payload.RequestID = req.JobID

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, NewError(domain.ErrorKindUnknown, fmt.Sprintf("marshal request: %v", err))
	}

	endpoint := fmt.Sprintf("%s/models/%s:enhanceImage", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, NewError(domain.ErrorKindUnknown, fmt.Sprintf("create request: %v", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, NewError(domain.ErrorKindTimeout, "enhancement call exceeded its deadline")
		}
		return nil, NewError(domain.ErrorKindUnavailable, fmt.Sprintf("provider unreachable: %v", err))
	}
	defer resp.Body.Close()

	var decoded enhanceAPIResponse
	if resp.StatusCode >= http.StatusBadRequest {
		message := fmt.Sprintf("provider status %d", resp.StatusCode)
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err == nil && decoded.Error.Message != "" {
			message = decoded.Error.Message
		}
		return nil, NewError(classifyStatus(resp.StatusCode), message)
	}

	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, NewError(domain.ErrorKindUnknown, fmt.Sprintf("decode response: %v", err))
	}
	if strings.TrimSpace(decoded.Output.URI) == "" {
		return nil, NewError(domain.ErrorKindUnknown, "provider returned no output handle")
	}

	c.logger.Debug().
		Str("model", c.model).
		Str("request_id", req.JobID).
		Msg("enhance: provider call succeeded")

	return &Result{
		OutputHandle: decoded.Output.URI,
		Format:       decoded.Output.Format,
		Width:        decoded.Output.Width,
		Height:       decoded.Output.Height,
	}, nil
}

func classifyStatus(status int) domain.ErrorKind {
	switch {
	case status == http.StatusTooManyRequests:
		return domain.ErrorKindRateLimited
	case status == http.StatusPaymentRequired:
		return domain.ErrorKindQuota
	case status == http.StatusBadRequest,
		status == http.StatusNotFound,
		status == http.StatusUnsupportedMediaType,
		status == http.StatusUnprocessableEntity:
		return domain.ErrorKindInvalidInput
	case status >= http.StatusInternalServerError:
		return domain.ErrorKindUnavailable
	default:
		return domain.ErrorKindUnknown
	}
}

var _ Enhancer = (*Client)(nil)
