package fal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"genboard/internal/domain"
	"genboard/internal/infra"
)

// Client talks to the provider's asynchronous queue. Submissions return an
// opaque request id; outcomes are observed by polling that id. The credential
// is passed per call because it is resolved from the owner principal on every
// request, not held by the process.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// Options controls how the queue client is configured.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// NewClient constructs a queue client.
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("fal: base url is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{baseURL: base, httpClient: httpClient, logger: opts.Logger}, nil
}

type submitResponse struct {
	RequestID string `json:"request_id"`
}

// Submit posts the job to its queue endpoint and returns the provider request
// id. A transport or non-2xx failure maps to ErrProviderSubmission; a 2xx
// response without a request id maps to ErrProviderProtocol.
func (c *Client) Submit(ctx context.Context, apiKey string, job SubmitJob) (string, error) {
	body, err := json.Marshal(job.Payload)
	if err != nil {
		return "", fmt.Errorf("%w: encode payload: %v", domain.ErrProviderSubmission, err)
	}
	url := c.baseURL + "/" + job.Endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", domain.ErrProviderSubmission, err)
	}
	req.Header.Set("Authorization", "Key "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProviderSubmission, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", domain.ErrProviderSubmission, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s returned %d: %s", domain.ErrProviderSubmission, job.Endpoint, resp.StatusCode, truncate(raw, 256))
	}
	var parsed submitResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode submit response: %v", domain.ErrProviderProtocol, err)
	}
	if strings.TrimSpace(parsed.RequestID) == "" {
		return "", fmt.Errorf("%w: submit response missing request_id", domain.ErrProviderProtocol)
	}
	return parsed.RequestID, nil
}

// PollState classifies one poll attempt.
type PollState string

const (
	PollCompleted  PollState = "COMPLETED"
	PollInProgress PollState = "IN_PROGRESS"
	PollFailed     PollState = "FAILED"
	PollNotFound   PollState = "NOT_FOUND"
	PollTransient  PollState = "TRANSIENT"
)

// PollResult is one observation of a queued job.
type PollResult struct {
	State PollState
	// ErrorDetail carries the provider-reported failure when State is PollFailed.
	ErrorDetail string
	// Result holds the parsed result body when State is PollCompleted.
	Result *Result
}

// Result is the terminal payload of a completed job.
type Result struct {
	Video  *MediaFile  `json:"video"`
	Images []MediaFile `json:"images"`
}

// MediaFile is a single generated artifact reference.
type MediaFile struct {
	URL          string  `json:"url"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Duration     float64 `json:"duration"`
}

// Media extracts the primary media file for the given kind: video.url for
// videos, images[0].url for images. ok is false when the result body lacks it.
func (r *Result) Media(kind domain.ContentKind) (MediaFile, bool) {
	if r == nil {
		return MediaFile{}, false
	}
	if kind == domain.ContentKindVideo {
		if r.Video == nil || strings.TrimSpace(r.Video.URL) == "" {
			return MediaFile{}, false
		}
		return *r.Video, true
	}
	if len(r.Images) == 0 || strings.TrimSpace(r.Images[0].URL) == "" {
		return MediaFile{}, false
	}
	return r.Images[0], true
}

type statusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// Poll issues one status query for the request id.
//
//	200 -> PollCompleted with the result body
//	202 -> PollInProgress, or PollFailed when the nested status says so
//	404 -> PollNotFound (job not yet visible, retried silently)
//	any other status -> PollTransient (logged, retried)
func (c *Client) Poll(ctx context.Context, apiKey, endpoint, requestID string) (PollResult, error) {
	url := fmt.Sprintf("%s/%s/requests/%s", c.baseURL, endpoint, requestID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return PollResult{}, fmt.Errorf("build poll request: %w", err)
	}
	req.Header.Set("Authorization", "Key "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return PollResult{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return PollResult{}, fmt.Errorf("read poll response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var result Result
		if err := json.Unmarshal(raw, &result); err != nil {
			return PollResult{}, fmt.Errorf("%w: decode result: %v", domain.ErrProviderProtocol, err)
		}
		return PollResult{State: PollCompleted, Result: &result}, nil
	case http.StatusAccepted:
		var status statusResponse
		if err := json.Unmarshal(raw, &status); err != nil {
			// Treat an unreadable progress body as still in progress.
			return PollResult{State: PollInProgress}, nil
		}
		if strings.EqualFold(status.Status, "FAILED") {
			detail := status.Error
			if detail == "" {
				detail = "provider reported failure"
			}
			return PollResult{State: PollFailed, ErrorDetail: detail}, nil
		}
		return PollResult{State: PollInProgress}, nil
	case http.StatusNotFound:
		return PollResult{State: PollNotFound}, nil
	default:
		if c.logger != nil {
			c.logger.Warn().
				Int("status", resp.StatusCode).
				Str("request_id", requestID).
				Str("endpoint", endpoint).
				Msg("fal: unexpected poll status")
		}
		return PollResult{State: PollTransient}, nil
	}
}

func truncate(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		return s[:n]
	}
	return s
}
