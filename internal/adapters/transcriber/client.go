package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"reelpipe/internal/core/domain"
)

// Client implements ports.Transcriber against the transcription service.
//
// Transport failures are retried with a fixed delay; a completed response
// is never retried, whatever its status. The service loads its model on
// first use, hence the retry at all.
type Client struct {
	baseURL    string
	client     *http.Client
	attempts   int
	retryDelay time.Duration
	timeout    time.Duration
}

// NewClient creates a new transcription client.
func NewClient(baseURL string, attempts int, retryDelay, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     &http.Client{},
		attempts:   attempts,
		retryDelay: retryDelay,
		timeout:    timeout,
	}
}

// Transcribe submits the work item's video for transcription.
func (c *Client) Transcribe(ctx context.Context, shortcode, caption string) (*domain.TranscriptionResult, error) {
	payload, _ := json.Marshal(map[string]string{
		"shortcode": shortcode,
		"caption":   caption,
	})

	var result *domain.TranscriptionResult
	op := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.baseURL+"/transcribe", bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			// transport error, retryable
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("transcription service returned status %d", resp.StatusCode))
		}

		var tr domain.TranscriptionResult
		if err := json.Unmarshal(body, &tr); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode transcription response: %w", err))
		}
		if !tr.Success || tr.Transcript == "" {
			if tr.Error != "" {
				return backoff.Permanent(fmt.Errorf("transcription failed: %s", tr.Error))
			}
			return backoff.Permanent(errors.New("transcription failed: no transcript in response"))
		}

		result = &tr
		return nil
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryDelay), uint64(c.attempts-1)),
		ctx,
	)
	if err := backoff.Retry(op, bo); err != nil {
		return nil, fmt.Errorf("transcription service failed: %w", err)
	}
	return result, nil
}
