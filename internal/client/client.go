// Package client is the agent's network boundary to the report server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"netlink-server/internal/events"
	"netlink-server/internal/models"
)

// FailureKind classifies a submission failure.
type FailureKind string

const (
	// ValidationRejected: the server-side numbering-plan re-check failed.
	ValidationRejected FailureKind = "VALIDATION_REJECTED"
	// ServerError: the server answered with a storage-layer failure.
	ServerError FailureKind = "SERVER_ERROR"
	// NetworkUnreachable: no response at all; the offline-queue trigger.
	NetworkUnreachable FailureKind = "NETWORK_UNREACHABLE"
	// EndpointMissing: the write endpoint is gone (404).
	EndpointMissing FailureKind = "ENDPOINT_MISSING"
)

// SubmissionError carries the classification and a human-readable
// message for one failed submission.
type SubmissionError struct {
	Kind       FailureKind
	HTTPStatus int
	Message    string
}

func (e *SubmissionError) Error() string {
	if e.HTTPStatus > 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// IsUnreachable reports whether err is a NetworkUnreachable submission
// failure, the condition that sends a report to the offline queue.
func IsUnreachable(err error) bool {
	var se *SubmissionError
	return errors.As(err, &se) && se.Kind == NetworkUnreachable
}

// IsValidationRejected reports whether the server rejected the phone
// format. Such reports are user-correctable, not retryable as-is.
func IsValidationRejected(err error) bool {
	var se *SubmissionError
	return errors.As(err, &se) && se.Kind == ValidationRejected
}

// Client talks to the report server. Requests carry a bounded timeout
// so a hung endpoint is reclassified as unreachable instead of hanging
// the caller.
type Client struct {
	BaseURL    string
	httpClient *http.Client
	broker     *events.Broker
}

// NewClient builds a client. broker may be nil when no presentation
// layer listens for connectivity errors.
func NewClient(baseURL string, timeout time.Duration, broker *events.Broker) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		BaseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		broker:     broker,
	}
}

// Submit POSTs a report to the write endpoint and returns the assigned
// report id. Failures come back as *SubmissionError; network-layer
// failures additionally raise the connectivity-error signal.
func (c *Client) Submit(ctx context.Context, report *models.SubmitRequest) (uint, error) {
	body, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("encode report: %w", err)
	}

	endpoint := c.BaseURL + "/api/reports"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		subErr := &SubmissionError{
			Kind:    NetworkUnreachable,
			Message: "No response from server. Check your connection.",
		}
		c.raiseConnectivityError(subErr)
		return 0, subErr
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var out models.SubmitResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return 0, fmt.Errorf("decode response: %w", err)
		}
		return out.ReportID, nil

	case resp.StatusCode == http.StatusForbidden:
		return 0, &SubmissionError{
			Kind:       ValidationRejected,
			HTTPStatus: resp.StatusCode,
			Message:    decodeErrorMessage(resp, "Validation failed"),
		}

	case resp.StatusCode == http.StatusNotFound:
		subErr := &SubmissionError{
			Kind:       EndpointMissing,
			HTTPStatus: resp.StatusCode,
			Message:    "Report endpoint not found.",
		}
		c.raiseConnectivityError(subErr)
		return 0, subErr

	default:
		return 0, &SubmissionError{
			Kind:       ServerError,
			HTTPStatus: resp.StatusCode,
			Message:    decodeErrorMessage(resp, "Server failed to save the report."),
		}
	}
}

func decodeErrorMessage(resp *http.Response, fallback string) string {
	var out models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err == nil && out.Message != "" {
		return out.Message
	}
	return fallback
}

func (c *Client) raiseConnectivityError(subErr *SubmissionError) {
	log.Printf("[Client] Connectivity error: %s", subErr.Error())
	if c.broker == nil {
		return
	}
	c.broker.Publish(events.TypeConnectivityError, models.ConnectivityError{
		Message:    subErr.Message,
		HTTPStatus: subErr.HTTPStatus,
	})
}
