// Package hosting is the client for the external podcast hosting service.
// Calls are blocking with a request timeout and no retry; retry and backoff
// policy belong to the caller.
package hosting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ServiceError is a structured failure of a hosting service call: bad
// credentials, an unexpected status, or a network failure. It is surfaced
// verbatim; no partial state is mutated on failure.
type ServiceError struct {
	Op     string // "validate" or "push feed"
	Status int    // HTTP status, 0 when the request never completed
	Err    error
}

func (e *ServiceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("hosting: %s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("hosting: %s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// CredentialStatus is the service's verdict on an account token and email.
type CredentialStatus struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// FeedDetails is the payload pushed to the hosting service after a
// feed-details save: the series scope plus the resolved field values.
type FeedDetails struct {
	SeriesID string            `json:"series_id"`
	Values   map[string]string `json:"values"`
}

// Client talks to the hosting service API.
type Client struct {
	apiURL string
	http   *http.Client
}

// NewClient creates a hosting client for the given API base URL.
func NewClient(apiURL string) *Client {
	return &Client{
		apiURL: apiURL,
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

// ValidateCredentials asks the service whether the token and email identify
// a valid account. A reachable service that rejects the credentials is a
// successful call with Valid=false; only transport and protocol failures
// return an error.
func (c *Client) ValidateCredentials(ctx context.Context, token, email string) (CredentialStatus, error) {
	q := url.Values{}
	q.Set("api_token", token)
	q.Set("email", email)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/api/credentials?"+q.Encode(), nil)
	if err != nil {
		return CredentialStatus{}, &ServiceError{Op: "validate", Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return CredentialStatus{}, &ServiceError{Op: "validate", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return CredentialStatus{}, &ServiceError{Op: "validate", Status: resp.StatusCode}
	}
	var status CredentialStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return CredentialStatus{}, &ServiceError{Op: "validate", Err: err}
	}
	return status, nil
}

// PushFeed uploads resolved feed details for a series to the service,
// authenticated with the stored account token and email.
func (c *Client) PushFeed(ctx context.Context, token, email string, details FeedDetails) error {
	body, err := json.Marshal(details)
	if err != nil {
		return &ServiceError{Op: "push feed", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/api/feeds", bytes.NewReader(body))
	if err != nil {
		return &ServiceError{Op: "push feed", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Account-Email", email)

	resp, err := c.http.Do(req)
	if err != nil {
		return &ServiceError{Op: "push feed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return &ServiceError{Op: "push feed", Status: resp.StatusCode}
	}
	return nil
}
