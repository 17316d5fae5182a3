// Package replication holds the vendor service's clients for the procurement
// catalog service: the vendor-replication call and the generation proxy.
// Both are single remote calls with bounded timeouts and no retry; retry is a
// caller/operator responsibility. The interfaces are the seam a future
// outbox-and-retry worker would plug into.
package replication

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"procure/internal/vendors/models"
	"procure/pkg/platform/circuit"
	"procure/pkg/platform/sentinel"
)

// VendorReplicator propagates a vendor's core attributes into the procurement
// domain. The receiving side upserts idempotently, so repeated calls with the
// same vendor are safe.
type VendorReplicator interface {
	Replicate(ctx context.Context, vendor models.Vendor) error
}

// ProcurementGenerator asks the procurement service to generate a batch of
// procurement requests for a vendor.
type ProcurementGenerator interface {
	Generate(ctx context.Context, vendorID string) ([]json.RawMessage, error)
}

// HTTPClient talks to the procurement catalog service over HTTP. A circuit
// breaker shared by both calls sheds load while the procurement service is
// down and lets one probe per interval through to detect recovery.
type HTTPClient struct {
	baseURL            string
	client             *http.Client
	breaker            *circuit.Breaker
	replicationTimeout time.Duration
	generateTimeout    time.Duration
}

// NewHTTPClient builds a procurement-service client rooted at baseURL.
func NewHTTPClient(baseURL string, replicationTimeout, generateTimeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:            baseURL,
		client:             &http.Client{},
		breaker:            circuit.New("procurement-service"),
		replicationTimeout: replicationTimeout,
		generateTimeout:    generateTimeout,
	}
}

// Replicate POSTs {id, certifications, rating} to the procurement service's
// internal vendor upsert endpoint.
func (c *HTTPClient) Replicate(ctx context.Context, vendor models.Vendor) error {
	if !c.breaker.Allow() {
		return fmt.Errorf("replicate vendor %s: circuit open: %w", vendor.ID, sentinel.ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, c.replicationTimeout)
	defer cancel()

	payload := map[string]any{
		"id":             vendor.ID,
		"certifications": vendor.Certifications,
		"rating":         vendor.Rating,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal replication payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/vendors", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build replication request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.breaker.RecordFailure()
		return fmt.Errorf("replicate vendor %s: %w", vendor.ID, sentinel.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		// 4xx responses are the service answering, not the service down.
		if resp.StatusCode >= 500 {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return fmt.Errorf("replicate vendor %s: unexpected status %d", vendor.ID, resp.StatusCode)
	}
	c.breaker.RecordSuccess()
	return nil
}

// Generate POSTs {vendorId} to the procurement service's generate endpoint and
// returns the created procurement records untouched, so the vendor service
// never reinterprets the procurement domain's representation.
func (c *HTTPClient) Generate(ctx context.Context, vendorID string) ([]json.RawMessage, error) {
	if !c.breaker.Allow() {
		return nil, fmt.Errorf("generate procurements for %s: circuit open: %w", vendorID, sentinel.ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, c.generateTimeout)
	defer cancel()

	body, err := json.Marshal(map[string]string{"vendorId": vendorID})
	if err != nil {
		return nil, fmt.Errorf("marshal generate payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/procurements/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.breaker.RecordFailure()
		return nil, fmt.Errorf("generate procurements for %s: %w", vendorID, sentinel.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// 4xx responses are the service answering, not the service down.
		if resp.StatusCode >= 500 {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return nil, fmt.Errorf("generate procurements for %s: unexpected status %d", vendorID, resp.StatusCode)
	}
	c.breaker.RecordSuccess()

	var records []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode generate response: %w", err)
	}
	return records, nil
}

// MockReplicator records replication calls and fails on demand. Tests use it
// the way a stub upstream would behave.
type MockReplicator struct {
	mu    sync.Mutex
	Err   error
	calls []models.Vendor
}

func (m *MockReplicator) Replicate(_ context.Context, vendor models.Vendor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.calls = append(m.calls, vendor)
	return nil
}

// Calls returns the vendors replicated so far.
func (m *MockReplicator) Calls() []models.Vendor {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Vendor, len(m.calls))
	copy(out, m.calls)
	return out
}

// MockGenerator returns a fixed generation result or error.
type MockGenerator struct {
	Err     error
	Records []json.RawMessage
}

func (m *MockGenerator) Generate(_ context.Context, _ string) ([]json.RawMessage, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Records, nil
}
