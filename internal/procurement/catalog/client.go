// Package catalog holds the client for the external product catalog gateway.
// The generation workflow performs exactly one read per call; the gateway's
// contract is a single `{name, amount}` document.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	dErrors "procure/pkg/domain-errors"
)

// Product is the catalog gateway's response shape.
type Product struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// Client reads the featured product from the catalog gateway.
type Client interface {
	FetchProduct(ctx context.Context) (Product, error)
}

// HTTPClient fetches the product document over HTTP with a bounded timeout.
type HTTPClient struct {
	productURL string
	client     *http.Client
	timeout    time.Duration
}

// NewHTTPClient builds a catalog client for the given product URL.
func NewHTTPClient(productURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		productURL: productURL,
		client:     &http.Client{},
		timeout:    timeout,
	}
}

// FetchProduct performs one GET against the gateway. Transport failures,
// unexpected statuses, and malformed documents all surface as upstream
// errors so callers never mistake them for local faults.
func (c *HTTPClient) FetchProduct(ctx context.Context) (Product, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.productURL, nil)
	if err != nil {
		return Product{}, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Product{}, dErrors.Wrap(err, dErrors.CodeUpstream, "catalog gateway unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Product{}, dErrors.New(dErrors.CodeUpstream,
			fmt.Sprintf("catalog gateway returned status %d", resp.StatusCode))
	}

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return Product{}, dErrors.Wrap(err, dErrors.CodeUpstream, "catalog gateway returned an unexpected shape")
	}
	if product.Name == "" {
		return Product{}, dErrors.New(dErrors.CodeUpstream, "catalog gateway returned an unexpected shape")
	}
	return product, nil
}

// Mock returns deterministic product data and counts calls so tests can
// assert the one-read-per-generation contract.
type Mock struct {
	Product Product
	Err     error
	Latency time.Duration

	calls atomic.Int64
}

func (m *Mock) FetchProduct(_ context.Context) (Product, error) {
	m.calls.Add(1)
	time.Sleep(m.Latency)
	if m.Err != nil {
		return Product{}, m.Err
	}
	return m.Product, nil
}

// CallCount returns how many times FetchProduct was invoked.
func (m *Mock) CallCount() int64 {
	return m.calls.Load()
}
