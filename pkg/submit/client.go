// Package submit pushes a finished batch document to a goimpcore solver
// ingest endpoint.
package submit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/kacperjurak/goimpbatch/pkg/config"
	"github.com/kacperjurak/goimpbatch/pkg/models"
)

// Client handles batch submission with connection pooling.
type Client struct {
	url        string
	httpClient *http.Client
	config     *config.Config
}

// NewClient creates a submission client for the given endpoint URL.
func NewClient(url string, cfg *config.Config) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}

	return &Client{
		url:    url,
		config: cfg,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Send posts the batch document to the solver endpoint. Any transport
// failure or HTTP status >= 400 is returned as an error; the solver answers
// 202 Accepted when the batch is queued.
func (c *Client) Send(batch *models.ImpedanceBatch) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(batch); err != nil {
		return fmt.Errorf("failed to marshal batch: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.url, &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit batch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("batch submission failed with status %d", resp.StatusCode)
	}

	if !c.config.Quiet {
		log.Printf("Batch submitted - ID: %s, Spectra: %d, Status: %d",
			batch.BatchID, len(batch.Spectra), resp.StatusCode)
	}

	return nil
}
