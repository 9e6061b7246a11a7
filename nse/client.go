package nse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"
)

// BaseURL is the public NSE site root. The JSON endpoints refuse requests
// that don't look like a browser session, hence the header set and the
// cookie warm-up below.
const BaseURL = "https://www.nseindia.com"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/124.0.0.0 Safari/537.36"

// Client fetches spot quotes, market status, and option chains from the
// public NSE endpoints. All calls go through the configured RetryPolicy and
// return either decoded data or an error — nothing here panics or blocks
// beyond the policy's bounds.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      RetryPolicy

	mu     sync.Mutex
	warmed bool
}

// NewClient returns a client with a fresh cookie jar and the given retry
// policy. baseURL is overridable for tests; pass "" for the live site.
func NewClient(baseURL string, retry RetryPolicy) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
		retry: retry,
	}
}

// warmUp hits the site root once to collect session cookies. Failures are
// ignored; the real request will surface any persistent problem.
func (c *Client) warmUp(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.warmed {
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return
	}
	c.setHeaders(req)
	if resp, err := c.httpClient.Do(req); err == nil {
		resp.Body.Close()
	}
	c.warmed = true
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", c.baseURL+"/")
	req.Header.Set("Connection", "keep-alive")
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	c.warmUp(ctx)

	return c.retry.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return err
		}
		c.setHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("nse: GET %s: status %d", path, resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return fmt.Errorf("nse: GET %s: decode: %w", path, err)
		}
		return nil
	})
}

// MarketStatus fetches the segment status board.
func (c *Client) MarketStatus(ctx context.Context) (*MarketStatus, error) {
	var ms MarketStatus
	if err := c.getJSON(ctx, "/api/marketStatus", &ms); err != nil {
		return nil, err
	}
	return &ms, nil
}

// LiveIndex returns the last traded price of the named index
// (e.g. "NIFTY 50"). A missing or zero price is an error, never a zero
// value the caller could mistake for a quote.
func (c *Client) LiveIndex(ctx context.Context, name string) (float64, error) {
	var ir indexResponse
	path := "/api/equity-stockIndices?index=" + url.QueryEscape(name)
	if err := c.getJSON(ctx, path, &ir); err != nil {
		return 0, err
	}

	for _, e := range ir.Data {
		if e.Symbol == name {
			if e.LastPrice > 0 {
				return e.LastPrice, nil
			}
			if e.Last > 0 {
				return e.Last, nil
			}
		}
	}
	return 0, fmt.Errorf("nse: no last price for index %q", name)
}

// OptionChain fetches the full option chain for an index symbol
// (e.g. "NIFTY").
func (c *Client) OptionChain(ctx context.Context, symbol string) (*OptionChain, error) {
	var oc OptionChain
	path := "/api/option-chain-indices?symbol=" + url.QueryEscape(symbol)
	if err := c.getJSON(ctx, path, &oc); err != nil {
		return nil, err
	}
	return &oc, nil
}
