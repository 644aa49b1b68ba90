// Package market is the market data gateway: coin quotes and search from
// CoinGecko and fiat exchange rates from ExchangeRate-API. Every call tries
// the configured API keys in order until one succeeds.
package market

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/logging"
	"github.com/dmitrijs2005/coinkeeper/internal/models"
	"github.com/shopspring/decimal"
)

// Gateway is what the services consume.
type Gateway interface {
	// Quotes returns a snapshot per requested coin id. Ids the provider does
	// not know are absent. If every attempt fails the map is empty and the
	// error wraps common.ErrQuoteUnavailable.
	Quotes(ctx context.Context, ids []string) (map[string]models.Quote, error)
	Search(ctx context.Context, query string) ([]models.CoinRef, error)
	// ResolveTicker maps a coin name (or id, or symbol) to its upper-case
	// ticker, or common.ErrUnresolvedTicker.
	ResolveTicker(ctx context.Context, coinName string) (string, error)
	FXRate(ctx context.Context, base, quote string) (decimal.Decimal, error)
}

type Options struct {
	QuoteBaseURL   string
	QuoteKeys      *KeyRing
	FXBaseURL      string
	FXKeys         *KeyRing
	VsCurrency     string
	RequestTimeout time.Duration
	// CacheDir enables the daily disk cache for search responses.
	CacheDir  string
	Transport http.RoundTripper
	Logger    logging.Logger
}

// Client implements Gateway over HTTP.
type Client struct {
	quoteBase string
	fxBase    string
	quoteKeys *KeyRing
	fxKeys    *KeyRing
	vs        string
	timeout   time.Duration
	http      *http.Client
	cached    *http.Client
	log       logging.Logger
}

var _ Gateway = (*Client)(nil)

func New(opts Options) *Client {
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	cached := &http.Client{Transport: transport}
	if opts.CacheDir != "" {
		cached.Transport = newDiskCache(transport, opts.CacheDir)
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	vs := strings.ToLower(opts.VsCurrency)
	if vs == "" {
		vs = "usd"
	}

	return &Client{
		quoteBase: strings.TrimRight(opts.QuoteBaseURL, "/"),
		fxBase:    strings.TrimRight(opts.FXBaseURL, "/"),
		quoteKeys: opts.QuoteKeys,
		fxKeys:    opts.FXKeys,
		vs:        vs,
		timeout:   opts.RequestTimeout,
		http:      &http.Client{Transport: transport},
		cached:    cached,
		log:       log.With("component", "market"),
	}
}

// withKeys calls fn once per key until it succeeds, each call bounded by the
// request timeout. The returned error joins every attempt's failure.
func (c *Client) withKeys(ctx context.Context, ring *KeyRing, op string, fn func(ctx context.Context, key string) error) error {
	var errs []error
	for i, key := range ring.attempts() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		err := c.attempt(ctx, key, fn)
		if err == nil {
			return nil
		}
		c.log.Warn(ctx, "provider attempt failed", "op", op, "key_index", i, "error", err)
		errs = append(errs, fmt.Errorf("key %d: %w", i, err))
	}
	return errors.Join(errs...)
}

func (c *Client) attempt(ctx context.Context, key string, fn func(ctx context.Context, key string) error) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return fn(ctx, key)
}

// getJSON performs a GET and decodes a 2xx JSON body into out.
func getJSON(ctx context.Context, client *http.Client, endpoint string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	// Errors name the host only: FX keys travel in the path.
	resp, err := client.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return fmt.Errorf("GET %s: %w", req.URL.Host, uerr.Err)
		}
		return err
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("GET %s: %s", req.URL.Host, resp.Status)
	}
	return json.Unmarshal(buf.Bytes(), out)
}
