package market

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"
)

// diskCache is an http.RoundTripper that keeps successful GET responses on
// disk. The cache key includes the current day, so entries expire daily.
type diskCache struct {
	base http.RoundTripper
	dir  string
	now  func() time.Time
}

func newDiskCache(base http.RoundTripper, dir string) *diskCache {
	if base == nil {
		base = http.DefaultTransport
	}
	return &diskCache{base: base, dir: dir, now: time.Now}
}

func (c *diskCache) key(req *http.Request) string {
	day := c.now().UTC().Format(time.DateOnly)
	return fmt.Sprintf("%x", sha1.Sum([]byte(day+" "+req.Method+" "+req.URL.String())))
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return c.base.RoundTrip(req)
	}

	key := c.key(req)
	if resp, err := c.get(key, req); err == nil {
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// A failed write only costs a refetch.
	_ = c.put(key, resp)
	return resp, nil
}

func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0o600)
}
