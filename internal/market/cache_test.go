package market

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskCache_ServesRepeatsFromDiskForTheDay(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, `{"coins":[]}`)
	}))
	defer srv.Close()

	cache := newDiskCache(http.DefaultTransport, t.TempDir())
	day := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return day }
	client := &http.Client{Transport: cache}

	get := func() string {
		resp, err := client.Get(srv.URL + "/search?query=btc")
		require.NoError(t, err)
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(b)
	}

	assert.Equal(t, `{"coins":[]}`, get())
	assert.Equal(t, `{"coins":[]}`, get())
	assert.Equal(t, int32(1), hits.Load())

	day = day.Add(24 * time.Hour)
	get()
	assert.Equal(t, int32(2), hits.Load(), "a new day misses the cache")
}

func TestDiskCache_DoesNotStoreErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := &http.Client{Transport: newDiskCache(nil, t.TempDir())}
	for i := 0; i < 2; i++ {
		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	}
	assert.Equal(t, int32(2), hits.Load())
}
