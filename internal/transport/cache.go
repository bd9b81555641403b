package transport

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cached serves repeated requests for the same URL from memory.
// Only 2xx responses are stored.
type Cached struct {
	inner Transport
	cache *cache.Cache
}

var _ Transport = (*Cached)(nil)

// NewCached wraps inner with a response cache. A ttl of zero or less disables
// caching and returns inner unchanged.
func NewCached(inner Transport, ttl time.Duration) Transport {
	if ttl <= 0 {
		return inner
	}
	return &Cached{
		inner: inner,
		cache: cache.New(ttl, 2*ttl),
	}
}

// Get returns a cached response for url or fetches it through the inner transport
func (c *Cached) Get(ctx context.Context, url string) (*Response, error) {
	if x, found := c.cache.Get(url); found {
		resp := x.(*Response)
		return &Response{StatusCode: resp.StatusCode, Body: resp.Body}, nil
	}

	resp, err := c.inner.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	if resp.OK() {
		c.cache.Set(url, resp, cache.DefaultExpiration)
	}
	return resp, nil
}

// Flush drops every cached response
func (c *Cached) Flush() {
	c.cache.Flush()
}
