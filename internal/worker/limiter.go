package worker

import (
	"net"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// Limiter implements per-client rate limiting.
// Buckets of clients idle for longer than the TTL are evicted.
type Limiter struct {
	buckets      *gocache.Cache
	overrides    map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a new rate limiter.
// The idle TTL is raised to the time an empty bucket needs to refill,
// so eviction never hands a client more tokens than waiting would.
func NewLimiter(requestsPerSecond float64, burst int, idleTTL time.Duration) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	if requestsPerSecond > 0 {
		refill := time.Duration(float64(burst) / requestsPerSecond * float64(time.Second))
		if idleTTL < refill {
			idleTTL = refill
		}
	}
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}

	return &Limiter{
		buckets:      gocache.New(idleTTL, idleTTL),
		overrides:    make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Allow checks if a request is allowed without waiting
func (l *Limiter) Allow(client string) bool {
	return l.getLimiter(ClientKey(client)).Allow()
}

// getLimiter returns the rate limiter for a client key and refreshes its idle TTL
func (l *Limiter) getLimiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, ok := l.overrides[key]; ok {
		return limiter
	}

	if v, found := l.buckets.Get(key); found {
		limiter := v.(*rate.Limiter)
		l.buckets.SetDefault(key, limiter)
		return limiter
	}

	limiter := rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.buckets.SetDefault(key, limiter)
	return limiter
}

// SetClientRate sets a custom rate limit for a specific client.
// Overrides are never evicted.
func (l *Limiter) SetClientRate(client string, requestsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}

	key := ClientKey(client)
	l.buckets.Delete(key)
	l.overrides[key] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

// Clients returns the number of clients currently tracked, overrides included
func (l *Limiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets.Items()) + len(l.overrides)
}

// ClientKey normalizes a remote address to its host so every
// connection from one client shares a limiter
func ClientKey(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
