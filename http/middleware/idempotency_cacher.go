package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	// idemResTTL bounds how long a response stays paired to its idempotency key.
	idemResTTL = 24 * time.Hour

	idemResRedisPrefix = "weblog:idempotency:"
)

var (
	_ IdempotencyCacher = NewIdemResMap()
	_ IdempotencyCacher = IdemResRedis{}
)

// An IdempotencyCacher can store responses paired to idempotency keys.
//
// Get reports false for keys it holds no IdemRes for,
// including when ctx is already done.
type IdempotencyCacher interface {
	Get(ctx context.Context, key string) (IdemRes, bool)
	Set(ctx context.Context, key string, idemRes IdemRes)
}

// An IdemResMap keeps IdemRes in memory.
//
// Restarting the weblog empties it, as does running more than one instance
// behind a load balancer; use IdemResRedis for those.
type IdemResMap struct {
	mu   sync.Mutex
	now  func() time.Time
	vals map[string]idemResEntry
}

type idemResEntry struct {
	res IdemRes
	at  time.Time
}

// NewIdemResMap constructs an empty *IdemResMap.
func NewIdemResMap() *IdemResMap {
	return &IdemResMap{now: time.Now, vals: make(map[string]idemResEntry)}
}

// Get retrieves a copy of the IdemRes paired to key, unless it expired.
func (m *IdemResMap) Get(ctx context.Context, key string) (IdemRes, bool) {
	if key == "" || ctx.Err() != nil {
		return IdemRes{}, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.vals[key]
	if !ok || m.now().Sub(e.at) > idemResTTL {
		return IdemRes{}, false
	}

	return e.res.clone(), true
}

// Set pairs a copy of idemRes to key, evicting every expired pair along the way.
func (m *IdemResMap) Set(ctx context.Context, key string, idemRes IdemRes) {
	if key == "" || ctx.Err() != nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, e := range m.vals {
		if now.Sub(e.at) > idemResTTL {
			delete(m.vals, k)
		}
	}

	m.vals[key] = idemResEntry{res: idemRes.clone(), at: now}
}

// Len returns the number of pairs held, expired or not.
func (m *IdemResMap) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.vals)
}

// An IdemResRedis keeps IdemRes in Redis, gob encoded,
// expiring each after a day.
type IdemResRedis struct {
	client *redis.Client
}

// NewRedisCache constructs an IdemResRedis with the options passed in.
func NewRedisCache(opts *redis.Options) IdemResRedis {
	return IdemResRedis{client: redis.NewClient(opts)}
}

// Get retrieves the IdemRes paired to key.
// Any failure reaching Redis or decoding its reply reads as a miss.
func (c IdemResRedis) Get(ctx context.Context, key string) (IdemRes, bool) {
	if key == "" || ctx.Err() != nil {
		return IdemRes{}, false
	}

	b, err := c.client.Get(ctx, idemResRedisPrefix+key).Bytes()
	if err != nil {
		return IdemRes{}, false
	}

	var ir IdemRes
	if err := ir.GobDecode(b); err != nil {
		return IdemRes{}, false
	}

	return ir, true
}

// Set pairs idemRes to key in Redis.
func (c IdemResRedis) Set(ctx context.Context, key string, idemRes IdemRes) {
	if key == "" || ctx.Err() != nil {
		return
	}

	b, err := idemRes.GobEncode()
	if err != nil {
		return
	}

	c.client.Set(ctx, idemResRedisPrefix+key, b, idemResTTL)
}
