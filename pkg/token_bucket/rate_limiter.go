package token_bucket

import (
	"sync"
	"time"
)

// TokenBucket одиночное ведро: capacity токенов, refillRate токенов в секунду.
type TokenBucket struct {
	capacity   int
	tokens     float64
	refillRate float64
	lastRefill time.Time
	mu         sync.Mutex
}

func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		tokens:     float64(capacity),
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

func (t *TokenBucket) Allow() bool {
	return t.allowAt(time.Now())
}

func (t *TokenBucket) allowAt(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill(now)

	if t.tokens >= 1 {
		t.tokens--
		return true
	}
	return false
}

func (t *TokenBucket) refill(now time.Time) {
	elapsed := now.Sub(t.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}

	t.tokens += elapsed * t.refillRate
	if t.tokens > float64(t.capacity) {
		t.tokens = float64(t.capacity)
	}
	t.lastRefill = now
}

func (t *TokenBucket) lastSeen() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastRefill
}

// KeyedLimiter держит отдельное ведро на каждый ключ (пользователь, адрес).
// Ведра, к которым не обращались дольше idleTTL, удаляются при очередном Allow.
type KeyedLimiter struct {
	capacity   int
	refillRate float64
	idleTTL    time.Duration

	mu        sync.Mutex
	buckets   map[string]*TokenBucket
	lastSweep time.Time
}

func NewKeyedLimiter(capacity int, refillRate float64, idleTTL time.Duration) *KeyedLimiter {
	return &KeyedLimiter{
		capacity:   capacity,
		refillRate: refillRate,
		idleTTL:    idleTTL,
		buckets:    make(map[string]*TokenBucket),
		lastSweep:  time.Now(),
	}
}

func (k *KeyedLimiter) Allow(key string) bool {
	now := time.Now()
	return k.bucket(key, now).allowAt(now)
}

// Len количество живых ведер.
func (k *KeyedLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}

func (k *KeyedLimiter) bucket(key string, now time.Time) *TokenBucket {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.idleTTL > 0 && now.Sub(k.lastSweep) >= k.idleTTL {
		for bucketKey, b := range k.buckets {
			if now.Sub(b.lastSeen()) >= k.idleTTL {
				delete(k.buckets, bucketKey)
			}
		}
		k.lastSweep = now
	}

	b, ok := k.buckets[key]
	if !ok {
		b = NewTokenBucket(k.capacity, k.refillRate)
		b.lastRefill = now
		k.buckets[key] = b
	}
	return b
}
