package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupeKeyPrefix = "tradegate:alert:"

// Deduper suppresses byte-identical alert payloads within a TTL window so a
// retried webhook delivery does not fire a second notification.
type Deduper struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDeduper(client *redis.Client, ttl time.Duration) *Deduper {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Deduper{client: client, ttl: ttl}
}

// Seen marks the payload and reports whether it was already marked inside the
// TTL window. A nil client or a redis failure degrades to "not seen": losing
// dedupe is better than dropping alerts.
func (d *Deduper) Seen(ctx context.Context, payload any) bool {
	if d == nil || d.client == nil {
		return false
	}
	key, err := dedupeKey(payload)
	if err != nil {
		return false
	}
	created, err := d.client.SetNX(ctx, key, 1, d.ttl).Result()
	if err != nil {
		return false
	}
	return !created
}

// Forget clears the mark set by Seen so a retry of the same payload goes
// through. Called when the pipeline fails after the payload was marked.
func (d *Deduper) Forget(ctx context.Context, payload any) {
	if d == nil || d.client == nil {
		return
	}
	key, err := dedupeKey(payload)
	if err != nil {
		return
	}
	if err := d.client.Del(ctx, key).Err(); err != nil {
		log.Printf("dedupe forget failed: %v", err)
	}
}

func dedupeKey(payload any) (string, error) {
	// json.Marshal sorts map keys, so identical payloads hash identically.
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return dedupeKeyPrefix + hex.EncodeToString(sum[:]), nil
}
