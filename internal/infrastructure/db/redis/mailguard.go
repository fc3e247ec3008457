package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// MailGuard provides at-most-once delivery checks for activation emails,
// keyed by registration token. A token only ever warrants one email, so a
// re-enqueued job (retry, duplicate submission) is skipped.
// Key format: actmail:<token>
type MailGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMailGuard creates a MailGuard. ttl should match the registration token
// expiry window; after that the key is useless anyway.
func NewMailGuard(client *redis.Client, ttl time.Duration) *MailGuard {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MailGuard{client: client, ttl: ttl}
}

// AlreadySent reports whether an email for this token has been delivered.
func (g *MailGuard) AlreadySent(ctx context.Context, token string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("mail guard check: %w", err)
	}
	return n > 0, nil
}

// Mark records that the email for this token went out.
func (g *MailGuard) Mark(ctx context.Context, token string) error {
	return g.client.Set(ctx, g.key(token), "1", g.ttl).Err()
}

func (g *MailGuard) key(token string) string {
	return "actmail:" + token
}
