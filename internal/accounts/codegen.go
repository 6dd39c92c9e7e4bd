package accounts

import (
	"context"
	"fmt"
	"time"

	redisclient "github.com/rahulmehta/fieldcrm-backend/pkg/redis"
)

// Account codes look like ACC2608 0042: prefix, two-digit year and month,
// then a four-digit sequence that resets daily.

const accountCodePrefix = "ACC"

type codeSequencer interface {
	NextSequence(ctx context.Context, day string) (int64, error)
}

// RedisSequencer allocates daily sequence numbers through an atomic Redis
// counter so concurrent creates never collide.
type RedisSequencer struct {
	client *redisclient.Client
}

func NewRedisSequencer(client *redisclient.Client) *RedisSequencer {
	return &RedisSequencer{client: client}
}

func (s *RedisSequencer) NextSequence(ctx context.Context, day string) (int64, error) {
	key := s.client.CounterKey("account_code:" + day)
	return s.client.IncrWithTTL(ctx, key, 48*time.Hour)
}

func formatAccountCode(now time.Time, sequence int64) string {
	return fmt.Sprintf("%s%02d%02d%04d", accountCodePrefix, now.Year()%100, int(now.Month()), sequence)
}
