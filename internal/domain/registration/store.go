// internal/domain/registration/store.go
package registration

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultGuardTTL bounds how long a crashed submission keeps its CNPJ locked.
const DefaultGuardTTL = 30 * time.Second

// SubmissionGuard serialises submissions that share a key. Acquire returns a
// token identifying the holder; Release only frees the key while that token
// still owns it.
type SubmissionGuard interface {
	Acquire(ctx context.Context, key string) (token string, acquired bool, err error)
	Release(ctx context.Context, key, token string) error
}

// releaseScript deletes KEYS[1] only when it still holds ARGV[1].
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type RedisSubmissionGuard struct {
	redis    *redis.Client
	ttl      time.Duration
	newToken func() string
}

func NewSubmissionGuard(client *redis.Client, ttl time.Duration) *RedisSubmissionGuard {
	if ttl <= 0 {
		ttl = DefaultGuardTTL
	}
	return &RedisSubmissionGuard{
		redis:    client,
		ttl:      ttl,
		newToken: uuid.NewString,
	}
}

func guardKey(key string) string {
	return "registration:submit:" + key
}

// Acquire reports false when another holder owns key.
func (g *RedisSubmissionGuard) Acquire(ctx context.Context, key string) (string, bool, error) {
	token := g.newToken()
	acquired, err := g.redis.SetNX(ctx, guardKey(key), token, g.ttl).Result()
	if err != nil || !acquired {
		return "", false, err
	}
	return token, true, nil
}

// Release is a no-op when the lock expired and was taken by someone else.
func (g *RedisSubmissionGuard) Release(ctx context.Context, key, token string) error {
	return releaseScript.Run(ctx, g.redis, []string{guardKey(key)}, token).Err()
}
