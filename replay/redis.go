package replay

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aecgames/spielbridge/types"
)

// RedisSink pushes traces onto a capped Redis list, a lightweight
// replay buffer external learners can pop from.
type RedisSink struct {
	client  *redis.Client
	key     string
	maxLen  int64
	timeout time.Duration
}

var _ Sink = &RedisSink{}

// NewRedisSink connects to addr and verifies the connection. maxLen
// bounds the list length, 0 keeps everything.
func NewRedisSink(addr, key string, maxLen int64) (*RedisSink, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("replay: connecting to redis at %s: %w", addr, err)
	}
	return &RedisSink{
		client:  client,
		key:     key,
		maxLen:  maxLen,
		timeout: 5 * time.Second,
	}, nil
}

func (r *RedisSink) Append(trace *types.Trace) error {
	bs, err := json.Marshal(trace)
	if err != nil {
		return fmt.Errorf("replay: marshaling trace %d: %w", trace.Episode, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	pipe := r.client.Pipeline()
	pipe.RPush(ctx, r.key, bs)
	if r.maxLen > 0 {
		pipe.LTrim(ctx, r.key, -r.maxLen, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("replay: pushing trace %d: %w", trace.Episode, err)
	}
	return nil
}

func (r *RedisSink) Close() error {
	return r.client.Close()
}
