// Package boardcast hands committed board snapshots to renderers over Redis:
// a latest key, a bounded recent list and a pub/sub channel per session.
package boardcast

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/park285/voicechess/internal/obslog"
	"github.com/park285/voicechess/internal/session"
)

const (
	defaultTTL   = time.Hour
	defaultLimit = 64
)

type Publisher struct {
	rdb   *redis.Client
	ttl   time.Duration
	limit int64
}

// Dial connects to REDIS_URL (redis:// or rediss://) and pings it.
func Dial(ctx context.Context, redisURL string) (*redis.Client, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("REDIS_URL required for snapshot publisher")
	}
	opts, err := redis.ParseURL(strings.TrimSpace(redisURL))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// NewPublisher keeps at most limit snapshots per session, each key living ttl.
func NewPublisher(rdb *redis.Client, ttl time.Duration, limit int) *Publisher {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Publisher{rdb: rdb, ttl: ttl, limit: int64(limit)}
}

func (p *Publisher) Close() error {
	if p == nil || p.rdb == nil {
		return nil
	}
	return p.rdb.Close()
}

func keyLatest(id string) string  { return "vc:snap:" + strings.TrimSpace(id) + ":latest" }
func keyRecent(id string) string  { return "vc:snap:" + strings.TrimSpace(id) + ":recent" }
func channelFor(id string) string { return "vc:snap:" + strings.TrimSpace(id) }

// Render publishes snap; it satisfies session.Renderer.
func (p *Publisher) Render(ctx context.Context, snap session.Snapshot) error {
	if p == nil || p.rdb == nil {
		return fmt.Errorf("snapshot publisher not initialized")
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	pipe := p.rdb.TxPipeline()
	pipe.Set(ctx, keyLatest(snap.SessionID), raw, p.ttl)
	pipe.LPush(ctx, keyRecent(snap.SessionID), raw)
	pipe.LTrim(ctx, keyRecent(snap.SessionID), 0, p.limit-1)
	pipe.Expire(ctx, keyRecent(snap.SessionID), p.ttl)
	pipe.Publish(ctx, channelFor(snap.SessionID), raw)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}
	obslog.L().Debug("snapshot_published", zap.String("session_id", snap.SessionID), zap.Int64("seq", snap.Seq))
	return nil
}

// Latest returns the newest snapshot for a session, or nil when none is stored.
func (p *Publisher) Latest(ctx context.Context, sessionID string) (*session.Snapshot, error) {
	raw, err := p.rdb.Get(ctx, keyLatest(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap session.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Recent returns up to n snapshots, newest first.
func (p *Publisher) Recent(ctx context.Context, sessionID string, n int) ([]session.Snapshot, error) {
	if n <= 0 {
		return nil, nil
	}
	items, err := p.rdb.LRange(ctx, keyRecent(sessionID), 0, int64(n)-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]session.Snapshot, 0, len(items))
	for _, it := range items {
		var snap session.Snapshot
		if err := json.Unmarshal([]byte(it), &snap); err != nil {
			obslog.L().Warn("snapshot_decode_error", zap.String("session_id", sessionID), zap.Error(err))
			continue
		}
		out = append(out, snap)
	}
	return out, nil
}

// Subscribe streams snapshots published for sessionID until ctx is done.
// The returned channel is closed when the subscription ends.
func (p *Publisher) Subscribe(ctx context.Context, sessionID string) (<-chan session.Snapshot, error) {
	sub := p.rdb.Subscribe(ctx, channelFor(sessionID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	out := make(chan session.Snapshot, 8)
	go func() {
		defer close(out)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-msgs:
				if !ok {
					return
				}
				var snap session.Snapshot
				if err := json.Unmarshal([]byte(m.Payload), &snap); err != nil {
					continue
				}
				select {
				case out <- snap:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
