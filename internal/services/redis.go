package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultTranscriptTTL is how long a transcript survives after its last turn.
const DefaultTranscriptTTL = 24 * time.Hour

// RedisTranscript implements the Transcript interface with one Redis list per game
type RedisTranscript struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// Ensure RedisTranscript implements Transcript interface
var _ Transcript = (*RedisTranscript)(nil)

// NewRedisTranscript connects to Redis and verifies the connection
func NewRedisTranscript(ctx context.Context, redisURL string, logger *slog.Logger) (*RedisTranscript, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rt := &RedisTranscript{
		client: redis.NewClient(opt),
		logger: logger,
		ttl:    DefaultTranscriptTTL,
	}
	if err := rt.Ping(ctx); err != nil {
		_ = rt.client.Close()
		return nil, err
	}

	logger.Info("Connected to Redis for transcripts", "addr", opt.Addr)
	return rt, nil
}

func transcriptKey(gameID uuid.UUID) string {
	return fmt.Sprintf("transcript:%s", gameID.String())
}

func (r *RedisTranscript) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Record appends the entry to the game's list and refreshes its expiry
func (r *RedisTranscript) Record(ctx context.Context, entry TranscriptEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal transcript entry: %w", err)
	}

	key := transcriptKey(entry.GameID)
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Redis RPUSH failed", "key", key, "error", err)
		return fmt.Errorf("failed to record transcript entry: %w", err)
	}

	r.logger.Debug("Transcript entry recorded", "key", key, "turn", entry.Turn)
	return nil
}

// Entries returns every recorded turn for the game
func (r *RedisTranscript) Entries(ctx context.Context, gameID uuid.UUID) ([]TranscriptEntry, error) {
	key := transcriptKey(gameID)
	raw, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}

	entries := make([]TranscriptEntry, 0, len(raw))
	for i, item := range raw {
		var e TranscriptEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("failed to parse transcript entry %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *RedisTranscript) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}

	r.logger.Info("Redis connection closed")
	return nil
}
