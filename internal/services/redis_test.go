package services

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jwebster45206/glass-forest/pkg/effect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisTranscript, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	rt, err := NewRedisTranscript(context.Background(), "redis://"+mr.Addr(), logger)
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create transcript: %v", err)
	}

	return rt, mr
}

func TestRedisTranscript_RecordAndEntries(t *testing.T) {
	rt, mr := setupTestRedis(t)
	defer mr.Close()
	defer rt.Close()

	ctx := context.Background()
	gameID := uuid.New()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	turns := []TranscriptEntry{
		{GameID: gameID, Turn: 1, Input: "enter", Location: "meadow", At: at},
		{
			GameID: gameID, Turn: 2, Input: "drink green", Location: "glass_forest",
			Message: "You drink the green liquid.",
			Traits:  map[effect.Trait]int{effect.Aggression: 1}, At: at,
		},
	}
	for _, e := range turns {
		require.NoError(t, rt.Record(ctx, e))
	}

	got, err := rt.Entries(ctx, gameID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "enter", got[0].Input)
	assert.Equal(t, 1, got[1].Traits[effect.Aggression])
	assert.True(t, got[1].At.Equal(at))

	ttl := mr.TTL(transcriptKey(gameID))
	assert.Equal(t, DefaultTranscriptTTL, ttl)
}

func TestRedisTranscript_SeparateGames(t *testing.T) {
	rt, mr := setupTestRedis(t)
	defer mr.Close()
	defer rt.Close()

	ctx := context.Background()
	a, b := uuid.New(), uuid.New()
	require.NoError(t, rt.Record(ctx, TranscriptEntry{GameID: a, Turn: 1, Input: "yes"}))

	got, err := rt.Entries(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = rt.Entries(ctx, a)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRedisTranscript_CorruptEntry(t *testing.T) {
	rt, mr := setupTestRedis(t)
	defer mr.Close()
	defer rt.Close()

	gameID := uuid.New()
	_, err := mr.Push(transcriptKey(gameID), "not json")
	require.NoError(t, err)

	_, err = rt.Entries(context.Background(), gameID)
	assert.ErrorContains(t, err, "failed to parse transcript entry 0")
}

func TestRedisTranscript_ServerDown(t *testing.T) {
	rt, mr := setupTestRedis(t)
	defer rt.Close()

	mr.Close()
	err := rt.Record(context.Background(), TranscriptEntry{GameID: uuid.New()})
	assert.Error(t, err)
}

func TestNewRedisTranscript_Errors(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	_, err := NewRedisTranscript(context.Background(), "not a url", logger)
	assert.ErrorContains(t, err, "parse redis URL")

	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err = NewRedisTranscript(ctx, "redis://"+addr, logger)
	assert.ErrorContains(t, err, "redis ping failed")
}

func TestNoopTranscript(t *testing.T) {
	var tr Transcript = NoopTranscript{}
	assert.NoError(t, tr.Record(context.Background(), TranscriptEntry{}))
	got, err := tr.Entries(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, tr.Close())
}
