package services

import (
	"context"

	"github.com/google/uuid"
)

// MockTranscript is a mock implementation of Transcript for testing
type MockTranscript struct {
	RecordFunc func(ctx context.Context, entry TranscriptEntry) error
	CloseFunc  func() error

	// Track calls for testing
	RecordCalls []TranscriptEntry
	CloseCalls  int
}

var _ Transcript = (*MockTranscript)(nil)

// NewMockTranscript creates a new mock transcript
func NewMockTranscript() *MockTranscript {
	return &MockTranscript{
		RecordCalls: make([]TranscriptEntry, 0),
	}
}

// Record mocks transcript record
func (m *MockTranscript) Record(ctx context.Context, entry TranscriptEntry) error {
	m.RecordCalls = append(m.RecordCalls, entry)

	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, entry)
	}
	return nil
}

// Entries returns the recorded entries for the game
func (m *MockTranscript) Entries(_ context.Context, gameID uuid.UUID) ([]TranscriptEntry, error) {
	var out []TranscriptEntry
	for _, e := range m.RecordCalls {
		if e.GameID == gameID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Close mocks transcript close
func (m *MockTranscript) Close() error {
	m.CloseCalls++

	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
