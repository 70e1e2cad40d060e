package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDateTimeUnmarshal(t *testing.T) {
	t.Run("формат без зоны", func(t *testing.T) {
		var parsed LocalDateTime
		require.NoError(t, json.Unmarshal([]byte(`"2025-03-11T15:30:00"`), &parsed))
		assert.Equal(t, time.Date(2025, 3, 11, 15, 30, 0, 0, time.Local), parsed.Time)
	})

	t.Run("RFC3339 тоже принимается", func(t *testing.T) {
		var parsed LocalDateTime
		require.NoError(t, json.Unmarshal([]byte(`"2025-03-11T15:30:00Z"`), &parsed))
		assert.Equal(t, time.Date(2025, 3, 11, 15, 30, 0, 0, time.UTC), parsed.Time)
	})

	t.Run("пустая строка даёт нулевое время", func(t *testing.T) {
		var parsed LocalDateTime
		require.NoError(t, json.Unmarshal([]byte(`""`), &parsed))
		assert.True(t, parsed.IsZero())
	})

	t.Run("мусор даёт ошибку", func(t *testing.T) {
		var parsed LocalDateTime
		assert.Error(t, json.Unmarshal([]byte(`"завтра после обеда"`), &parsed))
	})
}

func TestProposedLessonIsValidRange(t *testing.T) {
	start := LocalDateTime{Time: time.Date(2025, 3, 11, 15, 0, 0, 0, time.Local)}
	end := LocalDateTime{Time: time.Date(2025, 3, 11, 16, 0, 0, 0, time.Local)}

	assert.True(t, (&ProposedLesson{StartTime: start, EndTime: end}).IsValidRange())
	assert.False(t, (&ProposedLesson{StartTime: end, EndTime: start}).IsValidRange())
	assert.False(t, (&ProposedLesson{StartTime: start, EndTime: start}).IsValidRange())
	assert.False(t, (&ProposedLesson{EndTime: end}).IsValidRange())
}
