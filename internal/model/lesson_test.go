package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLessonStatusIsValid(t *testing.T) {
	for _, status := range AllLessonStatuses {
		assert.True(t, status.IsValid(), string(status))
	}
	assert.False(t, LessonStatus("DONE").IsValid())
	assert.False(t, LessonStatus("").IsValid())
}

func TestLessonIsActive(t *testing.T) {
	// Любой вариант отмены освобождает время
	for _, status := range CancelledLessonStatuses {
		lesson := Lesson{Status: status}
		assert.False(t, lesson.IsActive(), string(status))
	}

	for _, status := range []LessonStatus{
		LessonStatusScheduled,
		LessonStatusInProgress,
		LessonStatusCompleted,
		LessonStatusNoShow,
		LessonStatusPendingPayment,
	} {
		lesson := Lesson{Status: status}
		assert.True(t, lesson.IsActive(), string(status))
	}
}

func TestAllowedNextStatuses(t *testing.T) {
	assert.Contains(t, AllowedNextStatuses(LessonStatusScheduled), LessonStatusCompleted)
	assert.Contains(t, AllowedNextStatuses(LessonStatusInProgress), LessonStatusNoShow)
	assert.Contains(t, AllowedNextStatuses(LessonStatusCompleted), LessonStatusPendingPayment)
	assert.Empty(t, AllowedNextStatuses(LessonStatusCancelled))
}
