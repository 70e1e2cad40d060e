package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/tutor_crm/internal/model"
)

func lesson(id, studentID, teacherID int64, start, end time.Time, status model.LessonStatus) *model.Lesson {
	return &model.Lesson{
		ID:        id,
		StudentID: studentID,
		TeacherID: teacherID,
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
}

func TestConflictingLessons(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time {
		return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
	}

	existing := []*model.Lesson{
		lesson(1, 10, 20, at(10, 0), at(11, 0), model.LessonStatusScheduled),
	}

	t.Run("пересечение у учителя даёт конфликт", func(t *testing.T) {
		got := ConflictingLessons(existing, 99, 20, at(10, 30), at(11, 30), nil)
		assert.Len(t, got, 1)
	})

	t.Run("пересечение у студента даёт конфликт", func(t *testing.T) {
		got := ConflictingLessons(existing, 10, 99, at(10, 30), at(11, 30), nil)
		assert.Len(t, got, 1)
	})

	t.Run("чужие стороны не конфликтуют", func(t *testing.T) {
		got := ConflictingLessons(existing, 98, 99, at(10, 30), at(11, 30), nil)
		assert.Empty(t, got)
	})

	t.Run("касание границы не конфликт", func(t *testing.T) {
		got := ConflictingLessons(existing, 10, 20, at(11, 0), at(12, 0), nil)
		assert.Empty(t, got)
	})

	t.Run("отменённое занятие освобождает время", func(t *testing.T) {
		cancelled := []*model.Lesson{
			lesson(2, 10, 20, at(10, 0), at(11, 0), model.LessonStatusCancelledByStudent),
		}
		got := ConflictingLessons(cancelled, 10, 20, at(10, 0), at(11, 0), nil)
		assert.Empty(t, got)
	})

	t.Run("завершённое занятие всё ещё блокирует время", func(t *testing.T) {
		completed := []*model.Lesson{
			lesson(3, 10, 20, at(10, 0), at(11, 0), model.LessonStatusCompleted),
		}
		got := ConflictingLessons(completed, 10, 20, at(10, 30), at(11, 30), nil)
		assert.Len(t, got, 1)
	})

	t.Run("исключение собственного ID не конфликтует с самим собой", func(t *testing.T) {
		self := int64(1)
		got := ConflictingLessons(existing, 10, 20, at(10, 0), at(11, 0), &self)
		assert.Empty(t, got)
	})

	t.Run("исключение не скрывает другие занятия", func(t *testing.T) {
		two := []*model.Lesson{
			lesson(1, 10, 20, at(10, 0), at(11, 0), model.LessonStatusScheduled),
			lesson(2, 10, 20, at(11, 0), at(12, 0), model.LessonStatusScheduled),
		}
		self := int64(1)
		got := ConflictingLessons(two, 10, 20, at(10, 30), at(11, 30), &self)
		assert.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].ID)
	})
}
