package model

import "time"

type LessonStatus string

const (
	LessonStatusScheduled          LessonStatus = "SCHEDULED"
	LessonStatusInProgress         LessonStatus = "IN_PROGRESS"
	LessonStatusCompleted          LessonStatus = "COMPLETED"
	LessonStatusCancelled          LessonStatus = "CANCELLED"
	LessonStatusCancelledByTeacher LessonStatus = "CANCELLED_BY_TEACHER"
	LessonStatusCancelledByStudent LessonStatus = "CANCELLED_BY_STUDENT"
	LessonStatusNoShow             LessonStatus = "NO_SHOW"
	LessonStatusPendingPayment     LessonStatus = "PENDING_PAYMENT"
)

// AllLessonStatuses все допустимые статусы занятия
var AllLessonStatuses = []LessonStatus{
	LessonStatusScheduled,
	LessonStatusInProgress,
	LessonStatusCompleted,
	LessonStatusCancelled,
	LessonStatusCancelledByTeacher,
	LessonStatusCancelledByStudent,
	LessonStatusNoShow,
	LessonStatusPendingPayment,
}

// CancelledLessonStatuses статусы отмены: такие занятия освобождают время
// и не участвуют в проверке пересечений
var CancelledLessonStatuses = []LessonStatus{
	LessonStatusCancelled,
	LessonStatusCancelledByTeacher,
	LessonStatusCancelledByStudent,
}

// IsValid проверяет что статус известен системе
func (s LessonStatus) IsValid() bool {
	for _, known := range AllLessonStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsCancelled проверяет является ли статус одним из вариантов отмены
func (s LessonStatus) IsCancelled() bool {
	for _, cancelled := range CancelledLessonStatuses {
		if s == cancelled {
			return true
		}
	}
	return false
}

// AllowedNextStatuses возвращает типичные следующие статусы для текущего.
// Таблица носит рекомендательный характер: запись любого статуса разрешена
// (административное переопределение), сервис лишь логирует отклонение.
func AllowedNextStatuses(current LessonStatus) []LessonStatus {
	switch current {
	case LessonStatusScheduled:
		return []LessonStatus{
			LessonStatusInProgress,
			LessonStatusCompleted,
			LessonStatusNoShow,
			LessonStatusCancelled,
			LessonStatusCancelledByTeacher,
			LessonStatusCancelledByStudent,
			LessonStatusPendingPayment,
		}
	case LessonStatusInProgress:
		return []LessonStatus{LessonStatusCompleted, LessonStatusNoShow}
	case LessonStatusCompleted:
		return []LessonStatus{LessonStatusPendingPayment}
	case LessonStatusPendingPayment:
		return []LessonStatus{LessonStatusCompleted}
	default:
		return nil
	}
}

type Lesson struct {
	ID           int64        `json:"id"`
	EnrollmentID int64        `json:"enrollment_id"`
	StartTime    time.Time    `json:"start_time"`
	EndTime      time.Time    `json:"end_time"`
	Status       LessonStatus `json:"status"`
	Location     string       `json:"location"`
	Notes        string       `json:"notes"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	// Денормализованные идентификаторы сторон, заполняются БД из enrollment
	StudentID int64 `json:"student_id"`
	TeacherID int64 `json:"teacher_id"`
}

// IsActive занятие считается активным, если оно не отменено.
// Активные занятия блокируют пересекающееся время.
func (l *Lesson) IsActive() bool {
	return !l.Status.IsCancelled()
}
