package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Enrollment связывает студента с учителем и курсом.
// HourlyRate - согласованная ставка именно для этой записи,
// может отличаться от базовой ставки учителя.
type Enrollment struct {
	ID         int64           `json:"id"`
	StudentID  int64           `json:"student_id"`
	TeacherID  int64           `json:"teacher_id"`
	CourseID   int64           `json:"course_id"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	IsActive   bool            `json:"is_active"`
	EnrolledAt time.Time       `json:"enrolled_at"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Дополнительные поля для удобства (не из БД)
	Student *Student `json:"student,omitempty"`
	Teacher *Teacher `json:"teacher,omitempty"`
	Course  *Course  `json:"course,omitempty"`
}
