package model

import "time"

type StudentStatus string

const (
	StudentStatusActive   StudentStatus = "active"
	StudentStatusInactive StudentStatus = "inactive"
)

type Student struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	Gender         string        `json:"gender"`
	Age            int           `json:"age"`
	Grade          string        `json:"grade"` // класс/уровень обучения
	Phone          string        `json:"phone"`
	Parent         string        `json:"parent"`
	ParentPhone    string        `json:"parent_phone"`
	EnrollmentDate time.Time     `json:"enrollment_date"`
	Status         StudentStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
