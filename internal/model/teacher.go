package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TeacherStatus string

const (
	TeacherStatusActive   TeacherStatus = "active"
	TeacherStatusInactive TeacherStatus = "inactive"
)

type Teacher struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Gender     string          `json:"gender"`
	Age        int             `json:"age"`
	Subject    string          `json:"subject"` // основная специализация
	Education  string          `json:"education"`
	Experience int             `json:"experience"` // стаж в годах
	Phone      string          `json:"phone"`
	Email      string          `json:"email"`
	HourlyRate decimal.Decimal `json:"hourly_rate"` // базовая ставка за час
	Status     TeacherStatus   `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
