package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type CourseStatus string

const (
	CourseStatusActive   CourseStatus = "active"
	CourseStatusArchived CourseStatus = "archived"
)

type Course struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Level       string          `json:"level"`
	Duration    int             `json:"duration"` // стандартная длительность занятия в минутах
	Price       decimal.Decimal `json:"price"`
	Status      CourseStatus    `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
