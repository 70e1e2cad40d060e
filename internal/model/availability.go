package model

import (
	"fmt"
	"time"
)

type OwnerKind string

const (
	OwnerKindStudent OwnerKind = "student"
	OwnerKindTeacher OwnerKind = "teacher"
)

// AvailabilitySlot еженедельный интервал доступности владельца.
// Интервал полуоткрытый: [StartMinute, EndMinute).
type AvailabilitySlot struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	OwnerKind   OwnerKind `json:"owner_kind"`
	Weekday     int       `json:"weekday"`      // 0 = Sunday, 6 = Saturday
	StartMinute int       `json:"start_minute"` // минуты от полуночи, 0-1439
	EndMinute   int       `json:"end_minute"`   // минуты от полуночи, 1-1440
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommonWindow общее окно доступности пары студент-учитель.
// Вычисляется на лету и никогда не сохраняется.
type CommonWindow struct {
	Weekday     int `json:"weekday"` // 0 = Sunday, 6 = Saturday
	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`
}

// MinuteOfDay переводит время в минуты от полуночи
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// FormatMinute форматирует минуты от полуночи как "15:04"
func FormatMinute(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
