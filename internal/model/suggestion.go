package model

import (
	"encoding/json"
	"strings"
	"time"
)

// LocalDateTime время без часового пояса в формате "2006-01-02T15:04:05".
// Внешний генератор предложений возвращает именно такой формат,
// но парсинг терпимо относится и к RFC3339.
type LocalDateTime struct {
	time.Time
}

const localDateTimeLayout = "2006-01-02T15:04:05"

func (t *LocalDateTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	// Сначала пробуем формат без зоны, затем RFC3339
	parsed, err := time.ParseInLocation(localDateTimeLayout, raw, time.Local)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return err
		}
	}
	t.Time = parsed
	return nil
}

func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(t.Time.Format(localDateTimeLayout))
}

// ProposedLesson кандидат занятия, предложенный внешним генератором.
// Все поля недоверенные и проходят полную валидацию перед использованием.
type ProposedLesson struct {
	StudentID    int64         `json:"studentId"`
	TeacherID    int64         `json:"teacherId"`
	CourseID     int64         `json:"courseId"`
	EnrollmentID int64         `json:"enrollmentId"`
	StartTime    LocalDateTime `json:"startDateTime"`
	EndTime      LocalDateTime `json:"endDateTime"`
	Location     string        `json:"location"`
	Notes        string        `json:"notes"`
}

// IsValidRange проверяет базовую корректность интервала кандидата
func (p *ProposedLesson) IsValidRange() bool {
	return !p.StartTime.IsZero() && !p.EndTime.IsZero() && p.StartTime.Time.Before(p.EndTime.Time)
}
