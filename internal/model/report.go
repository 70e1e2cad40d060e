package model

import "github.com/shopspring/decimal"

// MonthlyLessonStat количество занятий по статусам за месяц
type MonthlyLessonStat struct {
	Status LessonStatus `json:"status"`
	Count  int64        `json:"count"`
}

// TeacherWorkload нагрузка учителя за период
type TeacherWorkload struct {
	TeacherID   int64           `json:"teacher_id"`
	TeacherName string          `json:"teacher_name"`
	LessonCount int64           `json:"lesson_count"`
	TotalHours  float64         `json:"total_hours"`
	Revenue     decimal.Decimal `json:"revenue"` // по ставкам enrollment за завершённые занятия
}

// CoursePopularity популярность курса по активным записям
type CoursePopularity struct {
	CourseID          int64  `json:"course_id"`
	CourseName        string `json:"course_name"`
	ActiveEnrollments int64  `json:"active_enrollments"`
}
