package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/Freeeeeet/tutor_crm/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportRepository агрегатные запросы для отчётов
type ReportRepository struct {
	*base.Repository
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{Repository: base.NewRepository(pool)}
}

// MonthlyLessonStats считает занятия по статусам за календарный месяц
func (r *ReportRepository) MonthlyLessonStats(ctx context.Context, year int, month time.Month) ([]model.MonthlyLessonStat, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	query := `
		SELECT status, COUNT(*)
		FROM lessons
		WHERE start_time >= $1 AND start_time < $2
		GROUP BY status
		ORDER BY status
	`

	rows, err := r.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("monthly lesson stats: %w", err)
	}
	defer rows.Close()

	var stats []model.MonthlyLessonStat
	for rows.Next() {
		var s model.MonthlyLessonStat
		if err := rows.Scan(&s.Status, &s.Count); err != nil {
			return nil, fmt.Errorf("scan lesson stat: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, nil
}

// TeacherWorkload считает нагрузку и выручку учителей по завершённым занятиям
func (r *ReportRepository) TeacherWorkload(ctx context.Context, from, to time.Time) ([]model.TeacherWorkload, error) {
	query := `
		SELECT t.id,
		       t.name,
		       COUNT(l.id),
		       COALESCE(SUM(EXTRACT(EPOCH FROM (l.end_time - l.start_time)) / 3600), 0),
		       COALESCE(SUM(e.hourly_rate * EXTRACT(EPOCH FROM (l.end_time - l.start_time)) / 3600), 0)
		FROM teachers t
		JOIN lessons l ON l.teacher_id = t.id
		JOIN enrollments e ON e.id = l.enrollment_id
		WHERE l.status = 'COMPLETED' AND l.start_time >= $1 AND l.start_time < $2
		GROUP BY t.id, t.name
		ORDER BY COUNT(l.id) DESC
	`

	rows, err := r.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("teacher workload: %w", err)
	}
	defer rows.Close()

	var workloads []model.TeacherWorkload
	for rows.Next() {
		var w model.TeacherWorkload
		if err := rows.Scan(&w.TeacherID, &w.TeacherName, &w.LessonCount, &w.TotalHours, &w.Revenue); err != nil {
			return nil, fmt.Errorf("scan teacher workload: %w", err)
		}
		workloads = append(workloads, w)
	}

	return workloads, nil
}

// CoursePopularity считает активные записи по курсам
func (r *ReportRepository) CoursePopularity(ctx context.Context) ([]model.CoursePopularity, error) {
	query := `
		SELECT c.id, c.name, COUNT(e.id)
		FROM courses c
		LEFT JOIN enrollments e ON e.course_id = c.id AND e.is_active = TRUE
		GROUP BY c.id, c.name
		ORDER BY COUNT(e.id) DESC, c.name
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("course popularity: %w", err)
	}
	defer rows.Close()

	var courses []model.CoursePopularity
	for rows.Next() {
		var c model.CoursePopularity
		if err := rows.Scan(&c.CourseID, &c.CourseName, &c.ActiveEnrollments); err != nil {
			return nil, fmt.Errorf("scan course popularity: %w", err)
		}
		courses = append(courses, c)
	}

	return courses, nil
}
