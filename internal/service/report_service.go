package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/Freeeeeet/tutor_crm/internal/repository"
	"go.uber.org/zap"
)

type ReportService struct {
	reportRepo *repository.ReportRepository
	logger     *zap.Logger
}

func NewReportService(reportRepo *repository.ReportRepository, logger *zap.Logger) *ReportService {
	return &ReportService{reportRepo: reportRepo, logger: logger}
}

// MonthlyLessonStats статистика занятий по статусам за календарный месяц
func (s *ReportService) MonthlyLessonStats(ctx context.Context, year int, month int) ([]model.MonthlyLessonStat, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d out of range", ErrInvalidInterval, month)
	}
	return s.reportRepo.MonthlyLessonStats(ctx, year, time.Month(month))
}

// TeacherWorkload нагрузка и выручка учителей за период
func (s *ReportService) TeacherWorkload(ctx context.Context, from, to time.Time) ([]model.TeacherWorkload, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInterval)
	}
	return s.reportRepo.TeacherWorkload(ctx, from, to)
}

// CoursePopularity активные записи по курсам
func (s *ReportService) CoursePopularity(ctx context.Context) ([]model.CoursePopularity, error) {
	return s.reportRepo.CoursePopularity(ctx)
}
