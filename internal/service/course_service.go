package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/Freeeeeet/tutor_crm/internal/repository"
	"go.uber.org/zap"
)

type CourseService struct {
	courseRepo *repository.CourseRepository
	logger     *zap.Logger
}

func NewCourseService(courseRepo *repository.CourseRepository, logger *zap.Logger) *CourseService {
	return &CourseService{courseRepo: courseRepo, logger: logger}
}

// CreateCourse создаёт курс
func (s *CourseService) CreateCourse(ctx context.Context, course *model.Course) error {
	if course.Status == "" {
		course.Status = model.CourseStatusActive
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return err
	}

	s.logger.Info("Course created", zap.Int64("course_id", course.ID), zap.String("name", course.Name))
	return nil
}

// GetCourseByID получает курс по ID
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*model.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, fmt.Errorf("course %d: %w", id, ErrNotFound)
	}
	return course, nil
}

// GetAllCourses получает все курсы
func (s *CourseService) GetAllCourses(ctx context.Context) ([]*model.Course, error) {
	return s.courseRepo.GetAll(ctx)
}

// UpdateCourse обновляет курс
func (s *CourseService) UpdateCourse(ctx context.Context, course *model.Course) error {
	updated, err := s.courseRepo.Update(ctx, course)
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("course %d: %w", course.ID, ErrNotFound)
	}

	s.logger.Info("Course updated", zap.Int64("course_id", course.ID))
	return nil
}

// DeleteCourse удаляет курс
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	deleted, err := s.courseRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("course %d: %w", id, ErrNotFound)
	}

	s.logger.Info("Course deleted", zap.Int64("course_id", id))
	return nil
}
