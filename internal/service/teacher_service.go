package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/Freeeeeet/tutor_crm/internal/repository"
	"go.uber.org/zap"
)

type TeacherService struct {
	teacherRepo *repository.TeacherRepository
	logger      *zap.Logger
}

func NewTeacherService(teacherRepo *repository.TeacherRepository, logger *zap.Logger) *TeacherService {
	return &TeacherService{teacherRepo: teacherRepo, logger: logger}
}

// CreateTeacher создаёт учителя
func (s *TeacherService) CreateTeacher(ctx context.Context, teacher *model.Teacher) error {
	if teacher.Status == "" {
		teacher.Status = model.TeacherStatusActive
	}

	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		return err
	}

	s.logger.Info("Teacher created", zap.Int64("teacher_id", teacher.ID), zap.String("name", teacher.Name))
	return nil
}

// GetTeacherByID получает учителя по ID
func (s *TeacherService) GetTeacherByID(ctx context.Context, id int64) (*model.Teacher, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, fmt.Errorf("teacher %d: %w", id, ErrNotFound)
	}
	return teacher, nil
}

// GetAllTeachers получает всех учителей
func (s *TeacherService) GetAllTeachers(ctx context.Context) ([]*model.Teacher, error) {
	return s.teacherRepo.GetAll(ctx)
}

// UpdateTeacher обновляет учителя
func (s *TeacherService) UpdateTeacher(ctx context.Context, teacher *model.Teacher) error {
	updated, err := s.teacherRepo.Update(ctx, teacher)
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("teacher %d: %w", teacher.ID, ErrNotFound)
	}

	s.logger.Info("Teacher updated", zap.Int64("teacher_id", teacher.ID))
	return nil
}

// DeleteTeacher удаляет учителя вместе с его доступностью
func (s *TeacherService) DeleteTeacher(ctx context.Context, id int64) error {
	deleted, err := s.teacherRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("teacher %d: %w", id, ErrNotFound)
	}

	s.logger.Info("Teacher deleted", zap.Int64("teacher_id", id))
	return nil
}
