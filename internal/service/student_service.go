package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/Freeeeeet/tutor_crm/internal/repository"
	"go.uber.org/zap"
)

type StudentService struct {
	studentRepo *repository.StudentRepository
	logger      *zap.Logger
}

func NewStudentService(studentRepo *repository.StudentRepository, logger *zap.Logger) *StudentService {
	return &StudentService{studentRepo: studentRepo, logger: logger}
}

// CreateStudent создаёт студента
func (s *StudentService) CreateStudent(ctx context.Context, student *model.Student) error {
	if student.Status == "" {
		student.Status = model.StudentStatusActive
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return err
	}

	s.logger.Info("Student created", zap.Int64("student_id", student.ID), zap.String("name", student.Name))
	return nil
}

// GetStudentByID получает студента по ID
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*model.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, fmt.Errorf("student %d: %w", id, ErrNotFound)
	}
	return student, nil
}

// GetAllStudents получает всех студентов
func (s *StudentService) GetAllStudents(ctx context.Context) ([]*model.Student, error) {
	return s.studentRepo.GetAll(ctx)
}

// UpdateStudent обновляет студента
func (s *StudentService) UpdateStudent(ctx context.Context, student *model.Student) error {
	updated, err := s.studentRepo.Update(ctx, student)
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("student %d: %w", student.ID, ErrNotFound)
	}

	s.logger.Info("Student updated", zap.Int64("student_id", student.ID))
	return nil
}

// DeleteStudent удаляет студента вместе с его доступностью
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	deleted, err := s.studentRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("student %d: %w", id, ErrNotFound)
	}

	s.logger.Info("Student deleted", zap.Int64("student_id", id))
	return nil
}
