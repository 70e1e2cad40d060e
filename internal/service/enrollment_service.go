package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/Freeeeeet/tutor_crm/internal/repository"
	"go.uber.org/zap"
)

type EnrollmentService struct {
	enrollmentRepo *repository.EnrollmentRepository
	studentRepo    *repository.StudentRepository
	teacherRepo    *repository.TeacherRepository
	courseRepo     *repository.CourseRepository
	logger         *zap.Logger
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	studentRepo *repository.StudentRepository,
	teacherRepo *repository.TeacherRepository,
	courseRepo *repository.CourseRepository,
	logger *zap.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		studentRepo:    studentRepo,
		teacherRepo:    teacherRepo,
		courseRepo:     courseRepo,
		logger:         logger,
	}
}

// CreateEnrollment создаёт запись на обучение после проверки всех трёх сторон
func (s *EnrollmentService) CreateEnrollment(ctx context.Context, enrollment *model.Enrollment) error {
	student, err := s.studentRepo.GetByID(ctx, enrollment.StudentID)
	if err != nil {
		return err
	}
	if student == nil {
		return fmt.Errorf("student %d: %w", enrollment.StudentID, ErrNotFound)
	}

	teacher, err := s.teacherRepo.GetByID(ctx, enrollment.TeacherID)
	if err != nil {
		return err
	}
	if teacher == nil {
		return fmt.Errorf("teacher %d: %w", enrollment.TeacherID, ErrNotFound)
	}

	course, err := s.courseRepo.GetByID(ctx, enrollment.CourseID)
	if err != nil {
		return err
	}
	if course == nil {
		return fmt.Errorf("course %d: %w", enrollment.CourseID, ErrNotFound)
	}

	// Ставка по умолчанию берётся у учителя
	if enrollment.HourlyRate.IsZero() {
		enrollment.HourlyRate = teacher.HourlyRate
	}
	enrollment.IsActive = true

	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return err
	}

	s.logger.Info("Enrollment created",
		zap.Int64("enrollment_id", enrollment.ID),
		zap.Int64("student_id", enrollment.StudentID),
		zap.Int64("teacher_id", enrollment.TeacherID),
		zap.Int64("course_id", enrollment.CourseID),
	)

	return nil
}

// GetEnrollmentByID получает запись вместе со студентом, учителем и курсом
func (s *EnrollmentService) GetEnrollmentByID(ctx context.Context, id int64) (*model.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.GetByIDWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, fmt.Errorf("enrollment %d: %w", id, ErrNotFound)
	}
	return enrollment, nil
}

// GetAllEnrollments получает все записи на обучение
func (s *EnrollmentService) GetAllEnrollments(ctx context.Context) ([]*model.Enrollment, error) {
	return s.enrollmentRepo.GetAll(ctx)
}

// GetEnrollmentsByStudent получает записи студента
func (s *EnrollmentService) GetEnrollmentsByStudent(ctx context.Context, studentID int64) ([]*model.Enrollment, error) {
	return s.enrollmentRepo.GetByStudentID(ctx, studentID)
}

// GetEnrollmentsByTeacher получает записи учителя
func (s *EnrollmentService) GetEnrollmentsByTeacher(ctx context.Context, teacherID int64) ([]*model.Enrollment, error) {
	return s.enrollmentRepo.GetByTeacherID(ctx, teacherID)
}

// SetEnrollmentActive включает или выключает запись. Занятия не трогаются.
func (s *EnrollmentService) SetEnrollmentActive(ctx context.Context, id int64, isActive bool) error {
	updated, err := s.enrollmentRepo.SetActive(ctx, id, isActive)
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("enrollment %d: %w", id, ErrNotFound)
	}

	s.logger.Info("Enrollment active flag updated",
		zap.Int64("enrollment_id", id),
		zap.Bool("is_active", isActive),
	)
	return nil
}

// DeleteEnrollment удаляет запись на обучение
func (s *EnrollmentService) DeleteEnrollment(ctx context.Context, id int64) error {
	deleted, err := s.enrollmentRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("enrollment %d: %w", id, ErrNotFound)
	}

	s.logger.Info("Enrollment deleted", zap.Int64("enrollment_id", id))
	return nil
}
