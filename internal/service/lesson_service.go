package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/Freeeeeet/tutor_crm/internal/repository"
	"github.com/Freeeeeet/tutor_crm/internal/repository/base"
	"github.com/Freeeeeet/tutor_crm/internal/schedule"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// LessonService управляет занятиями и является последним рубежом проверки
// конфликтов перед записью: чтение существующих занятий, проверка пересечений
// и запись выполняются в одной транзакции.
type LessonService struct {
	pool           *pgxpool.Pool
	lessonRepo     *repository.LessonRepository
	enrollmentRepo *repository.EnrollmentRepository
	logger         *zap.Logger
}

func NewLessonService(
	pool *pgxpool.Pool,
	lessonRepo *repository.LessonRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	logger *zap.Logger,
) *LessonService {
	return &LessonService{
		pool:           pool,
		lessonRepo:     lessonRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

// validateLessonTimes проверяет интервал занятия до любой проверки конфликтов
func validateLessonTimes(start, end time.Time) error {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInterval)
	}
	return nil
}

// checkConflicts ищет пересечения с активными занятиями обеих сторон.
// Запрос уже точный, но результат дополнительно прогоняется через чистый
// фильтр: хранилище может вернуть более широкую выборку.
func (s *LessonService) checkConflicts(ctx context.Context, q base.Querier, studentID, teacherID int64, start, end time.Time, excludeID *int64) error {
	candidates, err := s.lessonRepo.FindOverlapping(ctx, q, studentID, teacherID, start, end, excludeID)
	if err != nil {
		return err
	}

	conflicts := schedule.ConflictingLessons(candidates, studentID, teacherID, start, end, excludeID)
	if len(conflicts) > 0 {
		ids := make([]int64, 0, len(conflicts))
		for _, c := range conflicts {
			ids = append(ids, c.ID)
		}
		s.logger.Warn("Lesson conflict detected",
			zap.Int64("student_id", studentID),
			zap.Int64("teacher_id", teacherID),
			zap.Time("start", start),
			zap.Time("end", end),
			zap.Int64s("conflicting_lesson_ids", ids),
		)
		return fmt.Errorf("%w: overlaps lessons %v", ErrLessonConflict, ids)
	}

	return nil
}

// HasConflict проверяет пересечение предложенного интервала с активными
// занятиями студента или учителя. Используется валидатором предложений.
func (s *LessonService) HasConflict(ctx context.Context, studentID, teacherID int64, start, end time.Time, excludeID *int64) (bool, error) {
	if err := validateLessonTimes(start, end); err != nil {
		return false, err
	}

	candidates, err := s.lessonRepo.FindOverlapping(ctx, s.pool, studentID, teacherID, start, end, excludeID)
	if err != nil {
		return false, err
	}

	return len(schedule.ConflictingLessons(candidates, studentID, teacherID, start, end, excludeID)) > 0, nil
}

// CreateLesson создаёт занятие после проверки интервала и конфликтов.
// Проверка и запись идут в одной транзакции, чтобы закрыть гонку
// check-then-act между конкурентными запросами.
func (s *LessonService) CreateLesson(ctx context.Context, lesson *model.Lesson) error {
	if err := validateLessonTimes(lesson.StartTime, lesson.EndTime); err != nil {
		return err
	}

	if lesson.Status == "" {
		lesson.Status = model.LessonStatusScheduled
	}
	if !lesson.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, lesson.Status)
	}

	enrollment, err := s.enrollmentRepo.GetByID(ctx, lesson.EnrollmentID)
	if err != nil {
		return err
	}
	if enrollment == nil {
		return fmt.Errorf("enrollment %d: %w", lesson.EnrollmentID, ErrNotFound)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = s.checkConflicts(ctx, tx, enrollment.StudentID, enrollment.TeacherID, lesson.StartTime, lesson.EndTime, nil)
	if err != nil {
		return err
	}

	if err := s.lessonRepo.Create(ctx, tx, lesson); err != nil {
		if base.IsNotFound(err) {
			return fmt.Errorf("enrollment %d: %w", lesson.EnrollmentID, ErrNotFound)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("Lesson created",
		zap.Int64("lesson_id", lesson.ID),
		zap.Int64("enrollment_id", lesson.EnrollmentID),
		zap.Time("start", lesson.StartTime),
		zap.Time("end", lesson.EndTime),
	)

	return nil
}

// UpdateLesson меняет время, место и заметки занятия.
// Собственное занятие исключается из проверки конфликтов.
func (s *LessonService) UpdateLesson(ctx context.Context, id int64, start, end time.Time, location, notes string) (*model.Lesson, error) {
	if err := validateLessonTimes(start, end); err != nil {
		return nil, err
	}

	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, fmt.Errorf("lesson %d: %w", id, ErrNotFound)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = s.checkConflicts(ctx, tx, lesson.StudentID, lesson.TeacherID, start, end, &id)
	if err != nil {
		return nil, err
	}

	lesson.StartTime = start
	lesson.EndTime = end
	lesson.Location = location
	lesson.Notes = notes

	updated, err := s.lessonRepo.Update(ctx, tx, lesson)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, fmt.Errorf("lesson %d: %w", id, ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("Lesson updated",
		zap.Int64("lesson_id", id),
		zap.Time("start", start),
		zap.Time("end", end),
	)

	return lesson, nil
}

// UpdateLessonStatus записывает новый статус занятия. Любой известный статус
// принимается (административное переопределение); отклонение от типичного
// перехода только логируется.
func (s *LessonService) UpdateLessonStatus(ctx context.Context, id int64, status model.LessonStatus) (*model.Lesson, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, fmt.Errorf("lesson %d: %w", id, ErrNotFound)
	}

	if !statusTransitionTypical(lesson.Status, status) {
		s.logger.Warn("Atypical lesson status transition",
			zap.Int64("lesson_id", id),
			zap.String("from", string(lesson.Status)),
			zap.String("to", string(status)),
		)
	}

	if _, err := s.lessonRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	lesson.Status = status
	s.logger.Info("Lesson status updated",
		zap.Int64("lesson_id", id),
		zap.String("status", string(status)),
	)

	return lesson, nil
}

func statusTransitionTypical(from, to model.LessonStatus) bool {
	if from == to {
		return true
	}
	for _, allowed := range model.AllowedNextStatuses(from) {
		if to == allowed {
			return true
		}
	}
	return false
}

// GetLessonByID получает занятие по ID
func (s *LessonService) GetLessonByID(ctx context.Context, id int64) (*model.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, fmt.Errorf("lesson %d: %w", id, ErrNotFound)
	}
	return lesson, nil
}

// GetAllLessons получает все занятия
func (s *LessonService) GetAllLessons(ctx context.Context) ([]*model.Lesson, error) {
	return s.lessonRepo.GetAll(ctx)
}

// GetLessonsByEnrollment получает занятия по записи на обучение
func (s *LessonService) GetLessonsByEnrollment(ctx context.Context, enrollmentID int64) ([]*model.Lesson, error) {
	return s.lessonRepo.GetByEnrollmentID(ctx, enrollmentID)
}

// GetLessonsByStudent получает занятия студента
func (s *LessonService) GetLessonsByStudent(ctx context.Context, studentID int64) ([]*model.Lesson, error) {
	return s.lessonRepo.GetByStudentID(ctx, studentID)
}

// GetLessonsByTeacher получает занятия учителя
func (s *LessonService) GetLessonsByTeacher(ctx context.Context, teacherID int64) ([]*model.Lesson, error) {
	return s.lessonRepo.GetByTeacherID(ctx, teacherID)
}

// DeleteLesson удаляет занятие. Явное административное действие.
func (s *LessonService) DeleteLesson(ctx context.Context, id int64) error {
	deleted, err := s.lessonRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("lesson %d: %w", id, ErrNotFound)
	}

	s.logger.Info("Lesson deleted", zap.Int64("lesson_id", id))
	return nil
}
