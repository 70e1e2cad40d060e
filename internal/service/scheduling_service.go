package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/Freeeeeet/tutor_crm/internal/openai"
	"github.com/Freeeeeet/tutor_crm/internal/prompt"
	"github.com/Freeeeeet/tutor_crm/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Интерфейсы внешних хранилищ и коллабораторов движка планирования.
// Реализуются репозиториями, LessonService и клиентом OpenAI.

type availabilityReader interface {
	GetAvailableByOwner(ctx context.Context, ownerID int64, kind model.OwnerKind) ([]model.AvailabilitySlot, error)
}

type enrollmentReader interface {
	GetByIDWithDetails(ctx context.Context, id int64) (*model.Enrollment, error)
}

type lessonRangeReader interface {
	GetActiveBetweenForStudent(ctx context.Context, studentID int64, from, to time.Time) ([]*model.Lesson, error)
	GetActiveBetweenForTeacher(ctx context.Context, teacherID int64, from, to time.Time) ([]*model.Lesson, error)
}

type conflictChecker interface {
	HasConflict(ctx context.Context, studentID, teacherID int64, start, end time.Time, excludeID *int64) (bool, error)
}

type suggestionGenerator interface {
	GenerateCompletion(ctx context.Context, systemMessage, userPrompt string) (string, error)
}

// SchedulingService вычисляет общие окна доступности пары студент-учитель
// и валидирует предложения занятий от внешнего генератора.
type SchedulingService struct {
	availabilityRepo availabilityReader
	enrollmentRepo   enrollmentReader
	lessonRepo       lessonRangeReader
	conflicts        conflictChecker
	generator        suggestionGenerator
	logger           *zap.Logger
	now              func() time.Time
}

func NewSchedulingService(
	availabilityRepo availabilityReader,
	enrollmentRepo enrollmentReader,
	lessonRepo lessonRangeReader,
	conflicts conflictChecker,
	generator suggestionGenerator,
	logger *zap.Logger,
) *SchedulingService {
	return &SchedulingService{
		availabilityRepo: availabilityRepo,
		enrollmentRepo:   enrollmentRepo,
		lessonRepo:       lessonRepo,
		conflicts:        conflicts,
		generator:        generator,
		logger:           logger,
		now:              time.Now,
	}
}

// FindCommonSlots вычисляет общие еженедельные окна доступности пары.
// Результат отсортирован по (weekday, start), склеен и никогда не сохраняется.
func (s *SchedulingService) FindCommonSlots(ctx context.Context, studentID, teacherID int64) ([]model.CommonWindow, error) {
	studentSlots, err := s.availabilityRepo.GetAvailableByOwner(ctx, studentID, model.OwnerKindStudent)
	if err != nil {
		return nil, fmt.Errorf("get student availability: %w", err)
	}

	teacherSlots, err := s.availabilityRepo.GetAvailableByOwner(ctx, teacherID, model.OwnerKindTeacher)
	if err != nil {
		return nil, fmt.Errorf("get teacher availability: %w", err)
	}

	windows := schedule.CommonWindows(studentSlots, teacherSlots)

	s.logger.Info("Common availability computed",
		zap.Int64("student_id", studentID),
		zap.Int64("teacher_id", teacherID),
		zap.Int("window_count", len(windows)),
	)

	return windows, nil
}

// suggestionHorizon предложения ограничены ближайшими двумя неделями
const suggestionHorizon = 14 * 24 * time.Hour

// SuggestLessonTimes запрашивает у внешнего генератора кандидатов занятий
// и возвращает только прошедших валидацию, в исходном порядке.
// Любая ошибка генератора деградирует в пустой список, а не в ошибку вызова.
func (s *SchedulingService) SuggestLessonTimes(ctx context.Context, enrollmentID int64, durationMinutes int) ([]model.ProposedLesson, error) {
	requestID := uuid.New()
	log := s.logger.With(
		zap.String("request_id", requestID.String()),
		zap.Int64("enrollment_id", enrollmentID),
	)

	enrollment, err := s.enrollmentRepo.GetByIDWithDetails(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, fmt.Errorf("enrollment %d: %w", enrollmentID, ErrNotFound)
	}

	windows, err := s.FindCommonSlots(ctx, enrollment.StudentID, enrollment.TeacherID)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		log.Warn("No common availability, nothing to suggest")
		return nil, nil
	}

	now := s.now()
	horizon := now.Add(suggestionHorizon)

	studentLessons, err := s.lessonRepo.GetActiveBetweenForStudent(ctx, enrollment.StudentID, now, horizon)
	if err != nil {
		return nil, fmt.Errorf("get student lessons: %w", err)
	}
	teacherLessons, err := s.lessonRepo.GetActiveBetweenForTeacher(ctx, enrollment.TeacherID, now, horizon)
	if err != nil {
		return nil, fmt.Errorf("get teacher lessons: %w", err)
	}

	userPrompt := prompt.BuildSuggestLessonTimes(prompt.SuggestParams{
		StudentName:     enrollmentPartyName(enrollment),
		TeacherName:     enrollmentTeacherName(enrollment),
		CourseName:      enrollmentCourseName(enrollment),
		DurationMinutes: durationMinutes,
		Now:             now,
		CommonWindows:   windows,
		StudentLessons:  studentLessons,
		TeacherLessons:  teacherLessons,
		StudentID:       enrollment.StudentID,
		TeacherID:       enrollment.TeacherID,
		CourseID:        enrollment.CourseID,
		EnrollmentID:    enrollment.ID,
	})

	raw, err := s.generator.GenerateCompletion(ctx, prompt.SystemMessage, userPrompt)
	if err != nil {
		// Недоступность генератора не является ошибкой планирования:
		// отсутствие предложений - допустимый результат
		log.Warn("Suggestion generator unavailable", zap.Error(err))
		return nil, nil
	}

	candidates := parseProposals(raw, log)
	validated := s.validateProposals(ctx, enrollment, windows, candidates, now, log)

	log.Info("Lesson suggestions validated",
		zap.Int("candidates", len(candidates)),
		zap.Int("accepted", len(validated)),
	)

	return validated, nil
}

// parseProposals разбирает ответ генератора. Любой мусор на входе
// даёт пустой список, ошибка наружу не выходит.
func parseProposals(raw string, log *zap.Logger) []model.ProposedLesson {
	cleaned := openai.ExtractJSONArray(raw)
	if cleaned == "" {
		return nil
	}

	var proposals []model.ProposedLesson
	if err := json.Unmarshal([]byte(cleaned), &proposals); err != nil {
		log.Warn("Failed to parse generator response", zap.Error(err))
		return nil
	}

	return proposals
}

// validateProposals отбрасывает недопустимых кандидатов, сохраняя порядок.
// Идентификаторы из ответа генератора недоверенные: любое непустое
// расхождение с enrollment отбраковывает кандидата, нули заполняются.
func (s *SchedulingService) validateProposals(
	ctx context.Context,
	enrollment *model.Enrollment,
	windows []model.CommonWindow,
	candidates []model.ProposedLesson,
	now time.Time,
	log *zap.Logger,
) []model.ProposedLesson {
	validated := make([]model.ProposedLesson, 0, len(candidates))

	for i, c := range candidates {
		if mismatchedID(c.EnrollmentID, enrollment.ID) ||
			mismatchedID(c.StudentID, enrollment.StudentID) ||
			mismatchedID(c.TeacherID, enrollment.TeacherID) ||
			mismatchedID(c.CourseID, enrollment.CourseID) {
			log.Warn("Dropping suggestion with mismatched ids", zap.Int("index", i))
			continue
		}

		if !c.IsValidRange() {
			log.Warn("Dropping suggestion with invalid time range", zap.Int("index", i))
			continue
		}

		start, end := c.StartTime.Time, c.EndTime.Time
		if !start.After(now) {
			log.Warn("Dropping suggestion in the past", zap.Int("index", i), zap.Time("start", start))
			continue
		}

		if !schedule.WindowsContain(windows, start, end) {
			log.Warn("Dropping suggestion outside common availability", zap.Int("index", i))
			continue
		}

		conflict, err := s.conflicts.HasConflict(ctx, enrollment.StudentID, enrollment.TeacherID, start, end, nil)
		if err != nil {
			log.Warn("Dropping suggestion, conflict check failed", zap.Int("index", i), zap.Error(err))
			continue
		}
		if conflict {
			log.Warn("Dropping conflicting suggestion", zap.Int("index", i))
			continue
		}

		c.EnrollmentID = enrollment.ID
		c.StudentID = enrollment.StudentID
		c.TeacherID = enrollment.TeacherID
		c.CourseID = enrollment.CourseID
		validated = append(validated, c)
	}

	return validated
}

// mismatchedID ненулевой идентификатор, не совпадающий с ожидаемым
func mismatchedID(got, expected int64) bool {
	return got != 0 && got != expected
}

func enrollmentPartyName(e *model.Enrollment) string {
	if e.Student != nil {
		return e.Student.Name
	}
	return ""
}

func enrollmentTeacherName(e *model.Enrollment) string {
	if e.Teacher != nil {
		return e.Teacher.Name
	}
	return ""
}

func enrollmentCourseName(e *model.Enrollment) string {
	if e.Course != nil {
		return e.Course.Name
	}
	return ""
}
