package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/Freeeeeet/tutor_crm/internal/repository"
	"go.uber.org/zap"
)

type AvailabilityService struct {
	availabilityRepo *repository.AvailabilityRepository
	studentRepo      *repository.StudentRepository
	teacherRepo      *repository.TeacherRepository
	logger           *zap.Logger
}

func NewAvailabilityService(
	availabilityRepo *repository.AvailabilityRepository,
	studentRepo *repository.StudentRepository,
	teacherRepo *repository.TeacherRepository,
	logger *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		availabilityRepo: availabilityRepo,
		studentRepo:      studentRepo,
		teacherRepo:      teacherRepo,
		logger:           logger,
	}
}

// validateSlot проверяет границы слота: день недели и полуоткрытый интервал минут
func validateSlot(slot *model.AvailabilitySlot) error {
	if slot.Weekday < 0 || slot.Weekday > 6 {
		return fmt.Errorf("%w: weekday %d out of range", ErrInvalidInterval, slot.Weekday)
	}
	if slot.StartMinute < 0 || slot.EndMinute > 24*60 || slot.StartMinute >= slot.EndMinute {
		return fmt.Errorf("%w: %s-%s", ErrInvalidInterval,
			model.FormatMinute(slot.StartMinute), model.FormatMinute(slot.EndMinute))
	}
	return nil
}

func (s *AvailabilityService) ownerExists(ctx context.Context, ownerID int64, kind model.OwnerKind) error {
	switch kind {
	case model.OwnerKindStudent:
		student, err := s.studentRepo.GetByID(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("check student: %w", err)
		}
		if student == nil {
			return fmt.Errorf("student %d: %w", ownerID, ErrNotFound)
		}
	case model.OwnerKindTeacher:
		teacher, err := s.teacherRepo.GetByID(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("check teacher: %w", err)
		}
		if teacher == nil {
			return fmt.Errorf("teacher %d: %w", ownerID, ErrNotFound)
		}
	default:
		return fmt.Errorf("unknown owner kind %q: %w", kind, ErrNotFound)
	}
	return nil
}

// GetWeeklyAvailability возвращает все слоты владельца
func (s *AvailabilityService) GetWeeklyAvailability(ctx context.Context, ownerID int64, kind model.OwnerKind) ([]model.AvailabilitySlot, error) {
	if err := s.ownerExists(ctx, ownerID, kind); err != nil {
		return nil, err
	}
	return s.availabilityRepo.GetByOwner(ctx, ownerID, kind)
}

// AddSlot добавляет один слот доступности
func (s *AvailabilityService) AddSlot(ctx context.Context, slot *model.AvailabilitySlot) error {
	if err := validateSlot(slot); err != nil {
		return err
	}
	if err := s.ownerExists(ctx, slot.OwnerID, slot.OwnerKind); err != nil {
		return err
	}

	if err := s.availabilityRepo.Create(ctx, slot); err != nil {
		return err
	}

	s.logger.Info("Availability slot added",
		zap.Int64("owner_id", slot.OwnerID),
		zap.String("owner_kind", string(slot.OwnerKind)),
		zap.Int("weekday", slot.Weekday),
		zap.String("start", model.FormatMinute(slot.StartMinute)),
		zap.String("end", model.FormatMinute(slot.EndMinute)),
	)

	return nil
}

// SetWeeklyAvailability целиком заменяет недельное расписание владельца.
// Это полная замена, а не частичное обновление.
func (s *AvailabilityService) SetWeeklyAvailability(ctx context.Context, ownerID int64, kind model.OwnerKind, slots []model.AvailabilitySlot) error {
	for i := range slots {
		if err := validateSlot(&slots[i]); err != nil {
			return err
		}
	}
	if err := s.ownerExists(ctx, ownerID, kind); err != nil {
		return err
	}

	if err := s.availabilityRepo.ReplaceWeekly(ctx, ownerID, kind, slots); err != nil {
		return err
	}

	s.logger.Info("Weekly availability replaced",
		zap.Int64("owner_id", ownerID),
		zap.String("owner_kind", string(kind)),
		zap.Int("slot_count", len(slots)),
	)

	return nil
}

// RemoveSlot удаляет один слот
func (s *AvailabilityService) RemoveSlot(ctx context.Context, id int64) error {
	deleted, err := s.availabilityRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("availability slot %d: %w", id, ErrNotFound)
	}

	s.logger.Info("Availability slot removed", zap.Int64("slot_id", id))
	return nil
}
