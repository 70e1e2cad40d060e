package app

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutor_crm/internal/repository"
	"go.uber.org/zap"
)

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	lessonRepo *repository.LessonRepository
	logger     *zap.Logger
	stopChan   chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(lessonRepo *repository.LessonRepository, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		lessonRepo: lessonRepo,
		logger:     logger,
		stopChan:   make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runOverdueSweepTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runOverdueSweepTask раз в сутки помечает просроченные занятия
func (s *Scheduler) runOverdueSweepTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.sweepOverdueLessons(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweepOverdueLessons(ctx)
		case <-s.stopChan:
			s.logger.Info("Overdue sweep task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Overdue sweep task cancelled")
			return
		}
	}
}

// sweepOverdueLessons переводит завершившиеся по времени, но не закрытые
// занятия в PENDING_PAYMENT, чтобы они не потерялись для оплаты
func (s *Scheduler) sweepOverdueLessons(ctx context.Context) {
	s.logger.Info("Starting overdue lesson sweep")

	count, err := s.lessonRepo.MarkOverdueAsPendingPayment(ctx, time.Now())
	if err != nil {
		s.logger.Error("Failed to sweep overdue lessons", zap.Error(err))
		return
	}

	s.logger.Info("Overdue lesson sweep completed", zap.Int64("lessons_marked", count))
}
