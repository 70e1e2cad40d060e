package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/Freeeeeet/tutor_crm/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LessonRepository struct {
	pool *pgxpool.Pool
}

func NewLessonRepository(pool *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{pool: pool}
}

// Pool возвращает пул для открытия транзакций на уровне сервиса
func (r *LessonRepository) Pool() *pgxpool.Pool {
	return r.pool
}

const lessonColumns = `id, enrollment_id, student_id, teacher_id, start_time, end_time, status, location, notes, created_at, updated_at`

// Варианты отмены освобождают время и исключаются из проверки пересечений
const activeLessonCondition = `status NOT IN ('CANCELLED', 'CANCELLED_BY_TEACHER', 'CANCELLED_BY_STUDENT')`

func scanLesson(row pgx.Row) (*model.Lesson, error) {
	var l model.Lesson
	err := row.Scan(
		&l.ID,
		&l.EnrollmentID,
		&l.StudentID,
		&l.TeacherID,
		&l.StartTime,
		&l.EndTime,
		&l.Status,
		&l.Location,
		&l.Notes,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create создаёт занятие. Идентификаторы сторон берутся из enrollment
// прямо во вставке, чтобы денормализованные колонки нельзя было подменить.
// Принимает Querier: вызывается внутри транзакции проверки конфликтов.
func (r *LessonRepository) Create(ctx context.Context, q base.Querier, lesson *model.Lesson) error {
	query := `
		INSERT INTO lessons (enrollment_id, student_id, teacher_id, start_time, end_time, status, location, notes)
		SELECT e.id, e.student_id, e.teacher_id, $2, $3, $4, $5, $6
		FROM enrollments e
		WHERE e.id = $1
		RETURNING id, student_id, teacher_id, created_at, updated_at
	`

	err := q.QueryRow(
		ctx, query,
		lesson.EnrollmentID,
		lesson.StartTime,
		lesson.EndTime,
		lesson.Status,
		lesson.Location,
		lesson.Notes,
	).Scan(&lesson.ID, &lesson.StudentID, &lesson.TeacherID, &lesson.CreatedAt, &lesson.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Вставка не вернула строку: enrollment не существует
			return pgx.ErrNoRows
		}
		return fmt.Errorf("create lesson: %w", err)
	}

	return nil
}

// GetByID получает занятие по ID
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`

	lesson, err := scanLesson(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson by id: %w", err)
	}

	return lesson, nil
}

// GetAll получает все занятия
func (r *LessonRepository) GetAll(ctx context.Context) ([]*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons ORDER BY start_time`
	return r.queryMany(ctx, r.pool, query)
}

// GetByEnrollmentID получает занятия по записи на обучение
func (r *LessonRepository) GetByEnrollmentID(ctx context.Context, enrollmentID int64) ([]*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE enrollment_id = $1 ORDER BY start_time`
	return r.queryMany(ctx, r.pool, query, enrollmentID)
}

// GetByStudentID получает занятия студента
func (r *LessonRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE student_id = $1 ORDER BY start_time`
	return r.queryMany(ctx, r.pool, query, studentID)
}

// GetByTeacherID получает занятия учителя
func (r *LessonRepository) GetByTeacherID(ctx context.Context, teacherID int64) ([]*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE teacher_id = $1 ORDER BY start_time`
	return r.queryMany(ctx, r.pool, query, teacherID)
}

// GetActiveBetweenForStudent получает активные занятия студента в диапазоне дат
func (r *LessonRepository) GetActiveBetweenForStudent(ctx context.Context, studentID int64, from, to time.Time) ([]*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE student_id = $1 AND ` + activeLessonCondition + `
		  AND start_time >= $2 AND start_time < $3
		ORDER BY start_time
	`
	return r.queryMany(ctx, r.pool, query, studentID, from, to)
}

// GetActiveBetweenForTeacher получает активные занятия учителя в диапазоне дат
func (r *LessonRepository) GetActiveBetweenForTeacher(ctx context.Context, teacherID int64, from, to time.Time) ([]*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE teacher_id = $1 AND ` + activeLessonCondition + `
		  AND start_time >= $2 AND start_time < $3
		ORDER BY start_time
	`
	return r.queryMany(ctx, r.pool, query, teacherID, from, to)
}

// FindOverlapping ищет активные занятия студента или учителя, пересекающиеся
// с интервалом [start, end). Касание границ пересечением не считается.
// excludeID исключает занятие из проверки при изменении его собственного времени.
func (r *LessonRepository) FindOverlapping(ctx context.Context, q base.Querier, studentID, teacherID int64, start, end time.Time, excludeID *int64) ([]*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE (student_id = $1 OR teacher_id = $2)
		  AND ` + activeLessonCondition + `
		  AND start_time < $4 AND $3 < end_time
		  AND ($5::BIGINT IS NULL OR id <> $5)
		ORDER BY start_time
	`
	return r.queryMany(ctx, q, query, studentID, teacherID, start, end, excludeID)
}

// Update обновляет время, статус, место и заметки занятия.
// Принимает Querier: изменение времени выполняется в транзакции проверки конфликтов.
func (r *LessonRepository) Update(ctx context.Context, q base.Querier, lesson *model.Lesson) (bool, error) {
	query := `
		UPDATE lessons
		SET start_time = $2, end_time = $3, status = $4, location = $5, notes = $6, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(
		ctx, query,
		lesson.ID,
		lesson.StartTime,
		lesson.EndTime,
		lesson.Status,
		lesson.Location,
		lesson.Notes,
	)
	if err != nil {
		return false, fmt.Errorf("update lesson: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// UpdateStatus обновляет только статус занятия
func (r *LessonRepository) UpdateStatus(ctx context.Context, id int64, status model.LessonStatus) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE lessons SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return false, fmt.Errorf("update lesson status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete удаляет занятие. Явное административное действие,
// в обычных сценариях занятия только меняют статус.
func (r *LessonRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete lesson: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// MarkOverdueAsPendingPayment переводит прошедшие запланированные занятия
// в ожидание оплаты. Используется фоновой задачей.
func (r *LessonRepository) MarkOverdueAsPendingPayment(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE lessons SET status = $1, updated_at = NOW() WHERE status = $2 AND end_time < $3`,
		model.LessonStatusPendingPayment, model.LessonStatusScheduled, now,
	)
	if err != nil {
		return 0, fmt.Errorf("mark overdue lessons: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *LessonRepository) queryMany(ctx context.Context, q base.Querier, query string, args ...any) ([]*model.Lesson, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []*model.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	return lessons, nil
}
