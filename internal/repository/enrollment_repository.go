package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

const enrollmentColumns = `id, student_id, teacher_id, course_id, hourly_rate, is_active, enrolled_at, created_at, updated_at`

func scanEnrollment(row pgx.Row) (*model.Enrollment, error) {
	var e model.Enrollment
	err := row.Scan(
		&e.ID,
		&e.StudentID,
		&e.TeacherID,
		&e.CourseID,
		&e.HourlyRate,
		&e.IsActive,
		&e.EnrolledAt,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create создаёт новую запись на обучение
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	query := `
		INSERT INTO enrollments (student_id, teacher_id, course_id, hourly_rate, is_active, enrolled_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, enrolled_at, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		enrollment.StudentID,
		enrollment.TeacherID,
		enrollment.CourseID,
		enrollment.HourlyRate,
		enrollment.IsActive,
	).Scan(&enrollment.ID, &enrollment.EnrolledAt, &enrollment.CreatedAt, &enrollment.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}

	return nil
}

// GetByID получает запись по ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*model.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = $1`

	enrollment, err := scanEnrollment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get enrollment by id: %w", err)
	}

	return enrollment, nil
}

// GetByIDWithDetails получает запись вместе со студентом, учителем и курсом
func (r *EnrollmentRepository) GetByIDWithDetails(ctx context.Context, id int64) (*model.Enrollment, error) {
	enrollment, err := r.GetByID(ctx, id)
	if err != nil || enrollment == nil {
		return enrollment, err
	}

	studentRepo := NewStudentRepository(r.pool)
	teacherRepo := NewTeacherRepository(r.pool)
	courseRepo := NewCourseRepository(r.pool)

	if enrollment.Student, err = studentRepo.GetByID(ctx, enrollment.StudentID); err != nil {
		return nil, fmt.Errorf("get enrollment student: %w", err)
	}
	if enrollment.Teacher, err = teacherRepo.GetByID(ctx, enrollment.TeacherID); err != nil {
		return nil, fmt.Errorf("get enrollment teacher: %w", err)
	}
	if enrollment.Course, err = courseRepo.GetByID(ctx, enrollment.CourseID); err != nil {
		return nil, fmt.Errorf("get enrollment course: %w", err)
	}

	return enrollment, nil
}

// GetAll получает все записи на обучение
func (r *EnrollmentRepository) GetAll(ctx context.Context) ([]*model.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments ORDER BY enrolled_at DESC`
	return r.queryMany(ctx, query)
}

// GetByStudentID получает все записи студента
func (r *EnrollmentRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*model.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE student_id = $1 ORDER BY enrolled_at DESC`
	return r.queryMany(ctx, query, studentID)
}

// GetByTeacherID получает все записи учителя
func (r *EnrollmentRepository) GetByTeacherID(ctx context.Context, teacherID int64) ([]*model.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE teacher_id = $1 ORDER BY enrolled_at DESC`
	return r.queryMany(ctx, query, teacherID)
}

// SetActive включает или выключает запись
func (r *EnrollmentRepository) SetActive(ctx context.Context, id int64, isActive bool) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE enrollments SET is_active = $2, updated_at = NOW() WHERE id = $1`,
		id, isActive,
	)
	if err != nil {
		return false, fmt.Errorf("set enrollment active: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete удаляет запись на обучение
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete enrollment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *EnrollmentRepository) queryMany(ctx context.Context, query string, args ...any) ([]*model.Enrollment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*model.Enrollment
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		enrollments = append(enrollments, enrollment)
	}

	return enrollments, nil
}
