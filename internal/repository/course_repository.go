package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

const courseColumns = `id, name, description, category, level, duration, price, status, created_at, updated_at`

func scanCourse(row pgx.Row) (*model.Course, error) {
	var c model.Course
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Category,
		&c.Level,
		&c.Duration,
		&c.Price,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create создаёт новый курс
func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	query := `
		INSERT INTO courses (name, description, category, level, duration, price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		course.Name,
		course.Description,
		course.Category,
		course.Level,
		course.Duration,
		course.Price,
		course.Status,
	).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}

	return nil
}

// GetByID получает курс по ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	course, err := scanCourse(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get course by id: %w", err)
	}

	return course, nil
}

// GetAll получает все курсы
func (r *CourseRepository) GetAll(ctx context.Context) ([]*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all courses: %w", err)
	}
	defer rows.Close()

	var courses []*model.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, course)
	}

	return courses, nil
}

// Update обновляет курс
func (r *CourseRepository) Update(ctx context.Context, course *model.Course) (bool, error) {
	query := `
		UPDATE courses
		SET name = $2, description = $3, category = $4, level = $5,
		    duration = $6, price = $7, status = $8, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(
		ctx, query,
		course.ID,
		course.Name,
		course.Description,
		course.Category,
		course.Level,
		course.Duration,
		course.Price,
		course.Status,
	)
	if err != nil {
		return false, fmt.Errorf("update course: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete удаляет курс
func (r *CourseRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete course: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
