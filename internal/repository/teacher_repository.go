package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TeacherRepository struct {
	pool *pgxpool.Pool
}

func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{pool: pool}
}

const teacherColumns = `id, name, gender, age, subject, education, experience, phone, email, hourly_rate, status, created_at, updated_at`

func scanTeacher(row pgx.Row) (*model.Teacher, error) {
	var t model.Teacher
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Gender,
		&t.Age,
		&t.Subject,
		&t.Education,
		&t.Experience,
		&t.Phone,
		&t.Email,
		&t.HourlyRate,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create создаёт нового учителя
func (r *TeacherRepository) Create(ctx context.Context, teacher *model.Teacher) error {
	query := `
		INSERT INTO teachers (name, gender, age, subject, education, experience, phone, email, hourly_rate, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		teacher.Name,
		teacher.Gender,
		teacher.Age,
		teacher.Subject,
		teacher.Education,
		teacher.Experience,
		teacher.Phone,
		teacher.Email,
		teacher.HourlyRate,
		teacher.Status,
	).Scan(&teacher.ID, &teacher.CreatedAt, &teacher.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}

	return nil
}

// GetByID получает учителя по ID
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*model.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE id = $1`

	teacher, err := scanTeacher(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher by id: %w", err)
	}

	return teacher, nil
}

// GetAll получает всех учителей
func (r *TeacherRepository) GetAll(ctx context.Context) ([]*model.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*model.Teacher
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		teachers = append(teachers, teacher)
	}

	return teachers, nil
}

// Update обновляет данные учителя
func (r *TeacherRepository) Update(ctx context.Context, teacher *model.Teacher) (bool, error) {
	query := `
		UPDATE teachers
		SET name = $2, gender = $3, age = $4, subject = $5, education = $6,
		    experience = $7, phone = $8, email = $9, hourly_rate = $10, status = $11,
		    updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(
		ctx, query,
		teacher.ID,
		teacher.Name,
		teacher.Gender,
		teacher.Age,
		teacher.Subject,
		teacher.Education,
		teacher.Experience,
		teacher.Phone,
		teacher.Email,
		teacher.HourlyRate,
		teacher.Status,
	)
	if err != nil {
		return false, fmt.Errorf("update teacher: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete удаляет учителя вместе с его доступностью (каскад в БД)
func (r *TeacherRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete teacher: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
