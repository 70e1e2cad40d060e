package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StudentRepository struct {
	pool *pgxpool.Pool
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

const studentColumns = `id, name, gender, age, grade, phone, parent, parent_phone, enrollment_date, status, created_at, updated_at`

func scanStudent(row pgx.Row) (*model.Student, error) {
	var s model.Student
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Gender,
		&s.Age,
		&s.Grade,
		&s.Phone,
		&s.Parent,
		&s.ParentPhone,
		&s.EnrollmentDate,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create создаёт нового студента
func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	query := `
		INSERT INTO students (name, gender, age, grade, phone, parent, parent_phone, enrollment_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		student.Name,
		student.Gender,
		student.Age,
		student.Grade,
		student.Phone,
		student.Parent,
		student.ParentPhone,
		student.EnrollmentDate,
		student.Status,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}

	return nil
}

// GetByID получает студента по ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	student, err := scanStudent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student by id: %w", err)
	}

	return student, nil
}

// GetAll получает всех студентов
func (r *StudentRepository) GetAll(ctx context.Context) ([]*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all students: %w", err)
	}
	defer rows.Close()

	var students []*model.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, student)
	}

	return students, nil
}

// Update обновляет данные студента
func (r *StudentRepository) Update(ctx context.Context, student *model.Student) (bool, error) {
	query := `
		UPDATE students
		SET name = $2, gender = $3, age = $4, grade = $5, phone = $6,
		    parent = $7, parent_phone = $8, enrollment_date = $9, status = $10,
		    updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(
		ctx, query,
		student.ID,
		student.Name,
		student.Gender,
		student.Age,
		student.Grade,
		student.Phone,
		student.Parent,
		student.ParentPhone,
		student.EnrollmentDate,
		student.Status,
	)
	if err != nil {
		return false, fmt.Errorf("update student: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete удаляет студента вместе с его доступностью (каскад в БД)
func (r *StudentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete student: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
