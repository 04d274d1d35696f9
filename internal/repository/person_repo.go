package repository

import (
	"context"
	"database/sql"

	"github.com/radio-cms-api/internal/database"
	"github.com/radio-cms-api/internal/models"
)

// personRepo is the concrete implementation of PersonRepository
type personRepo struct {
	db *database.DB
}

// NewPersonRepo creates a new person repository
func NewPersonRepo(db *database.DB) PersonRepository {
	return &personRepo{db: db}
}

// Create inserts a new guest or navigator
func (r *personRepo) Create(ctx context.Context, person *models.Person) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO persons (id, name, role) VALUES ($1, $2, $3)",
		person.ID, person.Name, person.Role,
	)
	return err
}

// Update renames a person
func (r *personRepo) Update(ctx context.Context, person *models.Person) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE persons SET name = $2 WHERE id = $1",
		person.ID, person.Name,
	)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// Delete removes a person. The caller is responsible for the in-use
// check; this is a plain row delete.
func (r *personRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM persons WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// GetByID retrieves a person by ID
func (r *personRepo) GetByID(ctx context.Context, id string) (*models.Person, error) {
	var person models.Person
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, role FROM persons WHERE id = $1", id,
	).Scan(&person.ID, &person.Name, &person.Role)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &person, nil
}

// List retrieves one logical collection, ordered by name
func (r *personRepo) List(ctx context.Context, role string) ([]models.Person, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, role FROM persons WHERE role = $1 ORDER BY name ASC", role,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var persons []models.Person
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Role); err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

// InUse reports whether any article still references the person in the
// id set matching the role.
func (r *personRepo) InUse(ctx context.Context, id, role string) (bool, error) {
	column := "guest_ids"
	if role == models.RoleNavigator {
		column = "navigator_ids"
	}
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM articles WHERE "+column+" @> jsonb_build_array($1::text))",
		id,
	).Scan(&exists)
	return exists, err
}

// Count returns the total number of persons across both roles
func (r *personRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM persons").Scan(&count)
	return count, err
}
