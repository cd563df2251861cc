package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fundrazor/fundrazor/internal/db"
	"github.com/fundrazor/fundrazor/internal/domain"

	"github.com/jackc/pgx/v5"
)

const personColumns = `id, first_name, last_name, email, phone, organization, wealth_band, created_at, updated_at`

// personRepository implements PersonRepository over Postgres.
type personRepository struct {
	db db.DBTX
}

// NewPersonRepository creates a new person repository
func NewPersonRepository(exec db.DBTX) PersonRepository {
	return &personRepository{db: exec}
}

// List retrieves the entire person collection.
func (r *personRepository) List(ctx context.Context) ([]domain.Person, error) {
	rows, err := r.db.Query(ctx, `SELECT `+personColumns+` FROM persons ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	defer rows.Close()

	var persons []domain.Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		persons = append(persons, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read persons: %w", err)
	}

	return persons, nil
}

// GetByEmail retrieves a person by case-insensitive primary email.
func (r *personRepository) GetByEmail(ctx context.Context, email string) (domain.Person, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+personColumns+` FROM persons WHERE lower(email) = lower($1)`, email)
	person, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Person{}, domain.NewNotFound("person", email)
		}
		return domain.Person{}, err
	}
	return person, nil
}

// Create persists a new person.
func (r *personRepository) Create(ctx context.Context, person domain.Person) (domain.Person, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO persons (id, first_name, last_name, email, phone, organization, wealth_band)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+personColumns,
		person.ID, person.FirstName, person.LastName,
		person.Email, person.Phone, person.Organization, person.WealthBand,
	)
	created, err := scanPerson(row)
	if err != nil {
		return domain.Person{}, fmt.Errorf("failed to create person: %w", err)
	}
	return created, nil
}

// Update persists the full person record.
func (r *personRepository) Update(ctx context.Context, person domain.Person) (domain.Person, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE persons
		SET first_name = $2, last_name = $3, email = $4, phone = $5,
		    organization = $6, wealth_band = $7, updated_at = now()
		WHERE id = $1
		RETURNING `+personColumns,
		person.ID, person.FirstName, person.LastName,
		person.Email, person.Phone, person.Organization, person.WealthBand,
	)
	updated, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Person{}, domain.NewNotFound("person", person.ID.String())
		}
		return domain.Person{}, fmt.Errorf("failed to update person: %w", err)
	}
	return updated, nil
}

// CountDuplicateNameGroups counts case-insensitive full-name groups with more
// than one member, in a single aggregate query.
func (r *personRepository) CountDuplicateNameGroups(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM (
			SELECT lower(first_name || ' ' || last_name)
			FROM persons
			GROUP BY lower(first_name || ' ' || last_name)
			HAVING COUNT(*) > 1
		) AS duplicate_groups`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count duplicate name groups: %w", err)
	}
	return count, nil
}

func scanPerson(row pgx.Row) (domain.Person, error) {
	var p domain.Person
	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone,
		&p.Organization, &p.WealthBand, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Person{}, err
		}
		return domain.Person{}, fmt.Errorf("failed to scan person: %w", err)
	}
	return p, nil
}
