package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fundrazor/fundrazor/internal/db"
	"github.com/fundrazor/fundrazor/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const interactionColumns = `id, person_id, type, occurred_at, owner_id, notes,
	source, source_system, source_record_id, synced_at, data_quality_score,
	created_at, updated_at`

// interactionRepository implements InteractionRepository over Postgres.
type interactionRepository struct {
	db db.DBTX
}

// NewInteractionRepository creates a new interaction repository
func NewInteractionRepository(exec db.DBTX) InteractionRepository {
	return &interactionRepository{db: exec}
}

// List retrieves all interactions, most recent first.
func (r *interactionRepository) List(ctx context.Context) ([]domain.Interaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+interactionColumns+` FROM interactions ORDER BY occurred_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	defer rows.Close()
	return collectInteractions(rows)
}

// ListByPerson retrieves all interactions for one person, most recent first.
func (r *interactionRepository) ListByPerson(ctx context.Context, personID uuid.UUID) ([]domain.Interaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+interactionColumns+` FROM interactions WHERE person_id = $1 ORDER BY occurred_at DESC`,
		personID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions for person: %w", err)
	}
	defer rows.Close()
	return collectInteractions(rows)
}

// ListSince retrieves interactions that occurred at or after the given time.
func (r *interactionRepository) ListSince(ctx context.Context, since time.Time) ([]domain.Interaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+interactionColumns+` FROM interactions WHERE occurred_at >= $1 ORDER BY occurred_at DESC`,
		since)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent interactions: %w", err)
	}
	defer rows.Close()
	return collectInteractions(rows)
}

// GetByID retrieves an interaction by ID.
func (r *interactionRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Interaction, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+interactionColumns+` FROM interactions WHERE id = $1`, id)
	interaction, err := scanInteraction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Interaction{}, domain.NewNotFound("interaction", id.String())
		}
		return domain.Interaction{}, err
	}
	return interaction, nil
}

// Create persists a new interaction.
func (r *interactionRepository) Create(ctx context.Context, interaction domain.Interaction) (domain.Interaction, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO interactions (id, person_id, type, occurred_at, owner_id, notes,
			source, source_system, source_record_id, synced_at, data_quality_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+interactionColumns,
		interaction.ID, interaction.PersonID, string(interaction.Type), interaction.OccurredAt,
		interaction.OwnerID, interaction.Notes, interaction.Source, interaction.SourceSystem,
		interaction.SourceRecordID, interaction.SyncedAt, interaction.DataQualityScore,
	)
	created, err := scanInteraction(row)
	if err != nil {
		return domain.Interaction{}, fmt.Errorf("failed to create interaction: %w", err)
	}
	return created, nil
}

// Update persists the full interaction record, refreshing updated_at. A raced
// deletion surfaces as NotFound.
func (r *interactionRepository) Update(ctx context.Context, interaction domain.Interaction) (domain.Interaction, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE interactions
		SET type = $2, occurred_at = $3, owner_id = $4, notes = $5, source = $6,
		    source_system = $7, source_record_id = $8, synced_at = $9,
		    data_quality_score = $10, updated_at = now()
		WHERE id = $1
		RETURNING `+interactionColumns,
		interaction.ID, string(interaction.Type), interaction.OccurredAt, interaction.OwnerID,
		interaction.Notes, interaction.Source, interaction.SourceSystem,
		interaction.SourceRecordID, interaction.SyncedAt, interaction.DataQualityScore,
	)
	updated, err := scanInteraction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Interaction{}, domain.NewNotFound("interaction", interaction.ID.String())
		}
		return domain.Interaction{}, fmt.Errorf("failed to update interaction: %w", err)
	}
	return updated, nil
}

// Delete hard-deletes an interaction and returns its prior state.
func (r *interactionRepository) Delete(ctx context.Context, id uuid.UUID) (domain.Interaction, error) {
	row := r.db.QueryRow(ctx,
		`DELETE FROM interactions WHERE id = $1 RETURNING `+interactionColumns, id)
	deleted, err := scanInteraction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Interaction{}, domain.NewNotFound("interaction", id.String())
		}
		return domain.Interaction{}, fmt.Errorf("failed to delete interaction: %w", err)
	}
	return deleted, nil
}

func collectInteractions(rows pgx.Rows) ([]domain.Interaction, error) {
	var interactions []domain.Interaction
	for rows.Next() {
		interaction, err := scanInteraction(rows)
		if err != nil {
			return nil, err
		}
		interactions = append(interactions, interaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read interactions: %w", err)
	}
	return interactions, nil
}

func scanInteraction(row pgx.Row) (domain.Interaction, error) {
	var (
		i       domain.Interaction
		rawType string
	)
	err := row.Scan(
		&i.ID, &i.PersonID, &rawType, &i.OccurredAt, &i.OwnerID, &i.Notes,
		&i.Source, &i.SourceSystem, &i.SourceRecordID, &i.SyncedAt, &i.DataQualityScore,
		&i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Interaction{}, err
		}
		return domain.Interaction{}, fmt.Errorf("failed to scan interaction: %w", err)
	}
	i.Type = domain.InteractionType(rawType)
	return i, nil
}
