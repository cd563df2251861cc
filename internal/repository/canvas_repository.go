package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fundrazor/fundrazor/internal/db"
	"github.com/fundrazor/fundrazor/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const canvasColumns = `id, name, owner_id, data, is_default, created_at, updated_at`

// canvasRepository implements CanvasRepository over Postgres.
type canvasRepository struct {
	db db.DBTX
}

// NewCanvasRepository creates a new organization canvas repository
func NewCanvasRepository(exec db.DBTX) CanvasRepository {
	return &canvasRepository{db: exec}
}

// List retrieves canvases, optionally filtered by owner.
func (r *canvasRepository) List(ctx context.Context, ownerID string) ([]domain.OrganizationCanvas, error) {
	query := `SELECT ` + canvasColumns + ` FROM organization_canvases ORDER BY created_at DESC`
	args := []any{}
	if ownerID != "" {
		query = `SELECT ` + canvasColumns + ` FROM organization_canvases WHERE owner_id = $1 ORDER BY created_at DESC`
		args = append(args, ownerID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list canvases: %w", err)
	}
	defer rows.Close()

	var canvases []domain.OrganizationCanvas
	for rows.Next() {
		canvas, err := scanCanvas(rows)
		if err != nil {
			return nil, err
		}
		canvases = append(canvases, canvas)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read canvases: %w", err)
	}

	return canvases, nil
}

// GetByID retrieves a canvas by ID.
func (r *canvasRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.OrganizationCanvas, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+canvasColumns+` FROM organization_canvases WHERE id = $1`, id)
	canvas, err := scanCanvas(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.OrganizationCanvas{}, domain.NewNotFound("canvas", id.String())
		}
		return domain.OrganizationCanvas{}, err
	}
	return canvas, nil
}

// Create persists a new canvas.
func (r *canvasRepository) Create(ctx context.Context, canvas domain.OrganizationCanvas) (domain.OrganizationCanvas, error) {
	dataJSON, err := marshalCanvasData(canvas.Data)
	if err != nil {
		return domain.OrganizationCanvas{}, err
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO organization_canvases (id, name, owner_id, data, is_default)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+canvasColumns,
		canvas.ID, canvas.Name, canvas.OwnerID, dataJSON, canvas.IsDefault,
	)
	created, err := scanCanvas(row)
	if err != nil {
		return domain.OrganizationCanvas{}, fmt.Errorf("failed to create canvas: %w", err)
	}
	return created, nil
}

// Update persists the full canvas record, refreshing updated_at.
func (r *canvasRepository) Update(ctx context.Context, canvas domain.OrganizationCanvas) (domain.OrganizationCanvas, error) {
	dataJSON, err := marshalCanvasData(canvas.Data)
	if err != nil {
		return domain.OrganizationCanvas{}, err
	}

	row := r.db.QueryRow(ctx, `
		UPDATE organization_canvases
		SET name = $2, owner_id = $3, data = $4, is_default = $5, updated_at = now()
		WHERE id = $1
		RETURNING `+canvasColumns,
		canvas.ID, canvas.Name, canvas.OwnerID, dataJSON, canvas.IsDefault,
	)
	updated, err := scanCanvas(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.OrganizationCanvas{}, domain.NewNotFound("canvas", canvas.ID.String())
		}
		return domain.OrganizationCanvas{}, fmt.Errorf("failed to update canvas: %w", err)
	}
	return updated, nil
}

// Delete removes a canvas and returns its prior state.
func (r *canvasRepository) Delete(ctx context.Context, id uuid.UUID) (domain.OrganizationCanvas, error) {
	row := r.db.QueryRow(ctx,
		`DELETE FROM organization_canvases WHERE id = $1 RETURNING `+canvasColumns, id)
	deleted, err := scanCanvas(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.OrganizationCanvas{}, domain.NewNotFound("canvas", id.String())
		}
		return domain.OrganizationCanvas{}, fmt.Errorf("failed to delete canvas: %w", err)
	}
	return deleted, nil
}

func marshalCanvasData(data map[string]any) ([]byte, error) {
	if data == nil {
		data = map[string]any{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal canvas data: %w", err)
	}
	return raw, nil
}

func scanCanvas(row pgx.Row) (domain.OrganizationCanvas, error) {
	var (
		c       domain.OrganizationCanvas
		rawData []byte
	)
	err := row.Scan(&c.ID, &c.Name, &c.OwnerID, &rawData, &c.IsDefault, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.OrganizationCanvas{}, err
		}
		return domain.OrganizationCanvas{}, fmt.Errorf("failed to scan canvas: %w", err)
	}
	if len(rawData) > 0 {
		if err := json.Unmarshal(rawData, &c.Data); err != nil {
			return domain.OrganizationCanvas{}, fmt.Errorf("failed to unmarshal canvas data: %w", err)
		}
	}
	return c, nil
}
