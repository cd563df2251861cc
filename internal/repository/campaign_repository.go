package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fundrazor/fundrazor/internal/db"
	"github.com/fundrazor/fundrazor/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const campaignColumns = `id, name, type, status, goal::text, raised::text,
	donor_count, gift_count, owner_id, start_date, end_date, created_at, updated_at`

// campaignRepository implements CampaignRepository over Postgres.
type campaignRepository struct {
	db db.DBTX
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(exec db.DBTX) CampaignRepository {
	return &campaignRepository{db: exec}
}

// List retrieves all campaigns, newest first.
func (r *campaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+campaignColumns+` FROM campaigns ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []domain.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, campaign)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read campaigns: %w", err)
	}

	return campaigns, nil
}

// GetByID retrieves a campaign by ID.
func (r *campaignRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Campaign, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	campaign, err := scanCampaign(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Campaign{}, domain.NewNotFound("campaign", id.String())
		}
		return domain.Campaign{}, err
	}
	return campaign, nil
}

// Create persists a new campaign.
func (r *campaignRepository) Create(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO campaigns (id, name, type, status, goal, raised, donor_count,
			gift_count, owner_id, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7, $8, $9, $10, $11)
		RETURNING `+campaignColumns,
		campaign.ID, campaign.Name, campaign.Type, string(campaign.Status),
		campaign.Goal, campaign.Raised, campaign.DonorCount, campaign.GiftCount,
		campaign.OwnerID, campaign.StartDate, campaign.EndDate,
	)
	created, err := scanCampaign(row)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("failed to create campaign: %w", err)
	}
	return created, nil
}

// Update persists the full campaign record, refreshing updated_at. A raced
// deletion surfaces as NotFound.
func (r *campaignRepository) Update(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE campaigns
		SET name = $2, type = $3, status = $4, goal = $5::numeric, raised = $6::numeric,
		    donor_count = $7, gift_count = $8, owner_id = $9, start_date = $10,
		    end_date = $11, updated_at = now()
		WHERE id = $1
		RETURNING `+campaignColumns,
		campaign.ID, campaign.Name, campaign.Type, string(campaign.Status),
		campaign.Goal, campaign.Raised, campaign.DonorCount, campaign.GiftCount,
		campaign.OwnerID, campaign.StartDate, campaign.EndDate,
	)
	updated, err := scanCampaign(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Campaign{}, domain.NewNotFound("campaign", campaign.ID.String())
		}
		return domain.Campaign{}, fmt.Errorf("failed to update campaign: %w", err)
	}
	return updated, nil
}

// Delete removes a campaign and returns its prior state.
func (r *campaignRepository) Delete(ctx context.Context, id uuid.UUID) (domain.Campaign, error) {
	row := r.db.QueryRow(ctx,
		`DELETE FROM campaigns WHERE id = $1 RETURNING `+campaignColumns, id)
	deleted, err := scanCampaign(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Campaign{}, domain.NewNotFound("campaign", id.String())
		}
		return domain.Campaign{}, fmt.Errorf("failed to delete campaign: %w", err)
	}
	return deleted, nil
}

func scanCampaign(row pgx.Row) (domain.Campaign, error) {
	var (
		c         domain.Campaign
		rawStatus string
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.Type, &rawStatus, &c.Goal, &c.Raised,
		&c.DonorCount, &c.GiftCount, &c.OwnerID, &c.StartDate, &c.EndDate,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Campaign{}, err
		}
		return domain.Campaign{}, fmt.Errorf("failed to scan campaign: %w", err)
	}
	c.Status = domain.CampaignStatus(rawStatus)
	return c, nil
}
