package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gigvora/gigvora-backend/internal/models"
)

// CreateCampaign inserts a new campaign record.
func (r *SQLiteRepository) CreateCampaign(ctx context.Context, c *models.Campaign) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = models.CampaignStatusDraft
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	query := `
		INSERT INTO campaigns (id, owner_id, name, description, status, budget, tags, created_at, updated_at)
		VALUES (:id, :owner_id, :name, :description, :status, :budget, :tags, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}

// GetCampaign returns the campaign with the given id, or (nil, nil).
func (r *SQLiteRepository) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	var c models.Campaign
	query := `SELECT * FROM campaigns WHERE id = ?`
	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return &c, nil
}

// ListCampaigns returns campaigns, optionally filtered by status and owner,
// newest first.
func (r *SQLiteRepository) ListCampaigns(ctx context.Context, status, ownerID string, limit int) ([]*models.Campaign, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT * FROM campaigns WHERE 1=1`
	args := []any{}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	if ownerID != "" {
		query += ` AND owner_id = ?`
		args = append(args, ownerID)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	var campaigns []*models.Campaign
	if err := r.db.SelectContext(ctx, &campaigns, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}
