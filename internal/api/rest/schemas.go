package rest

import (
	"github.com/gigvora/gigvora-backend/internal/models"
	"github.com/gigvora/gigvora-backend/internal/schema"
)

// Route input schemas, built once at registration time and shared across
// requests.

var createCampaignSchema = schema.NewObject().
	Field("name", schema.String().Max(120)).
	Field("description", schema.OptionalString().Max(2000)).
	Field("status", schema.OptionalEnum(
		models.CampaignStatusDraft,
		models.CampaignStatusActive,
		models.CampaignStatusPaused,
	)).
	Field("budget", schema.OptionalNumber().Min(0).Max(1_000_000).Precision(2)).
	Field("tags", schema.StringSlice().MaxItems(10).MaxItemLen(40)).
	Refine("budget", func(out map[string]any) bool {
		if out["status"] != models.CampaignStatusActive {
			return true
		}
		_, hasBudget := out["budget"]
		return hasBudget
	}, "is required for active campaigns")

var listCampaignsQuerySchema = schema.NewObject().
	Field("status", schema.OptionalEnum(
		models.CampaignStatusDraft,
		models.CampaignStatusActive,
		models.CampaignStatusPaused,
		models.CampaignStatusCompleted,
	)).
	Field("limit", schema.OptionalNumber().Int().Min(1).Max(100)).
	Field("mine", schema.Bool())

var campaignParamsSchema = schema.NewObject().
	Field("campaignId", schema.String().Max(64))

var userParamsSchema = schema.NewObject().
	Field("userId", schema.String().Max(64))
