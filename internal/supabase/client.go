package supabase

import (
	"fmt"

	"github.com/google/uuid"
	postgrest "github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
	"sermon-art-backend/internal/models"
)

const assetsTable = "generated_assets"

type Client struct {
	Supabase *supabase.Client
}

func NewClient(url, key string) (*Client, error) {
	client, err := supabase.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Client{Supabase: client}, nil
}

// InsertAsset adds a row to the asset index and returns it as stored.
func (c *Client) InsertAsset(asset models.NewGeneratedAsset) (*models.GeneratedAsset, error) {
	var rows []models.GeneratedAsset
	_, err := c.Supabase.From(assetsTable).
		Insert(asset, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to insert asset: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to insert asset: no row returned")
	}

	return &rows[0], nil
}

// ListAssets returns the user's assets, newest first.
func (c *Client) ListAssets(userID uuid.UUID, limit int) ([]models.GeneratedAsset, error) {
	rows := []models.GeneratedAsset{}
	_, err := c.Supabase.From(assetsTable).
		Select("id,user_id,url,prompt,topic,created_at", "", false).
		Eq("user_id", userID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	return rows, nil
}
