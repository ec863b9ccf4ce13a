package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"sermon-art-backend/internal/logging"
	"sermon-art-backend/internal/models"
	"sermon-art-backend/internal/workflow"
)

var ErrAssetTooLarge = errors.New("asset exceeds maximum size")

type AssetStorage interface {
	UploadAsset(userID uuid.UUID, filename, contentType string, data []byte) (string, string, error)
	DeleteFile(storagePath string) error
}

type AssetIndex interface {
	InsertAsset(asset models.NewGeneratedAsset) (*models.GeneratedAsset, error)
	ListAssets(userID uuid.UUID, limit int) ([]models.GeneratedAsset, error)
}

type AssetServiceOptions struct {
	Storage       AssetStorage
	Index         AssetIndex
	HTTPClient    *http.Client
	MaxVideoBytes int64
	Logger        *slog.Logger
}

// AssetService copies generated posters and videos into storage and records
// them in the asset index.
type AssetService struct {
	storage       AssetStorage
	index         AssetIndex
	httpClient    *http.Client
	maxVideoBytes int64
	logger        *slog.Logger
}

func NewAssetService(opts AssetServiceOptions) *AssetService {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	maxVideo := opts.MaxVideoBytes
	if maxVideo <= 0 {
		maxVideo = 100 * 1024 * 1024
	}
	return &AssetService{
		storage:       opts.Storage,
		index:         opts.Index,
		httpClient:    httpClient,
		maxVideoBytes: maxVideo,
		logger:        logging.OrDiscard(opts.Logger),
	}
}

func contentTypeFor(kind workflow.ArtifactKind) (string, string) {
	if kind == workflow.ArtifactVideo {
		return "video/mp4", "mp4"
	}
	return "image/png", "png"
}

// SaveArtifact downloads the artifact, uploads it under the user's folder and
// inserts the index row pointing at the stored copy.
func (s *AssetService) SaveArtifact(ctx context.Context, a workflow.Artifact) error {
	contentType, ext := contentTypeFor(a.Kind)

	limit := int64(-1)
	if a.Kind == workflow.ArtifactVideo {
		limit = s.maxVideoBytes
	}

	data, err := s.fetch(ctx, a.URL, limit)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("%s.%s", uuid.New().String(), ext)
	storagePath, publicURL, err := s.storage.UploadAsset(a.UserID, filename, contentType, data)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", a.Kind, err)
	}

	asset, err := s.index.InsertAsset(models.NewGeneratedAsset{
		UserID: a.UserID,
		URL:    publicURL,
		Prompt: a.Prompt,
		Topic:  a.Topic,
	})
	if err != nil {
		if delErr := s.storage.DeleteFile(storagePath); delErr != nil {
			s.logger.Warn("Failed to remove orphaned asset", "path", storagePath, "error", delErr)
		}
		return fmt.Errorf("failed to index %s: %w", a.Kind, err)
	}

	s.logger.Info("Asset saved",
		"user_id", a.UserID.String(),
		"asset_id", asset.ID.String(),
		"kind", a.Kind,
		"bytes", len(data),
	)
	return nil
}

func (s *AssetService) List(userID uuid.UUID, limit int) ([]models.GeneratedAsset, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.index.ListAssets(userID, limit)
}

// fetch reads an http(s) or data: URL. A negative limit means unbounded.
func (s *AssetService) fetch(ctx context.Context, url string, limit int64) ([]byte, error) {
	if strings.HasPrefix(url, "data:") {
		data, err := decodeDataURL(url)
		if err != nil {
			return nil, err
		}
		if limit >= 0 && int64(len(data)) > limit {
			return nil, fmt.Errorf("%w: %d bytes", ErrAssetTooLarge, len(data))
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download asset: status %d", resp.StatusCode)
	}
	if limit >= 0 && resp.ContentLength > limit {
		return nil, fmt.Errorf("%w: %d bytes", ErrAssetTooLarge, resp.ContentLength)
	}

	var body io.Reader = resp.Body
	if limit >= 0 {
		body = io.LimitReader(resp.Body, limit+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset: %w", err)
	}
	if limit >= 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrAssetTooLarge, limit)
	}
	return data, nil
}

func decodeDataURL(url string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(url, "data:"), ",")
	if !ok {
		return nil, errors.New("invalid data url")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return []byte(payload), nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data url: %w", err)
	}
	return data, nil
}
