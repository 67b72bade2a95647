package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rdpaiva/future-self/internal/domain"
	"github.com/rdpaiva/future-self/internal/infra"
	"github.com/rdpaiva/future-self/internal/sqlinline"
	"github.com/rdpaiva/future-self/internal/storage"
	"github.com/rdpaiva/future-self/internal/vision"
)

// Manifestations persists saved generations: both images go to object storage
// under an owner-scoped path, then a metadata row references the resulting
// public locations. The row is immutable after creation except for deletion.
type Manifestations struct {
	sql        infra.SQLExecutor
	objects    storage.ObjectStore
	baseURL    string
	normalizer *vision.Normalizer
	logger     infra.Logger

	affirm func() string
}

func NewManifestations(sql infra.SQLExecutor, objects storage.ObjectStore, baseURL string, normalizer *vision.Normalizer, logger infra.Logger) *Manifestations {
	return &Manifestations{
		sql:        sql,
		objects:    objects,
		baseURL:    baseURL,
		normalizer: normalizer,
		logger:     logger,
		affirm:     domain.RandomAffirmation,
	}
}

// Create uploads both images and inserts the metadata record. The caption is
// drawn from the fixed affirmation pool. If the insert fails the create fails;
// already-uploaded objects are left behind as a logged, non-fatal leak.
func (m *Manifestations) Create(ctx context.Context, userID, originalImage, generatedImage string, dreamIDs []string) (*domain.Manifestation, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(originalImage) == "" || strings.TrimSpace(generatedImage) == "" {
		return nil, domain.ErrMissingImage
	}
	if len(dreamIDs) == 0 {
		return nil, domain.ErrNoDreams
	}

	now := time.Now().UnixMilli()
	originalURL, err := m.uploadImage(ctx, userID, fmt.Sprintf("profile-%d", now), originalImage)
	if err != nil {
		return nil, fmt.Errorf("store original image: %w", err)
	}
	generatedURL, err := m.uploadImage(ctx, userID, fmt.Sprintf("generated-%d", now), generatedImage)
	if err != nil {
		return nil, fmt.Errorf("store generated image: %w", err)
	}

	record := &domain.Manifestation{
		ID:                uuid.NewString(),
		UserID:            userID,
		OriginalImageURL:  originalURL,
		GeneratedImageURL: generatedURL,
		Dreams:            append([]string(nil), dreamIDs...),
		Affirmation:       m.affirm(),
	}

	row := m.sql.QueryRow(ctx, sqlinline.QInsertManifestation,
		record.ID, userID, originalURL, generatedURL, record.Dreams, record.Affirmation)
	if err := row.Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt); err != nil {
		m.logger.Error().Err(err).
			Str("user_id", userID).
			Str("original", originalURL).
			Str("generated", generatedURL).
			Msg("store: manifestation insert failed; uploaded objects orphaned")
		return nil, fmt.Errorf("save manifestation: %w", err)
	}

	m.logger.Info().Str("id", record.ID).Str("user_id", userID).Msg("store: manifestation saved")
	return record, nil
}

// List returns the owner's manifestations, newest first.
func (m *Manifestations) List(ctx context.Context, userID string) ([]domain.Manifestation, error) {
	rows, err := m.sql.Query(ctx, sqlinline.QListManifestationsByUser, userID)
	if err != nil {
		return nil, fmt.Errorf("list manifestations: %w", err)
	}
	defer rows.Close()

	var items []domain.Manifestation
	for rows.Next() {
		var item domain.Manifestation
		if err := rows.Scan(&item.ID, &item.UserID, &item.OriginalImageURL, &item.GeneratedImageURL,
			&item.Dreams, &item.Affirmation, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan manifestation: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Get loads one record by id regardless of owner; callers enforce ownership.
func (m *Manifestations) Get(ctx context.Context, id string) (*domain.Manifestation, error) {
	row := m.sql.QueryRow(ctx, sqlinline.QSelectManifestationByID, id)
	var item domain.Manifestation
	if err := row.Scan(&item.ID, &item.UserID, &item.OriginalImageURL, &item.GeneratedImageURL,
		&item.Dreams, &item.Affirmation, &item.CreatedAt, &item.UpdatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load manifestation: %w", err)
	}
	return &item, nil
}

// Delete removes both stored objects best-effort, then deletes the metadata
// record. Object-deletion failure is logged and never blocks the record
// deletion.
func (m *Manifestations) Delete(ctx context.Context, id string) error {
	record, err := m.Get(ctx, id)
	if err != nil {
		return err
	}

	for _, url := range []string{record.OriginalImageURL, record.GeneratedImageURL} {
		key, err := storage.KeyFromURL(m.baseURL, url)
		if err != nil {
			m.logger.Warn().Str("url", url).Msg("store: image url not owned by storage; skipping object delete")
			continue
		}
		if err := m.objects.Delete(ctx, key); err != nil {
			m.logger.Error().Err(err).Str("key", key).Msg("store: failed to delete stored image")
		}
	}

	if _, err := m.sql.Exec(ctx, sqlinline.QDeleteManifestation, id); err != nil {
		return fmt.Errorf("delete manifestation: %w", err)
	}

	m.logger.Info().Str("id", id).Msg("store: manifestation deleted")
	return nil
}

func (m *Manifestations) uploadImage(ctx context.Context, userID, name, image string) (string, error) {
	data, mimeType, err := m.normalizer.Normalize(ctx, image)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/%s.%s", userID, name, extensionFor(mimeType))
	return m.objects.Upload(ctx, key, data, mimeType)
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	default:
		return "jpg"
	}
}
