package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/portalsync/internal/models"
	"github.com/iudanet/portalsync/internal/server/storage"
)

// GetProfile retrieves the stored profile of the owner
func (s *Storage) GetProfile(ctx context.Context, role models.Role, ownerID string) (models.Fields, error) {
	query := `SELECT payload FROM profiles WHERE role = ? AND owner_id = ?`

	var payload string
	if err := s.db.QueryRowContext(ctx, query, string(role), ownerID).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var fields models.Fields
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	if fields == nil {
		fields = models.Fields{}
	}

	return fields, nil
}

// SaveProfile creates or replaces the profile of the owner
func (s *Storage) SaveProfile(ctx context.Context, role models.Role, ownerID string, fields models.Fields) error {
	if fields == nil {
		fields = models.Fields{}
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	query := `
		INSERT INTO profiles (role, owner_id, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (role, owner_id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, string(role), ownerID, string(payload), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

const studioColumns = `id, firm_id, name, location, description, status, created_at, updated_at, published_at`

// ListStudios returns studios of the firm in creation order
func (s *Storage) ListStudios(ctx context.Context, firmID string) ([]models.Studio, error) {
	query := `SELECT ` + studioColumns + ` FROM studios WHERE firm_id = ? ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, firmID)
	if err != nil {
		return nil, fmt.Errorf("failed to query studios: %w", err)
	}
	defer rows.Close()

	studios := make([]models.Studio, 0)
	for rows.Next() {
		studio, err := scanStudio(rows)
		if err != nil {
			return nil, err
		}
		studios = append(studios, *studio)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate studios: %w", err)
	}

	return studios, nil
}

// GetStudio retrieves a single studio of the firm
func (s *Storage) GetStudio(ctx context.Context, firmID, id string) (*models.Studio, error) {
	query := `SELECT ` + studioColumns + ` FROM studios WHERE firm_id = ? AND id = ?`

	studio, err := scanStudio(s.db.QueryRowContext(ctx, query, firmID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrStudioNotFound
	}
	return studio, err
}

// CreateStudio inserts a new studio
func (s *Storage) CreateStudio(ctx context.Context, studio *models.Studio) error {
	query := `INSERT INTO studios (` + studioColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		studio.ID,
		studio.FirmID,
		studio.Name,
		studio.Location,
		studio.Description,
		string(studio.Status),
		studio.CreatedAt,
		studio.UpdatedAt,
		studio.PublishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert studio: %w", err)
	}

	return nil
}

// UpdateStudio overwrites the mutable columns of a studio
func (s *Storage) UpdateStudio(ctx context.Context, studio *models.Studio) error {
	query := `
		UPDATE studios
		SET name = ?, location = ?, description = ?, status = ?, updated_at = ?, published_at = ?
		WHERE firm_id = ? AND id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		studio.Name,
		studio.Location,
		studio.Description,
		string(studio.Status),
		studio.UpdatedAt,
		studio.PublishedAt,
		studio.FirmID,
		studio.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update studio: %w", err)
	}

	return checkStudioAffected(result)
}

// DeleteStudio removes a studio of the firm
func (s *Storage) DeleteStudio(ctx context.Context, firmID, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM studios WHERE firm_id = ? AND id = ?`, firmID, id)
	if err != nil {
		return fmt.Errorf("failed to delete studio: %w", err)
	}

	return checkStudioAffected(result)
}

func checkStudioAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrStudioNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudio(row rowScanner) (*models.Studio, error) {
	studio := &models.Studio{}
	var (
		status      string
		publishedAt sql.NullTime
	)

	err := row.Scan(
		&studio.ID,
		&studio.FirmID,
		&studio.Name,
		&studio.Location,
		&studio.Description,
		&status,
		&studio.CreatedAt,
		&studio.UpdatedAt,
		&publishedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan studio: %w", err)
	}

	studio.Status = models.StudioStatus(status)
	if publishedAt.Valid {
		studio.PublishedAt = &publishedAt.Time
	}

	return studio, nil
}
