package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vbonduro/vitrine/internal/domain"
)

type AdminStore struct {
	db *sql.DB
}

func NewAdminStore(db *sql.DB) *AdminStore {
	return &AdminStore{db: db}
}

const adminColumns = `id, username, password_hash, whatsapp, instagram, telegram, youtube, pinterest, created_at, updated_at`

func (s *AdminStore) Create(ctx context.Context, username, passwordHash string) (*domain.Admin, error) {
	now := toMillis(time.Now())
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO admins (username, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?)
	`, username, passwordHash, now, now)
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *AdminStore) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	return s.getOne(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = ?`, id)
}

// GetByUsername matches the username exactly (case-sensitive).
func (s *AdminStore) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	return s.getOne(ctx, `SELECT `+adminColumns+` FROM admins WHERE username = ?`, username)
}

func (s *AdminStore) getOne(ctx context.Context, query string, arg any) (*domain.Admin, error) {
	admin := &domain.Admin{}
	var createdAt, updatedAt int64
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&admin.ID, &admin.Username, &admin.PasswordHash,
		&admin.WhatsApp, &admin.Instagram, &admin.Telegram, &admin.YouTube, &admin.Pinterest,
		&createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	admin.CreatedAt = fromMillis(createdAt)
	admin.UpdatedAt = fromMillis(updatedAt)
	return admin, nil
}

func (s *AdminStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return n, nil
}

// UpdateSocialLinks overwrites all five link columns. Callers merge partial
// updates before calling.
func (s *AdminStore) UpdateSocialLinks(ctx context.Context, id int64, links domain.SocialLinks) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE admins
		SET whatsapp = ?, instagram = ?, telegram = ?, youtube = ?, pinterest = ?, updated_at = ?
		WHERE id = ?
	`, links.WhatsApp, links.Instagram, links.Telegram, links.YouTube, links.Pinterest, toMillis(time.Now()), id)
	if err != nil {
		return fmt.Errorf("failed to update social links: %w", err)
	}
	return expectOneRow(result, "admin")
}

func (s *AdminStore) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE admins SET password_hash = ?, updated_at = ? WHERE id = ?
	`, passwordHash, toMillis(time.Now()), id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return expectOneRow(result, "admin")
}

func expectOneRow(result sql.Result, what string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s not found", what)
	}
	return nil
}
