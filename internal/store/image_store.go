package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/vbonduro/vitrine/internal/domain"
)

type ImageStore struct {
	db *sql.DB
}

func NewImageStore(db *sql.DB) *ImageStore {
	return &ImageStore{db: db}
}

const imageColumns = `id, title, url, category_id, subcategory_id, price, views, code, created_at, updated_at`

// Create inserts img and returns the stored row. img.CreatedAt is used as the
// creation time when set, otherwise the current time.
func (s *ImageStore) Create(ctx context.Context, img *domain.Image) (*domain.Image, error) {
	created := img.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO images (title, url, category_id, subcategory_id, price, views, code, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, img.Title, img.URL, img.CategoryID, img.SubcategoryID, img.Price, img.Views, img.Code,
		toMillis(created), toMillis(created))
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *ImageStore) GetByID(ctx context.Context, id int64) (*domain.Image, error) {
	img, err := scanImage(s.db.QueryRowContext(ctx, `SELECT `+imageColumns+` FROM images WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return img, nil
}

// List returns images matching filter exactly, newest first.
func (s *ImageStore) List(ctx context.Context, filter domain.ImageFilter) ([]*domain.Image, error) {
	var where []string
	var args []any
	if filter.CategoryID != nil {
		where = append(where, "category_id = ?")
		args = append(args, *filter.CategoryID)
	}
	if filter.SubcategoryID != nil {
		where = append(where, "subcategory_id = ?")
		args = append(args, *filter.SubcategoryID)
	}

	query := `SELECT ` + imageColumns + ` FROM images`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer closeRows(rows)

	images := []*domain.Image{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating images: %w", err)
	}

	return images, nil
}

// Delete removes the image. A missing id is not an error.
func (s *ImageStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM images WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// IncrementViews adds one to the view counter in a single statement and
// returns the updated row, or nil if the image does not exist.
func (s *ImageStore) IncrementViews(ctx context.Context, id int64) (*domain.Image, error) {
	img, err := scanImage(s.db.QueryRowContext(ctx, `
		UPDATE images SET views = views + 1, updated_at = ? WHERE id = ?
		RETURNING `+imageColumns, toMillis(time.Now()), id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to increment views: %w", err)
	}
	return img, nil
}

func (s *ImageStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM images`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count images: %w", err)
	}
	return n, nil
}

// SumViewsSince totals the views of images created at or after from.
func (s *ImageStore) SumViewsSince(ctx context.Context, from time.Time) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(views), 0) FROM images WHERE created_at >= ?
	`, toMillis(from)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to sum views: %w", err)
	}
	return n, nil
}

// SumViewsBetween totals the views of images created in [from, to).
func (s *ImageStore) SumViewsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(views), 0) FROM images WHERE created_at >= ? AND created_at < ?
	`, toMillis(from), toMillis(to)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to sum views: %w", err)
	}
	return n, nil
}

func scanImage(row scanner) (*domain.Image, error) {
	img := &domain.Image{}
	var createdAt, updatedAt int64
	if err := row.Scan(&img.ID, &img.Title, &img.URL, &img.CategoryID, &img.SubcategoryID, &img.Price,
		&img.Views, &img.Code, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	img.CreatedAt = fromMillis(createdAt)
	img.UpdatedAt = fromMillis(updatedAt)
	return img, nil
}
