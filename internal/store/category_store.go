package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vbonduro/vitrine/internal/domain"
)

type CategoryStore struct {
	db *sql.DB
}

func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// categorySelect returns each category with the number of its direct children.
const categorySelect = `
	SELECT c.id, c.name, c.icon, c.parent_id, c.created_at, c.updated_at,
		(SELECT COUNT(*) FROM categories sub WHERE sub.parent_id = c.id)
	FROM categories c`

func (s *CategoryStore) Create(ctx context.Context, name, icon string, parentID *int64) (*domain.Category, error) {
	now := toMillis(time.Now())
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (name, icon, parent_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
	`, name, icon, parentID, now, now)
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *CategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	cat, err := scanCategory(s.db.QueryRowContext(ctx, categorySelect+` WHERE c.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return cat, nil
}

// ListChildren returns the direct children of parentID, or the root
// categories when parentID is nil, newest first.
func (s *CategoryStore) ListChildren(ctx context.Context, parentID *int64) ([]*domain.Category, error) {
	query := categorySelect + ` WHERE c.parent_id IS NULL ORDER BY c.created_at DESC, c.id DESC`
	args := []any{}
	if parentID != nil {
		query = categorySelect + ` WHERE c.parent_id = ? ORDER BY c.created_at DESC, c.id DESC`
		args = append(args, *parentID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer closeRows(rows)

	categories := []*domain.Category{}
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// Delete removes the category unless another category names it as parent.
// The check and the removal are one statement, so a child inserted
// concurrently cannot be orphaned. Deleting a missing id is not an error.
func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM categories
		WHERE id = ? AND NOT EXISTS (SELECT 1 FROM categories WHERE parent_id = ?)
	`, id, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	var children int
	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM categories WHERE parent_id = ?
	`, id).Scan(&children); err != nil {
		return fmt.Errorf("failed to count subcategories: %w", err)
	}
	if children > 0 {
		return ErrHasChildren
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(row scanner) (*domain.Category, error) {
	cat := &domain.Category{}
	var createdAt, updatedAt int64
	if err := row.Scan(&cat.ID, &cat.Name, &cat.Icon, &cat.ParentID, &createdAt, &updatedAt, &cat.SubCategoryCount); err != nil {
		return nil, err
	}
	cat.CreatedAt = fromMillis(createdAt)
	cat.UpdatedAt = fromMillis(updatedAt)
	return cat, nil
}
