package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/vitrine/internal/domain"
	"github.com/vbonduro/vitrine/internal/store"
)

func newCategoryService(t *testing.T) *CategoryService {
	t.Helper()
	return NewCategoryService(store.NewCategoryStore(openTestDB(t)), testLogger())
}

func TestParseParent(t *testing.T) {
	tests := []struct {
		in      string
		want    *int64
		wantErr bool
	}{
		{"", nil, false},
		{"root", nil, false},
		{" 42 ", ptr(int64(42)), false},
		{"abc", nil, true},
		{"-1", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseParent(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryServiceCreateAndList(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	jewelry, err := svc.Create(ctx, "  Jewelry ", "💍", "root")
	require.NoError(t, err)
	assert.Equal(t, "Jewelry", jewelry.Name)
	assert.True(t, jewelry.IsRoot())

	necklaces, err := svc.Create(ctx, "Necklaces", "📿", strconv.FormatInt(jewelry.ID, 10))
	require.NoError(t, err)
	require.NotNil(t, necklaces.ParentID)
	assert.Equal(t, jewelry.ID, *necklaces.ParentID)

	roots, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, 1, roots[0].SubCategoryCount)

	children, err := svc.List(ctx, strconv.FormatInt(jewelry.ID, 10))
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "Necklaces", children[0].Name)
	assert.Equal(t, 0, children[0].SubCategoryCount)
}

func TestCategoryServiceCreate_Validation(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	root, err := svc.Create(ctx, "Jewelry", "💍", "")
	require.NoError(t, err)
	sub, err := svc.Create(ctx, "Rings", "💍", strconv.FormatInt(root.ID, 10))
	require.NoError(t, err)

	tests := []struct {
		name   string
		cname  string
		icon   string
		parent string
	}{
		{"missing name", " ", "x", ""},
		{"missing icon", "Bags", "", ""},
		{"bad parent", "Bags", "x", "abc"},
		{"unknown parent", "Bags", "x", "9999"},
		{"third level", "Gold Rings", "x", strconv.FormatInt(sub.ID, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.cname, tt.icon, tt.parent)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCategoryServiceCreate_DuplicateName(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Jewelry", "💍", "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Jewelry", "✨", "")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCategoryServiceDelete(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	cat, err := svc.Create(ctx, "Bags", "👜", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, cat.ID))

	_, err = svc.Get(ctx, cat.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryServiceDelete_WithChildrenConflict(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	parent, err := svc.Create(ctx, "Jewelry", "💍", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Necklaces", "📿", strconv.FormatInt(parent.ID, 10))
	require.NoError(t, err)

	err = svc.Delete(ctx, parent.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "Cannot delete category with subcategories", err.Error())

	still, err := svc.Get(ctx, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jewelry", still.Name)
}

func TestCategoryServiceDelete_Missing(t *testing.T) {
	svc := newCategoryService(t)

	assert.NoError(t, svc.Delete(context.Background(), 12345))
}
