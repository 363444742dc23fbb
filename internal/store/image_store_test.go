package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/vitrine/internal/domain"
)

func newImage(code string, categoryID int64) *domain.Image {
	return &domain.Image{
		Title:      "Gold Chain",
		URL:        "https://cdn.example.com/" + code + ".jpg",
		CategoryID: categoryID,
		Code:       code,
	}
}

func TestImageStoreCreate(t *testing.T) {
	images := NewImageStore(openTestDB(t))
	ctx := context.Background()

	in := newImage("AAA-BBB-CCC", 1)
	in.SubcategoryID = ptr(int64(2))
	in.Price = ptr(19.5)

	img, err := images.Create(ctx, in)
	require.NoError(t, err)
	assert.NotZero(t, img.ID)
	assert.Equal(t, "Gold Chain", img.Title)
	assert.Equal(t, int64(1), img.CategoryID)
	require.NotNil(t, img.SubcategoryID)
	assert.Equal(t, int64(2), *img.SubcategoryID)
	require.NotNil(t, img.Price)
	assert.InDelta(t, 19.5, *img.Price, 1e-9)
	assert.Zero(t, img.Views)
	assert.Equal(t, "AAA-BBB-CCC", img.Code)
}

func TestImageStoreCreate_OptionalFieldsAbsent(t *testing.T) {
	images := NewImageStore(openTestDB(t))

	img, err := images.Create(context.Background(), newImage("AAA-BBB-CCC", 1))
	require.NoError(t, err)
	assert.Nil(t, img.SubcategoryID)
	assert.Nil(t, img.Price)
}

func TestImageStoreCreate_DuplicateCode(t *testing.T) {
	images := NewImageStore(openTestDB(t))
	ctx := context.Background()

	_, err := images.Create(ctx, newImage("AAA-BBB-CCC", 1))
	require.NoError(t, err)

	_, err = images.Create(ctx, newImage("AAA-BBB-CCC", 1))
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestImageStoreList(t *testing.T) {
	images := NewImageStore(openTestDB(t))
	ctx := context.Background()

	a := newImage("AAA-AAA-AAA", 1)
	a.SubcategoryID = ptr(int64(10))
	b := newImage("BBB-BBB-BBB", 1)
	c := newImage("CCC-CCC-CCC", 2)
	c.SubcategoryID = ptr(int64(10))
	for _, img := range []*domain.Image{a, b, c} {
		_, err := images.Create(ctx, img)
		require.NoError(t, err)
	}

	all, err := images.List(ctx, domain.ImageFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "CCC-CCC-CCC", all[0].Code, "newest first")
	assert.Equal(t, "AAA-AAA-AAA", all[2].Code)

	byCategory, err := images.List(ctx, domain.ImageFilter{CategoryID: ptr(int64(1))})
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	bySub, err := images.List(ctx, domain.ImageFilter{SubcategoryID: ptr(int64(10))})
	require.NoError(t, err)
	assert.Len(t, bySub, 2)

	both, err := images.List(ctx, domain.ImageFilter{CategoryID: ptr(int64(2)), SubcategoryID: ptr(int64(10))})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "CCC-CCC-CCC", both[0].Code)

	none, err := images.List(ctx, domain.ImageFilter{CategoryID: ptr(int64(10))})
	require.NoError(t, err)
	assert.Empty(t, none, "category filter does not match subcategory ids")
}

func TestImageStoreDelete(t *testing.T) {
	images := NewImageStore(openTestDB(t))
	ctx := context.Background()

	img, err := images.Create(ctx, newImage("AAA-BBB-CCC", 1))
	require.NoError(t, err)

	require.NoError(t, images.Delete(ctx, img.ID))

	deleted, err := images.GetByID(ctx, img.ID)
	require.NoError(t, err)
	assert.Nil(t, deleted)

	assert.NoError(t, images.Delete(ctx, img.ID), "deleting a missing image is a no-op")
}

func TestImageStoreIncrementViews(t *testing.T) {
	images := NewImageStore(openTestDB(t))
	ctx := context.Background()

	img, err := images.Create(ctx, newImage("AAA-BBB-CCC", 1))
	require.NoError(t, err)

	updated, err := images.IncrementViews(ctx, img.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, int64(1), updated.Views)
	assert.Equal(t, img.Code, updated.Code)

	missing, err := images.IncrementViews(ctx, 99999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestImageStoreIncrementViews_Concurrent(t *testing.T) {
	images := NewImageStore(openTestDB(t))
	ctx := context.Background()

	img, err := images.Create(ctx, newImage("AAA-BBB-CCC", 1))
	require.NoError(t, err)

	const workers = 50
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := images.IncrementViews(ctx, img.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("increment failed: %v", err)
	}

	got, err := images.GetByID(ctx, img.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(workers), got.Views)
}

func TestImageStoreViewSums(t *testing.T) {
	images := NewImageStore(openTestDB(t))
	ctx := context.Background()

	midnight := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	seed := []struct {
		created time.Time
		views   int64
	}{
		{midnight, 5},
		{midnight.Add(3 * time.Hour), 7},
		{midnight.Add(-time.Hour), 20},
		{midnight.AddDate(0, 0, -10), 100},
	}
	for i, s := range seed {
		img := newImage(fmt.Sprintf("AAA-AAA-%03d", i), 1)
		img.CreatedAt = s.created
		img.Views = s.views
		_, err := images.Create(ctx, img)
		require.NoError(t, err)
	}

	n, err := images.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	since, err := images.SumViewsSince(ctx, midnight)
	require.NoError(t, err)
	assert.Equal(t, int64(12), since, "lower bound is inclusive")

	between, err := images.SumViewsBetween(ctx, midnight.AddDate(0, 0, -1), midnight)
	require.NoError(t, err)
	assert.Equal(t, int64(20), between, "upper bound is exclusive")

	empty, err := images.SumViewsSince(ctx, midnight.AddDate(1, 0, 0))
	require.NoError(t, err)
	assert.Zero(t, empty)
}
