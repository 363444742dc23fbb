package service

import (
	"context"
	"time"

	"github.com/vbonduro/vitrine/internal/domain"
)

// statsRepository is the subset of store.ImageStore that StatsService requires.
type statsRepository interface {
	Count(ctx context.Context) (int64, error)
	SumViewsSince(ctx context.Context, from time.Time) (int64, error)
	SumViewsBetween(ctx context.Context, from, to time.Time) (int64, error)
}

// StatsService aggregates view counts. Windows select images by when they
// were created, not by when views happened.
type StatsService struct {
	images statsRepository
	now    func() time.Time
	loc    *time.Location
}

func NewStatsService(images statsRepository) *StatsService {
	return &StatsService{images: images, now: time.Now, loc: time.Local}
}

// WithClock replaces the time source and the location whose midnight starts
// the day.
func (s *StatsService) WithClock(now func() time.Time, loc *time.Location) *StatsService {
	s.now = now
	s.loc = loc
	return s
}

func (s *StatsService) ComputeStats(ctx context.Context) (*domain.Stats, error) {
	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	yesterday := today.AddDate(0, 0, -1)
	weekAgo := today.AddDate(0, 0, -7)
	monthAgo := today.AddDate(0, -1, 0)

	var stats domain.Stats
	var err error
	if stats.TotalImages, err = s.images.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TodayViews, err = s.images.SumViewsSince(ctx, today); err != nil {
		return nil, err
	}
	if stats.YesterdayViews, err = s.images.SumViewsBetween(ctx, yesterday, today); err != nil {
		return nil, err
	}
	if stats.WeekViews, err = s.images.SumViewsSince(ctx, weekAgo); err != nil {
		return nil, err
	}
	if stats.MonthViews, err = s.images.SumViewsSince(ctx, monthAgo); err != nil {
		return nil, err
	}
	return &stats, nil
}
