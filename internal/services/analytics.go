package services

import (
	"context"
	"sort"
	"strings"

	"github.com/fynd/reviewboard/internal/config"
	"github.com/fynd/reviewboard/internal/models"
	"github.com/fynd/reviewboard/internal/store"
	"github.com/fynd/reviewboard/pkg/logger"
)

// Substrings that mark a generated reply as failed in legacy filter mode.
// This is a heuristic: a legitimate reply containing "error", "429" or
// "404" as ordinary text is excluded too. Typed filter mode avoids that
// by checking the ai_status field written at intake time.
var errorSignatures = []string{"error", "429", "404"}

// AnalyticsService is the read side: it reloads the full collection on
// every call (no caching), cleans out failed generations and aggregates
// for the public feed and the admin dashboard.
type AnalyticsService struct {
	store      store.RecordStore
	filterMode string
}

func NewAnalyticsService(st store.RecordStore, filterMode string) *AnalyticsService {
	return &AnalyticsService{store: st, filterMode: filterMode}
}

// AnalyticsSummary holds the admin overview metrics. Zero-valued when the
// clean collection is empty; callers check Count before trusting MeanRating.
type AnalyticsSummary struct {
	Count         int     `json:"count"`
	MeanRating    float64 `json:"mean_rating"`
	CriticalCount int     `json:"critical_count"` // ratings <= 2
}

type RatingBucket struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

type DateBucket struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// loadAll is the fail-soft read: any store error is logged and absorbed,
// and the caller sees an empty collection.
func (s *AnalyticsService) loadAll(ctx context.Context) []models.Review {
	recs, err := s.store.LoadAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("load reviews failed, serving empty collection")
		return nil
	}
	return recs
}

// All returns the raw collection, most recent submission first.
func (s *AnalyticsService) All(ctx context.Context) []models.Review {
	return Reversed(s.loadAll(ctx))
}

// CleanRecords returns the collection minus failed generations, in
// append order.
func (s *AnalyticsService) CleanRecords(ctx context.Context) []models.Review {
	return s.Clean(s.loadAll(ctx))
}

// Clean excludes records whose generation failed, according to the
// configured filter mode.
func (s *AnalyticsService) Clean(recs []models.Review) []models.Review {
	clean := make([]models.Review, 0, len(recs))
	for _, rec := range recs {
		if s.failed(&rec) {
			continue
		}
		clean = append(clean, rec)
	}
	return clean
}

func (s *AnalyticsService) failed(rec *models.Review) bool {
	if s.filterMode == config.FilterTyped {
		return rec.AIStatus == models.AIStatusFailed
	}
	reply := strings.ToLower(rec.AIReply)
	for _, sig := range errorSignatures {
		if strings.Contains(reply, sig) {
			return true
		}
	}
	return false
}

// Purge rewrites the store keeping only clean records and returns how many
// were dropped. A concurrent append can race the rewrite and be lost; the
// store offers no coordination, so this is accepted behavior.
func (s *AnalyticsService) Purge(ctx context.Context) (int, error) {
	recs, err := s.store.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	clean := s.Clean(recs)
	if len(clean) == len(recs) {
		return 0, nil
	}
	if err := s.store.Rewrite(ctx, clean); err != nil {
		return 0, err
	}
	return len(recs) - len(clean), nil
}

// Aggregate computes the overview metrics for a clean collection.
func Aggregate(recs []models.Review) AnalyticsSummary {
	if len(recs) == 0 {
		return AnalyticsSummary{}
	}

	var sum, critical int
	for _, rec := range recs {
		sum += rec.Rating
		if rec.Rating <= 2 {
			critical++
		}
	}
	return AnalyticsSummary{
		Count:         len(recs),
		MeanRating:    float64(sum) / float64(len(recs)),
		CriticalCount: critical,
	}
}

// GroupByRating counts records per rating value, ascending by rating.
func GroupByRating(recs []models.Review) []RatingBucket {
	counts := make(map[int]int)
	for _, rec := range recs {
		counts[rec.Rating]++
	}

	buckets := make([]RatingBucket, 0, len(counts))
	for rating, n := range counts {
		buckets = append(buckets, RatingBucket{Rating: rating, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Rating < buckets[j].Rating })
	return buckets
}

// GroupByDate counts records per timestamp, ascending by date string.
func GroupByDate(recs []models.Review) []DateBucket {
	counts := make(map[string]int)
	for _, rec := range recs {
		counts[rec.Timestamp]++
	}

	buckets := make([]DateBucket, 0, len(counts))
	for date, n := range counts {
		buckets = append(buckets, DateBucket{Date: date, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Date < buckets[j].Date })
	return buckets
}

// Reversed returns a copy in reverse append order (most recent first).
// Display ordering only; the stored order never changes.
func Reversed(recs []models.Review) []models.Review {
	out := make([]models.Review, len(recs))
	for i, rec := range recs {
		out[len(recs)-1-i] = rec
	}
	return out
}
