package handlers

import (
	"net/http"
	"testing"

	"github.com/fynd/reviewboard/internal/config"
	"github.com/fynd/reviewboard/internal/models"
)

func TestGetStats(t *testing.T) {
	st := &memStore{recs: []models.Review{
		seedReview("2024-03-13", 5, "Thanks!"),
		seedReview("2024-03-13", 4, "Much appreciated."),
		seedReview("2024-03-14", 1, "We will do better."),
		seedReview("2024-03-14", 2, "Error: quota exceeded"),
	}}
	r := newTestRouter(st, &fixedGenerator{}, config.FilterLegacy)

	w := doRequest(r, "GET", "/api/admin/dashboard", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var dash DashboardResponse
	decodeData(t, w, &dash)

	if dash.Stats.Count != 3 {
		t.Errorf("Count = %d, expected 3 after filtering", dash.Stats.Count)
	}
	if dash.Stats.CriticalCount != 1 {
		t.Errorf("CriticalCount = %d, expected 1", dash.Stats.CriticalCount)
	}

	// Ascending by rating: 1, 4, 5.
	if len(dash.RatingDistribution) != 3 || dash.RatingDistribution[0].Rating != 1 || dash.RatingDistribution[2].Rating != 5 {
		t.Errorf("RatingDistribution = %+v", dash.RatingDistribution)
	}
	// Ascending by date.
	if len(dash.DailyVolume) != 2 || dash.DailyVolume[0].Date != "2024-03-13" || dash.DailyVolume[0].Count != 2 {
		t.Errorf("DailyVolume = %+v", dash.DailyVolume)
	}
	// Table is most recent first.
	if len(dash.Reviews) != 3 || dash.Reviews[0].Timestamp != "2024-03-14" {
		t.Errorf("Reviews = %+v", dash.Reviews)
	}
}

func TestGetStats_EmptyStore(t *testing.T) {
	r := newTestRouter(&memStore{}, &fixedGenerator{}, config.FilterLegacy)

	w := doRequest(r, "GET", "/api/admin/dashboard", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var dash DashboardResponse
	decodeData(t, w, &dash)
	if dash.Stats.Count != 0 || dash.Stats.MeanRating != 0 {
		t.Errorf("empty store should yield zero stats, got %+v", dash.Stats)
	}
}

func TestListRaw_IncludesErrorRows(t *testing.T) {
	st := &memStore{recs: []models.Review{
		seedReview("2024-03-13", 5, "Thanks!"),
		seedReview("2024-03-14", 1, "Error: quota exceeded"),
	}}
	r := newTestRouter(st, &fixedGenerator{}, config.FilterLegacy)

	w := doRequest(r, "GET", "/api/admin/reviews", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var list RawListResponse
	decodeData(t, w, &list)
	if list.Count != 2 {
		t.Errorf("Count = %d, raw list must include error rows", list.Count)
	}
	if len(list.Reviews) != 2 || list.Reviews[0].Timestamp != "2024-03-14" {
		t.Errorf("raw list should be most recent first: %+v", list.Reviews)
	}
}

func TestPurge_RemovesErrorRows(t *testing.T) {
	st := &memStore{}
	for i := 0; i < 7; i++ {
		st.recs = append(st.recs, seedReview("2024-03-13", 5, "Thanks!"))
	}
	st.recs = append(st.recs,
		seedReview("2024-03-14", 3, "Error: quota exceeded"),
		seedReview("2024-03-14", 3, "hit a 429"),
		seedReview("2024-03-14", 3, "saw a 404"),
	)
	r := newTestRouter(st, &fixedGenerator{}, config.FilterLegacy)

	w := doRequest(r, "POST", "/api/admin/purge", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var purge PurgeResponse
	decodeData(t, w, &purge)
	if purge.Removed != 3 {
		t.Errorf("Removed = %d, expected 3", purge.Removed)
	}
	if len(st.recs) != 7 {
		t.Errorf("store holds %d records after purge, expected 7", len(st.recs))
	}
}

func TestPurge_TypedModeKeepsLegitimateText(t *testing.T) {
	ok := seedReview("2024-03-13", 5, "Sorry about the 404 page!")
	ok.AIStatus = models.AIStatusOK
	bad := seedReview("2024-03-14", 1, "looks fine")
	bad.AIStatus = models.AIStatusFailed

	st := &memStore{recs: []models.Review{ok, bad}}
	r := newTestRouter(st, &fixedGenerator{}, config.FilterTyped)

	w := doRequest(r, "POST", "/api/admin/purge", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var purge PurgeResponse
	decodeData(t, w, &purge)
	if purge.Removed != 1 {
		t.Errorf("Removed = %d, expected 1", purge.Removed)
	}
	if len(st.recs) != 1 || st.recs[0].AIStatus != models.AIStatusOK {
		t.Errorf("typed purge kept the wrong rows: %+v", st.recs)
	}
}
