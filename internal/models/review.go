package models

import (
	"strconv"
	"strings"
)

// AI generation statuses recorded when typed-status moderation is enabled.
const (
	AIStatusOK     = "ok"
	AIStatusFailed = "failed"
)

// Default analysis values used when the generated analysis cannot be parsed.
const (
	DefaultSummary = "General Feedback"
	DefaultAction  = "Review Manually"
)

// Columns is the canonical backing-store header, in append order.
// Stores match incoming headers case-insensitively against these names.
var Columns = []string{
	"timestamp", "rating", "review_text",
	"ai_reply", "ai_summary", "ai_action",
	"user_name", "avatar",
}

// StatusColumn is appended to Columns when typed-status moderation is active.
const StatusColumn = "ai_status"

// Review is a single submitted review plus its generated content.
// Records are immutable once appended; the only destructive operation
// is the admin purge, which rewrites the whole collection.
type Review struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	Timestamp  string `gorm:"size:10" json:"timestamp"` // YYYY-MM-DD, submission-time clock
	Rating     int    `json:"rating"`
	ReviewText string `gorm:"type:text" json:"review_text"`
	AIReply    string `gorm:"type:text" json:"ai_reply"`
	AISummary  string `gorm:"size:500" json:"ai_summary"`
	AIAction   string `gorm:"size:500" json:"ai_action"`
	UserName   string `gorm:"size:100" json:"user_name"`
	Avatar     string `gorm:"size:20" json:"avatar"`
	AIStatus   string `gorm:"size:20" json:"ai_status,omitempty"`
}

func (Review) TableName() string { return "reviews" }

// Row serializes the record in canonical column order.
// withStatus appends the ai_status value as a ninth cell.
func (r *Review) Row(withStatus bool) []string {
	row := []string{
		r.Timestamp,
		strconv.Itoa(r.Rating),
		r.ReviewText,
		r.AIReply,
		r.AISummary,
		r.AIAction,
		r.UserName,
		r.Avatar,
	}
	if withStatus {
		row = append(row, r.AIStatus)
	}
	return row
}

// FromRow builds a record from a header-indexed row. header keys must
// already be lower-cased; cells missing from the row are left zero.
func FromRow(header map[string]int, row []string) Review {
	cell := func(name string) string {
		idx, ok := header[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	rating, _ := strconv.Atoi(cell("rating"))
	return Review{
		Timestamp:  cell("timestamp"),
		Rating:     rating,
		ReviewText: cell("review_text"),
		AIReply:    cell("ai_reply"),
		AISummary:  cell("ai_summary"),
		AIAction:   cell("ai_action"),
		UserName:   cell("user_name"),
		Avatar:     cell("avatar"),
		AIStatus:   cell("ai_status"),
	}
}

// HeaderIndex maps lower-cased column names to their position, so row
// lookups are case-insensitive regardless of how the backing store's
// header row is cased.
func HeaderIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}
