package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/fynd/reviewboard/internal/models"
	"github.com/fynd/reviewboard/internal/store"
	"github.com/fynd/reviewboard/pkg/logger"
)

// Display identities assigned uniformly at random to new submissions.
var (
	displayNames   = []string{"Alex R.", "Sam K.", "Jordan P.", "Casey M.", "Taylor S.", "Priya D.", "Rohan G."}
	displayAvatars = []string{"🐶", "🐱", "🦊", "🐻", "🐼", "🐨", "🐯"}
)

var ErrEmptyReview = errors.New("review text must not be empty")

// IntakeService runs the submission pipeline: two generation calls, the
// analysis parse, identity assignment, then the store append. Generation
// and persistence are not atomic; content generated for an append that
// never happens is simply lost.
type IntakeService struct {
	store       store.RecordStore
	generator   ContentGenerator
	rngMu       sync.Mutex // rand.Rand is not safe for concurrent use
	rng         *rand.Rand
	now         func() time.Time
	typedStatus bool
}

// NewIntakeService wires the pipeline. rng and now are injectable so tests
// can pin identity selection and the timestamp; pass nil for defaults.
func NewIntakeService(st store.RecordStore, gen ContentGenerator, rng *rand.Rand, now func() time.Time, typedStatus bool) *IntakeService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &IntakeService{
		store:       st,
		generator:   gen,
		rng:         rng,
		now:         now,
		typedStatus: typedStatus,
	}
}

// SubmitResult carries the assembled record plus a non-fatal notice when
// the append failed. The record is returned either way.
type SubmitResult struct {
	Record models.Review `json:"record"`
	Notice string        `json:"notice,omitempty"`
}

func (s *IntakeService) Submit(ctx context.Context, reviewText string, rating int) (*SubmitResult, error) {
	if strings.TrimSpace(reviewText) == "" {
		return nil, ErrEmptyReview
	}

	reply, replyErr := s.generator.Generate(ctx, buildReplyPrompt(reviewText, rating))
	if replyErr != nil {
		logger.Warn().Err(replyErr).Msg("reply generation failed")
		reply = "Error: " + replyErr.Error()
	}

	analysis, analysisErr := s.generator.Generate(ctx, buildAnalysisPrompt(reviewText, rating))
	if analysisErr != nil {
		logger.Warn().Err(analysisErr).Msg("analysis generation failed")
		analysis = "Error: " + analysisErr.Error()
	}
	summary, action := parseAnalysis(analysis)

	name, avatar := s.pickIdentity()
	rec := models.Review{
		Timestamp:  s.now().Format("2006-01-02"),
		Rating:     rating,
		ReviewText: reviewText,
		AIReply:    reply,
		AISummary:  summary,
		AIAction:   action,
		UserName:   name,
		Avatar:     avatar,
	}
	if s.typedStatus {
		rec.AIStatus = models.AIStatusOK
		if replyErr != nil || analysisErr != nil {
			rec.AIStatus = models.AIStatusFailed
		}
	}

	result := &SubmitResult{Record: rec}
	if err := s.store.Append(ctx, rec); err != nil {
		// Append failure never aborts the pipeline; the caller gets the
		// record plus a notice.
		logger.Error().Err(err).Msg("failed to save review")
		result.Notice = "Database connection failed. Review was not saved."
	}
	return result, nil
}

// pickIdentity draws a display name and avatar. Submissions run on
// per-request goroutines, so the rng is locked.
func (s *IntakeService) pickIdentity() (name, avatar string) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return displayNames[s.rng.Intn(len(displayNames))],
		displayAvatars[s.rng.Intn(len(displayAvatars))]
}

func buildReplyPrompt(reviewText string, rating int) string {
	return fmt.Sprintf(`You are a business owner replying to a customer review.
Review: %q (Rating: %d/5).
Write a short, professional, and grateful response. Max 2 sentences.`, reviewText, rating)
}

func buildAnalysisPrompt(reviewText string, rating int) string {
	return fmt.Sprintf(`Analyze this review: %q (Rating: %d/5).
1. Summarize key point in 5 words.
2. Suggest one specific business action.

Format:
Summary: <text>
Action: <text>`, reviewText, rating)
}

// parseAnalysis extracts the summary and action from the two-line analysis
// output. Each field is the substring after the first ": " on the first
// line mentioning its label; a field that cannot be extracted falls back
// independently without blocking the other.
func parseAnalysis(analysis string) (summary, action string) {
	lines := strings.Split(analysis, "\n")
	summary = extractField(lines, "Summary:", models.DefaultSummary)
	action = extractField(lines, "Action:", models.DefaultAction)
	return summary, action
}

func extractField(lines []string, label, fallback string) string {
	for _, line := range lines {
		if !strings.Contains(line, label) {
			continue
		}
		if idx := strings.Index(line, ": "); idx != -1 {
			return strings.TrimSpace(line[idx+2:])
		}
		return fallback
	}
	return fallback
}
