package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/analytics"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/security"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/state"
	"github.com/google/uuid"
)

// Recorder receives domain counters. *metrics.Collector implements it.
type Recorder interface {
	RecordReport(category string)
	RecordVote(category string)
}

type noopRecorder struct{}

func (noopRecorder) RecordReport(string) {}
func (noopRecorder) RecordVote(string)   {}

// SubmitInput is one submission from the analysis form.
type SubmitInput struct {
	Text  string
	Image *classifier.Image
}

// Verification is the outcome of toggling a report's verified flag.
type Verification struct {
	Report models.Report `json:"report"`
	Notice string        `json:"notice"`
}

type ReportService struct {
	store      *state.Store
	repo       repository.Repository
	classifier classifier.Classifier
	sanitizer  *security.Sanitizer
	moderation *ModerationService
	metrics    Recorder
	now        func() time.Time
}

func NewReportService(store *state.Store, repo repository.Repository, cl classifier.Classifier,
	sanitizer *security.Sanitizer, moderation *ModerationService, rec Recorder) *ReportService {
	if rec == nil {
		rec = noopRecorder{}
	}
	return &ReportService{
		store:      store,
		repo:       repo,
		classifier: cl,
		sanitizer:  sanitizer,
		moderation: moderation,
		metrics:    rec,
		now:        time.Now,
	}
}

// Submit classifies the input and records the resulting report. Nothing is
// recorded when classification or persistence fails.
func (s *ReportService) Submit(ctx context.Context, actorID string, in SubmitInput) (models.Report, error) {
	text := s.sanitizer.Text(in.Text)
	req := classifier.Request{Text: text, Image: in.Image}
	if err := req.Validate(); err != nil {
		return models.Report{}, err
	}
	if actorID != "" {
		if _, ok := s.store.Snapshot().User(actorID); !ok {
			return models.Report{}, state.ErrUnknownUser
		}
	}

	// Classification runs outside the store's write lock.
	verdict, err := s.classifier.Classify(ctx, req)
	if err != nil {
		return models.Report{}, err
	}

	report := models.Report{
		ID:        uuid.NewString(),
		Content:   text,
		Timestamp: s.now().UTC(),
		UserID:    actorID,
	}
	verdict.Apply(&report)
	if in.Image != nil {
		report.ImageURL = fmt.Sprintf("data:%s;base64,%s", in.Image.MimeType, base64.StdEncoding.EncodeToString(in.Image.Data))
	}

	err = s.store.Update(func(cur *state.State) (*state.State, error) {
		next, err := state.SubmitReport(cur, report)
		if err != nil {
			return nil, err
		}
		var actor *models.User
		if actorID != "" {
			u, _ := next.User(actorID)
			actor = &u
		}
		if err := s.repo.RecordReport(ctx, report, actor); err != nil {
			return nil, fmt.Errorf("persist report: %w", err)
		}
		return next, nil
	})
	if err != nil {
		return models.Report{}, err
	}

	s.metrics.RecordReport(string(report.Category))
	slog.Info("report recorded", "report_id", report.ID, "category", report.Category, "risk_score", report.RiskScore, "user_id", actorID)
	return report, nil
}

// Filters returns the saved selection of userID, or the defaults.
func (s *ReportService) Filters(userID string) analytics.FilterState {
	return s.store.Snapshot().FiltersFor(userID)
}

// SaveFilters stores userID's selection. Filters live for the process only.
func (s *ReportService) SaveFilters(userID string, f analytics.FilterState) (analytics.FilterState, error) {
	var saved analytics.FilterState
	err := s.store.Update(func(cur *state.State) (*state.State, error) {
		next, err := state.SetFilters(cur, userID, f)
		if err != nil {
			return nil, err
		}
		saved = next.FiltersFor(userID)
		return next, nil
	})
	return saved, err
}

// List applies f, or userID's saved filters when f is nil.
func (s *ReportService) List(userID string, f *analytics.FilterState) ([]models.Report, analytics.FilterState, error) {
	snap := s.store.Snapshot()
	applied := snap.FiltersFor(userID)
	if f != nil {
		applied = f.Normalize()
		if err := applied.Validate(); err != nil {
			return nil, applied, err
		}
	}
	return analytics.FilterAndSort(snap.Reports, applied, s.now()), applied, nil
}

func (s *ReportService) ByCategory(category string) ([]models.Report, error) {
	c, ok := models.ParseCategory(category)
	if !ok {
		return nil, state.ErrInvalidCategory
	}
	return analytics.ReportsByCategory(s.store.Snapshot().Reports, c), nil
}

func (s *ReportService) Get(id string) (models.Report, error) {
	r, ok := s.store.Snapshot().Report(id)
	if !ok {
		return models.Report{}, state.ErrReportNotFound
	}
	return r, nil
}

func (s *ReportService) AddComment(ctx context.Context, reportID, authorID, content string) (models.Comment, error) {
	content = s.sanitizer.Text(content)
	if strings.TrimSpace(content) == "" {
		return models.Comment{}, state.ErrEmptyComment
	}
	if err := s.moderation.reject(s.moderation.FilterContent(content)); err != nil {
		return models.Comment{}, err
	}

	var created models.Comment
	err := s.store.Update(func(cur *state.State) (*state.State, error) {
		next, c, err := state.AddReportComment(cur, reportID, state.NewComment{
			ID:       uuid.NewString(),
			AuthorID: authorID,
			Content:  content,
			At:       s.now().UTC(),
		})
		if err != nil {
			return nil, err
		}
		author, _ := next.User(authorID)
		if err := s.repo.RecordComment(ctx, c, author); err != nil {
			return nil, fmt.Errorf("persist comment: %w", err)
		}
		created = c
		return next, nil
	})
	return created, err
}

// ToggleVerification flips the report's verified flag and builds the notice
// shown to the admin.
func (s *ReportService) ToggleVerification(ctx context.Context, reportID string) (Verification, error) {
	var out Verification
	err := s.store.Update(func(cur *state.State) (*state.State, error) {
		next, r, err := state.ToggleVerification(cur, reportID)
		if err != nil {
			return nil, err
		}
		if err := s.repo.SetVerified(ctx, reportID, r.IsVerified); err != nil {
			return nil, fmt.Errorf("persist verification: %w", err)
		}
		out.Report = r
		out.Notice = verificationNotice(next, r)
		return next, nil
	})
	if err != nil {
		return Verification{}, err
	}
	slog.Info("report verification toggled", "report_id", reportID, "verified", out.Report.IsVerified)
	return out, nil
}

func verificationNotice(s *state.State, r models.Report) string {
	if !r.IsVerified {
		return "Verification removed"
	}
	if author, ok := s.User(r.UserID); ok && r.UserID != "" {
		return fmt.Sprintf("Report Verified. Notification sent to %s.", author.Username)
	}
	return "Report Verified."
}

// Dashboard aggregates the current reports. communityMembers is the roster
// size.
func (s *ReportService) Dashboard() analytics.Dashboard {
	snap := s.store.Snapshot()
	return analytics.BuildDashboard(snap.Reports, len(snap.Users), s.now())
}
