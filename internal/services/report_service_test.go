package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/analytics"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/state"
)

func TestReportService_Submit(t *testing.T) {
	h := newHarness()

	r, err := h.reports.Submit(context.Background(), "user-1", SubmitInput{Text: "<b>Pay</b> the urgent fee"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if r.Content != "Pay the urgent fee" {
		t.Errorf("content = %q", r.Content)
	}
	if r.Category != models.CategoryScam || r.RiskScore != 85 || r.UserID != "user-1" {
		t.Errorf("unexpected report %+v", r)
	}
	if !r.Timestamp.Equal(testNow) {
		t.Errorf("timestamp = %v", r.Timestamp)
	}

	snap := h.store.Snapshot()
	if snap.Reports[0].ID != r.ID {
		t.Error("report not prepended to state")
	}
	if u, _ := snap.User("user-1"); u.ReportsCount != 6 {
		t.Errorf("reportsCount = %d, want 6", u.ReportsCount)
	}
	if len(h.repo.reports) != 1 || h.repo.users["user-1"].ReportsCount != 6 {
		t.Errorf("repository not updated: %+v", h.repo.users)
	}
	if h.rec.reports["SCAM"] != 1 {
		t.Errorf("metrics not recorded: %v", h.rec.reports)
	}
}

func TestReportService_SubmitWithImage(t *testing.T) {
	h := newHarness()
	img := &classifier.Image{MimeType: "image/png", Data: []byte("png")}

	r, err := h.reports.Submit(context.Background(), "", SubmitInput{Image: img})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if r.ImageURL != "data:image/png;base64,cG5n" {
		t.Errorf("imageUrl = %q", r.ImageURL)
	}
	if h.cl.last.Image != img {
		t.Error("image not forwarded to classifier")
	}
}

func TestReportService_SubmitFailuresRecordNothing(t *testing.T) {
	tests := []struct {
		name    string
		actor   string
		in      SubmitInput
		clErr   error
		repoErr error
		want    error
	}{
		{"empty", "", SubmitInput{Text: "  <p></p> "}, nil, nil, classifier.ErrEmptySubmission},
		{"classification failed", "", SubmitInput{Text: "hello"}, classifier.ErrAnalysisFailed, nil, classifier.ErrAnalysisFailed},
		{"persistence failed", "user-1", SubmitInput{Text: "hello"}, nil, errors.New("db down"), nil},
		{"unknown actor", "ghost", SubmitInput{Text: "hello"}, nil, nil, state.ErrUnknownUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			h.cl.err = tt.clErr
			h.repo.err = tt.repoErr
			before := h.store.Snapshot()

			_, err := h.reports.Submit(context.Background(), tt.actor, tt.in)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if tt.repoErr != nil && !errors.Is(err, tt.repoErr) {
				t.Errorf("err = %v, want wrapped %v", err, tt.repoErr)
			}
			if h.store.Snapshot() != before {
				t.Error("state changed after failed submit")
			}
			if len(h.rec.reports) != 0 {
				t.Error("metrics recorded for failed submit")
			}
		})
	}
}

func TestReportService_ListUsesSavedFilters(t *testing.T) {
	h := newHarness()

	all, applied, err := h.reports.List("user-1", nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || applied != analytics.DefaultFilters() {
		t.Errorf("default list = %d reports, filters %+v", len(all), applied)
	}

	if _, err := h.reports.SaveFilters("user-1", analytics.FilterState{RiskLevel: analytics.RiskSafe, SortOrder: analytics.LowestRisk}); err != nil {
		t.Fatalf("SaveFilters: %v", err)
	}
	got, _, err := h.reports.List("user-1", nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != "mock-3" || got[1].ID != "mock-2" {
		t.Errorf("saved filters not applied: %v", got)
	}

	other, _, _ := h.reports.List("user-2", nil)
	if len(other) != 3 {
		t.Errorf("filters leaked to another user: %d reports", len(other))
	}

	override := analytics.FilterState{Category: "scam"}
	scams, _, err := h.reports.List("user-1", &override)
	if err != nil || len(scams) != 1 || scams[0].ID != "mock-1" {
		t.Errorf("override = %v, %v", scams, err)
	}

	bad := analytics.FilterState{SortOrder: "RANDOM"}
	if _, _, err := h.reports.List("user-1", &bad); !errors.Is(err, analytics.ErrInvalidFilter) {
		t.Errorf("err = %v, want ErrInvalidFilter", err)
	}
}

func TestReportService_ByCategoryAndGet(t *testing.T) {
	h := newHarness()

	got, err := h.reports.ByCategory("internship")
	if err != nil || len(got) != 1 || got[0].ID != "mock-2" {
		t.Errorf("ByCategory = %v, %v", got, err)
	}
	if _, err := h.reports.ByCategory("phishing"); !errors.Is(err, state.ErrInvalidCategory) {
		t.Errorf("err = %v, want ErrInvalidCategory", err)
	}
	if _, err := h.reports.Get("mock-3"); err != nil {
		t.Errorf("Get: %v", err)
	}
	if _, err := h.reports.Get("nope"); !errors.Is(err, state.ErrReportNotFound) {
		t.Errorf("err = %v, want ErrReportNotFound", err)
	}
}

func TestReportService_AddComment(t *testing.T) {
	h := newHarness()

	c, err := h.reports.AddComment(context.Background(), "mock-1", "user-1", "I got this too, it's fake")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if c.Content != "I got this too, it's fake" || c.Author.Username != "Alex" {
		t.Errorf("unexpected comment %+v", c)
	}
	if h.repo.users["user-1"].CommentsCount != 4 {
		t.Errorf("commentsCount not persisted: %+v", h.repo.users["user-1"])
	}

	_, err = h.reports.AddComment(context.Background(), "mock-1", "user-1", "visit https://evil.example now")
	var rej *RejectionError
	if !errors.As(err, &rej) || rej.Reason != "url_not_allowed" {
		t.Errorf("err = %v, want url rejection", err)
	}
	if _, err := h.reports.AddComment(context.Background(), "mock-1", "user-1", "   "); !errors.Is(err, state.ErrEmptyComment) {
		t.Errorf("err = %v, want ErrEmptyComment", err)
	}
	if _, err := h.reports.AddComment(context.Background(), "nope", "user-1", "hi"); !errors.Is(err, state.ErrReportNotFound) {
		t.Errorf("err = %v, want ErrReportNotFound", err)
	}
}

func TestReportService_ToggleVerification(t *testing.T) {
	h := newHarness()

	v, err := h.reports.ToggleVerification(context.Background(), "mock-1")
	if err != nil {
		t.Fatalf("ToggleVerification: %v", err)
	}
	if !v.Report.IsVerified || v.Notice != "Report Verified. Notification sent to Ben." {
		t.Errorf("unexpected result %+v", v)
	}
	if !h.repo.verified["mock-1"] {
		t.Error("verification not persisted")
	}

	v, _ = h.reports.ToggleVerification(context.Background(), "mock-1")
	if v.Report.IsVerified || v.Notice != "Verification removed" {
		t.Errorf("unexpected result %+v", v)
	}

	v, _ = h.reports.ToggleVerification(context.Background(), "mock-2")
	if v.Notice != "Report Verified." {
		t.Errorf("notice = %q", v.Notice)
	}
}

func TestReportService_Dashboard(t *testing.T) {
	h := newHarness()
	d := h.reports.Dashboard()
	if d.TotalReports != 3 || d.ScamCount != 1 || d.CommunityMembers != 2 {
		t.Errorf("unexpected dashboard %+v", d)
	}
	if len(d.ReportsOverTime) != 7 {
		t.Errorf("reportsOverTime has %d entries", len(d.ReportsOverTime))
	}
}
