package services

import (
	"context"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/security"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/state"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// fakeRepo records writes and fails every call when err is set.
type fakeRepo struct {
	mu       sync.Mutex
	err      error
	reports  []models.Report
	comments []models.Comment
	posts    []models.CommunityPost
	votes    []models.CommunityVote
	users    map[string]models.User
	verified map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]models.User{}, verified: map[string]bool{}}
}

func (f *fakeRepo) Load(context.Context) (repository.Data, error) { return repository.Data{}, f.err }
func (f *fakeRepo) Empty(context.Context) (bool, error)           { return true, f.err }
func (f *fakeRepo) Seed(context.Context, repository.Data) error   { return f.err }

func (f *fakeRepo) RecordReport(_ context.Context, r models.Report, actor *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.reports = append(f.reports, r)
	if actor != nil {
		f.users[actor.ID] = *actor
	}
	return nil
}

func (f *fakeRepo) RecordComment(_ context.Context, c models.Comment, author models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.comments = append(f.comments, c)
	f.users[author.ID] = author
	return nil
}

func (f *fakeRepo) SetVerified(_ context.Context, id string, v bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.verified[id] = v
	return nil
}

func (f *fakeRepo) CreatePost(_ context.Context, p models.CommunityPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.posts = append(f.posts, p)
	return nil
}

func (f *fakeRepo) RecordVote(_ context.Context, v models.CommunityVote, voter models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.votes = append(f.votes, v)
	f.users[voter.ID] = voter
	return nil
}

// fakeClassifier returns verdict, or err when set.
type fakeClassifier struct {
	verdict classifier.Verdict
	err     error
	calls   int
	last    classifier.Request
}

func (f *fakeClassifier) Classify(_ context.Context, req classifier.Request) (classifier.Verdict, error) {
	f.calls++
	f.last = req
	if err := req.Validate(); err != nil {
		return classifier.Verdict{}, err
	}
	if f.err != nil {
		return classifier.Verdict{}, f.err
	}
	return f.verdict, nil
}

type countingRecorder struct {
	reports map[string]int
	votes   map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{reports: map[string]int{}, votes: map[string]int{}}
}

func (c *countingRecorder) RecordReport(category string) { c.reports[category]++ }
func (c *countingRecorder) RecordVote(category string)   { c.votes[category]++ }

func fixtureState() *state.State {
	users := []models.User{
		{ID: "user-1", Username: "Alex", ReportsCount: 5, VotesCount: 12, CommentsCount: 3},
		{ID: "user-2", Username: "Ben", ReportsCount: 11, VotesCount: 25, CommentsCount: 8},
	}
	reports := []models.Report{
		{ID: "mock-1", Content: "Win a free laptop", Category: models.CategoryScam, RiskScore: 95, Timestamp: testNow.Add(-5 * time.Minute), UserID: "user-2"},
		{ID: "mock-2", Content: "Summer internship", Category: models.CategoryInternship, RiskScore: 10, Timestamp: testNow.Add(-30 * time.Minute)},
		{ID: "mock-3", Content: "50% off", Category: models.CategoryPromotion, RiskScore: 5, Timestamp: testNow.Add(-2 * time.Hour)},
	}
	posts := []models.CommunityPost{
		{ID: "comm-2", Content: "Older post", Timestamp: testNow.Add(-48 * time.Hour)},
		{ID: "comm-1", Content: "Newer post", Timestamp: testNow.Add(-5 * time.Hour)},
	}
	return state.New(reports, users, posts)
}

type harness struct {
	store     *state.Store
	repo      *fakeRepo
	cl        *fakeClassifier
	rec       *countingRecorder
	reports   *ReportService
	community *CommunityService
	users     *UserService
}

func newHarness() *harness {
	h := &harness{
		store: state.NewStore(fixtureState()),
		repo:  newFakeRepo(),
		cl:    &fakeClassifier{verdict: classifier.Heuristic("urgent fee")},
		rec:   newCountingRecorder(),
	}
	san := security.NewSanitizer()
	mod := NewModerationService()
	h.reports = NewReportService(h.store, h.repo, h.cl, san, mod, h.rec)
	h.reports.now = func() time.Time { return testNow }
	h.community = NewCommunityService(h.store, h.repo, san, mod, h.rec)
	h.community.now = func() time.Time { return testNow }
	h.users = NewUserService(h.store, &config.Config{JWTSecret: "test-secret", JWTAccessExpiry: time.Hour})
	h.users.now = func() time.Time { return testNow }
	return h
}
