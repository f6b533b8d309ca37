package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/analytics"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/security"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/state"
	"github.com/google/uuid"
)

// PostView is a community post with its derived vote tallies.
type PostView struct {
	models.CommunityPost
	Tallies []analytics.VoteTally `json:"tallies"`
}

type CommunityService struct {
	store      *state.Store
	repo       repository.Repository
	sanitizer  *security.Sanitizer
	moderation *ModerationService
	metrics    Recorder
	now        func() time.Time
}

func NewCommunityService(store *state.Store, repo repository.Repository, sanitizer *security.Sanitizer,
	moderation *ModerationService, rec Recorder) *CommunityService {
	if rec == nil {
		rec = noopRecorder{}
	}
	return &CommunityService{
		store:      store,
		repo:       repo,
		sanitizer:  sanitizer,
		moderation: moderation,
		metrics:    rec,
		now:        time.Now,
	}
}

// List returns every post newest first.
func (s *CommunityService) List() []PostView {
	posts := append([]models.CommunityPost(nil), s.store.Snapshot().Posts...)
	sortPostsNewestFirst(posts)

	out := make([]PostView, len(posts))
	for i, p := range posts {
		out[i] = PostView{CommunityPost: p, Tallies: analytics.VoteTallies(p.Votes)}
	}
	return out
}

func (s *CommunityService) Get(id string) (PostView, error) {
	p, ok := s.store.Snapshot().Post(id)
	if !ok {
		return PostView{}, state.ErrPostNotFound
	}
	return PostView{CommunityPost: p, Tallies: analytics.VoteTallies(p.Votes)}, nil
}

// CreatePost shares content anonymously.
func (s *CommunityService) CreatePost(ctx context.Context, content string) (models.CommunityPost, error) {
	content = s.sanitizer.Text(content)
	if strings.TrimSpace(content) == "" {
		return models.CommunityPost{}, state.ErrEmptyPost
	}
	if err := s.moderation.reject(s.moderation.FilterPost(content)); err != nil {
		return models.CommunityPost{}, err
	}

	post := models.CommunityPost{
		ID:        uuid.NewString(),
		Content:   content,
		Timestamp: s.now().UTC(),
	}
	err := s.store.Update(func(cur *state.State) (*state.State, error) {
		next, err := state.CreatePost(cur, post)
		if err != nil {
			return nil, err
		}
		if err := s.repo.CreatePost(ctx, post); err != nil {
			return nil, fmt.Errorf("persist post: %w", err)
		}
		post, _ = next.Post(post.ID)
		return next, nil
	})
	return post, err
}

// Vote records userID's category guess; a repeat vote replaces the earlier one.
func (s *CommunityService) Vote(ctx context.Context, postID, userID, category string) (PostView, error) {
	c, ok := models.ParseCategory(category)
	if !ok {
		return PostView{}, state.ErrInvalidCategory
	}

	var view PostView
	err := s.store.Update(func(cur *state.State) (*state.State, error) {
		next, v, err := state.CastVote(cur, postID, userID, c)
		if err != nil {
			return nil, err
		}
		voter, _ := next.User(userID)
		if err := s.repo.RecordVote(ctx, v, voter); err != nil {
			return nil, fmt.Errorf("persist vote: %w", err)
		}
		p, _ := next.Post(postID)
		view = PostView{CommunityPost: p, Tallies: analytics.VoteTallies(p.Votes)}
		return next, nil
	})
	if err != nil {
		return PostView{}, err
	}
	s.metrics.RecordVote(string(c))
	return view, nil
}

func (s *CommunityService) AddComment(ctx context.Context, postID, authorID, content string) (models.Comment, error) {
	content = s.sanitizer.Text(content)
	if strings.TrimSpace(content) == "" {
		return models.Comment{}, state.ErrEmptyComment
	}
	if err := s.moderation.reject(s.moderation.FilterContent(content)); err != nil {
		return models.Comment{}, err
	}

	var created models.Comment
	err := s.store.Update(func(cur *state.State) (*state.State, error) {
		next, c, err := state.AddPostComment(cur, postID, state.NewComment{
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

func sortPostsNewestFirst(posts []models.CommunityPost) {
	slices.SortStableFunc(posts, func(a, b models.CommunityPost) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
}
