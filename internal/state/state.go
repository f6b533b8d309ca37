// Package state holds the canonical application state and the pure
// transitions applied to it for every user intent. A transition never
// modifies the State it receives; it returns a new one that shares
// untouched data with the old.
package state

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/analytics"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
)

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrUnknownUser     = errors.New("unknown user")
	ErrEmptyComment    = errors.New("comment content is required")
	ErrEmptyPost       = errors.New("post content is required")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidReport   = errors.New("invalid report")
	ErrEmptyRoster     = errors.New("user roster is empty")
)

// State is one immutable snapshot. Reports and Posts are newest first.
type State struct {
	Reports []models.Report
	Users   []models.User
	Posts   []models.CommunityPost
	Filters map[string]analytics.FilterState
}

// New returns a State over the given collections, normalising every report.
func New(reports []models.Report, users []models.User, posts []models.CommunityPost) *State {
	rs := make([]models.Report, len(reports))
	for i, r := range reports {
		r.Normalize()
		rs[i] = r
	}
	ps := make([]models.CommunityPost, len(posts))
	for i, p := range posts {
		if p.Comments == nil {
			p.Comments = []models.Comment{}
		}
		if p.Votes == nil {
			p.Votes = []models.CommunityVote{}
		}
		ps[i] = p
	}
	us := make([]models.User, len(users))
	copy(us, users)
	return &State{
		Reports: rs,
		Users:   us,
		Posts:   ps,
		Filters: map[string]analytics.FilterState{},
	}
}

func (s *State) reportIndex(id string) int {
	for i := range s.Reports {
		if s.Reports[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) postIndex(id string) int {
	for i := range s.Posts {
		if s.Posts[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) userIndex(id string) int {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return i
		}
	}
	return -1
}

// Report looks up a report by id.
func (s *State) Report(id string) (models.Report, bool) {
	if i := s.reportIndex(id); i >= 0 {
		return s.Reports[i], true
	}
	return models.Report{}, false
}

// Post looks up a community post by id.
func (s *State) Post(id string) (models.CommunityPost, bool) {
	if i := s.postIndex(id); i >= 0 {
		return s.Posts[i], true
	}
	return models.CommunityPost{}, false
}

// User looks up a roster member by id.
func (s *State) User(id string) (models.User, bool) {
	if i := s.userIndex(id); i >= 0 {
		return s.Users[i], true
	}
	return models.User{}, false
}

// FiltersFor returns the saved filters of userID, or the defaults.
func (s *State) FiltersFor(userID string) analytics.FilterState {
	if f, ok := s.Filters[userID]; ok {
		return f
	}
	return analytics.DefaultFilters()
}

// shallow copies the top-level State; callers replace the fields they change.
func (s *State) shallow() *State {
	next := *s
	return &next
}

// withUser returns a copy of the roster with user i replaced by u.
func (s *State) withUser(i int, u models.User) []models.User {
	users := make([]models.User, len(s.Users))
	copy(users, s.Users)
	users[i] = u
	return users
}
