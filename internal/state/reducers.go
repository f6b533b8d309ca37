package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/analytics"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
)

// NewComment is the intent to add a comment to a report or post.
type NewComment struct {
	ID       string
	AuthorID string
	Content  string
	At       time.Time
}

// SubmitReport prepends r. When r names a user, that user's reportsCount is
// incremented.
func SubmitReport(s *State, r models.Report) (*State, error) {
	if !r.Category.Valid() {
		return nil, fmt.Errorf("%w: category %q", ErrInvalidReport, r.Category)
	}
	if r.RiskScore < 0 || r.RiskScore > 100 {
		return nil, fmt.Errorf("%w: risk score %d", ErrInvalidReport, r.RiskScore)
	}
	r.Normalize()

	next := s.shallow()
	if r.UserID != "" {
		i := s.userIndex(r.UserID)
		if i < 0 {
			return nil, ErrUnknownUser
		}
		u := s.Users[i]
		u.ReportsCount++
		next.Users = s.withUser(i, u)
	}

	reports := make([]models.Report, 0, len(s.Reports)+1)
	reports = append(reports, r)
	next.Reports = append(reports, s.Reports...)
	return next, nil
}

// AddReportComment appends a comment to a report and credits the author.
func AddReportComment(s *State, reportID string, in NewComment) (*State, models.Comment, error) {
	ri := s.reportIndex(reportID)
	if ri < 0 {
		return nil, models.Comment{}, ErrReportNotFound
	}
	next, c, err := credit(s, in, models.CommentOnReport, reportID)
	if err != nil {
		return nil, models.Comment{}, err
	}

	r := s.Reports[ri]
	r.Comments = appendComment(r.Comments, c)
	next.Reports = replaceReport(s.Reports, ri, r)
	return next, c, nil
}

// ToggleVerification flips the verified flag of a report and returns the
// updated report.
func ToggleVerification(s *State, reportID string) (*State, models.Report, error) {
	ri := s.reportIndex(reportID)
	if ri < 0 {
		return nil, models.Report{}, ErrReportNotFound
	}
	r := s.Reports[ri]
	r.IsVerified = !r.IsVerified

	next := s.shallow()
	next.Reports = replaceReport(s.Reports, ri, r)
	return next, r, nil
}

// CreatePost prepends a community post.
func CreatePost(s *State, p models.CommunityPost) (*State, error) {
	p.Content = strings.TrimSpace(p.Content)
	if p.Content == "" {
		return nil, ErrEmptyPost
	}
	if p.Comments == nil {
		p.Comments = []models.Comment{}
	}
	if p.Votes == nil {
		p.Votes = []models.CommunityVote{}
	}

	next := s.shallow()
	posts := make([]models.CommunityPost, 0, len(s.Posts)+1)
	posts = append(posts, p)
	next.Posts = append(posts, s.Posts...)
	return next, nil
}

// CastVote records userID's category for a post. A user holds at most one
// vote per post: voting again replaces the category in place. Every cast
// counts towards the user's votesCount.
func CastVote(s *State, postID, userID string, category models.Category) (*State, models.CommunityVote, error) {
	if !category.Valid() {
		return nil, models.CommunityVote{}, ErrInvalidCategory
	}
	pi := s.postIndex(postID)
	if pi < 0 {
		return nil, models.CommunityVote{}, ErrPostNotFound
	}
	ui := s.userIndex(userID)
	if ui < 0 {
		return nil, models.CommunityVote{}, ErrUnknownUser
	}

	p := s.Posts[pi]
	votes := make([]models.CommunityVote, len(p.Votes), len(p.Votes)+1)
	copy(votes, p.Votes)

	vote := models.CommunityVote{PostID: postID, UserID: userID, Category: category, Position: len(votes)}
	replaced := false
	for i := range votes {
		if votes[i].UserID == userID {
			vote.Position = votes[i].Position
			votes[i] = vote
			replaced = true
			break
		}
	}
	if !replaced {
		votes = append(votes, vote)
	}
	p.Votes = votes

	u := s.Users[ui]
	u.VotesCount++

	next := s.shallow()
	next.Posts = replacePost(s.Posts, pi, p)
	next.Users = s.withUser(ui, u)
	return next, vote, nil
}

// AddPostComment appends a comment to a community post and credits the
// author.
func AddPostComment(s *State, postID string, in NewComment) (*State, models.Comment, error) {
	pi := s.postIndex(postID)
	if pi < 0 {
		return nil, models.Comment{}, ErrPostNotFound
	}
	next, c, err := credit(s, in, models.CommentOnPost, postID)
	if err != nil {
		return nil, models.Comment{}, err
	}

	p := s.Posts[pi]
	p.Comments = appendComment(p.Comments, c)
	next.Posts = replacePost(s.Posts, pi, p)
	return next, c, nil
}

// SetFilters stores the filter selection of userID.
func SetFilters(s *State, userID string, f analytics.FilterState) (*State, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	filters := make(map[string]analytics.FilterState, len(s.Filters)+1)
	for k, v := range s.Filters {
		filters[k] = v
	}
	filters[userID] = f

	next := s.shallow()
	next.Filters = filters
	return next, nil
}

// NextUser implements the mock login cycle: with no current user the first
// roster member signs in, otherwise the one after currentID.
func NextUser(roster []models.User, currentID string) (models.User, error) {
	if len(roster) == 0 {
		return models.User{}, ErrEmptyRoster
	}
	if currentID == "" {
		return roster[0], nil
	}
	for i, u := range roster {
		if u.ID == currentID {
			return roster[(i+1)%len(roster)], nil
		}
	}
	return roster[0], nil
}

// credit builds the comment with the author's snapshot and increments the
// author's commentsCount.
func credit(s *State, in NewComment, kind, targetID string) (*State, models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.Comment{}, ErrEmptyComment
	}
	ui := s.userIndex(in.AuthorID)
	if ui < 0 {
		return nil, models.Comment{}, ErrUnknownUser
	}
	u := s.Users[ui]

	c := models.Comment{
		ID:         in.ID,
		TargetKind: kind,
		TargetID:   targetID,
		Author:     u.AsAuthor(),
		Content:    content,
		Timestamp:  in.At,
	}

	u.CommentsCount++
	next := s.shallow()
	next.Users = s.withUser(ui, u)
	return next, c, nil
}

func appendComment(comments []models.Comment, c models.Comment) []models.Comment {
	out := make([]models.Comment, len(comments), len(comments)+1)
	copy(out, comments)
	return append(out, c)
}

func replaceReport(reports []models.Report, i int, r models.Report) []models.Report {
	out := make([]models.Report, len(reports))
	copy(out, reports)
	out[i] = r
	return out
}

func replacePost(posts []models.CommunityPost, i int, p models.CommunityPost) []models.CommunityPost {
	out := make([]models.CommunityPost, len(posts))
	copy(out, posts)
	out[i] = p
	return out
}
