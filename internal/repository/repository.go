// Package repository persists reports, comments, users and community posts
// with GORM. The in-memory state is rebuilt from it at startup.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

// Data is everything needed to rebuild the application state.
type Data struct {
	Reports []models.Report
	Users   []models.User
	Posts   []models.CommunityPost
}

type Repository interface {
	Load(ctx context.Context) (Data, error)
	Empty(ctx context.Context) (bool, error)
	Seed(ctx context.Context, d Data) error

	// RecordReport stores r and, when actor is set, the actor's counters.
	RecordReport(ctx context.Context, r models.Report, actor *models.User) error
	// RecordComment stores c and the author's counters.
	RecordComment(ctx context.Context, c models.Comment, author models.User) error
	SetVerified(ctx context.Context, reportID string, verified bool) error
	CreatePost(ctx context.Context, p models.CommunityPost) error
	// RecordVote upserts v and stores the voter's counters.
	RecordVote(ctx context.Context, v models.CommunityVote, voter models.User) error
}

type GormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Load(ctx context.Context) (Data, error) {
	db := r.db.WithContext(ctx)

	var d Data
	if err := db.Order("timestamp DESC").Find(&d.Reports).Error; err != nil {
		return Data{}, fmt.Errorf("load reports: %w", err)
	}
	if err := db.Order("id ASC").Find(&d.Users).Error; err != nil {
		return Data{}, fmt.Errorf("load users: %w", err)
	}
	if err := db.Order("timestamp DESC").Find(&d.Posts).Error; err != nil {
		return Data{}, fmt.Errorf("load posts: %w", err)
	}
	var comments []models.Comment
	if err := db.Order("timestamp ASC").Find(&comments).Error; err != nil {
		return Data{}, fmt.Errorf("load comments: %w", err)
	}
	var votes []models.CommunityVote
	if err := db.Order("position ASC").Find(&votes).Error; err != nil {
		return Data{}, fmt.Errorf("load votes: %w", err)
	}

	reportIdx := make(map[string]int, len(d.Reports))
	for i := range d.Reports {
		d.Reports[i].Normalize()
		reportIdx[d.Reports[i].ID] = i
	}
	postIdx := make(map[string]int, len(d.Posts))
	for i := range d.Posts {
		d.Posts[i].Comments = []models.Comment{}
		d.Posts[i].Votes = []models.CommunityVote{}
		postIdx[d.Posts[i].ID] = i
	}

	for _, c := range comments {
		switch c.TargetKind {
		case models.CommentOnReport:
			if i, ok := reportIdx[c.TargetID]; ok {
				d.Reports[i].Comments = append(d.Reports[i].Comments, c)
			}
		case models.CommentOnPost:
			if i, ok := postIdx[c.TargetID]; ok {
				d.Posts[i].Comments = append(d.Posts[i].Comments, c)
			}
		}
	}
	for _, v := range votes {
		if i, ok := postIdx[v.PostID]; ok {
			d.Posts[i].Votes = append(d.Posts[i].Votes, v)
		}
	}
	if d.Users == nil {
		d.Users = []models.User{}
	}
	return d, nil
}

// Empty reports whether no users have been stored yet.
func (r *GormRepository) Empty(ctx context.Context) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return false, err
	}
	return n == 0, nil
}

func (r *GormRepository) Seed(ctx context.Context, d Data) error {
	var comments []models.Comment
	var votes []models.CommunityVote
	for _, rep := range d.Reports {
		comments = append(comments, rep.Comments...)
	}
	for _, p := range d.Posts {
		comments = append(comments, p.Comments...)
		votes = append(votes, p.Votes...)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(d.Users) > 0 {
			if err := tx.Create(&d.Users).Error; err != nil {
				return fmt.Errorf("seed users: %w", err)
			}
		}
		if len(d.Reports) > 0 {
			if err := tx.Create(&d.Reports).Error; err != nil {
				return fmt.Errorf("seed reports: %w", err)
			}
		}
		if len(d.Posts) > 0 {
			if err := tx.Create(&d.Posts).Error; err != nil {
				return fmt.Errorf("seed posts: %w", err)
			}
		}
		if len(comments) > 0 {
			if err := tx.Create(&comments).Error; err != nil {
				return fmt.Errorf("seed comments: %w", err)
			}
		}
		if len(votes) > 0 {
			if err := tx.Create(&votes).Error; err != nil {
				return fmt.Errorf("seed votes: %w", err)
			}
		}
		return nil
	})
}

func (r *GormRepository) RecordReport(ctx context.Context, rep models.Report, actor *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rep).Error; err != nil {
			return fmt.Errorf("insert report: %w", err)
		}
		if actor == nil {
			return nil
		}
		return saveCounters(tx, *actor)
	})
}

func (r *GormRepository) RecordComment(ctx context.Context, c models.Comment, author models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&c).Error; err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}
		return saveCounters(tx, author)
	})
}

func (r *GormRepository) SetVerified(ctx context.Context, reportID string, verified bool) error {
	res := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("id = ?", reportID).
		Update("is_verified", verified)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) CreatePost(ctx context.Context, p models.CommunityPost) error {
	return r.db.WithContext(ctx).Create(&p).Error
}

func (r *GormRepository) RecordVote(ctx context.Context, v models.CommunityVote, voter models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"category"}),
		}).Create(&v).Error
		if err != nil {
			return fmt.Errorf("upsert vote: %w", err)
		}
		return saveCounters(tx, voter)
	})
}

func saveCounters(tx *gorm.DB, u models.User) error {
	res := tx.Model(&models.User{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
		"reports_count":  u.ReportsCount,
		"votes_count":    u.VotesCount,
		"comments_count": u.CommentsCount,
	})
	if res.Error != nil {
		return fmt.Errorf("update user counters: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
