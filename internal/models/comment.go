package models

import "time"

const (
	CommentOnReport = "report"
	CommentOnPost   = "post"
)

// Author is the snapshot of a user taken when a comment is written.
type Author struct {
	ID        string `gorm:"column:author_id;size:64;not null" json:"id"`
	Username  string `gorm:"column:author_username;size:100" json:"username"`
	AvatarURL string `gorm:"column:author_avatar_url;type:text" json:"avatarUrl"`
}

// Comment is immutable once created.
type Comment struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	TargetKind string    `gorm:"size:10;not null;index:idx_comments_target" json:"-"`
	TargetID   string    `gorm:"size:64;not null;index:idx_comments_target" json:"-"`
	Author     Author    `gorm:"embedded" json:"author"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Timestamp  time.Time `gorm:"not null" json:"timestamp"`
}

func (Comment) TableName() string {
	return "comments"
}
