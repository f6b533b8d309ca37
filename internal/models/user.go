package models

// User is a roster member. The three counters only ever grow.
type User struct {
	ID            string `gorm:"primaryKey;size:64" json:"id"`
	Username      string `gorm:"size:100;not null" json:"username"`
	AvatarURL     string `gorm:"type:text" json:"avatarUrl"`
	ReportsCount  int    `gorm:"not null" json:"reportsCount"`
	VotesCount    int    `gorm:"not null" json:"votesCount"`
	CommentsCount int    `gorm:"not null" json:"commentsCount"`
}

func (User) TableName() string {
	return "users"
}

// AsAuthor snapshots the user for a comment.
func (u User) AsAuthor() Author {
	return Author{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL}
}
