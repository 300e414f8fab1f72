package models

import "time"

type Follow struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_follows_unique,priority:1" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AuthorID  uint      `gorm:"not null;index;uniqueIndex:idx_follows_unique,priority:2" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Validate rejects incomplete edges and self-follows. The unique pair is left
// to the storage index.
func (f *Follow) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if f.UserID == 0 {
		errorMessages["Required_user"] = "Follower is required"
	}
	if f.AuthorID == 0 {
		errorMessages["Required_author"] = "Author is required"
	}
	if f.UserID != 0 && f.UserID == f.AuthorID {
		errorMessages["Self_follow"] = "You cannot follow yourself"
	}
	return errorMessages
}
