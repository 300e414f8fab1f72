package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Comment struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	PostID    *uint     `gorm:"index" json:"post_id"`
	Post      *Post     `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (c *Comment) String() string {
	return truncate(c.Text, ShortDescription)
}

func (c *Comment) Prepare() {
	c.ID = 0
	c.Text = strings.TrimSpace(c.Text)
	c.Author = User{}
	c.Post = nil
}

func (c *Comment) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if c.Text == "" {
		errorMessages["Required_text"] = "Text is required"
	}
	if c.AuthorID == 0 {
		errorMessages["Required_author"] = "Author is required"
	}
	return errorMessages
}

func (c *Comment) SaveComment(db *gorm.DB) (*Comment, error) {
	if err := db.Omit(clause.Associations).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// GetComments lists a post's comments, newest first.
func (c *Comment) GetComments(db *gorm.DB, pid uint) ([]Comment, error) {
	comments := []Comment{}
	err := db.Preload("Author").Where("post_id = ?", pid).
		Order("created_at desc, id desc").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Comment) DeleteUserComments(db *gorm.DB, uid uint) (int64, error) {
	result := db.Where("author_id = ?", uid).Delete(&Comment{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
