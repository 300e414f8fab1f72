package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShortDescription is how many characters of a post or comment its String
// form shows.
const ShortDescription = 15

type Post struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	GroupID   *uint     `gorm:"index" json:"group_id"`
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group,omitempty"`
	Image     string    `gorm:"size:255" json:"image"`
}

func (p *Post) String() string {
	return truncate(p.Text, ShortDescription)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func (p *Post) Prepare() {
	p.Text = strings.TrimSpace(p.Text)
	p.Author = User{}
	p.Group = nil
}

func (p *Post) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if p.Text == "" {
		errorMessages["Required_text"] = "Text is required"
	}
	if p.AuthorID == 0 {
		errorMessages["Required_author"] = "Author is required"
	}
	return errorMessages
}

func (p *Post) SavePost(db *gorm.DB) (*Post, error) {
	if err := db.Omit(clause.Associations).Create(p).Error; err != nil {
		return nil, err
	}
	return p.FindPostByID(db, p.ID)
}

func (p *Post) FindPostByID(db *gorm.DB, pid uint) (*Post, error) {
	var post Post
	if err := db.Preload("Author").Preload("Group").Where("id = ?", pid).Take(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdateAPost rewrites the editable fields only; author and creation time
// never change.
func (p *Post) UpdateAPost(db *gorm.DB) (*Post, error) {
	err := db.Model(&Post{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"text":     p.Text,
		"group_id": p.GroupID,
		"image":    p.Image,
	}).Error
	if err != nil {
		return nil, err
	}
	return p.FindPostByID(db, p.ID)
}

// DeleteAPost keeps the post's comments, clearing their post reference.
func (p *Post) DeleteAPost(db *gorm.DB) (int64, error) {
	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Comment{}).Where("post_id = ?", p.ID).
			Update("post_id", nil).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", p.ID).Delete(&Post{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func (p *Post) CountUserPosts(db *gorm.DB, uid uint) (int64, error) {
	var count int64
	if err := db.Model(&Post{}).Where("author_id = ?", uid).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
