package models

import (
	"html"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

type Group struct {
	ID          uint   `gorm:"primary_key;autoIncrement" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Slug        string `gorm:"size:50;not null;uniqueIndex" json:"slug"`
	Description string `gorm:"type:text;not null" json:"description"`
}

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

func (g *Group) String() string {
	return g.Title
}

func (g *Group) Prepare() {
	g.Title = html.EscapeString(strings.TrimSpace(g.Title))
	g.Slug = strings.TrimSpace(g.Slug)
	g.Description = strings.TrimSpace(g.Description)
}

func (g *Group) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if g.Title == "" {
		errorMessages["Required_title"] = "Title is required"
	} else if len(g.Title) > 200 {
		errorMessages["Invalid_title"] = "Title should be at most 200 characters"
	}
	if g.Slug == "" {
		errorMessages["Required_slug"] = "Slug is required"
	} else if len(g.Slug) > 50 || !slugPattern.MatchString(g.Slug) {
		errorMessages["Invalid_slug"] = "Slug may contain only letters, digits, hyphens and underscores"
	}
	if g.Description == "" {
		errorMessages["Required_description"] = "Description is required"
	}
	return errorMessages
}

func (g *Group) SaveGroup(db *gorm.DB) (*Group, error) {
	if err := db.Create(g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Group) FindGroupBySlug(db *gorm.DB, slug string) (*Group, error) {
	var group Group
	if err := db.Where("slug = ?", strings.TrimSpace(slug)).Take(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (g *Group) FindAllGroups(db *gorm.DB) ([]Group, error) {
	groups := []Group{}
	if err := db.Order("title asc").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// DeleteAGroup detaches the group's posts before removing it; posts are
// never deleted with their group.
func (g *Group) DeleteAGroup(db *gorm.DB) (int64, error) {
	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Post{}).Where("group_id = ?", g.ID).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", g.ID).Delete(&Group{})
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
