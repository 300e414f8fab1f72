// Package feed builds the ordered post listings shown on the index, group,
// profile and follow pages.
package feed

import (
	"context"
	"fmt"

	"Yatube/api/models"
	"Yatube/api/pagination"

	"gorm.io/gorm"
)

type Composer struct {
	db *gorm.DB
}

func NewComposer(db *gorm.DB) *Composer {
	return &Composer{db: db}
}

// Feed is a lazily evaluated post listing. Group or Author is set for the
// scoped feeds.
type Feed struct {
	Group  *models.Group
	Author *models.User

	ctx   context.Context
	db    *gorm.DB
	scope func(*gorm.DB) *gorm.DB
}

// Result is one page of a feed.
type Result struct {
	Posts []models.Post
	Page  pagination.Page
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Group")
}

func (c *Composer) feed(ctx context.Context, scope func(*gorm.DB) *gorm.DB) *Feed {
	if scope == nil {
		scope = func(db *gorm.DB) *gorm.DB { return db }
	}
	return &Feed{ctx: ctx, db: c.db, scope: scope}
}

func (c *Composer) All(ctx context.Context) *Feed {
	return c.feed(ctx, nil)
}

func (c *Composer) InGroup(ctx context.Context, slug string) (*Feed, error) {
	group, err := (&models.Group{}).FindGroupBySlug(c.db.WithContext(ctx), slug)
	if err != nil {
		return nil, fmt.Errorf("feed: group %q: %w", slug, err)
	}
	f := c.feed(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("group_id = ?", group.ID)
	})
	f.Group = group
	return f, nil
}

func (c *Composer) ByAuthor(ctx context.Context, username string) (*Feed, error) {
	author, err := (&models.User{}).FindUserByUsername(c.db.WithContext(ctx), username)
	if err != nil {
		return nil, fmt.Errorf("feed: author %q: %w", username, err)
	}
	f := c.feed(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id = ?", author.ID)
	})
	f.Author = author
	return f, nil
}

// Followed lists posts by every author userID follows.
func (c *Composer) Followed(ctx context.Context, userID uint) *Feed {
	return c.feed(ctx, func(db *gorm.DB) *gorm.DB {
		followed := c.db.WithContext(ctx).Model(&models.Follow{}).Select("author_id").Where("user_id = ?", userID)
		return db.Where("author_id IN (?)", followed)
	})
}

func (f *Feed) query() *gorm.DB {
	return f.db.WithContext(f.ctx).Model(&models.Post{}).Scopes(f.scope)
}

func (f *Feed) Count() (int64, error) {
	var count int64
	if err := f.query().Count(&count).Error; err != nil {
		return 0, fmt.Errorf("feed: count: %w", err)
	}
	return count, nil
}

// Posts returns the whole feed, newest first.
func (f *Feed) Posts() ([]models.Post, error) {
	posts := []models.Post{}
	if err := f.query().Scopes(withRelations, newestFirst).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("feed: list: %w", err)
	}
	return posts, nil
}

// Page loads the page selected by raw, clamped into range.
func (f *Feed) Page(raw string) (*Result, error) {
	count, err := f.Count()
	if err != nil {
		return nil, err
	}
	page := pagination.New(count, pagination.PerPage).Page(raw)

	posts := []models.Post{}
	if count > 0 {
		err := f.query().Scopes(withRelations, newestFirst).
			Offset(page.Offset()).Limit(page.PerPage).Find(&posts).Error
		if err != nil {
			return nil, fmt.Errorf("feed: page %d: %w", page.Number, err)
		}
	}
	return &Result{Posts: posts, Page: page}, nil
}
