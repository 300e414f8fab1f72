// Package seed fills an empty database with demo content.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"Yatube/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var users = []models.User{
	{Username: "leo", Email: "leo@example.com", Password: "password"},
	{Username: "anna", Email: "anna@example.com", Password: "password"},
	{Username: "mark", Email: "mark@example.com", Password: "password"},
}

var groups = []models.Group{
	{Title: "Cats", Slug: "cats", Description: "Everything about cats"},
	{Title: "Travel", Slug: "travel", Description: "Notes from the road"},
}

type seedPost struct {
	author string
	group  string
	text   string
}

var posts = []seedPost{
	{"leo", "cats", "My cat learned to open the fridge today."},
	{"leo", "", "Lorem ipsum dolor sit amet, consectetur adipiscing elit."},
	{"anna", "travel", "Three days in the mountains without a signal."},
	{"anna", "cats", "Cats sleep sixteen hours a day and still look tired."},
	{"mark", "", "First post here, hello everyone."},
}

// follower -> author
var follows = [][2]string{
	{"leo", "anna"},
	{"mark", "anna"},
	{"mark", "leo"},
}

// Load inserts the demo data. Rows that already exist are left alone, so
// running it twice is harmless.
func Load(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	byName := make(map[string]*models.User, len(users))
	for i := range users {
		u, err := ensureUser(db, users[i])
		if err != nil {
			return err
		}
		byName[u.Username] = u
	}

	bySlug := make(map[string]*models.Group, len(groups))
	for i := range groups {
		g, err := ensureGroup(db, groups[i])
		if err != nil {
			return err
		}
		bySlug[g.Slug] = g
	}

	var existing int64
	if err := db.Model(&models.Post{}).Count(&existing).Error; err != nil {
		return fmt.Errorf("count posts: %w", err)
	}
	if existing == 0 {
		for _, p := range posts {
			post := models.Post{Text: p.text, AuthorID: byName[p.author].ID}
			if g, ok := bySlug[p.group]; ok {
				post.GroupID = &g.ID
			}
			if _, err := post.SavePost(db); err != nil {
				return fmt.Errorf("cannot seed posts table: %w", err)
			}
		}
	}

	for _, pair := range follows {
		edge := models.Follow{UserID: byName[pair[0]].ID, AuthorID: byName[pair[1]].ID}
		if err := db.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&edge).Error; err != nil {
			return fmt.Errorf("cannot seed follows table: %w", err)
		}
	}

	slog.Info("seed: done", "users", len(users), "groups", len(groups), "posts", len(posts))
	return nil
}

func ensureUser(db *gorm.DB, u models.User) (*models.User, error) {
	found, err := (&models.User{}).FindUserByUsername(db, u.Username)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	u.Prepare()
	created, err := u.SaveUser(db)
	if err != nil {
		return nil, fmt.Errorf("cannot seed users table: %w", err)
	}
	return created, nil
}

func ensureGroup(db *gorm.DB, g models.Group) (*models.Group, error) {
	found, err := (&models.Group{}).FindGroupBySlug(db, g.Slug)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	g.Prepare()
	created, err := g.SaveGroup(db)
	if err != nil {
		return nil, fmt.Errorf("cannot seed groups table: %w", err)
	}
	return created, nil
}
