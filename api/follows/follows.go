// Package follows manages follow edges between users.
package follows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"Yatube/api/events"
	"Yatube/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Outcome int

const (
	Created Outcome = iota + 1
	AlreadyFollowing
	SelfFollowRejected
	Removed
	NotFollowing
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case AlreadyFollowing:
		return "already_following"
	case SelfFollowRejected:
		return "self_follow_rejected"
	case Removed:
		return "removed"
	case NotFollowing:
		return "not_following"
	default:
		return "unknown"
	}
}

// Changed reports whether the outcome mutated the follow graph.
func (o Outcome) Changed() bool {
	return o == Created || o == Removed
}

var ErrInvalidEdge = errors.New("follows: invalid edge")

type Manager struct {
	db        *gorm.DB
	publisher events.Publisher
}

func NewManager(db *gorm.DB, publisher events.Publisher) *Manager {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Manager{db: db, publisher: publisher}
}

// Follow creates the edge userID -> authorID unless it exists. A self-follow
// is rejected without error. A missing author yields gorm.ErrRecordNotFound.
func (m *Manager) Follow(ctx context.Context, userID, authorID uint) (Outcome, error) {
	edge := models.Follow{UserID: userID, AuthorID: authorID}
	if msgs := edge.Validate(); len(msgs) > 0 {
		if _, self := msgs["Self_follow"]; self {
			return SelfFollowRejected, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrInvalidEdge, msgs)
	}

	created := false
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.User{}, authorID).Error; err != nil {
			return err
		}
		result := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&edge)
		if result.Error != nil {
			return result.Error
		}
		created = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("follows: follow %d -> %d: %w", userID, authorID, err)
	}
	if !created {
		return AlreadyFollowing, nil
	}

	slog.Debug("follows: edge created", "user_id", userID, "author_id", authorID)
	events.Emit(ctx, m.publisher, events.New(events.FollowCreated, userID, authorID))
	return Created, nil
}

// Unfollow removes the edge if present.
func (m *Manager) Unfollow(ctx context.Context, userID, authorID uint) (Outcome, error) {
	result := m.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return 0, fmt.Errorf("follows: unfollow %d -> %d: %w", userID, authorID, result.Error)
	}
	if result.RowsAffected == 0 {
		return NotFollowing, nil
	}

	slog.Debug("follows: edge removed", "user_id", userID, "author_id", authorID)
	events.Emit(ctx, m.publisher, events.New(events.FollowRemoved, userID, authorID))
	return Removed, nil
}

func (m *Manager) IsFollowing(ctx context.Context, userID, authorID uint) (bool, error) {
	if userID == 0 || authorID == 0 {
		return false, nil
	}
	var count int64
	err := m.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("follows: lookup: %w", err)
	}
	return count > 0, nil
}

func (m *Manager) FollowersCount(ctx context.Context, authorID uint) (int64, error) {
	return m.count(ctx, "author_id = ?", authorID)
}

func (m *Manager) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	return m.count(ctx, "user_id = ?", userID)
}

func (m *Manager) count(ctx context.Context, cond string, id uint) (int64, error) {
	var count int64
	if err := m.db.WithContext(ctx).Model(&models.Follow{}).Where(cond, id).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("follows: count: %w", err)
	}
	return count, nil
}
