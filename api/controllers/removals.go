package controllers

import (
	"context"
	"fmt"
	"log/slog"

	"Yatube/api/models"
	"Yatube/api/storage"

	"gorm.io/gorm"
)

// RemoveUser deletes the account with its posts, comments and follow edges,
// then discards the images of those posts and drops cached pages.
func RemoveUser(ctx context.Context, db *gorm.DB, images storage.ImageStore, user *models.User) error {
	db = db.WithContext(ctx)
	var keys []string
	if err := db.Model(&models.Post{}).
		Where("author_id = ? AND image <> ''", user.ID).
		Pluck("image", &keys).Error; err != nil {
		return fmt.Errorf("list images of %q: %w", user.Username, err)
	}
	if _, err := (&models.User{}).DeleteAUser(db, user.ID); err != nil {
		return err
	}
	for _, key := range keys {
		discardImage(ctx, images, key)
	}
	invalidatePageCache(ctx)
	return nil
}

// RemoveGroup deletes the group and drops cached pages. Its posts stay,
// without a group.
func RemoveGroup(ctx context.Context, db *gorm.DB, group *models.Group) error {
	if _, err := group.DeleteAGroup(db.WithContext(ctx)); err != nil {
		return err
	}
	invalidatePageCache(ctx)
	return nil
}

func discardImage(ctx context.Context, images storage.ImageStore, key string) {
	if key == "" || images == nil {
		return
	}
	if err := images.Delete(ctx, key); err != nil {
		slog.Warn("storage: orphaned image", "key", key, "error", err)
	}
}
