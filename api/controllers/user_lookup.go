package controllers

import (
	"strings"

	"Yatube/api/models"

	"gorm.io/gorm"
)

func resolveUserByUsername(db *gorm.DB, username string) (*models.User, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return (&models.User{}).FindUserByUsername(db, trimmed)
}
