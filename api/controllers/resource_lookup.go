package controllers

import (
	"strconv"
	"strings"

	"Yatube/api/models"

	"gorm.io/gorm"
)

// resolvePostByIdentifier treats malformed ids as missing posts.
func resolvePostByIdentifier(db *gorm.DB, identifier string) (*models.Post, error) {
	numericID, err := strconv.ParseUint(strings.TrimSpace(identifier), 10, 32)
	if err != nil || numericID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return (&models.Post{}).FindPostByID(db, uint(numericID))
}

func resolveGroupByID(db *gorm.DB, id uint) (*models.Group, error) {
	var group models.Group
	if err := db.Where("id = ?", id).Take(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}
