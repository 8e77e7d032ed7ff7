package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/d60-Lab/bookmarks/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Follow{}, &model.Action{}, &model.Image{}, &model.Like{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string) *model.User {
	t.Helper()
	u := &model.User{ID: id, Username: id, Email: id + "@example.com", Password: "p", IsActive: true}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
	return u
}

func seedImage(t *testing.T, db *gorm.DB, id, ownerID string) *model.Image {
	t.Helper()
	img := &model.Image{ID: id, UserID: ownerID, Title: "img " + id, Slug: "img-" + id, URL: "https://example.com/" + id + ".jpg"}
	if err := db.Create(img).Error; err != nil {
		t.Fatalf("seed image %s: %v", id, err)
	}
	return img
}
