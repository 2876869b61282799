package model

import "time"

// Favorite (user, recipe) edge
type Favorite struct {
	ID       string `gorm:"primaryKey;type:varchar(36)"`
	UserID   string `gorm:"type:varchar(36);index:idx_fav_user;index:idx_fav_pair,unique;not null"`
	RecipeID string `gorm:"type:varchar(36);not null;index:idx_fav_pair,unique"`
	// idx_fav_pair = (user_id, recipe_id)
	User      User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe    Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (Favorite) TableName() string { return "favorites" }
