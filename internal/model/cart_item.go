package model

import "time"

// CartItem (user, recipe) edge; the shopping list aggregates over it
type CartItem struct {
	ID       string `gorm:"primaryKey;type:varchar(36)"`
	UserID   string `gorm:"type:varchar(36);index:idx_cart_user;index:idx_cart_pair,unique;not null"`
	RecipeID string `gorm:"type:varchar(36);not null;index:idx_cart_pair,unique"`
	// idx_cart_pair = (user_id, recipe_id)
	User      User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe    Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (CartItem) TableName() string { return "cart_items" }
