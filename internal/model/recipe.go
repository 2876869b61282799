package model

import "time"

// Recipe 内容主体; tags and ingredient lines are always written together
// with the recipe row in one transaction.
type Recipe struct {
	ID       string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	AuthorID string `gorm:"type:varchar(36);index:idx_recipe_author;index:idx_recipe_author_name,unique;not null" json:"-"`
	// 复合唯一键，同一作者不可重名
	// idx_recipe_author_name = (author_id, name)
	Name        string `gorm:"type:varchar(200);index:idx_recipe_author_name,unique;not null" json:"name"`
	Text        string `gorm:"type:text" json:"text"`
	Image       string `gorm:"type:text" json:"image"`
	CookingTime int    `gorm:"not null" json:"cooking_time"`

	Author      User               `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Tags        []Tag              `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients"`

	PubDate   time.Time `gorm:"autoCreateTime;index" json:"pub_date"`
	UpdatedAt time.Time `json:"-"`
}

func (Recipe) TableName() string { return "recipes" }
