package model

// RecipeIngredient is the quantity-bearing join between a recipe and an
// ingredient.
type RecipeIngredient struct {
	ID           string `gorm:"primaryKey;type:varchar(36)" json:"-"`
	RecipeID     string `gorm:"type:varchar(36);index:idx_line_recipe;index:idx_line_pair,unique;not null" json:"-"`
	IngredientID string `gorm:"type:varchar(36);not null;index:idx_line_pair,unique" json:"id"`
	// idx_line_pair = (recipe_id, ingredient_id)
	Amount int `gorm:"not null" json:"amount"`

	Recipe     Recipe     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Ingredient Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RecipeIngredient) TableName() string { return "recipe_ingredients" }
