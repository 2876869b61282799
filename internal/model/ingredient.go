package model

// Ingredient is static reference data; quantities live on the
// recipe_ingredients join.
type Ingredient struct {
	ID              string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name            string `gorm:"type:varchar(200);index:idx_ingredient_name;not null" json:"name"`
	MeasurementUnit string `gorm:"type:varchar(200);not null" json:"measurement_unit"`
}

func (Ingredient) TableName() string { return "ingredients" }
