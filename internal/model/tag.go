package model

// Tag is static reference data attached to recipes.
// Color is stored normalized: "#" followed by 3 or 6 hex digits.
type Tag struct {
	ID    string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name  string `gorm:"type:varchar(200);uniqueIndex;not null" json:"name"`
	Color string `gorm:"type:varchar(7);not null" json:"color"`
	Slug  string `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
}

func (Tag) TableName() string { return "tags" }
