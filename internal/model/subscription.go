package model

import "time"

// Subscription 关注关系 (user follows author)
type Subscription struct {
	ID       string `gorm:"primaryKey;type:varchar(36)"`
	UserID   string `gorm:"type:varchar(36);index:idx_sub_user;index:idx_sub_pair,unique;not null"`
	AuthorID string `gorm:"type:varchar(36);not null;index:idx_sub_pair,unique"`
	// 复合唯一键，避免重复关注
	// idx_sub_pair = (user_id, author_id)
	User      User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Author    User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (Subscription) TableName() string { return "subscriptions" }
