package model

import "time"

// Article is a shared link submitted by a user. Articles are immutable
// once posted; the only mutation is deletion by the owner or an admin.
type Article struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	URL       string    `json:"url" gorm:"size:2048;not null"`
	Title     *string   `json:"title,omitempty" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedItem is one row of the public feed: an article joined with its
// author. Field names match the wire format the client renders.
type FeedItem struct {
	ID        uint      `json:"id"`
	URL       string    `json:"url"`
	Title     *string   `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
	UserID    uint      `json:"user_id"`
}
