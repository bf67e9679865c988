package domain

import (
	"encoding/json"
	"time"
)

// Notification targets.
const (
	NotificationTargetAll  = "all"
	NotificationTargetUser = "user"
)

// Notification represents a notifications row. Sent flips once the
// notification has been handed to the dispatch pipeline.
type Notification struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	DestinationURL string    `json:"destination_url"`
	ImageURL       string    `json:"image_url"`
	IconURL        string    `json:"icon_url"`
	TargetType     string    `json:"target_type"`
	TargetUserID   *int64    `json:"target_user_id"`
	Sent           bool      `json:"sent"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OutboxEvent is a notification_outbox row awaiting publication.
type OutboxEvent struct {
	ID             int64           `json:"id"`
	NotificationID int64           `json:"notification_id"`
	TargetType     string          `json:"target_type"`
	Payload        json.RawMessage `json:"payload"`
	OccurredAt     time.Time       `json:"occurred_at"`
	PublishedAt    *time.Time      `json:"published_at"`
}
