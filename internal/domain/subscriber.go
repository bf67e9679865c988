package domain

import "time"

// Subscription types and statuses.
const (
	SubscriptionMonthly = "monthly"
	SubscriptionYearly  = "yearly"

	SubscriberStatusActive    = "active"
	SubscriberStatusExpired   = "expired"
	SubscriberStatusCancelled = "cancelled"
)

// Subscriber represents a subscribers row.
type Subscriber struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	SubscriptionType string    `json:"subscription_type"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SubscriberStats is a daily monthly/yearly subscriber count row.
type SubscriberStats struct {
	ID      int64     `json:"id"`
	Date    time.Time `json:"date"`
	Monthly int       `json:"monthly"`
	Yearly  int       `json:"yearly"`
}
