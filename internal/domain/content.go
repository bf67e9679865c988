package domain

import "time"

// Content page types.
const (
	PageTypePrivacyPolicy   = "privacy_policy"
	PageTypeTermsConditions = "terms_conditions"
)

// FAQ represents a faqs row. DisplayOrder controls listing order.
type FAQ struct {
	ID           int64     `json:"id"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	DisplayOrder int       `json:"order"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ContentPage represents a content_pages row (privacy policy, terms, etc).
type ContentPage struct {
	ID          int64     `json:"id"`
	PageType    string    `json:"page_type"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
