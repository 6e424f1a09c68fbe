package domain

import "time"

// RatingSession accumulates a user's ratings between requests so the browser
// does not have to resend the whole list every time. Stored in Redis with a
// TTL; never consulted by the recommendation core directly.
type RatingSession struct {
	SessionID string    `json:"session_id"`
	Ratings   []Rating  `json:"ratings"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
