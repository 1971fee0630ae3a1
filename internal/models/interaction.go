package models

import "time"

// InteractionLog is one append-only record of a message exchange:
// what the customer sent, what the bot replied and where the
// conversation landed.
type InteractionLog struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Phone     string    `json:"phone" gorm:"index"`
	Kind      string    `json:"kind"` // "message" or "status"
	Received  string    `json:"received"`
	Sent      string    `json:"sent"`
	Stage     Stage     `json:"stage"`
	Flow      Flow      `json:"flow"`
	Timestamp time.Time `json:"timestamp"`
}
