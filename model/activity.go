// model/activity.go
package model

import "time"

// ActivityLog records an admin decision for the audit trail.
type ActivityLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Item      string    `json:"description"`
	CreatedAt time.Time `json:"date"`
}
