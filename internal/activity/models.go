package activity

import "time"

const Topic = "activity"

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionToggle = "toggle_status"
)

// Entry is one admin mutation as written to admin_activity.
type Entry struct {
	ID        string    `json:"id"`
	Admin     string    `json:"admin"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entity_id"`
	Action    string    `json:"action"`
	Status    int       `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
