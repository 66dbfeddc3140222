// internal/domain/models/user.go
package models

// User is a staff member known to the backend. Users log in by name.
type User struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	PermissionsGroupID string `json:"permissions_group_id,omitempty"`
}

// SessionInfo is the backend's GET /session/ payload.
type SessionInfo struct {
	UserID string `json:"user_id"`
}
