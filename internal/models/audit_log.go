package models

// AuditLog is an append-only record of a user-visible operation, such as a
// report export. Changes holds a JSON object or is empty.
type AuditLog struct {
	Base
	UserID       string `gorm:"type:uuid;not null;index" json:"user_id"`
	Action       string `gorm:"size:50;not null" json:"action"`
	ResourceType string `gorm:"size:50;not null" json:"resource_type"`
	ResourceID   string `gorm:"size:255;not null;default:''" json:"resource_id"`
	IPAddress    string `gorm:"size:45;not null;default:''" json:"ip_address"`
	Changes      string `gorm:"type:text;not null;default:''" json:"changes,omitempty"`
}
