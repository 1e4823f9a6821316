package models

// ActiveUserTimeoutSeconds — sessions not seen for this long are swept.
const ActiveUserTimeoutSeconds = 30

// ActiveUser is one live browser session on a sheet, refreshed by heartbeat.
type ActiveUser struct {
	SessionID     string `json:"session_id" gorm:"primaryKey;size:64"`
	Email         string `json:"email" gorm:"size:120;default:Anonymous"`
	SpreadsheetID string `json:"spreadsheet_id" gorm:"index;not null;size:100"`
	LastSeen      int64  `json:"last_seen" gorm:"not null"` // unix seconds
}
