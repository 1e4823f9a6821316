package models

import "time"

// Default tracking window for a freshly created sheet.
const (
	DefaultStartDate = "2025-12-21"
	DefaultEndDate   = "2026-02-01"
)

// Sheet is one tracked roster. The Google spreadsheet id is the primary key
// so reloading the same spreadsheet always lands on the same row.
type Sheet struct {
	SpreadsheetID    string    `json:"spreadsheet_id" gorm:"primaryKey;size:100"`
	SpreadsheetTitle string    `json:"spreadsheet_title" gorm:"size:200"`
	SheetName        string    `json:"sheet_name" gorm:"size:100"`
	Gdud             string    `json:"gdud" gorm:"size:40"`
	Pluga            string    `json:"pluga" gorm:"size:40"`
	StartDate        string    `json:"start_date" gorm:"size:10;not null"` // YYYY-MM-DD
	EndDate          string    `json:"end_date" gorm:"size:10;not null"`   // YYYY-MM-DD
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
