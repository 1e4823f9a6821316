package models

import "time"

// Attendance holds the status of one member on one day. One row per
// (sheet, ma, date); marking again overwrites via upsert. Rows are only
// removed when the whole sheet is deleted.
type Attendance struct {
	ID               uint      `json:"-" gorm:"primaryKey"`
	SpreadsheetID    string    `json:"-" gorm:"size:100;not null;uniqueIndex:idx_attendance_key;index"`
	Ma               string    `json:"ma" gorm:"size:20;not null;uniqueIndex:idx_attendance_key"`
	Date             string    `json:"date" gorm:"size:10;not null;uniqueIndex:idx_attendance_key"` // YYYY-MM-DD
	Status           Status    `json:"status" gorm:"size:20;not null;default:unmarked"`
	UpdatedAt        time.Time `json:"updated_at"`
	UpdatedBySession string    `json:"-" gorm:"size:64"` // session that last wrote; lets polling skip own writes
}
