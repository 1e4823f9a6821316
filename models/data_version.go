package models

// DataVersion is a single-row counter (id = 1). Bumping it tells every
// polling client to throw away local state and do a full reload.
type DataVersion struct {
	ID      uint `json:"id" gorm:"primaryKey"`
	Version int  `json:"version" gorm:"not null;default:1"`
}
