package models

import "time"

// TeamMember is one person on a sheet's roster. The "ma" (personal number)
// is the key attendance entries refer to; roster saves replace the whole set.
type TeamMember struct {
	ID            uint      `json:"-" gorm:"primaryKey"`
	SpreadsheetID string    `json:"-" gorm:"index;not null;size:100"`
	FirstName     string    `json:"firstName" gorm:"size:60"`
	LastName      string    `json:"lastName" gorm:"size:60"`
	Ma            string    `json:"ma" gorm:"size:20;index"`
	Gdud          string    `json:"gdud" gorm:"size:40"`
	Pluga         string    `json:"pluga" gorm:"size:40"`
	Mahlaka       string    `json:"mahlaka" gorm:"size:40"`
	MiktzoaTzvai  string    `json:"miktzoaTzvai" gorm:"size:60"`
	Notes         string    `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time `json:"-"`
}
