// Package domain contains persistence models for service locations.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Location is a physical address where repair work is performed.
type Location struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Calle     string       `json:"calle" gorm:"type:text;not null"`
	Numero    string       `json:"numero" gorm:"type:text;not null;default:''"`
	Ciudad    string       `json:"ciudad" gorm:"type:text;not null;default:''"`
	Escalera  string       `json:"escalera" gorm:"type:text;not null;default:''"`
	Ascensor  bool         `json:"ascensor" gorm:"not null;default:false"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null"`
}

// TableName sets the database table name.
func (Location) TableName() string { return "locations" }

// Label renders the address the way it is shown on documents.
func (l Location) Label() string {
	label := l.Calle
	if l.Numero != "" {
		label += " " + l.Numero
	}
	if l.Escalera != "" {
		label += ", Esc. " + l.Escalera
	}
	if l.Ciudad != "" {
		label += ", " + l.Ciudad
	}
	return label
}
