// Package domain contains persistence models for clients.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Client is a billable customer of the field-service business.
type Client struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Nombre    string       `json:"nombre" gorm:"type:text;not null;index"`
	NIF       string       `json:"nif" gorm:"type:text;not null;default:''"`
	Email     string       `json:"email" gorm:"type:text;not null;default:''"`
	Direccion string       `json:"direccion" gorm:"type:text;not null;default:''"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }
