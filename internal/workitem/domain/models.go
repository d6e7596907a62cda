// Package domain contains persistence models for priced repair tasks.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// WorkItem is a priced repair-task definition (tarifa).
type WorkItem struct {
	ID        snowflake.ID    `json:"id" gorm:"primaryKey"`
	Nombre    string          `json:"nombre" gorm:"type:text;not null;index"`
	Precio    decimal.Decimal `json:"precio" gorm:"type:decimal(10,2);not null"`
	Especial  bool            `json:"especial" gorm:"not null;default:false"`
	CreatedAt time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"not null"`
}

// TableName sets the database table name.
func (WorkItem) TableName() string { return "work_items" }

// ClientPrice overrides a work item's base price for one client.
// At most one row per (client, work item) pair.
type ClientPrice struct {
	ID         snowflake.ID    `json:"id" gorm:"primaryKey"`
	ClientID   snowflake.ID    `json:"cliente" gorm:"not null;uniqueIndex:ux_client_prices_pair"`
	WorkItemID snowflake.ID    `json:"trabajo" gorm:"not null;uniqueIndex:ux_client_prices_pair"`
	Precio     decimal.Decimal `json:"precio" gorm:"type:decimal(10,2);not null"`
	CreatedAt  time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt  time.Time       `json:"updated_at" gorm:"not null"`
}

// TableName sets the database table name.
func (ClientPrice) TableName() string { return "client_prices" }
