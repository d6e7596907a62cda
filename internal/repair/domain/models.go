// Package domain contains persistence models and the grouping engine for
// repair jobs.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Repair is one unit of field work. It belongs to at most one billing
// document: FacturaID and ProformaID are never both set.
type Repair struct {
	ID            snowflake.ID  `json:"id" gorm:"primaryKey"`
	Fecha         time.Time     `json:"fecha" gorm:"not null;index"`
	NumReparacion string        `json:"num_reparacion" gorm:"type:text;not null;default:'';index"`
	NumPedido     string        `json:"num_pedido" gorm:"type:text;not null;default:''"`
	LocationID    snowflake.ID  `json:"localizacion" gorm:"not null;index"`
	Comentarios   string        `json:"comentarios" gorm:"type:text;not null;default:''"`
	FacturaID     *snowflake.ID `json:"factura" gorm:"index;check:chk_repairs_single_doc,factura_id IS NULL OR proforma_id IS NULL"`
	ProformaID    *snowflake.ID `json:"proforma" gorm:"index"`
	CreatedAt     time.Time     `json:"created_at" gorm:"not null"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"not null"`

	// WorkItemIDs carries the join rows when the repository loads the
	// repair with its items. Duplicates are meaningful: the same task
	// billed twice appears twice.
	WorkItemIDs []snowflake.ID `json:"trabajos" gorm:"-"`
}

// TableName sets the database table name.
func (Repair) TableName() string { return "repairs" }

// RepairWorkItem links a repair to one billed work item. A surrogate key
// keeps duplicate (repair, work item) pairs distinct.
type RepairWorkItem struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	RepairID   snowflake.ID `gorm:"not null;index"`
	WorkItemID snowflake.ID `gorm:"not null;index"`
}

// TableName sets the database table name.
func (RepairWorkItem) TableName() string { return "repair_work_items" }

// Group is the derived display/assignment unit: all repairs sharing
// (NumReparacion, LocationID). Never persisted.
type Group struct {
	ID            snowflake.ID   `json:"id"`
	Fecha         time.Time      `json:"fecha"`
	NumReparacion string         `json:"num_reparacion"`
	NumPedido     string         `json:"num_pedido"`
	LocationID    snowflake.ID   `json:"localizacion"`
	WorkItemIDs   []snowflake.ID `json:"trabajos"`
	FacturaID     *snowflake.ID  `json:"factura"`
	ProformaID    *snowflake.ID  `json:"proforma"`
	MemberIDs     []snowflake.ID `json:"reparacion_ids"`

	// Inconsistent marks a group whose members disagree on document
	// assignment. The group stays visible so dirty data can be inspected.
	Inconsistent bool `json:"inconsistente,omitempty"`
}
