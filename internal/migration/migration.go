package migration

import (
	"errors"

	"gorm.io/gorm"

	billingdomain "github.com/servibill/servibill/internal/billing/domain"
	clientdomain "github.com/servibill/servibill/internal/client/domain"
	locationdomain "github.com/servibill/servibill/internal/location/domain"
	repairdomain "github.com/servibill/servibill/internal/repair/domain"
	statedomain "github.com/servibill/servibill/internal/state/domain"
	workitemdomain "github.com/servibill/servibill/internal/workitem/domain"
)

// Run creates or updates the schema so a fresh install is usable out of
// the box on either dialect.
func Run(db *gorm.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	return db.AutoMigrate(
		&statedomain.State{},
		&clientdomain.Client{},
		&locationdomain.Location{},
		&workitemdomain.WorkItem{},
		&workitemdomain.ClientPrice{},
		&billingdomain.Invoice{},
		&billingdomain.Proforma{},
		&repairdomain.Repair{},
		&repairdomain.RepairWorkItem{},
	)
}
