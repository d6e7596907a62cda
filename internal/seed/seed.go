// Package seed installs the reference rows a fresh database needs before
// the document engine can run.
package seed

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bwmarrin/snowflake"
	statedomain "github.com/servibill/servibill/internal/state/domain"
	"github.com/servibill/servibill/pkg/db"
)

// EnsureStates inserts any missing built-in lifecycle states. Existing
// rows keep their labels, so operator renames survive restarts.
func EnsureStates(conn *gorm.DB, node *snowflake.Node) error {
	if conn == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, def := range statedomain.Defaults() {
			var existing statedomain.State
			err := tx.WithContext(ctx).
				Where("kind = ? AND code = ?", def.Kind, def.Code).
				First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			def.ID = node.Generate()
			if err := tx.WithContext(ctx).Create(&def).Error; err != nil {
				// Another instance may have seeded the same row first.
				if db.IsDuplicateKeyErr(err) {
					continue
				}
				return err
			}
		}
		return nil
	})
}
