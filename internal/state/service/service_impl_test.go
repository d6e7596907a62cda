package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/servibill/servibill/internal/clock"
	"github.com/servibill/servibill/internal/migration"
	"github.com/servibill/servibill/internal/seed"
	"github.com/servibill/servibill/internal/state/domain"
	"github.com/servibill/servibill/internal/state/repository"
)

func setupStateService(t *testing.T) domain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	require.NoError(t, migration.Run(db))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	require.NoError(t, seed.EnsureStates(db, node))
	// Seeding twice must not duplicate rows.
	require.NoError(t, seed.EnsureStates(db, node))

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		Repo:  repository.Provide(),
	})
}

func TestListSeededStates(t *testing.T) {
	svc := setupStateService(t)
	ctx := context.Background()

	resp, err := svc.List(ctx, domain.ListStateRequest{})
	require.NoError(t, err)
	require.Len(t, resp.States, 7)

	resp, err = svc.List(ctx, domain.ListStateRequest{Kind: domain.KindProforma})
	require.NoError(t, err)
	require.Len(t, resp.States, 3)
	for _, state := range resp.States {
		require.Equal(t, domain.KindProforma, state.Kind)
	}

	_, err = svc.List(ctx, domain.ListStateRequest{Kind: "presupuesto"})
	require.ErrorIs(t, err, domain.ErrInvalidKind)
}

func TestUpdateLabelsKeepsCode(t *testing.T) {
	svc := setupStateService(t)
	ctx := context.Background()

	resp, err := svc.List(ctx, domain.ListStateRequest{Kind: domain.KindFactura})
	require.NoError(t, err)

	var pagada domain.State
	for _, state := range resp.States {
		if state.Code == domain.CodePagada {
			pagada = state
		}
	}
	require.NotZero(t, pagada.ID)

	updated, err := svc.UpdateLabels(ctx, domain.UpdateStateRequest{
		ID:          pagada.ID.String(),
		Nombre:      "Cobrada",
		Descripcion: "Factura cobrada al cliente",
	})
	require.NoError(t, err)
	require.Equal(t, "Cobrada", updated.Nombre)
	// The engine keys on the code, which a rename never touches.
	require.Equal(t, domain.CodePagada, updated.Code)
	require.Equal(t, domain.KindFactura, updated.Kind)

	_, err = svc.UpdateLabels(ctx, domain.UpdateStateRequest{ID: pagada.ID.String(), Nombre: "  "})
	require.ErrorIs(t, err, domain.ErrInvalidNombre)
}
