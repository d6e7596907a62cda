package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/servibill/servibill/internal/clock"
	"github.com/servibill/servibill/internal/migration"
	"github.com/servibill/servibill/internal/workitem/domain"
	"github.com/servibill/servibill/internal/workitem/repository"
)

func setupWorkItemService(t *testing.T) (*Service, *snowflake.Node) {
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
	clk := clock.NewFakeClock(time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC))

	svc := New(Params{
		DB: db, Log: zap.NewNop(), Clock: clk, GenID: node,
		Repo: repository.Provide(),
	})
	return svc.(*Service), node
}

func TestPricesForResolvesOverrides(t *testing.T) {
	svc, node := setupWorkItemService(t)
	ctx := context.Background()
	clientID := node.Generate()

	base, err := svc.Create(ctx, domain.CreateWorkItemRequest{
		Nombre: "Engrase general",
		Precio: decimal.RequireFromString("35.50"),
	})
	require.NoError(t, err)
	special, err := svc.Create(ctx, domain.CreateWorkItemRequest{
		Nombre: "Sustitucion de cable", Precio: decimal.RequireFromString("120.00"), Especial: true,
	})
	require.NoError(t, err)

	_, err = svc.SetClientPrice(ctx, domain.SetClientPriceRequest{
		WorkItemID: special.ID.String(),
		ClientID:   clientID.String(),
		Precio:     decimal.RequireFromString("95.00"),
	})
	require.NoError(t, err)

	prices, err := svc.PricesFor(ctx, nil, clientID, []snowflake.ID{base.ID, special.ID})
	require.NoError(t, err)
	require.True(t, prices[base.ID].Equal(decimal.RequireFromString("35.50")))
	require.True(t, prices[special.ID].Equal(decimal.RequireFromString("95.00")))

	// Another client still pays the base price.
	prices, err = svc.PricesFor(ctx, nil, node.Generate(), []snowflake.ID{special.ID})
	require.NoError(t, err)
	require.True(t, prices[special.ID].Equal(decimal.RequireFromString("120.00")))
}

func TestPricesForUnknownItem(t *testing.T) {
	svc, node := setupWorkItemService(t)

	_, err := svc.PricesFor(context.Background(), nil, node.Generate(), []snowflake.ID{node.Generate()})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetClientPriceUpserts(t *testing.T) {
	svc, node := setupWorkItemService(t)
	ctx := context.Background()
	clientID := node.Generate()

	item, err := svc.Create(ctx, domain.CreateWorkItemRequest{
		Nombre: "Revision anual",
		Precio: decimal.RequireFromString("60.00"),
	})
	require.NoError(t, err)

	set := func(precio string) {
		t.Helper()
		_, err := svc.SetClientPrice(ctx, domain.SetClientPriceRequest{
			WorkItemID: item.ID.String(),
			ClientID:   clientID.String(),
			Precio:     decimal.RequireFromString(precio),
		})
		require.NoError(t, err)
	}

	set("55.00")
	set("52.50")

	resp, err := svc.ListClientPrices(ctx, item.ID.String())
	require.NoError(t, err)
	require.Len(t, resp.Prices, 1)
	require.True(t, resp.Prices[0].Precio.Equal(decimal.RequireFromString("52.50")))

	require.NoError(t, svc.DeleteClientPrice(ctx, item.ID.String(), clientID.String()))
	resp, err = svc.ListClientPrices(ctx, item.ID.String())
	require.NoError(t, err)
	require.Empty(t, resp.Prices)
}
