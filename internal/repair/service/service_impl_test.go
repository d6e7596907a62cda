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
	locationdomain "github.com/servibill/servibill/internal/location/domain"
	locationrepository "github.com/servibill/servibill/internal/location/repository"
	locationservice "github.com/servibill/servibill/internal/location/service"
	"github.com/servibill/servibill/internal/migration"
	"github.com/servibill/servibill/internal/repair/domain"
	"github.com/servibill/servibill/internal/repair/repository"
)

func setupRepairService(t *testing.T) (domain.Service, domain.Repository, *gorm.DB, *snowflake.Node, locationdomain.Location) {
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
	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	log := zap.NewNop()

	locationRepo := locationrepository.Provide()
	locationSvc := locationservice.New(locationservice.Params{
		DB: db, Log: log, Clock: clk, GenID: node, Repo: locationRepo,
	})
	location, err := locationSvc.Create(context.Background(), locationdomain.CreateLocationRequest{
		Calle: "Avenida del Puerto", Numero: "3", Ciudad: "Valencia",
	})
	require.NoError(t, err)

	repo := repository.Provide()
	svc := New(Params{
		DB: db, Log: log, Clock: clk, GenID: node,
		Repo:         repo,
		LocationRepo: locationRepo,
	})

	return svc, repo, db, node, location
}

func TestRepairRoundTripKeepsDuplicateWorkItems(t *testing.T) {
	svc, _, _, node, location := setupRepairService(t)
	ctx := context.Background()

	item := node.Generate()
	other := node.Generate()

	created, err := svc.Create(ctx, domain.CreateRepairRequest{
		Fecha:         time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		NumReparacion: "R-100",
		LocationID:    location.ID.String(),
		WorkItemIDs:   []string{item.String(), item.String(), other.String()},
	})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	require.Equal(t, []snowflake.ID{item, item, other}, got.WorkItemIDs)
}

func TestRepairCreateRequiresKnownLocation(t *testing.T) {
	svc, _, _, node, _ := setupRepairService(t)

	_, err := svc.Create(context.Background(), domain.CreateRepairRequest{
		Fecha:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		LocationID: node.Generate().String(),
	})
	require.ErrorIs(t, err, domain.ErrInvalidLocation)
}

func TestRepairMutationRefusedWhileAssigned(t *testing.T) {
	svc, repo, db, node, location := setupRepairService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRepairRequest{
		Fecha:         time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		NumReparacion: "R-200",
		LocationID:    location.ID.String(),
	})
	require.NoError(t, err)

	facturaID := node.Generate()
	require.NoError(t, repo.SetDocument(ctx, db, domain.RefFactura, &facturaID, []snowflake.ID{created.ID}))

	_, err = svc.Update(ctx, domain.UpdateRepairRequest{
		ID:         created.ID.String(),
		Fecha:      created.Fecha,
		LocationID: location.ID.String(),
	})
	require.ErrorIs(t, err, domain.ErrAssigned)
	require.ErrorIs(t, svc.Delete(ctx, created.ID.String()), domain.ErrAssigned)

	// Detached, the repair is editable again.
	require.NoError(t, repo.SetDocument(ctx, db, domain.RefFactura, nil, []snowflake.ID{created.ID}))
	require.NoError(t, svc.Delete(ctx, created.ID.String()))
}

func TestListGroupedAsignables(t *testing.T) {
	svc, repo, db, node, location := setupRepairService(t)
	ctx := context.Background()

	mk := func(num string) domain.Repair {
		repair, err := svc.Create(ctx, domain.CreateRepairRequest{
			Fecha:         time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
			NumReparacion: num,
			LocationID:    location.ID.String(),
		})
		require.NoError(t, err)
		return repair
	}

	free := mk("R-300")
	mine := mk("R-301")
	taken := mk("R-302")

	myFactura := node.Generate()
	otherFactura := node.Generate()
	require.NoError(t, repo.SetDocument(ctx, db, domain.RefFactura, &myFactura, []snowflake.ID{mine.ID}))
	require.NoError(t, repo.SetDocument(ctx, db, domain.RefFactura, &otherFactura, []snowflake.ID{taken.ID}))

	resp, err := svc.ListGrouped(ctx, domain.ListGroupedRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Groups, 3)

	resp, err = svc.ListGrouped(ctx, domain.ListGroupedRequest{
		Asignables: true,
		Tipo:       "factura",
		DocumentID: myFactura.String(),
	})
	require.NoError(t, err)
	require.Len(t, resp.Groups, 2)
	require.Equal(t, free.ID, resp.Groups[0].ID)
	require.Equal(t, mine.ID, resp.Groups[1].ID)

	_, err = svc.ListGrouped(ctx, domain.ListGroupedRequest{
		Asignables: true,
		Tipo:       "presupuesto",
		DocumentID: myFactura.String(),
	})
	require.ErrorIs(t, err, domain.ErrInvalidTipo)
}
