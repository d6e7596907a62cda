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

	"github.com/servibill/servibill/internal/billing/domain"
	"github.com/servibill/servibill/internal/billing/repository"
	clientdomain "github.com/servibill/servibill/internal/client/domain"
	clientrepository "github.com/servibill/servibill/internal/client/repository"
	clientservice "github.com/servibill/servibill/internal/client/service"
	"github.com/servibill/servibill/internal/clock"
	locationdomain "github.com/servibill/servibill/internal/location/domain"
	locationrepository "github.com/servibill/servibill/internal/location/repository"
	locationservice "github.com/servibill/servibill/internal/location/service"
	"github.com/servibill/servibill/internal/migration"
	repairdomain "github.com/servibill/servibill/internal/repair/domain"
	repairrepository "github.com/servibill/servibill/internal/repair/repository"
	repairservice "github.com/servibill/servibill/internal/repair/service"
	workitemdomain "github.com/servibill/servibill/internal/workitem/domain"
	workitemrepository "github.com/servibill/servibill/internal/workitem/repository"
	workitemservice "github.com/servibill/servibill/internal/workitem/service"
)

type testEnv struct {
	db        *gorm.DB
	node      *snowflake.Node
	clk       *clock.FakeClock
	billing   domain.Service
	repairs   repairdomain.Service
	workitems workitemdomain.Service
	clients   clientdomain.Service
	locations locationdomain.Service

	client   clientdomain.Client
	location locationdomain.Location
}

func setupBillingTest(t *testing.T) *testEnv {
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
	clk := clock.NewFakeClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	log := zap.NewNop()

	clientRepo := clientrepository.Provide()
	locationRepo := locationrepository.Provide()
	workitemRepo := workitemrepository.Provide()
	repairRepo := repairrepository.Provide()
	billingRepo := repository.Provide()

	workitemSvc := workitemservice.New(workitemservice.Params{
		DB: db, Log: log, Clock: clk, GenID: node, Repo: workitemRepo,
	})
	env := &testEnv{
		db:   db,
		node: node,
		clk:  clk,
		billing: New(Params{
			DB: db, Log: log, Clock: clk, GenID: node,
			Repo:       billingRepo,
			RepairRepo: repairRepo,
			ClientRepo: clientRepo,
			Pricer:     workitemservice.NewPricer(workitemSvc),
		}),
		repairs: repairservice.New(repairservice.Params{
			DB: db, Log: log, Clock: clk, GenID: node,
			Repo:         repairRepo,
			LocationRepo: locationRepo,
		}),
		workitems: workitemSvc,
		clients: clientservice.New(clientservice.Params{
			DB: db, Log: log, Clock: clk, GenID: node, Repo: clientRepo,
		}),
		locations: locationservice.New(locationservice.Params{
			DB: db, Log: log, Clock: clk, GenID: node, Repo: locationRepo,
		}),
	}

	ctx := context.Background()
	env.client, err = env.clients.Create(ctx, clientdomain.CreateClientRequest{
		Nombre: "Comunidad Sol 12",
		NIF:    "B12345678",
	})
	require.NoError(t, err)
	env.location, err = env.locations.Create(ctx, locationdomain.CreateLocationRequest{
		Calle:  "Calle Sol",
		Numero: "12",
		Ciudad: "Madrid",
	})
	require.NoError(t, err)

	return env
}

func (e *testEnv) createWorkItem(t *testing.T, nombre, precio string) workitemdomain.WorkItem {
	t.Helper()
	item, err := e.workitems.Create(context.Background(), workitemdomain.CreateWorkItemRequest{
		Nombre: nombre,
		Precio: decimal.RequireFromString(precio),
	})
	require.NoError(t, err)
	return item
}

func (e *testEnv) createRepair(t *testing.T, numReparacion string, items ...workitemdomain.WorkItem) repairdomain.Repair {
	t.Helper()
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID.String())
	}
	repair, err := e.repairs.Create(context.Background(), repairdomain.CreateRepairRequest{
		Fecha:         e.clk.Now(),
		NumReparacion: numReparacion,
		LocationID:    e.location.ID.String(),
		WorkItemIDs:   ids,
	})
	require.NoError(t, err)
	return repair
}

func (e *testEnv) createInvoice(t *testing.T) domain.Invoice {
	t.Helper()
	invoice, err := e.billing.CreateInvoice(context.Background(), domain.CreateDocumentRequest{
		ClientID: e.client.ID.String(),
		Fecha:    e.clk.Now(),
	})
	require.NoError(t, err)
	return invoice
}

func (e *testEnv) createProforma(t *testing.T) domain.Proforma {
	t.Helper()
	proforma, err := e.billing.CreateProforma(context.Background(), domain.CreateDocumentRequest{
		ClientID: e.client.ID.String(),
		Fecha:    e.clk.Now(),
	})
	require.NoError(t, err)
	return proforma
}

func (e *testEnv) reloadRepair(t *testing.T, id snowflake.ID) repairdomain.Repair {
	t.Helper()
	repair, err := e.repairs.GetByID(context.Background(), id.String())
	require.NoError(t, err)
	return repair
}
