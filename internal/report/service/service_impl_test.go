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

	billingdomain "github.com/servibill/servibill/internal/billing/domain"
	billingrepository "github.com/servibill/servibill/internal/billing/repository"
	"github.com/servibill/servibill/internal/migration"
	"github.com/servibill/servibill/internal/report/domain"
)

func setupReportService(t *testing.T) (domain.Service, func(clientID snowflake.ID, fecha time.Time, subtotal string)) {
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
	billingRepo := billingrepository.Provide()

	svc := New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		Billing: billingRepo,
	})

	seq := int64(0)
	insert := func(clientID snowflake.ID, fecha time.Time, subtotal string) {
		seq++
		sub := decimal.RequireFromString(subtotal)
		_, total := billingdomain.ApplyIVA(sub)
		invoice := billingdomain.Invoice{
			ID:         node.Generate(),
			ClientID:   clientID,
			Fecha:      fecha,
			StatusCode: "created",
			Seq:        seq,
			Numero:     fmt.Sprintf("F-%06d", seq),
			Subtotal:   sub,
			Total:      total,
			CreatedAt:  fecha,
			UpdatedAt:  fecha,
		}
		require.NoError(t, billingRepo.InsertInvoice(context.Background(), db, &invoice))
	}

	return svc, insert
}

func TestQuarterlyReport(t *testing.T) {
	svc, insert := setupReportService(t)
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	client := node.Generate()

	insert(client, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), "100")
	insert(client, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), "200")
	insert(client, time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC), "80")
	// Neighboring years stay out of the report.
	insert(client, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "500")

	resp, err := svc.Quarterly(context.Background(), 2025)
	require.NoError(t, err)
	require.Equal(t, 2025, resp.Year)
	require.Len(t, resp.Quarters, 2)

	q1 := resp.Quarters[0]
	require.Equal(t, 1, q1.Quarter)
	require.True(t, q1.Subtotal.Equal(decimal.RequireFromString("300")))
	require.True(t, q1.IVA.Equal(decimal.RequireFromString("63.00")))
	require.True(t, q1.Total.Equal(decimal.RequireFromString("363.00")))

	require.Equal(t, 4, resp.Quarters[1].Quarter)
	require.True(t, resp.Quarters[1].Subtotal.Equal(decimal.RequireFromString("80")))
}

func TestAnnualReportAcrossClients(t *testing.T) {
	svc, insert := setupReportService(t)
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	clientA := node.Generate()
	clientB := node.Generate()

	insert(clientA, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "100")
	insert(clientA, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), "50")
	insert(clientB, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), "20")

	annual, err := svc.Annual(context.Background(), 2025)
	require.NoError(t, err)
	require.Len(t, annual.Clients, 2)
	require.True(t, annual.Subtotal.Equal(decimal.RequireFromString("170")))
	require.True(t, annual.IVA.Equal(decimal.RequireFromString("35.70")))
	require.True(t, annual.Total.Equal(decimal.RequireFromString("205.70")))
}

func TestReportRejectsInvalidYear(t *testing.T) {
	svc, _ := setupReportService(t)

	_, err := svc.Quarterly(context.Background(), 0)
	require.ErrorIs(t, err, domain.ErrInvalidYear)
	_, err = svc.Annual(context.Background(), -3)
	require.ErrorIs(t, err, domain.ErrInvalidYear)
}
