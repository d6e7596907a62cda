package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/servibill/servibill/internal/billing"
	billingdomain "github.com/servibill/servibill/internal/billing/domain"
	"github.com/servibill/servibill/internal/client"
	clientdomain "github.com/servibill/servibill/internal/client/domain"
	"github.com/servibill/servibill/internal/config"
	"github.com/servibill/servibill/internal/location"
	locationdomain "github.com/servibill/servibill/internal/location/domain"
	"github.com/servibill/servibill/internal/repair"
	repairdomain "github.com/servibill/servibill/internal/repair/domain"
	"github.com/servibill/servibill/internal/report"
	reportdomain "github.com/servibill/servibill/internal/report/domain"
	"github.com/servibill/servibill/internal/state"
	statedomain "github.com/servibill/servibill/internal/state/domain"
	"github.com/servibill/servibill/internal/workitem"
	workitemdomain "github.com/servibill/servibill/internal/workitem/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(NewHTTPMetrics),
	fx.Provide(NewEngine),
	state.Module,
	client.Module,
	location.Module,
	workitem.Module,
	repair.Module,
	billing.Module,
	report.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogMiddleware(log.Named("http")))
	r.Use(MetricsMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	stateSvc    statedomain.Service
	clientSvc   clientdomain.Service
	locationSvc locationdomain.Service
	workItemSvc workitemdomain.Service
	repairSvc   repairdomain.Service
	billingSvc  billingdomain.Service
	reportSvc   reportdomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	StateSvc    statedomain.Service
	ClientSvc   clientdomain.Service
	LocationSvc locationdomain.Service
	WorkItemSvc workitemdomain.Service
	RepairSvc   repairdomain.Service
	BillingSvc  billingdomain.Service
	ReportSvc   reportdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		stateSvc:    p.StateSvc,
		clientSvc:   p.ClientSvc,
		locationSvc: p.LocationSvc,
		workItemSvc: p.WorkItemSvc,
		repairSvc:   p.RepairSvc,
		billingSvc:  p.BillingSvc,
		reportSvc:   p.ReportSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	clients := api.Group("/clients")
	clients.POST("", s.CreateClient)
	clients.GET("", s.ListClients)
	clients.GET("/:id", s.GetClientByID)
	clients.PUT("/:id", s.UpdateClient)
	clients.DELETE("/:id", s.DeleteClient)

	locations := api.Group("/locations")
	locations.POST("", s.CreateLocation)
	locations.GET("", s.ListLocations)
	locations.GET("/:id", s.GetLocationByID)
	locations.PUT("/:id", s.UpdateLocation)
	locations.DELETE("/:id", s.DeleteLocation)

	workitems := api.Group("/workitems")
	workitems.POST("", s.CreateWorkItem)
	workitems.GET("", s.ListWorkItems)
	workitems.GET("/:id", s.GetWorkItemByID)
	workitems.PUT("/:id", s.UpdateWorkItem)
	workitems.DELETE("/:id", s.DeleteWorkItem)
	workitems.PUT("/:id/prices", s.SetClientPrice)
	workitems.GET("/:id/prices", s.ListClientPrices)
	workitems.DELETE("/:id/prices/:clientId", s.DeleteClientPrice)

	repairs := api.Group("/repairs")
	repairs.POST("", s.CreateRepair)
	repairs.GET("", s.ListRepairs)
	repairs.GET("/grouped", s.ListGroupedRepairs)
	repairs.GET("/:id", s.GetRepairByID)
	repairs.PUT("/:id", s.UpdateRepair)
	repairs.DELETE("/:id", s.DeleteRepair)

	invoices := api.Group("/facturas")
	invoices.POST("", s.CreateInvoice)
	invoices.GET("", s.ListInvoices)
	invoices.GET("/:id", s.GetInvoiceByID)
	invoices.POST("/:id/assign-repairs", s.AssignInvoiceRepairs)
	invoices.POST("/:id/unassign-repairs", s.UnassignInvoiceRepairs)
	invoices.PATCH("/:id", s.AdvanceInvoice)
	invoices.DELETE("/:id", s.DeleteInvoice)

	proformas := api.Group("/proformas")
	proformas.POST("", s.CreateProforma)
	proformas.GET("", s.ListProformas)
	proformas.GET("/:id", s.GetProformaByID)
	proformas.POST("/:id/assign-repairs", s.AssignProformaRepairs)
	proformas.POST("/:id/unassign-repairs", s.UnassignProformaRepairs)
	proformas.POST("/:id/convert-to-invoice", s.ConvertProforma)
	proformas.PATCH("/:id", s.AdvanceProforma)
	proformas.DELETE("/:id", s.DeleteProforma)

	states := api.Group("/estados")
	states.GET("", s.ListStates)
	states.PUT("/:id", s.UpdateStateLabels)

	reports := api.Group("/reports")
	reports.GET("/quarterly", s.QuarterlyReport)
	reports.GET("/annual", s.AnnualReport)
}
