package billing

import (
	"github.com/servibill/servibill/internal/billing/repository"
	"github.com/servibill/servibill/internal/billing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("billing.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
