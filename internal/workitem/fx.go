package workitem

import (
	"github.com/servibill/servibill/internal/workitem/repository"
	"github.com/servibill/servibill/internal/workitem/service"
	"go.uber.org/fx"
)

var Module = fx.Module("workitem.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(service.NewPricer),
)
