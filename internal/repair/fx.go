package repair

import (
	"github.com/servibill/servibill/internal/repair/repository"
	"github.com/servibill/servibill/internal/repair/service"
	"go.uber.org/fx"
)

var Module = fx.Module("repair.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
