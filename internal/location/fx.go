package location

import (
	"github.com/servibill/servibill/internal/location/repository"
	"github.com/servibill/servibill/internal/location/service"
	"go.uber.org/fx"
)

var Module = fx.Module("location.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
