package state

import (
	"github.com/servibill/servibill/internal/state/repository"
	"github.com/servibill/servibill/internal/state/service"
	"go.uber.org/fx"
)

var Module = fx.Module("state.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
