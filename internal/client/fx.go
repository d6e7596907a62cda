package client

import (
	"github.com/servibill/servibill/internal/client/repository"
	"github.com/servibill/servibill/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
