package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/servibill/servibill/internal/clock"
	"github.com/servibill/servibill/internal/state/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("state.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListStateRequest) (domain.ListStateResponse, error) {
	if req.Kind != "" && !req.Kind.Valid() {
		return domain.ListStateResponse{}, domain.ErrInvalidKind
	}

	states, err := s.repo.List(ctx, s.db, req.Kind)
	if err != nil {
		return domain.ListStateResponse{}, err
	}

	return domain.ListStateResponse{States: states}, nil
}

// UpdateLabels edits the display fields of a state row. Kind and Code are
// immutable so a rename can never change which state the engine resolves.
func (s *Service) UpdateLabels(ctx context.Context, req domain.UpdateStateRequest) (domain.State, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return domain.State{}, domain.ErrInvalidID
	}

	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return domain.State{}, domain.ErrInvalidNombre
	}

	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.State{}, err
	}
	if existing == nil {
		return domain.State{}, domain.ErrNotFound
	}

	existing.Nombre = nombre
	existing.Descripcion = strings.TrimSpace(req.Descripcion)
	existing.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, existing); err != nil {
		return domain.State{}, err
	}

	return *existing, nil
}
