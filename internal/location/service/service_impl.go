package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/servibill/servibill/internal/clock"
	"github.com/servibill/servibill/internal/location/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("location.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateLocationRequest) (domain.Location, error) {
	calle := strings.TrimSpace(req.Calle)
	if calle == "" {
		return domain.Location{}, domain.ErrInvalidCalle
	}

	now := s.clock.Now()
	location := domain.Location{
		ID:        s.genID.Generate(),
		Calle:     calle,
		Numero:    strings.TrimSpace(req.Numero),
		Ciudad:    strings.TrimSpace(req.Ciudad),
		Escalera:  strings.TrimSpace(req.Escalera),
		Ascensor:  req.Ascensor,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &location); err != nil {
		return domain.Location{}, err
	}

	return location, nil
}

func (s *Service) List(ctx context.Context) (domain.ListLocationResponse, error) {
	locations, err := s.repo.List(ctx, s.db)
	if err != nil {
		return domain.ListLocationResponse{}, err
	}
	return domain.ListLocationResponse{Locations: locations}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Location, error) {
	locationID, err := s.parseID(id)
	if err != nil {
		return domain.Location{}, err
	}

	location, err := s.repo.FindByID(ctx, s.db, locationID)
	if err != nil {
		return domain.Location{}, err
	}
	if location == nil {
		return domain.Location{}, domain.ErrNotFound
	}

	return *location, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateLocationRequest) (domain.Location, error) {
	locationID, err := s.parseID(req.ID)
	if err != nil {
		return domain.Location{}, err
	}

	calle := strings.TrimSpace(req.Calle)
	if calle == "" {
		return domain.Location{}, domain.ErrInvalidCalle
	}

	existing, err := s.repo.FindByID(ctx, s.db, locationID)
	if err != nil {
		return domain.Location{}, err
	}
	if existing == nil {
		return domain.Location{}, domain.ErrNotFound
	}

	existing.Calle = calle
	existing.Numero = strings.TrimSpace(req.Numero)
	existing.Ciudad = strings.TrimSpace(req.Ciudad)
	existing.Escalera = strings.TrimSpace(req.Escalera)
	existing.Ascensor = req.Ascensor
	existing.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, existing); err != nil {
		return domain.Location{}, err
	}

	return *existing, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	locationID, err := s.parseID(id)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, s.db, locationID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, locationID)
}

func (s *Service) parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
