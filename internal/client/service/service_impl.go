package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/servibill/servibill/internal/client/domain"
	"github.com/servibill/servibill/internal/clock"
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
		log:   p.Log.Named("client.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateClientRequest) (domain.Client, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return domain.Client{}, domain.ErrInvalidNombre
	}

	email := strings.TrimSpace(req.Email)
	if email != "" && !strings.Contains(email, "@") {
		return domain.Client{}, domain.ErrInvalidEmail
	}

	now := s.clock.Now()
	client := domain.Client{
		ID:        s.genID.Generate(),
		Nombre:    nombre,
		NIF:       strings.TrimSpace(req.NIF),
		Email:     email,
		Direccion: strings.TrimSpace(req.Direccion),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &client); err != nil {
		return domain.Client{}, err
	}

	return client, nil
}

func (s *Service) List(ctx context.Context) (domain.ListClientResponse, error) {
	clients, err := s.repo.List(ctx, s.db)
	if err != nil {
		return domain.ListClientResponse{}, err
	}
	return domain.ListClientResponse{Clients: clients}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Client, error) {
	clientID, err := s.parseID(id)
	if err != nil {
		return domain.Client{}, err
	}

	client, err := s.repo.FindByID(ctx, s.db, clientID)
	if err != nil {
		return domain.Client{}, err
	}
	if client == nil {
		return domain.Client{}, domain.ErrNotFound
	}

	return *client, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateClientRequest) (domain.Client, error) {
	clientID, err := s.parseID(req.ID)
	if err != nil {
		return domain.Client{}, err
	}

	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return domain.Client{}, domain.ErrInvalidNombre
	}

	existing, err := s.repo.FindByID(ctx, s.db, clientID)
	if err != nil {
		return domain.Client{}, err
	}
	if existing == nil {
		return domain.Client{}, domain.ErrNotFound
	}

	existing.Nombre = nombre
	existing.NIF = strings.TrimSpace(req.NIF)
	existing.Email = strings.TrimSpace(req.Email)
	existing.Direccion = strings.TrimSpace(req.Direccion)
	existing.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, existing); err != nil {
		return domain.Client{}, err
	}

	return *existing, nil
}

// Delete removes the client permanently. Clients are never archived.
func (s *Service) Delete(ctx context.Context, id string) error {
	clientID, err := s.parseID(id)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, s.db, clientID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, clientID)
}

func (s *Service) parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
