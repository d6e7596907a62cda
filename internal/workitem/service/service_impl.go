package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/servibill/servibill/internal/clock"
	"github.com/servibill/servibill/internal/workitem/domain"
	"github.com/shopspring/decimal"
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
		log:   p.Log.Named("workitem.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

// NewPricer exposes the price resolution side of the service.
func NewPricer(svc domain.Service) domain.Pricer {
	return svc.(*Service)
}

func (s *Service) Create(ctx context.Context, req domain.CreateWorkItemRequest) (domain.WorkItem, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return domain.WorkItem{}, domain.ErrInvalidNombre
	}
	if req.Precio.IsNegative() {
		return domain.WorkItem{}, domain.ErrInvalidPrecio
	}

	now := s.clock.Now()
	item := domain.WorkItem{
		ID:        s.genID.Generate(),
		Nombre:    nombre,
		Precio:    req.Precio,
		Especial:  req.Especial,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &item); err != nil {
		return domain.WorkItem{}, err
	}

	return item, nil
}

func (s *Service) List(ctx context.Context) (domain.ListWorkItemResponse, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return domain.ListWorkItemResponse{}, err
	}
	return domain.ListWorkItemResponse{WorkItems: items}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.WorkItem, error) {
	itemID, err := s.parseID(id)
	if err != nil {
		return domain.WorkItem{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, itemID)
	if err != nil {
		return domain.WorkItem{}, err
	}
	if item == nil {
		return domain.WorkItem{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateWorkItemRequest) (domain.WorkItem, error) {
	itemID, err := s.parseID(req.ID)
	if err != nil {
		return domain.WorkItem{}, err
	}

	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return domain.WorkItem{}, domain.ErrInvalidNombre
	}
	if req.Precio.IsNegative() {
		return domain.WorkItem{}, domain.ErrInvalidPrecio
	}

	existing, err := s.repo.FindByID(ctx, s.db, itemID)
	if err != nil {
		return domain.WorkItem{}, err
	}
	if existing == nil {
		return domain.WorkItem{}, domain.ErrNotFound
	}

	existing.Nombre = nombre
	existing.Precio = req.Precio
	existing.Especial = req.Especial
	existing.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, existing); err != nil {
		return domain.WorkItem{}, err
	}

	return *existing, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	itemID, err := s.parseID(id)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, s.db, itemID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, itemID)
}

func (s *Service) SetClientPrice(ctx context.Context, req domain.SetClientPriceRequest) (domain.ClientPrice, error) {
	itemID, err := s.parseID(req.WorkItemID)
	if err != nil {
		return domain.ClientPrice{}, err
	}
	clientID, err := s.parseID(req.ClientID)
	if err != nil {
		return domain.ClientPrice{}, err
	}
	if req.Precio.IsNegative() {
		return domain.ClientPrice{}, domain.ErrInvalidPrecio
	}

	item, err := s.repo.FindByID(ctx, s.db, itemID)
	if err != nil {
		return domain.ClientPrice{}, err
	}
	if item == nil {
		return domain.ClientPrice{}, domain.ErrNotFound
	}

	now := s.clock.Now()
	price := domain.ClientPrice{
		ID:         s.genID.Generate(),
		ClientID:   clientID,
		WorkItemID: itemID,
		Precio:     req.Precio,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.UpsertClientPrice(ctx, s.db, &price); err != nil {
		return domain.ClientPrice{}, err
	}

	return price, nil
}

func (s *Service) ListClientPrices(ctx context.Context, workItemID string) (domain.ListClientPriceResponse, error) {
	itemID, err := s.parseID(workItemID)
	if err != nil {
		return domain.ListClientPriceResponse{}, err
	}

	prices, err := s.repo.ListClientPrices(ctx, s.db, itemID)
	if err != nil {
		return domain.ListClientPriceResponse{}, err
	}

	return domain.ListClientPriceResponse{Prices: prices}, nil
}

func (s *Service) DeleteClientPrice(ctx context.Context, workItemID, clientID string) error {
	itemID, err := s.parseID(workItemID)
	if err != nil {
		return err
	}
	cID, err := s.parseID(clientID)
	if err != nil {
		return err
	}

	return s.repo.DeleteClientPrice(ctx, s.db, itemID, cID)
}

// PricesFor resolves the effective price per work item for a client: the
// client override when one exists, otherwise the base price.
func (s *Service) PricesFor(ctx context.Context, db *gorm.DB, clientID snowflake.ID, workItemIDs []snowflake.ID) (map[snowflake.ID]decimal.Decimal, error) {
	if db == nil {
		db = s.db
	}
	if len(workItemIDs) == 0 {
		return map[snowflake.ID]decimal.Decimal{}, nil
	}

	items, err := s.repo.FindByIDs(ctx, db, workItemIDs)
	if err != nil {
		return nil, err
	}

	prices := make(map[snowflake.ID]decimal.Decimal, len(items))
	for _, item := range items {
		prices[item.ID] = item.Precio
	}

	overrides, err := s.repo.FindClientPrices(ctx, db, clientID, workItemIDs)
	if err != nil {
		return nil, err
	}
	for _, override := range overrides {
		prices[override.WorkItemID] = override.Precio
	}

	for _, id := range workItemIDs {
		if _, ok := prices[id]; !ok {
			return nil, domain.ErrNotFound
		}
	}

	return prices, nil
}

func (s *Service) parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
