package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/servibill/servibill/internal/clock"
	locationdomain "github.com/servibill/servibill/internal/location/domain"
	"github.com/servibill/servibill/internal/repair/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Clock        clock.Clock
	GenID        *snowflake.Node
	Repo         domain.Repository
	LocationRepo locationdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	clock        clock.Clock
	genID        *snowflake.Node
	repo         domain.Repository
	locationRepo locationdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("repair.service"),
		clock:        p.Clock,
		genID:        p.GenID,
		repo:         p.Repo,
		locationRepo: p.LocationRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRepairRequest) (domain.Repair, error) {
	if req.Fecha.IsZero() {
		return domain.Repair{}, domain.ErrInvalidFecha
	}

	locationID, err := snowflake.ParseString(strings.TrimSpace(req.LocationID))
	if err != nil {
		return domain.Repair{}, domain.ErrInvalidLocation
	}

	location, err := s.locationRepo.FindByID(ctx, s.db, locationID)
	if err != nil {
		return domain.Repair{}, err
	}
	if location == nil {
		return domain.Repair{}, domain.ErrInvalidLocation
	}

	workItemIDs, err := parseIDs(req.WorkItemIDs)
	if err != nil {
		return domain.Repair{}, err
	}

	now := s.clock.Now()
	repair := domain.Repair{
		ID:            s.genID.Generate(),
		Fecha:         req.Fecha.UTC(),
		NumReparacion: strings.TrimSpace(req.NumReparacion),
		NumPedido:     strings.TrimSpace(req.NumPedido),
		LocationID:    locationID,
		Comentarios:   strings.TrimSpace(req.Comentarios),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &repair); err != nil {
			return err
		}
		return s.repo.ReplaceWorkItems(ctx, tx, repair.ID, s.joinRows(repair.ID, workItemIDs))
	})
	if err != nil {
		return domain.Repair{}, err
	}

	repair.WorkItemIDs = workItemIDs
	return repair, nil
}

func (s *Service) List(ctx context.Context) (domain.ListRepairResponse, error) {
	repairs, err := s.repo.List(ctx, s.db)
	if err != nil {
		return domain.ListRepairResponse{}, err
	}
	return domain.ListRepairResponse{Repairs: repairs}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Repair, error) {
	repairID, err := s.parseID(id)
	if err != nil {
		return domain.Repair{}, err
	}

	repair, err := s.repo.FindByID(ctx, s.db, repairID)
	if err != nil {
		return domain.Repair{}, err
	}
	if repair == nil {
		return domain.Repair{}, domain.ErrNotFound
	}

	return *repair, nil
}

// Update edits an unassigned repair. Repairs bound to a document must be
// detached first so document totals never go stale.
func (s *Service) Update(ctx context.Context, req domain.UpdateRepairRequest) (domain.Repair, error) {
	repairID, err := s.parseID(req.ID)
	if err != nil {
		return domain.Repair{}, err
	}
	if req.Fecha.IsZero() {
		return domain.Repair{}, domain.ErrInvalidFecha
	}

	locationID, err := snowflake.ParseString(strings.TrimSpace(req.LocationID))
	if err != nil {
		return domain.Repair{}, domain.ErrInvalidLocation
	}

	workItemIDs, err := parseIDs(req.WorkItemIDs)
	if err != nil {
		return domain.Repair{}, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, repairID)
	if err != nil {
		return domain.Repair{}, err
	}
	if existing == nil {
		return domain.Repair{}, domain.ErrNotFound
	}
	if existing.FacturaID != nil || existing.ProformaID != nil {
		return domain.Repair{}, domain.ErrAssigned
	}

	existing.Fecha = req.Fecha.UTC()
	existing.NumReparacion = strings.TrimSpace(req.NumReparacion)
	existing.NumPedido = strings.TrimSpace(req.NumPedido)
	existing.LocationID = locationID
	existing.Comentarios = strings.TrimSpace(req.Comentarios)
	existing.UpdatedAt = s.clock.Now()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, existing); err != nil {
			return err
		}
		return s.repo.ReplaceWorkItems(ctx, tx, existing.ID, s.joinRows(existing.ID, workItemIDs))
	})
	if err != nil {
		return domain.Repair{}, err
	}

	existing.WorkItemIDs = workItemIDs
	return *existing, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	repairID, err := s.parseID(id)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, s.db, repairID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	if existing.FacturaID != nil || existing.ProformaID != nil {
		return domain.ErrAssigned
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Delete(ctx, tx, repairID)
	})
}

func (s *Service) ListGrouped(ctx context.Context, req domain.ListGroupedRequest) (domain.ListGroupedResponse, error) {
	repairs, err := s.repo.List(ctx, s.db)
	if err != nil {
		return domain.ListGroupedResponse{}, err
	}

	groups := domain.GroupRepairs(repairs)
	for _, group := range groups {
		if group.Inconsistent {
			s.log.Warn("repair group has mixed document assignment",
				zap.String("num_reparacion", group.NumReparacion),
				zap.String("localizacion", group.LocationID.String()),
			)
		}
	}

	if !req.Asignables {
		return domain.ListGroupedResponse{Groups: groups}, nil
	}

	assignCtx := domain.AssignmentContext{}
	if strings.TrimSpace(req.DocumentID) != "" {
		docID, err := snowflake.ParseString(strings.TrimSpace(req.DocumentID))
		if err != nil {
			return domain.ListGroupedResponse{}, domain.ErrInvalidID
		}
		switch strings.TrimSpace(req.Tipo) {
		case "factura":
			assignCtx.FacturaID = &docID
		case "proforma":
			assignCtx.ProformaID = &docID
		default:
			return domain.ListGroupedResponse{}, domain.ErrInvalidTipo
		}
	}

	return domain.ListGroupedResponse{Groups: domain.FilterAssignable(groups, assignCtx)}, nil
}

func (s *Service) joinRows(repairID snowflake.ID, workItemIDs []snowflake.ID) []domain.RepairWorkItem {
	rows := make([]domain.RepairWorkItem, 0, len(workItemIDs))
	for _, itemID := range workItemIDs {
		rows = append(rows, domain.RepairWorkItem{
			ID:         s.genID.Generate(),
			RepairID:   repairID,
			WorkItemID: itemID,
		})
	}
	return rows
}

func (s *Service) parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func parseIDs(raw []string) ([]snowflake.ID, error) {
	ids := make([]snowflake.ID, 0, len(raw))
	for _, value := range raw {
		id, err := snowflake.ParseString(strings.TrimSpace(value))
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		ids = append(ids, id)
	}
	return ids, nil
}
