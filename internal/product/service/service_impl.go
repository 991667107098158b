package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smallbiznis/notaventa/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:  p.Log.Named("product.service"),
		repo: p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProductRequest) (domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 200 {
		return domain.Product{}, domain.ErrInvalidName
	}
	unit := strings.TrimSpace(req.UnitOfMeasure)
	if unit == "" || len(unit) > 50 {
		return domain.Product{}, domain.ErrInvalidUnitOfMeasure
	}
	if !req.BasePrice.IsPositive() {
		return domain.Product{}, domain.ErrInvalidBasePrice
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:            uuid.NewString(),
		Name:          name,
		UnitOfMeasure: unit,
		BasePrice:     req.BasePrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, &product); err != nil {
		return domain.Product{}, err
	}

	s.log.Info("product created", zap.String("product_id", product.ID))
	return product, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Product, error) {
	product, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return domain.Product{}, err
	}
	return *product, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateProductRequest) (domain.Product, error) {
	id = strings.TrimSpace(id)
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return domain.Product{}, err
	}

	changes := map[string]string{
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	if req.Name != nil {
		value := strings.TrimSpace(*req.Name)
		if value == "" || len(value) > 200 {
			return domain.Product{}, domain.ErrInvalidName
		}
		changes["name"] = value
	}
	if req.UnitOfMeasure != nil {
		value := strings.TrimSpace(*req.UnitOfMeasure)
		if value == "" || len(value) > 50 {
			return domain.Product{}, domain.ErrInvalidUnitOfMeasure
		}
		changes["unit_of_measure"] = value
	}
	if req.BasePrice != nil {
		if !req.BasePrice.IsPositive() {
			return domain.Product{}, domain.ErrInvalidBasePrice
		}
		changes["base_price"] = req.BasePrice.String()
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return domain.Product{}, err
	}
	return *updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
