package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smallbiznis/notaventa/internal/address/domain"
	customerdomain "github.com/smallbiznis/notaventa/internal/customer/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	Repo      domain.Repository
	Customers customerdomain.Repository
}

type Service struct {
	log       *zap.Logger
	repo      domain.Repository
	customers customerdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:       p.Log.Named("address.service"),
		repo:      p.Repo,
		customers: p.Customers,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateAddressRequest) (domain.Address, error) {
	street := strings.TrimSpace(req.Street)
	if street == "" || len(street) > 300 {
		return domain.Address{}, domain.ErrInvalidStreet
	}
	neighborhood := strings.TrimSpace(req.Neighborhood)
	if neighborhood == "" || len(neighborhood) > 100 {
		return domain.Address{}, domain.ErrInvalidNeighborhood
	}
	municipality := strings.TrimSpace(req.Municipality)
	if municipality == "" || len(municipality) > 100 {
		return domain.Address{}, domain.ErrInvalidMunicipality
	}
	state := strings.TrimSpace(req.State)
	if state == "" || len(state) > 100 {
		return domain.Address{}, domain.ErrInvalidState
	}
	if !req.Kind.Valid() {
		return domain.Address{}, domain.ErrInvalidKind
	}

	customerID := strings.TrimSpace(req.CustomerID)
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return domain.Address{}, err
	}

	now := time.Now().UTC()
	address := domain.Address{
		ID:           uuid.NewString(),
		CustomerID:   customerID,
		Street:       street,
		Neighborhood: neighborhood,
		Municipality: municipality,
		State:        state,
		Kind:         req.Kind,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, &address); err != nil {
		return domain.Address{}, err
	}

	s.log.Info("address created",
		zap.String("address_id", address.ID),
		zap.String("customer_id", customerID),
	)
	return address, nil
}

func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]domain.Address, error) {
	return s.repo.ListByCustomer(ctx, strings.TrimSpace(customerID))
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Address, error) {
	address, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return domain.Address{}, err
	}
	return *address, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateAddressRequest) (domain.Address, error) {
	id = strings.TrimSpace(id)
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return domain.Address{}, err
	}

	changes := map[string]string{
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	if req.Street != nil {
		value := strings.TrimSpace(*req.Street)
		if value == "" || len(value) > 300 {
			return domain.Address{}, domain.ErrInvalidStreet
		}
		changes["street"] = value
	}
	if req.Neighborhood != nil {
		value := strings.TrimSpace(*req.Neighborhood)
		if value == "" || len(value) > 100 {
			return domain.Address{}, domain.ErrInvalidNeighborhood
		}
		changes["neighborhood"] = value
	}
	if req.Municipality != nil {
		value := strings.TrimSpace(*req.Municipality)
		if value == "" || len(value) > 100 {
			return domain.Address{}, domain.ErrInvalidMunicipality
		}
		changes["municipality"] = value
	}
	if req.State != nil {
		value := strings.TrimSpace(*req.State)
		if value == "" || len(value) > 100 {
			return domain.Address{}, domain.ErrInvalidState
		}
		changes["state"] = value
	}
	if req.Kind != nil {
		if !req.Kind.Valid() {
			return domain.Address{}, domain.ErrInvalidKind
		}
		changes["kind"] = string(*req.Kind)
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return domain.Address{}, err
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
