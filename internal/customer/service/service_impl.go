package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	addressdomain "github.com/smallbiznis/notaventa/internal/address/domain"
	"github.com/smallbiznis/notaventa/internal/customer/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	Repo      domain.Repository
	Addresses addressdomain.Repository
}

type Service struct {
	log       *zap.Logger
	repo      domain.Repository
	addresses addressdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:       p.Log.Named("customer.service"),
		repo:      p.Repo,
		addresses: p.Addresses,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	legalName := strings.TrimSpace(req.LegalName)
	if legalName == "" || len(legalName) > 200 {
		return domain.Customer{}, domain.ErrInvalidLegalName
	}
	tradeName := strings.TrimSpace(req.TradeName)
	if tradeName == "" || len(tradeName) > 200 {
		return domain.Customer{}, domain.ErrInvalidTradeName
	}
	taxID := strings.TrimSpace(req.TaxID)
	if len(taxID) < 12 || len(taxID) > 13 {
		return domain.Customer{}, domain.ErrInvalidTaxID
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.Customer{}, domain.ErrInvalidEmail
	}
	phone := strings.TrimSpace(req.Phone)
	if len(phone) < 10 || len(phone) > 15 {
		return domain.Customer{}, domain.ErrInvalidPhone
	}

	// Uniqueness is a scan; the store has no index on tax id.
	if _, err := s.repo.FindByTaxID(ctx, taxID); err == nil {
		return domain.Customer{}, domain.ErrTaxIDTaken
	} else if err != domain.ErrNotFound {
		return domain.Customer{}, err
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		ID:        uuid.NewString(),
		LegalName: legalName,
		TradeName: tradeName,
		TaxID:     taxID,
		Email:     email,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, &customer); err != nil {
		return domain.Customer{}, err
	}

	s.log.Info("customer created", zap.String("customer_id", customer.ID))
	return customer, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	customer, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return domain.Customer{}, err
	}
	return *customer, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateCustomerRequest) (domain.Customer, error) {
	id = strings.TrimSpace(id)
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return domain.Customer{}, err
	}

	changes := map[string]string{
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	if req.LegalName != nil {
		value := strings.TrimSpace(*req.LegalName)
		if value == "" || len(value) > 200 {
			return domain.Customer{}, domain.ErrInvalidLegalName
		}
		changes["legal_name"] = value
	}
	if req.TradeName != nil {
		value := strings.TrimSpace(*req.TradeName)
		if value == "" || len(value) > 200 {
			return domain.Customer{}, domain.ErrInvalidTradeName
		}
		changes["trade_name"] = value
	}
	if req.TaxID != nil {
		value := strings.TrimSpace(*req.TaxID)
		if len(value) < 12 || len(value) > 13 {
			return domain.Customer{}, domain.ErrInvalidTaxID
		}
		changes["tax_id"] = value
	}
	if req.Email != nil {
		value := strings.TrimSpace(*req.Email)
		if value == "" || !strings.Contains(value, "@") {
			return domain.Customer{}, domain.ErrInvalidEmail
		}
		changes["email"] = value
	}
	if req.Phone != nil {
		value := strings.TrimSpace(*req.Phone)
		if len(value) < 10 || len(value) > 15 {
			return domain.Customer{}, domain.ErrInvalidPhone
		}
		changes["phone"] = value
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return domain.Customer{}, err
	}
	return *updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	// Addresses share the customer's lifecycle.
	addresses, err := s.addresses.ListByCustomer(ctx, id)
	if err != nil {
		return err
	}
	for _, address := range addresses {
		if err := s.addresses.Delete(ctx, address.ID); err != nil {
			return err
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("customer deleted",
		zap.String("customer_id", id),
		zap.Int("cascaded_addresses", len(addresses)),
	)
	return nil
}
