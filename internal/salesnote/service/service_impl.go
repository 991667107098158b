package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	addressdomain "github.com/smallbiznis/notaventa/internal/address/domain"
	"github.com/smallbiznis/notaventa/internal/blobstore"
	"github.com/smallbiznis/notaventa/internal/config"
	customerdomain "github.com/smallbiznis/notaventa/internal/customer/domain"
	"github.com/smallbiznis/notaventa/internal/observability/metrics"
	productdomain "github.com/smallbiznis/notaventa/internal/product/domain"
	"github.com/smallbiznis/notaventa/internal/providers/pdf"
	"github.com/smallbiznis/notaventa/internal/pubsub"
	"github.com/smallbiznis/notaventa/internal/salesnote/artifacts"
	"github.com/smallbiznis/notaventa/internal/salesnote/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	Cfg       config.Config
	Repo      domain.Repository
	Customers customerdomain.Repository
	Addresses addressdomain.Repository
	Products  productdomain.Repository
	PDF       pdf.Provider
	Artifacts *artifacts.Manager
	Publisher pubsub.Publisher
	Metrics   *metrics.Metrics
}

type Service struct {
	log       *zap.Logger
	cfg       config.Config
	repo      domain.Repository
	customers customerdomain.Repository
	addresses addressdomain.Repository
	products  productdomain.Repository
	pdf       pdf.Provider
	artifacts *artifacts.Manager
	publisher pubsub.Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

func New(p Params) domain.Service {
	return &Service{
		log:       p.Log.Named("salesnote.service"),
		cfg:       p.Cfg,
		repo:      p.Repo,
		customers: p.Customers,
		addresses: p.Addresses,
		products:  p.Products,
		pdf:       p.PDF,
		artifacts: p.Artifacts,
		publisher: p.Publisher,
		metrics:   p.Metrics,
		now:       time.Now,
	}
}

// NewService builds a Service outside the fx graph. Tests use it to inject
// fakes and a fixed clock.
func NewService(log *zap.Logger, cfg config.Config, repo domain.Repository,
	customers customerdomain.Repository, addresses addressdomain.Repository,
	products productdomain.Repository, provider pdf.Provider,
	manager *artifacts.Manager, publisher pubsub.Publisher,
	m *metrics.Metrics, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		log:       log,
		cfg:       cfg,
		repo:      repo,
		customers: customers,
		addresses: addresses,
		products:  products,
		pdf:       provider,
		artifacts: manager,
		publisher: publisher,
		metrics:   m,
		now:       now,
	}
}

// references holds the entities a note points at, resolved up front so the
// workflow fails before anything is persisted.
type references struct {
	customer *customerdomain.Customer
	billing  *addressdomain.Address
	shipping *addressdomain.Address
	products map[string]*productdomain.Product
}

func (s *Service) Create(ctx context.Context, req domain.CreateNoteRequest) (domain.EnrichedNote, error) {
	started := s.now()

	if err := validateLines(req.Lines); err != nil {
		return domain.EnrichedNote{}, err
	}

	refs, err := s.resolveReferences(ctx, req)
	if err != nil {
		return domain.EnrichedNote{}, err
	}

	createdAt := s.now().UTC()
	note := domain.Note{
		ID:                uuid.NewString(),
		Folio:             domain.NewFolio(createdAt),
		CustomerID:        req.CustomerID,
		BillingAddressID:  req.BillingAddressID,
		ShippingAddressID: req.ShippingAddressID,
		CreatedAt:         createdAt,
	}

	lines, total := computeLines(note.ID, req.Lines, refs.products)
	note.Total = total

	// From here on there is no rollback: a failure further down leaves the
	// persisted note without its artifact or notification.
	if err := s.repo.InsertNote(ctx, &note); err != nil {
		return domain.EnrichedNote{}, err
	}
	for i := range lines {
		if err := s.repo.InsertLine(ctx, &lines[i]); err != nil {
			return domain.EnrichedNote{}, err
		}
	}

	doc := pdf.BuildNoteDocument(note, *refs.customer, lines)
	content, err := s.pdf.GenerateNote(ctx, doc)
	if err != nil {
		s.log.Error("pdf generation failed",
			zap.String("note_id", note.ID),
			zap.String("folio", note.Folio),
			zap.Error(err),
		)
		return domain.EnrichedNote{}, fmt.Errorf("generate note pdf: %w", err)
	}
	s.metrics.RecordPDFGenerated(ctx)

	if _, err := s.artifacts.Store(ctx, content, refs.customer.TaxID, note.Folio); err != nil {
		s.log.Error("artifact store failed",
			zap.String("note_id", note.ID),
			zap.String("folio", note.Folio),
			zap.Error(err),
		)
		return domain.EnrichedNote{}, fmt.Errorf("store note pdf: %w", err)
	}

	if err := s.publishOrderCreated(ctx, note, refs.customer); err != nil {
		return domain.EnrichedNote{}, fmt.Errorf("publish order notification: %w", err)
	}

	s.metrics.RecordNoteCreated(ctx)
	s.metrics.RecordNoteGeneration(ctx, s.now().Sub(started))
	s.log.Info("note created",
		zap.String("note_id", note.ID),
		zap.String("folio", note.Folio),
		zap.String("customer_id", note.CustomerID),
		zap.String("total", note.Total.String()),
		zap.Int("lines", len(lines)),
	)

	return domain.EnrichedNote{
		Note:            note,
		Customer:        refs.customer,
		BillingAddress:  refs.billing,
		ShippingAddress: refs.shipping,
		Lines:           lines,
		PDFURL:          s.downloadURL(note.ID),
	}, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Note, error) {
	return s.repo.ListNotes(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.EnrichedNote, error) {
	note, err := s.repo.FindNoteByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return domain.EnrichedNote{}, err
	}
	return s.enrich(ctx, *note)
}

func (s *Service) DownloadPDF(ctx context.Context, id string) (domain.PDFDownload, error) {
	note, customer, err := s.noteWithCustomer(ctx, id)
	if err != nil {
		return domain.PDFDownload{}, err
	}

	content, err := s.artifacts.Fetch(ctx, customer.TaxID, note.Folio)
	if err == blobstore.ErrNotFound {
		return domain.PDFDownload{}, domain.ErrArtifactNotFound
	}
	if err != nil {
		return domain.PDFDownload{}, err
	}
	if err := s.artifacts.MarkDownloaded(ctx, customer.TaxID, note.Folio); err != nil {
		s.log.Warn("download flag update failed",
			zap.String("folio", note.Folio),
			zap.Error(err),
		)
	}

	s.metrics.RecordPDFDownloaded(ctx)
	return domain.PDFDownload{Folio: note.Folio, Content: content}, nil
}

func (s *Service) Resend(ctx context.Context, id string) error {
	note, customer, err := s.noteWithCustomer(ctx, id)
	if err != nil {
		return err
	}

	if err := s.artifacts.MarkResent(ctx, customer.TaxID, note.Folio); err != nil {
		if err == blobstore.ErrNotFound {
			return domain.ErrArtifactNotFound
		}
		return err
	}
	if err := s.publishOrderCreated(ctx, *note, customer); err != nil {
		return fmt.Errorf("publish resend notification: %w", err)
	}

	s.metrics.RecordNoteResent(ctx)
	s.log.Info("note resent",
		zap.String("note_id", note.ID),
		zap.String("folio", note.Folio),
	)
	return nil
}

func validateLines(lines []domain.CreateNoteLineRequest) error {
	if len(lines) == 0 {
		return domain.ErrEmptyLines
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
		if !line.UnitPrice.IsPositive() {
			return domain.ErrInvalidUnitPrice
		}
	}
	return nil
}

func (s *Service) resolveReferences(ctx context.Context, req domain.CreateNoteRequest) (references, error) {
	customer, err := s.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return references{}, err
	}
	billing, err := s.addresses.FindByID(ctx, req.BillingAddressID)
	if err != nil {
		return references{}, err
	}
	shipping, err := s.addresses.FindByID(ctx, req.ShippingAddressID)
	if err != nil {
		return references{}, err
	}

	products := make(map[string]*productdomain.Product, len(req.Lines))
	for _, line := range req.Lines {
		if _, ok := products[line.ProductID]; ok {
			continue
		}
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			return references{}, err
		}
		products[line.ProductID] = product
	}

	return references{
		customer: customer,
		billing:  billing,
		shipping: shipping,
		products: products,
	}, nil
}

// computeLines snapshots the quoted unit prices into persisted lines. Amounts
// and the total are exact decimal arithmetic; nothing is rounded.
func computeLines(noteID string, reqs []domain.CreateNoteLineRequest, products map[string]*productdomain.Product) ([]domain.NoteLine, decimal.Decimal) {
	lines := make([]domain.NoteLine, 0, len(reqs))
	total := decimal.Zero
	for i, req := range reqs {
		amount := req.UnitPrice.Mul(decimal.NewFromInt(req.Quantity))
		total = total.Add(amount)
		lines = append(lines, domain.NoteLine{
			ID:          uuid.NewString(),
			NoteID:      noteID,
			ProductID:   req.ProductID,
			ProductName: products[req.ProductID].Name,
			Position:    i,
			Quantity:    req.Quantity,
			UnitPrice:   req.UnitPrice,
			Amount:      amount,
		})
	}
	return lines, total
}

// enrich joins a note with the entities it references. Entities deleted after
// the note was created come back nil rather than failing the read.
func (s *Service) enrich(ctx context.Context, note domain.Note) (domain.EnrichedNote, error) {
	enriched := domain.EnrichedNote{Note: note, PDFURL: s.downloadURL(note.ID)}

	customer, err := s.customers.FindByID(ctx, note.CustomerID)
	if err != nil && err != customerdomain.ErrNotFound {
		return domain.EnrichedNote{}, err
	}
	enriched.Customer = customer

	billing, err := s.addresses.FindByID(ctx, note.BillingAddressID)
	if err != nil && err != addressdomain.ErrNotFound {
		return domain.EnrichedNote{}, err
	}
	enriched.BillingAddress = billing

	shipping, err := s.addresses.FindByID(ctx, note.ShippingAddressID)
	if err != nil && err != addressdomain.ErrNotFound {
		return domain.EnrichedNote{}, err
	}
	enriched.ShippingAddress = shipping

	lines, err := s.repo.LinesByNote(ctx, note.ID)
	if err != nil {
		return domain.EnrichedNote{}, err
	}
	enriched.Lines = lines

	return enriched, nil
}

// noteWithCustomer resolves the customer whose tax id keys the stored
// artifact. A note whose customer is gone has no reachable artifact.
func (s *Service) noteWithCustomer(ctx context.Context, id string) (*domain.Note, *customerdomain.Customer, error) {
	note, err := s.repo.FindNoteByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, nil, err
	}
	customer, err := s.customers.FindByID(ctx, note.CustomerID)
	if err == customerdomain.ErrNotFound {
		return nil, nil, domain.ErrArtifactNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return note, customer, nil
}

func (s *Service) publishOrderCreated(ctx context.Context, note domain.Note, customer *customerdomain.Customer) error {
	total, _ := note.Total.Float64()
	message := domain.OrderCreatedMessage{
		Type:          domain.MessageTypeOrderCreated,
		CustomerEmail: customer.Email,
		CustomerName:  customer.LegalName,
		Folio:         note.Folio,
		TaxID:         customer.TaxID,
		Total:         total,
		DownloadURL:   s.downloadURL(note.ID),
		Timestamp:     s.now().UTC().Format(time.RFC3339),
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Nueva Nota de Venta - %s", note.Folio)
	if err := s.publisher.Publish(ctx, payload, subject); err != nil {
		s.log.Error("notification publish failed",
			zap.String("folio", note.Folio),
			zap.Error(err),
		)
		return err
	}

	s.metrics.RecordNotificationSent(ctx)
	return nil
}

func (s *Service) downloadURL(noteID string) string {
	return fmt.Sprintf("%s/orders/%s/pdf", strings.TrimRight(s.cfg.APIBaseURL, "/"), noteID)
}
