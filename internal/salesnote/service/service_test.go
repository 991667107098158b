package service

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	addressdomain "github.com/smallbiznis/notaventa/internal/address/domain"
	addressrepository "github.com/smallbiznis/notaventa/internal/address/repository"
	"github.com/smallbiznis/notaventa/internal/blobstore"
	"github.com/smallbiznis/notaventa/internal/config"
	customerdomain "github.com/smallbiznis/notaventa/internal/customer/domain"
	customerrepository "github.com/smallbiznis/notaventa/internal/customer/repository"
	"github.com/smallbiznis/notaventa/internal/kvstore"
	productdomain "github.com/smallbiznis/notaventa/internal/product/domain"
	productrepository "github.com/smallbiznis/notaventa/internal/product/repository"
	"github.com/smallbiznis/notaventa/internal/providers/pdf"
	"github.com/smallbiznis/notaventa/internal/salesnote/artifacts"
	"github.com/smallbiznis/notaventa/internal/salesnote/domain"
	"github.com/smallbiznis/notaventa/internal/salesnote/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPDFProvider struct {
	calls   int
	lastDoc pdf.NoteDocument
	err     error
}

func (p *stubPDFProvider) GenerateNote(ctx context.Context, doc pdf.NoteDocument) ([]byte, error) {
	p.calls++
	p.lastDoc = doc
	if p.err != nil {
		return nil, p.err
	}
	return []byte("%PDF-1.4 stub"), nil
}

type capturingPublisher struct {
	messages [][]byte
	subjects []string
	err      error
}

func (p *capturingPublisher) Publish(ctx context.Context, message []byte, subject string) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, message)
	p.subjects = append(p.subjects, subject)
	return nil
}

type workflowFixture struct {
	svc       *Service
	store     *kvstore.MemoryStore
	blobs     *blobstore.MemoryStore
	manager   *artifacts.Manager
	pdf       *stubPDFProvider
	publisher *capturingPublisher
	customer  customerdomain.Customer
	billing   addressdomain.Address
	shipping  addressdomain.Address
	product   productdomain.Product
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	ctx := context.Background()

	store := kvstore.NewMemoryStore()
	blobs := blobstore.NewMemoryStore()
	manager := artifacts.NewManager(blobs, "notas")
	provider := &stubPDFProvider{}
	publisher := &capturingPublisher{}

	customers := customerrepository.Provide(store)
	addresses := addressrepository.Provide(store)
	products := productrepository.Provide(store)

	f := &workflowFixture{
		store:     store,
		blobs:     blobs,
		manager:   manager,
		pdf:       provider,
		publisher: publisher,
	}

	f.customer = customerdomain.Customer{
		ID:        "cust-1",
		LegalName: "Comercial del Norte SA de CV",
		TradeName: "Comercial del Norte",
		TaxID:     "CNO120315AB1",
		Email:     "compras@norte.example",
		Phone:     "5512345678",
	}
	require.NoError(t, customers.Insert(ctx, &f.customer))

	f.billing = addressdomain.Address{
		ID:         "addr-billing",
		CustomerID: "cust-1",
		Street:     "Av. Reforma 100",
		Kind:       addressdomain.KindBilling,
	}
	f.shipping = addressdomain.Address{
		ID:         "addr-shipping",
		CustomerID: "cust-1",
		Street:     "Calle Hidalgo 5",
		Kind:       addressdomain.KindShipping,
	}
	require.NoError(t, addresses.Insert(ctx, &f.billing))
	require.NoError(t, addresses.Insert(ctx, &f.shipping))

	f.product = productdomain.Product{
		ID:        "prod-1",
		Name:      "Martillo",
		BasePrice: decimal.NewFromInt(90),
	}
	require.NoError(t, products.Insert(ctx, &f.product))

	now := func() time.Time {
		return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	}
	f.svc = NewService(
		zap.NewNop(),
		config.Config{APIBaseURL: "http://localhost:8080"},
		repository.Provide(store),
		customers,
		addresses,
		products,
		provider,
		manager,
		publisher,
		nil,
		now,
	)
	return f
}

func createRequest(lines ...domain.CreateNoteLineRequest) domain.CreateNoteRequest {
	return domain.CreateNoteRequest{
		CustomerID:        "cust-1",
		BillingAddressID:  "addr-billing",
		ShippingAddressID: "addr-shipping",
		Lines:             lines,
	}
}

func TestCreate_FullWorkflow(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, createRequest(domain.CreateNoteLineRequest{
		ProductID: "prod-1",
		Quantity:  2,
		UnitPrice: decimal.NewFromInt(100),
	}))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^NV-\d{14}-[A-Z0-9]{4}$`), created.Folio)
	assert.Equal(t, "NV-20260315120000-", created.Folio[:18])
	assert.True(t, created.Total.Equal(decimal.NewFromInt(200)), "total %s", created.Total)

	require.NotNil(t, created.Customer)
	assert.Equal(t, "cust-1", created.Customer.ID)
	require.NotNil(t, created.BillingAddress)
	assert.Equal(t, "addr-billing", created.BillingAddress.ID)
	require.NotNil(t, created.ShippingAddress)
	assert.Equal(t, "addr-shipping", created.ShippingAddress.ID)
	assert.Equal(t, "http://localhost:8080/orders/"+created.ID+"/pdf", created.PDFURL)

	require.Len(t, created.Lines, 1)
	line := created.Lines[0]
	assert.Equal(t, "Martillo", line.ProductName)
	assert.EqualValues(t, 2, line.Quantity)
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, line.Amount.Equal(decimal.NewFromInt(200)))

	// PDF rendered once from the created note's content.
	assert.Equal(t, 1, f.pdf.calls)
	assert.Equal(t, created.Folio, f.pdf.lastDoc.Folio)
	assert.Equal(t, "$200.00", f.pdf.lastDoc.Total)

	// Artifact stored under the customer's tax id with fresh metadata.
	data, err := f.manager.Fetch(ctx, "CNO120315AB1", created.Folio)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 stub"), data)
	meta, err := f.manager.Metadata(ctx, "CNO120315AB1", created.Folio)
	require.NoError(t, err)
	assert.Equal(t, "false", meta["downloaded"])
	assert.Equal(t, "1", meta["send-count"])

	// Notification published.
	require.Len(t, f.publisher.messages, 1)
	assert.Equal(t, "Nueva Nota de Venta - "+created.Folio, f.publisher.subjects[0])

	var message domain.OrderCreatedMessage
	require.NoError(t, json.Unmarshal(f.publisher.messages[0], &message))
	assert.Equal(t, domain.MessageTypeOrderCreated, message.Type)
	assert.Equal(t, "compras@norte.example", message.CustomerEmail)
	assert.Equal(t, "Comercial del Norte SA de CV", message.CustomerName)
	assert.Equal(t, created.Folio, message.Folio)
	assert.Equal(t, "CNO120315AB1", message.TaxID)
	assert.Equal(t, 200.0, message.Total)
	assert.Equal(t, created.PDFURL, message.DownloadURL)
}

func TestCreate_ExactDecimalTotals(t *testing.T) {
	f := newWorkflowFixture(t)

	tenCents := decimal.RequireFromString("0.10")
	created, err := f.svc.Create(context.Background(), createRequest(
		domain.CreateNoteLineRequest{ProductID: "prod-1", Quantity: 1, UnitPrice: tenCents},
		domain.CreateNoteLineRequest{ProductID: "prod-1", Quantity: 1, UnitPrice: tenCents},
		domain.CreateNoteLineRequest{ProductID: "prod-1", Quantity: 1, UnitPrice: tenCents},
	))
	require.NoError(t, err)

	// 3 x 0.10 is exactly 0.30; binary floating point would drift here.
	assert.Equal(t, "0.3", created.Total.String())
}

func TestCreate_LinesKeepRequestOrder(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, createRequest(
		domain.CreateNoteLineRequest{ProductID: "prod-1", Quantity: 3, UnitPrice: decimal.NewFromInt(1)},
		domain.CreateNoteLineRequest{ProductID: "prod-1", Quantity: 2, UnitPrice: decimal.NewFromInt(1)},
		domain.CreateNoteLineRequest{ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
	))
	require.NoError(t, err)

	fetched, err := f.svc.GetByID(ctx, created.ID)
	require.NoError(t, err)

	require.Len(t, fetched.Lines, 3)
	assert.EqualValues(t, 3, fetched.Lines[0].Quantity)
	assert.EqualValues(t, 2, fetched.Lines[1].Quantity)
	assert.EqualValues(t, 1, fetched.Lines[2].Quantity)
}

func TestCreate_UnknownReferences(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	line := domain.CreateNoteLineRequest{ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}

	req := createRequest(line)
	req.CustomerID = "missing"
	_, err := f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, customerdomain.ErrNotFound)

	req = createRequest(line)
	req.BillingAddressID = "missing"
	_, err = f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, addressdomain.ErrNotFound)

	req = createRequest(domain.CreateNoteLineRequest{ProductID: "missing", Quantity: 1, UnitPrice: decimal.NewFromInt(10)})
	_, err = f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, productdomain.ErrNotFound)

	// Failed validation must leave nothing behind.
	notes, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
	assert.Zero(t, f.pdf.calls)
	assert.Empty(t, f.publisher.messages)
}

func TestCreate_InvalidLines(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, createRequest())
	assert.ErrorIs(t, err, domain.ErrEmptyLines)

	_, err = f.svc.Create(ctx, createRequest(domain.CreateNoteLineRequest{ProductID: "prod-1", Quantity: 0, UnitPrice: decimal.NewFromInt(10)}))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.svc.Create(ctx, createRequest(domain.CreateNoteLineRequest{ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.NewFromInt(-1)}))
	assert.ErrorIs(t, err, domain.ErrInvalidUnitPrice)

	_, err = f.svc.Create(ctx, createRequest(domain.CreateNoteLineRequest{ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.Zero}))
	assert.ErrorIs(t, err, domain.ErrInvalidUnitPrice)
}

func TestCreate_PDFFailureLeavesNotePersisted(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	f.pdf.err = errors.New("render exploded")

	_, err := f.svc.Create(ctx, createRequest(domain.CreateNoteLineRequest{
		ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.NewFromInt(10),
	}))
	require.Error(t, err)

	// The header was already written; there is no rollback.
	notes, listErr := f.svc.List(ctx)
	require.NoError(t, listErr)
	assert.Len(t, notes, 1)
	assert.Empty(t, f.publisher.messages)
}

func TestCreate_PublishFailurePropagates(t *testing.T) {
	f := newWorkflowFixture(t)
	f.publisher.err = errors.New("broker down")

	_, err := f.svc.Create(context.Background(), createRequest(domain.CreateNoteLineRequest{
		ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.NewFromInt(10),
	}))
	require.Error(t, err)
}

func TestDownloadPDF_FlipsDownloadedFlag(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, createRequest(domain.CreateNoteLineRequest{
		ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.NewFromInt(10),
	}))
	require.NoError(t, err)

	download, err := f.svc.DownloadPDF(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Folio, download.Folio)
	assert.Equal(t, []byte("%PDF-1.4 stub"), download.Content)

	meta, err := f.manager.Metadata(ctx, "CNO120315AB1", created.Folio)
	require.NoError(t, err)
	assert.Equal(t, "true", meta["downloaded"])
	assert.Equal(t, "1", meta["send-count"])
}

func TestDownloadPDF_UnknownNote(t *testing.T) {
	f := newWorkflowFixture(t)

	_, err := f.svc.DownloadPDF(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResend_RepublishesAndCounts(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, createRequest(domain.CreateNoteLineRequest{
		ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.NewFromInt(10),
	}))
	require.NoError(t, err)

	require.NoError(t, f.svc.Resend(ctx, created.ID))
	require.NoError(t, f.svc.Resend(ctx, created.ID))

	// One publish from create plus one per resend.
	assert.Len(t, f.publisher.messages, 3)

	meta, err := f.manager.Metadata(ctx, "CNO120315AB1", created.Folio)
	require.NoError(t, err)
	assert.Equal(t, "3", meta["send-count"])
}

func TestResend_UnknownNote(t *testing.T) {
	f := newWorkflowFixture(t)

	err := f.svc.Resend(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
