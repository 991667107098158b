package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	addressrepository "github.com/smallbiznis/notaventa/internal/address/repository"
	addressservice "github.com/smallbiznis/notaventa/internal/address/service"
	"github.com/smallbiznis/notaventa/internal/blobstore"
	"github.com/smallbiznis/notaventa/internal/config"
	customerrepository "github.com/smallbiznis/notaventa/internal/customer/repository"
	customerservice "github.com/smallbiznis/notaventa/internal/customer/service"
	"github.com/smallbiznis/notaventa/internal/kvstore"
	productrepository "github.com/smallbiznis/notaventa/internal/product/repository"
	productservice "github.com/smallbiznis/notaventa/internal/product/service"
	"github.com/smallbiznis/notaventa/internal/providers/pdf"
	"github.com/smallbiznis/notaventa/internal/pubsub"
	"github.com/smallbiznis/notaventa/internal/salesnote/artifacts"
	salesnoterepository "github.com/smallbiznis/notaventa/internal/salesnote/repository"
	salesnoteservice "github.com/smallbiznis/notaventa/internal/salesnote/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPDFProvider struct{}

func (stubPDFProvider) GenerateNote(ctx context.Context, doc pdf.NoteDocument) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	cfg := config.Config{AppName: "notaventa", APIBaseURL: "http://localhost:8080"}
	store := kvstore.NewMemoryStore()
	blobs := blobstore.NewMemoryStore()

	customerRepo := customerrepository.Provide(store)
	addressRepo := addressrepository.Provide(store)
	productRepo := productrepository.Provide(store)

	customerSvc := customerservice.New(customerservice.Params{Log: log, Repo: customerRepo, Addresses: addressRepo})
	addressSvc := addressservice.New(addressservice.Params{Log: log, Repo: addressRepo, Customers: customerRepo})
	productSvc := productservice.New(productservice.Params{Log: log, Repo: productRepo})

	noteSvc := salesnoteservice.NewService(
		log, cfg,
		salesnoterepository.Provide(store),
		customerRepo, addressRepo, productRepo,
		stubPDFProvider{},
		artifacts.NewManager(blobs, "notas"),
		pubsub.NoopPublisher{},
		nil, nil,
	)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	srv := NewServer(ServerParams{
		Gin:         engine,
		Cfg:         cfg,
		CustomerSvc: customerSvc,
		AddressSvc:  addressSvc,
		ProductSvc:  productSvc,
		NoteSvc:     noteSvc,
	})
	srv.RegisterCatalogRoutes()
	srv.RegisterOrderRoutes()
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Data
}

func seedCustomer(t *testing.T, srv *Server) string {
	t.Helper()
	w := doJSON(t, srv, http.MethodPost, "/customers", gin.H{
		"legal_name": "Comercial del Norte SA de CV",
		"trade_name": "Comercial del Norte",
		"tax_id":     "CNO120315AB1",
		"email":      "compras@norte.example",
		"phone":      "5512345678",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData(t, w)["id"].(string)
}

func seedAddress(t *testing.T, srv *Server, customerID, kind string) string {
	t.Helper()
	w := doJSON(t, srv, http.MethodPost, "/addresses", gin.H{
		"customer_id":  customerID,
		"street":       "Av. Reforma 100",
		"neighborhood": "Centro",
		"municipality": "Cuauhtemoc",
		"state":        "CDMX",
		"kind":         kind,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData(t, w)["id"].(string)
}

func seedProduct(t *testing.T, srv *Server) string {
	t.Helper()
	w := doJSON(t, srv, http.MethodPost, "/products", gin.H{
		"name":            "Martillo",
		"unit_of_measure": "pieza",
		"base_price":      90.0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData(t, w)["id"].(string)
}

func TestCreateCustomer_ValidationErrorPayload(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/customers", gin.H{
		"legal_name": "Empresa",
		"trade_name": "Empresa",
		"tax_id":     "BAD",
		"email":      "x@y.example",
		"phone":      "5512345678",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error struct {
			Type   string `json:"type"`
			Errors []struct {
				Field string `json:"field"`
				Code  string `json:"code"`
			} `json:"errors"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Error.Type)
	require.Len(t, body.Error.Errors, 1)
	assert.Equal(t, "tax_id", body.Error.Errors[0].Field)
	assert.Equal(t, "invalid_tax_id", body.Error.Errors[0].Code)
}

func TestCreateCustomer_DuplicateTaxID(t *testing.T) {
	srv := newTestServer(t)
	seedCustomer(t, srv)

	w := doJSON(t, srv, http.MethodPost, "/customers", gin.H{
		"legal_name": "Otra Empresa SA de CV",
		"trade_name": "Otra Empresa",
		"tax_id":     "CNO120315AB1",
		"email":      "otra@empresa.example",
		"phone":      "5598765432",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "tax_id_taken")
}

func TestGetCustomer_NotFound(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/customers/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestProductLifecycle(t *testing.T) {
	srv := newTestServer(t)
	id := seedProduct(t, srv)

	w := doJSON(t, srv, http.MethodGet, "/products/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "Martillo", data["name"])
	assert.Equal(t, 90.0, data["base_price"])

	w = doJSON(t, srv, http.MethodPut, "/products/"+id, gin.H{"base_price": 95.5})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 95.5, decodeData(t, w)["base_price"])

	w = doJSON(t, srv, http.MethodDelete, "/products/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/products/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCustomerAddresses(t *testing.T) {
	srv := newTestServer(t)
	customerID := seedCustomer(t, srv)
	seedAddress(t, srv, customerID, "BILLING")
	seedAddress(t, srv, customerID, "SHIPPING")

	w := doJSON(t, srv, http.MethodGet, "/customers/"+customerID+"/addresses", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
}

func TestCreateNote_FullFlow(t *testing.T) {
	srv := newTestServer(t)
	customerID := seedCustomer(t, srv)
	billingID := seedAddress(t, srv, customerID, "BILLING")
	shippingID := seedAddress(t, srv, customerID, "SHIPPING")
	productID := seedProduct(t, srv)

	w := doJSON(t, srv, http.MethodPost, "/orders", gin.H{
		"customer_id":         customerID,
		"billing_address_id":  billingID,
		"shipping_address_id": shippingID,
		"lines": []gin.H{
			{"product_id": productID, "quantity": 2, "unit_price": 100.0},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := decodeData(t, w)
	assert.Regexp(t, `^NV-\d{14}-[A-Z0-9]{4}$`, data["folio"])
	assert.Equal(t, 200.0, data["total"])
	assert.Equal(t, fmt.Sprintf("http://localhost:8080/orders/%s/pdf", data["id"]), data["pdf_url"])

	lines, ok := data["lines"].([]any)
	require.True(t, ok)
	require.Len(t, lines, 1)
	line := lines[0].(map[string]any)
	assert.Equal(t, "Martillo", line["product_name"])
	assert.Equal(t, 100.0, line["unit_price"])
	assert.Equal(t, 200.0, line["amount"])

	customer, ok := data["customer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, customerID, customer["id"])

	// The document is immediately downloadable.
	noteID := data["id"].(string)
	w = doJSON(t, srv, http.MethodGet, "/orders/"+noteID+"/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4 stub", w.Body.String())

	// And the resend endpoint accepts it.
	w = doJSON(t, srv, http.MethodPost, "/orders/"+noteID+"/resend", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateNote_UnknownCustomer(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/orders", gin.H{
		"customer_id":         "missing",
		"billing_address_id":  "b",
		"shipping_address_id": "s",
		"lines":               []gin.H{{"product_id": "p", "quantity": 1, "unit_price": 10.0}},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateNote_EmptyLines(t *testing.T) {
	srv := newTestServer(t)
	customerID := seedCustomer(t, srv)
	billingID := seedAddress(t, srv, customerID, "BILLING")
	shippingID := seedAddress(t, srv, customerID, "SHIPPING")

	w := doJSON(t, srv, http.MethodPost, "/orders", gin.H{
		"customer_id":         customerID,
		"billing_address_id":  billingID,
		"shipping_address_id": shippingID,
		"lines":               []gin.H{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_lines")
}

func TestDownloadNotePDF_UnknownNote(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/orders/missing/pdf", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
