package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	invoicedomain "github.com/enotehq/enote/internal/invoice/domain"
	invoicerender "github.com/enotehq/enote/internal/invoice/render"
	ownerdomain "github.com/enotehq/enote/internal/owner/domain"
)

type fakeOwnerService struct {
	registerCalls int
	registerErr   error
	lastRequest   ownerdomain.RegisterRequest
}

func (f *fakeOwnerService) Register(ctx context.Context, req ownerdomain.RegisterRequest) (*ownerdomain.Owner, error) {
	f.registerCalls++
	f.lastRequest = req
	_ = ctx
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &ownerdomain.Owner{
		ID:    snowflake.ID(200),
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}, nil
}

func (f *fakeOwnerService) GetByID(ctx context.Context, id snowflake.ID) (*ownerdomain.Owner, error) {
	_ = ctx
	_ = id
	return nil, ownerdomain.ErrNotFound
}

func (f *fakeOwnerService) UpdateProfile(ctx context.Context, id snowflake.ID, req ownerdomain.UpdateProfileRequest) (*ownerdomain.Owner, error) {
	_ = ctx
	_ = id
	_ = req
	return nil, ownerdomain.ErrNotFound
}

type fakeInvoiceService struct {
	invoice *invoicedomain.Invoice
}

func (f *fakeInvoiceService) Create(ctx context.Context, req invoicedomain.CreateInvoiceRequest) (*invoicedomain.Invoice, error) {
	_ = ctx
	_ = req
	return f.invoice, nil
}

func (f *fakeInvoiceService) List(ctx context.Context, req invoicedomain.ListInvoicesRequest) ([]*invoicedomain.Invoice, error) {
	_ = ctx
	_ = req
	return nil, nil
}

func (f *fakeInvoiceService) GetByID(ctx context.Context, ownerID, id snowflake.ID) (*invoicedomain.Invoice, error) {
	_ = ctx
	_ = ownerID
	_ = id
	return nil, invoicedomain.ErrNotFound
}

func (f *fakeInvoiceService) GetPublic(ctx context.Context, id snowflake.ID) (*invoicedomain.Invoice, error) {
	_ = ctx
	if f.invoice == nil || f.invoice.ID != id {
		return nil, invoicedomain.ErrNotFound
	}
	return f.invoice, nil
}

func (f *fakeInvoiceService) RecordPayment(ctx context.Context, ownerID, id snowflake.ID, amount float64) (*invoicedomain.Invoice, error) {
	_ = ctx
	_ = ownerID
	_ = id
	_ = amount
	return nil, invoicedomain.ErrNotFound
}

func (f *fakeInvoiceService) SellerStats(ctx context.Context, ownerID snowflake.ID, from, to *time.Time) ([]invoicedomain.SellerStat, error) {
	_ = ctx
	_ = ownerID
	_ = from
	_ = to
	return nil, nil
}

func TestRegisterHandlerCreated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ownerSvc := &fakeOwnerService{}
	srv := &Server{ownerSvc: ownerSvc}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/register", srv.Register)

	body := `{"name":"Aida","email":"aida@example.com","phone":"77011234567","password":"secret1","accepted_terms":true}`
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if ownerSvc.registerCalls != 1 {
		t.Fatalf("expected one register call, got %d", ownerSvc.registerCalls)
	}
	if !ownerSvc.lastRequest.AcceptedTerms {
		t.Fatal("expected accepted_terms to reach the service")
	}
}

func TestRegisterHandlerDuplicatePhoneConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ownerSvc := &fakeOwnerService{registerErr: ownerdomain.ErrPhoneTaken}
	srv := &Server{ownerSvc: ownerSvc}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/register", srv.Register)

	body := `{"name":"Aida","email":"aida@example.com","phone":"77011234567","password":"secret1","accepted_terms":true}`
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRegisterHandlerRejectsShortPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ownerSvc := &fakeOwnerService{}
	srv := &Server{ownerSvc: ownerSvc}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/register", srv.Register)

	body := `{"name":"Aida","email":"aida@example.com","phone":"77011234567","password":"abc","accepted_terms":true}`
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
	if ownerSvc.registerCalls != 0 {
		t.Fatal("expected register service not to be called")
	}
}

func TestPublicInvoicePage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	invoice := &invoicedomain.Invoice{
		ID:            snowflake.ID(987654321),
		ClientName:    "ИП Ахметова",
		SellerName:    "Aida Store",
		InvoiceNumber: "№0123/2026/1",
		Amount:        500,
		PaidAmount:    200,
		Items: []invoicedomain.Item{
			{Name: "Болт", Qty: 10, Price: 50, Amount: 500},
		},
		CreatedAt: time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC),
	}
	srv := &Server{
		invoiceSvc:      &fakeInvoiceService{invoice: invoice},
		invoiceRenderer: invoicerender.NewRenderer(),
	}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.GET("/invoice/:id", srv.PublicInvoicePage)

	req := httptest.NewRequest(http.MethodGet, "/invoice/987654321", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	page := resp.Body.String()
	for _, want := range []string{"№0123/2026/1", "ИП Ахметова", "Aida Store", "300.00"} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected page to contain %q", want)
		}
	}
}

func TestPublicInvoicePageMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := &Server{
		invoiceSvc:      &fakeInvoiceService{},
		invoiceRenderer: invoicerender.NewRenderer(),
	}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.GET("/invoice/:id", srv.PublicInvoicePage)

	req := httptest.NewRequest(http.MethodGet, "/invoice/42", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}
