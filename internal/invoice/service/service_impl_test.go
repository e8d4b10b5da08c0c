package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/enotehq/enote/internal/actorcontext"
	authdomain "github.com/enotehq/enote/internal/auth/domain"
	clientdomain "github.com/enotehq/enote/internal/client/domain"
	clientrepo "github.com/enotehq/enote/internal/client/repository"
	"github.com/enotehq/enote/internal/clock"
	employeedomain "github.com/enotehq/enote/internal/employee/domain"
	"github.com/enotehq/enote/internal/invoice/domain"
	"github.com/enotehq/enote/internal/invoice/repository"
	ownerdomain "github.com/enotehq/enote/internal/owner/domain"
	productdomain "github.com/enotehq/enote/internal/product/domain"
	productrepo "github.com/enotehq/enote/internal/product/repository"
	productservice "github.com/enotehq/enote/internal/product/service"
	"github.com/enotehq/enote/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type invoiceFixture struct {
	svc   *Service
	db    *gorm.DB
	node  *snowflake.Node
	clock *clock.FakeClock
	owner *ownerdomain.Owner
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&ownerdomain.Owner{},
		&employeedomain.Employee{},
		&clientdomain.Client{},
		&productdomain.Product{},
		&domain.Invoice{},
		&domain.Item{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC))
	log := zaptest.NewLogger(t)

	productSvc := productservice.NewService(productservice.ServiceParam{
		DB:    conn,
		Log:   log,
		GenID: node,
		Clock: fake,
		Repo:  productrepo.Provide(),
	})

	owner := &ownerdomain.Owner{
		ID:           node.Generate(),
		Name:         "Aida",
		Email:        "aida@example.com",
		Phone:        "77011111111",
		PasswordHash: "x",
		CreatedAt:    fake.Now(),
		UpdatedAt:    fake.Now(),
	}
	require.NoError(t, conn.Create(owner).Error)

	return &invoiceFixture{
		svc: &Service{
			db:         conn,
			log:        log,
			genID:      node,
			clock:      fake,
			repo:       repository.Provide(),
			clientRepo: clientrepo.Provide(),
			productSvc: productSvc,
		},
		db:    conn,
		node:  node,
		clock: fake,
		owner: owner,
	}
}

func (f *invoiceFixture) ownerCtx() context.Context {
	return actorcontext.WithActor(context.Background(), authdomain.Actor{
		Role:  authdomain.RoleOwner,
		Owner: f.owner,
	})
}

func (f *invoiceFixture) employeeCtx(t *testing.T, name string) (context.Context, *employeedomain.Employee) {
	t.Helper()
	employee := &employeedomain.Employee{
		ID:           f.node.Generate(),
		OwnerID:      f.owner.ID,
		Name:         name,
		Phone:        fmt.Sprintf("7702%07d", phoneSuffix(f.node)),
		PasswordHash: "x",
		CreatedAt:    f.clock.Now(),
		UpdatedAt:    f.clock.Now(),
	}
	require.NoError(t, f.db.Create(employee).Error)
	ctx := actorcontext.WithActor(context.Background(), authdomain.Actor{
		Role:     authdomain.RoleEmployee,
		Employee: employee,
	})
	return ctx, employee
}

func phoneSuffix(node *snowflake.Node) int64 {
	return node.Generate().Int64() % 10000000
}

func TestCreateInvoiceFirstOfYear(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice, err := f.svc.Create(f.ownerCtx(), domain.CreateInvoiceRequest{
		ClientName:  "Bekzat",
		ClientPhone: "8 (705) 111-22-33",
		Items: []domain.CreateInvoiceItem{
			{Name: "Pen", Qty: 2, Price: 100},
		},
		PaidAmount: 50,
	})
	require.NoError(t, err)

	require.Equal(t, 200.0, invoice.Amount)
	require.Equal(t, 50.0, invoice.PaidAmount)
	require.Equal(t, 150.0, invoice.Debt())
	require.Equal(t, f.owner.ID, invoice.OwnerID)
	require.Nil(t, invoice.SellerEmployeeID)
	require.Equal(t, "Aida", invoice.SellerName)

	wantNumber := fmt.Sprintf("№%04d/%d/1", invoice.ClientID.Int64(), f.clock.Now().Year())
	require.Equal(t, wantNumber, invoice.InvoiceNumber)

	// Client phone is stored normalized.
	var client clientdomain.Client
	require.NoError(t, f.db.First(&client, "id = ?", invoice.ClientID).Error)
	require.Equal(t, "77051112233", client.Phone)

	// Catalog picked up the line item.
	var product productdomain.Product
	require.NoError(t, f.db.First(&product, "owner_id = ? AND name_lower = ?", f.owner.ID, "pen").Error)
	require.Equal(t, 100.0, product.Price)
}

func TestCreateInvoiceSequenceIncrementsPerClientYear(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := f.ownerCtx()

	first, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		ClientName:  "Bekzat",
		ClientPhone: "77051112233",
		Items:       []domain.CreateInvoiceItem{{Name: "Pen", Qty: 1, Price: 100}},
	})
	require.NoError(t, err)

	second, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		ClientName:  "Bekzat",
		ClientPhone: "8 705 111 22 33",
		Items:       []domain.CreateInvoiceItem{{Name: "Pen", Qty: 1, Price: 100}},
	})
	require.NoError(t, err)

	// Same person via a differently formatted phone reuses the client row.
	require.Equal(t, first.ClientID, second.ClientID)

	year := f.clock.Now().Year()
	require.Equal(t, fmt.Sprintf("№%04d/%d/1", first.ClientID.Int64(), year), first.InvoiceNumber)
	require.Equal(t, fmt.Sprintf("№%04d/%d/2", second.ClientID.Int64(), year), second.InvoiceNumber)
}

func TestCreateInvoiceSequenceRestartsNextYear(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := f.ownerCtx()

	first, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		ClientName:  "Bekzat",
		ClientPhone: "77051112233",
		Items:       []domain.CreateInvoiceItem{{Name: "Pen", Qty: 1, Price: 100}},
	})
	require.NoError(t, err)

	f.clock.Advance(366 * 24 * time.Hour)

	second, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		ClientName:  "Bekzat",
		ClientPhone: "77051112233",
		Items:       []domain.CreateInvoiceItem{{Name: "Pen", Qty: 1, Price: 100}},
	})
	require.NoError(t, err)

	require.Equal(t, fmt.Sprintf("№%04d/%d/1", first.ClientID.Int64(), first.CreatedAt.Year()), first.InvoiceNumber)
	require.Equal(t, fmt.Sprintf("№%04d/%d/1", second.ClientID.Int64(), second.CreatedAt.Year()), second.InvoiceNumber)
}

func TestCreateInvoiceUpdatesCatalogPrice(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := f.ownerCtx()

	_, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		ClientName:  "Bekzat",
		ClientPhone: "77051112233",
		Items:       []domain.CreateInvoiceItem{{Name: "Bolt", Qty: 1, Price: 10}},
	})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, domain.CreateInvoiceRequest{
		ClientName:  "Bekzat",
		ClientPhone: "77051112233",
		Items:       []domain.CreateInvoiceItem{{Name: "bolt", Qty: 1, Price: 15}},
	})
	require.NoError(t, err)

	var products []productdomain.Product
	require.NoError(t, f.db.Find(&products, "owner_id = ?", f.owner.ID).Error)
	require.Len(t, products, 1)
	require.Equal(t, 15.0, products[0].Price)
}

func TestCreateInvoiceByEmployee(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx, employee := f.employeeCtx(t, "Marat")

	invoice, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		ClientName:  "Bekzat",
		ClientPhone: "77051112233",
		Items:       []domain.CreateInvoiceItem{{Name: "Pen", Qty: 1, Price: 100}},
	})
	require.NoError(t, err)

	require.Equal(t, f.owner.ID, invoice.OwnerID)
	require.NotNil(t, invoice.SellerEmployeeID)
	require.Equal(t, employee.ID, *invoice.SellerEmployeeID)
	require.Equal(t, "Marat", invoice.SellerName)
}

func TestCreateInvoiceValidation(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := f.ownerCtx()

	_, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		ClientName:  "Bekzat",
		ClientPhone: "77051112233",
	})
	require.ErrorIs(t, err, domain.ErrNoItems)

	_, err = f.svc.Create(ctx, domain.CreateInvoiceRequest{
		ClientName:  "Bekzat",
		ClientPhone: "77051112233",
		Items:       []domain.CreateInvoiceItem{{Name: "Pen", Qty: 0, Price: 100}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		ClientName:  "Bekzat",
		ClientPhone: "77051112233",
		Items:       []domain.CreateInvoiceItem{{Name: "Pen", Qty: 1, Price: 100}},
	})
	require.ErrorIs(t, err, authdomain.ErrNoActor)
}

func TestSellerStats(t *testing.T) {
	f := newInvoiceFixture(t)
	ownerCtx := f.ownerCtx()
	empCtx, employee := f.employeeCtx(t, "Marat")

	_, err := f.svc.Create(ownerCtx, domain.CreateInvoiceRequest{
		ClientName:  "Bekzat",
		ClientPhone: "77051112233",
		Items:       []domain.CreateInvoiceItem{{Name: "Pen", Qty: 2, Price: 100}},
		PaidAmount:  300, // overpaid, debt clamps to zero
	})
	require.NoError(t, err)

	_, err = f.svc.Create(empCtx, domain.CreateInvoiceRequest{
		ClientName:  "Dana",
		ClientPhone: "77061112233",
		Items:       []domain.CreateInvoiceItem{{Name: "Pipe", Qty: 1, Price: 500}},
		PaidAmount:  200,
	})
	require.NoError(t, err)

	stats, err := f.svc.SellerStats(context.Background(), f.owner.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	byName := map[string]domain.SellerStat{}
	for _, stat := range stats {
		byName[stat.SellerName] = stat
	}

	ownerStat := byName["Aida"]
	require.Nil(t, ownerStat.SellerEmployeeID)
	require.EqualValues(t, 1, ownerStat.InvoiceCount)
	require.Equal(t, 200.0, ownerStat.TotalAmount)
	require.Equal(t, 300.0, ownerStat.TotalPaid)
	require.Equal(t, 0.0, ownerStat.TotalDebt)

	empStat := byName["Marat"]
	require.NotNil(t, empStat.SellerEmployeeID)
	require.Equal(t, employee.ID, *empStat.SellerEmployeeID)
	require.Equal(t, 500.0, empStat.TotalAmount)
	require.Equal(t, 300.0, empStat.TotalDebt)
}

func TestCreateInvoiceDefaultStatus(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice, err := f.svc.Create(f.ownerCtx(), domain.CreateInvoiceRequest{
		ClientName:  "Bekzat",
		ClientPhone: "77051112233",
		Items:       []domain.CreateInvoiceItem{{Name: "Pen", Qty: 1, Price: 100}},
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusUnpaid, invoice.Status)

	var stored domain.Invoice
	require.NoError(t, f.db.First(&stored, "id = ?", invoice.ID).Error)
	require.Equal(t, domain.StatusUnpaid, stored.Status)
}

func TestCreateInvoiceExplicitStatus(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice, err := f.svc.Create(f.ownerCtx(), domain.CreateInvoiceRequest{
		ClientName:  "Bekzat",
		ClientPhone: "77051112233",
		Status:      "оплачен",
		PaidAmount:  100,
		Items:       []domain.CreateInvoiceItem{{Name: "Pen", Qty: 1, Price: 100}},
	})
	require.NoError(t, err)
	require.Equal(t, "оплачен", invoice.Status)

	public, err := f.svc.GetPublic(context.Background(), invoice.ID)
	require.NoError(t, err)
	require.Equal(t, "оплачен", public.Status)
}

func TestSellerStatsDebtClampsPerBucket(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := f.ownerCtx()

	// One unpaid and one overpaid invoice in the same bucket; the overpayment
	// offsets the debt of the other.
	_, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		ClientName:  "Bekzat",
		ClientPhone: "77051112233",
		Items:       []domain.CreateInvoiceItem{{Name: "Pen", Qty: 2, Price: 100}},
	})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, domain.CreateInvoiceRequest{
		ClientName:  "Dana",
		ClientPhone: "77061112233",
		Items:       []domain.CreateInvoiceItem{{Name: "Pipe", Qty: 1, Price: 100}},
		PaidAmount:  400,
	})
	require.NoError(t, err)

	stats, err := f.svc.SellerStats(context.Background(), f.owner.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.Equal(t, 300.0, stats[0].TotalAmount)
	require.Equal(t, 400.0, stats[0].TotalPaid)
	require.Equal(t, 0.0, stats[0].TotalDebt)
}

func TestSellerStatsDateRange(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := f.ownerCtx()

	_, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		ClientName:  "Bekzat",
		ClientPhone: "77051112233",
		Items:       []domain.CreateInvoiceItem{{Name: "Pen", Qty: 1, Price: 100}},
	})
	require.NoError(t, err)

	f.clock.Advance(48 * time.Hour)
	cutoff := f.clock.Now()

	_, err = f.svc.Create(ctx, domain.CreateInvoiceRequest{
		ClientName:  "Bekzat",
		ClientPhone: "77051112233",
		Items:       []domain.CreateInvoiceItem{{Name: "Pen", Qty: 1, Price: 500}},
	})
	require.NoError(t, err)

	stats, err := f.svc.SellerStats(context.Background(), f.owner.ID, &cutoff, nil)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.EqualValues(t, 1, stats[0].InvoiceCount)
	require.Equal(t, 500.0, stats[0].TotalAmount)

	before := cutoff.Add(-time.Hour)
	stats, err = f.svc.SellerStats(context.Background(), f.owner.ID, nil, &before)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.EqualValues(t, 1, stats[0].InvoiceCount)
	require.Equal(t, 100.0, stats[0].TotalAmount)
}

func TestGetByIDScopesToOwner(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice, err := f.svc.Create(f.ownerCtx(), domain.CreateInvoiceRequest{
		ClientName:  "Bekzat",
		ClientPhone: "77051112233",
		Items:       []domain.CreateInvoiceItem{{Name: "Pen", Qty: 1, Price: 100}},
	})
	require.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), f.node.Generate(), invoice.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	public, err := f.svc.GetPublic(context.Background(), invoice.ID)
	require.NoError(t, err)
	require.Equal(t, invoice.InvoiceNumber, public.InvoiceNumber)
	require.Len(t, public.Items, 1)
}

func TestRecordPayment(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice, err := f.svc.Create(f.ownerCtx(), domain.CreateInvoiceRequest{
		ClientName:  "Bekzat",
		ClientPhone: "77051112233",
		Items:       []domain.CreateInvoiceItem{{Name: "Pen", Qty: 2, Price: 100}},
	})
	require.NoError(t, err)

	updated, err := f.svc.RecordPayment(context.Background(), f.owner.ID, invoice.ID, 150)
	require.NoError(t, err)
	require.Equal(t, 150.0, updated.PaidAmount)
	require.Equal(t, 50.0, updated.Debt())

	_, err = f.svc.RecordPayment(context.Background(), f.owner.ID, invoice.ID, 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordPaymentAccumulates(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice, err := f.svc.Create(f.ownerCtx(), domain.CreateInvoiceRequest{
		ClientName:  "Bekzat",
		ClientPhone: "77051112233",
		Items:       []domain.CreateInvoiceItem{{Name: "Pen", Qty: 2, Price: 100}},
	})
	require.NoError(t, err)

	_, err = f.svc.RecordPayment(context.Background(), f.owner.ID, invoice.ID, 120)
	require.NoError(t, err)
	updated, err := f.svc.RecordPayment(context.Background(), f.owner.ID, invoice.ID, 80)
	require.NoError(t, err)
	require.Equal(t, 200.0, updated.PaidAmount)

	var stored domain.Invoice
	require.NoError(t, f.db.First(&stored, "id = ?", invoice.ID).Error)
	require.Equal(t, 200.0, stored.PaidAmount)
}
