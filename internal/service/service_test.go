package service

import (
	"context"
	"testing"
	"time"

	"ads-inventory-ws/internal/model"
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const actor = "tester"

// fixedNow is pinned to today so signed tokens stay within their real expiry.
var fixedNow = func() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}()

type fixture struct {
	db       *gorm.DB
	products ProductService
	clients  ClientService
	reqs     RequirementService
	orders   OrderService
	sales    SaleService
	recovery RecoveryService
	events   DateEventService
	users    UserService
	auth     AuthService

	eventRepo repository.DateEventRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	prev := clock
	clock = func() time.Time { return fixedNow }
	t.Cleanup(func() { clock = prev })

	db := testutil.NewDB(t)
	productRepo := repository.NewProductRepo(db)
	clientRepo := repository.NewClientRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	eventRepo := repository.NewDateEventRepo(db)
	userRepo := repository.NewUserRepo(db)
	sessionRepo := repository.NewSessionRepo(db)

	return &fixture{
		db:        db,
		products:  NewProductService(productRepo, eventRepo, db, nil),
		clients:   NewClientService(clientRepo),
		reqs:      NewRequirementService(repository.NewRequirementRepo(db), clientRepo),
		orders:    NewOrderService(orderRepo, clientRepo, productRepo, saleRepo, db, nil),
		sales:     NewSaleService(saleRepo, productRepo, clientRepo, orderRepo, eventRepo, db, nil),
		recovery:  NewRecoveryService(repository.NewRecoveryRepo(db), productRepo, clientRepo, eventRepo, db, nil),
		events:    NewDateEventService(eventRepo, productRepo, clientRepo, nil),
		users:     NewUserService(userRepo, sessionRepo),
		auth:      NewAuthService(userRepo, sessionRepo, "test-secret", 24*time.Hour, nil, nil),
		eventRepo: eventRepo,
	}
}

func (f *fixture) product(t *testing.T, adsID string) *model.Product {
	t.Helper()
	p, err := f.products.CreateProduct(context.Background(), &CreateProductRequest{
		AdsID:     adsID,
		Brand:     "Lenovo",
		Model:     "ThinkPad T480",
		Condition: model.ConditionRefurbished,
		CostPrice: decimal.NewFromInt(21000),
	}, actor)
	require.NoError(t, err)
	return p
}

func (f *fixture) client(t *testing.T, email string) *model.Client {
	t.Helper()
	c, err := f.clients.CreateClient(context.Background(), &ClientRequest{Name: "Acme Infotech", Email: email}, actor)
	require.NoError(t, err)
	return c
}

func strPtr(s string) *string { return &s }
