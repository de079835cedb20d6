package controllers

import (
	"context"

	"github.com/shopspring/decimal"

	cartsvc "github.com/brewlinehq/storefront-backend/internal/cart"
	"github.com/brewlinehq/storefront-backend/internal/catalog"
	checkoutsvc "github.com/brewlinehq/storefront-backend/internal/checkout"
	ordersvc "github.com/brewlinehq/storefront-backend/internal/orders"
	pkgerrors "github.com/brewlinehq/storefront-backend/pkg/errors"
	"github.com/brewlinehq/storefront-backend/pkg/stripe"
)

var testProduct = catalog.Product{
	ID:       1,
	Slug:     "lungo-one",
	Name:     "Lungo One",
	OldPrice: decimal.NewFromInt(499),
	Price:    decimal.NewFromInt(399),
	Colors:   []string{"Black", "Red"},
	Images:   []string{"https://img/1.jpg"},
}

type stubCatalog struct {
	products []catalog.Product
	err      error
}

func (s *stubCatalog) List(ctx context.Context) ([]catalog.Product, error) {
	return s.products, s.err
}

func (s *stubCatalog) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.products {
		if s.products[i].Slug == slug {
			return &s.products[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *stubCatalog) FindByID(ctx context.Context, id int) (*catalog.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *stubCatalog) Search(ctx context.Context, query string) ([]catalog.Product, error) {
	return s.products, s.err
}

func (s *stubCatalog) ByCategory(ctx context.Context, tag string) ([]catalog.Product, error) {
	return s.products, s.err
}

func (s *stubCatalog) DiscountedOnly(ctx context.Context) ([]catalog.Product, error) {
	return s.products, s.err
}

type stubCart struct {
	cart        *cartsvc.Cart
	err         error
	lastProduct catalog.Product
	lastQty     int
	lastColor   string
	lastRemove  int
	cleared     int
}

func (s *stubCart) Get(ctx context.Context, sessionID string) (*cartsvc.Cart, error) {
	return s.cart, s.err
}

func (s *stubCart) AddLine(ctx context.Context, sessionID string, product catalog.Product, quantity int, color string) (*cartsvc.Cart, error) {
	s.lastProduct = product
	s.lastQty = quantity
	s.lastColor = color
	return s.cart, s.err
}

func (s *stubCart) RemoveLine(ctx context.Context, sessionID string, productID int) (*cartsvc.Cart, error) {
	s.lastRemove = productID
	return s.cart, s.err
}

func (s *stubCart) SetQuantity(ctx context.Context, sessionID string, productID, quantity int) (*cartsvc.Cart, error) {
	s.lastRemove = productID
	s.lastQty = quantity
	return s.cart, s.err
}

func (s *stubCart) Clear(ctx context.Context, sessionID string) error {
	s.cleared++
	return s.err
}

type stubCheckout struct {
	draft    *ordersvc.Draft
	intent   *stripe.Intent
	order    *ordersvc.Order
	err      error
	lastInfo checkoutsvc.CustomerInfo
}

func (s *stubCheckout) CreateDraft(ctx context.Context, sessionID string, info checkoutsvc.CustomerInfo) (*ordersvc.Draft, error) {
	s.lastInfo = info
	return s.draft, s.err
}

func (s *stubCheckout) PendingDraft(ctx context.Context, sessionID string) (*ordersvc.Draft, error) {
	return s.draft, s.err
}

func (s *stubCheckout) CreateIntent(ctx context.Context, sessionID string) (*stripe.Intent, error) {
	return s.intent, s.err
}

func (s *stubCheckout) CompletePayment(ctx context.Context, sessionID, intentID, paymentMethodID string) (*ordersvc.Order, error) {
	return s.order, s.err
}

type stubOrderService struct {
	orders []*ordersvc.Order
	err    error
}

func (s *stubOrderService) Submit(ctx context.Context, draft *ordersvc.Draft, status string) error {
	return s.err
}

func (s *stubOrderService) FetchAll(ctx context.Context) ([]*ordersvc.Order, error) {
	return s.orders, s.err
}

func (s *stubOrderService) FindByID(ctx context.Context, orderID string) (*ordersvc.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, order := range s.orders {
		if order.OrderID == orderID {
			return order, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(ctx context.Context) error {
	return s.err
}
