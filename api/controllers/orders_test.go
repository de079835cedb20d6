package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	ordersvc "github.com/brewlinehq/storefront-backend/internal/orders"
	pkgerrors "github.com/brewlinehq/storefront-backend/pkg/errors"
)

func TestOrdersList(t *testing.T) {
	svc := &stubOrderService{orders: []*ordersvc.Order{
		{OrderID: "ORD-2", Status: ordersvc.StatusPaid},
		{OrderID: "ORD-1", Status: ordersvc.StatusPending},
	}}
	handler := OrdersList(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodGet, "/api/v1/orders", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []ordersvc.Order `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 2 || envelope.Data[0].OrderID != "ORD-2" {
		t.Fatalf("unexpected orders %v", envelope.Data)
	}
}

func TestOrdersListLimit(t *testing.T) {
	svc := &stubOrderService{orders: []*ordersvc.Order{
		{OrderID: "ORD-3", Status: ordersvc.StatusPaid},
		{OrderID: "ORD-2", Status: ordersvc.StatusPaid},
		{OrderID: "ORD-1", Status: ordersvc.StatusPending},
	}}
	handler := OrdersList(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodGet, "/api/v1/orders?limit=2", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []ordersvc.Order `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 2 || envelope.Data[0].OrderID != "ORD-3" {
		t.Fatalf("expected first 2 orders, got %v", envelope.Data)
	}
}

func TestOrdersListBadLimit(t *testing.T) {
	handler := OrdersList(&stubOrderService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodGet, "/api/v1/orders?limit=lots", ""))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOrdersListDependencyFailure(t *testing.T) {
	svc := &stubOrderService{err: pkgerrors.New(pkgerrors.CodeDependency, "sheet unreachable")}
	handler := OrdersList(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodGet, "/api/v1/orders", ""))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestOrderDetail(t *testing.T) {
	svc := &stubOrderService{orders: []*ordersvc.Order{{OrderID: "ORD-1"}}}
	handler := OrderDetail(svc, nil)

	req := withURLParam(sessionRequest(http.MethodGet, "/api/v1/orders/ORD-1", ""), "orderId", "ORD-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestOrderDetailNotFound(t *testing.T) {
	handler := OrderDetail(&stubOrderService{}, nil)

	req := withURLParam(sessionRequest(http.MethodGet, "/api/v1/orders/ORD-404", ""), "orderId", "ORD-404")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
