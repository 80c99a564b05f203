package commerce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/orderdesk/pkg/config"
	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
	"github.com/angelmondragon/orderdesk/pkg/logger"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test"})
	c, err := NewClient(context.Background(), config.CommerceConfig{
		BaseURL:  baseURL,
		APIToken: "test-token",
		Timeout:  2 * time.Second,
	}, logg, nil)
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	return c
}

func TestNewClientValidation(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})

	if _, err := NewClient(context.Background(), config.CommerceConfig{APIToken: "x"}, logg, nil); err == nil {
		t.Fatalf("expected missing base url to fail")
	}
	if _, err := NewClient(context.Background(), config.CommerceConfig{BaseURL: "http://x"}, logg, nil); err == nil {
		t.Fatalf("expected missing token to fail")
	}
	if _, err := NewClient(context.Background(), config.CommerceConfig{BaseURL: "http://x", APIToken: "x"}, nil, nil); err == nil {
		t.Fatalf("expected missing logger to fail")
	}
}

func TestNewIdempotencyKey(t *testing.T) {
	c := &Client{}
	if got := c.NewIdempotencyKey("payout"); !strings.HasPrefix(got, "payout-") {
		t.Fatalf("generated idempotency key %q missing prefix", got)
	}
	if got := c.NewIdempotencyKey(" "); !strings.HasPrefix(got, "od-") {
		t.Fatalf("blank prefix should fall back to service prefix, got %q", got)
	}
}

func TestRedact(t *testing.T) {
	c := &Client{}
	if out := c.redact("vendor_email", "v@example.test"); out != "[REDACTED]" {
		t.Fatalf("expected redacted value, got %v", out)
	}
	if v := c.redact("status", "ok"); v != "ok" {
		t.Fatalf("unexpected redaction for safe key")
	}
}

func TestCodeForStatus(t *testing.T) {
	tests := []struct {
		status int
		code   pkgerrors.Code
	}{
		{http.StatusUnauthorized, pkgerrors.CodeUnauthorized},
		{http.StatusForbidden, pkgerrors.CodeForbidden},
		{http.StatusNotFound, pkgerrors.CodeNotFound},
		{http.StatusConflict, pkgerrors.CodeConflict},
		{http.StatusTooManyRequests, pkgerrors.CodeRateLimit},
		{http.StatusBadRequest, pkgerrors.CodeValidation},
		{http.StatusUnprocessableEntity, pkgerrors.CodeValidation},
		{http.StatusInternalServerError, pkgerrors.CodeDependency},
		{http.StatusBadGateway, pkgerrors.CodeDependency},
	}
	for _, tt := range tests {
		if got := codeForStatus(tt.status); got != tt.code {
			t.Fatalf("status %d expected %s got %s", tt.status, tt.code, got)
		}
	}
}

func TestListOrdersDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/orders" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Fatalf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"o1","order_number":"1001","status":"pending","total_amount":50}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	orders, err := c.ListOrders(context.Background())
	if err != nil {
		t.Fatalf("ListOrders error: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	if orders[0].ID != "o1" || orders[0].Status != OrderStatusPending || orders[0].TotalAmount != 50 {
		t.Fatalf("unexpected order %+v", orders[0])
	}
}

func TestUpdateOrderStatusSendsPatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Fatalf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/api/admin/orders/o1/status" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":{"order_id":"o1","status":"shipped"}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ack, err := c.UpdateOrderStatus(context.Background(), "o1", OrderStatusShipped)
	if err != nil {
		t.Fatalf("UpdateOrderStatus error: %v", err)
	}
	if ack.OrderID != "o1" || ack.Status != OrderStatusShipped {
		t.Fatalf("unexpected ack %+v", ack)
	}
}

func TestUpstreamErrorCarriesStatusHint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"order missing"}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.UpdateOrderStatus(context.Background(), "missing", OrderStatusShipped)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %s", typed.Code())
	}
	if typed.UpstreamStatus() != http.StatusNotFound {
		t.Fatalf("expected upstream status 404, got %d", typed.UpstreamStatus())
	}
	if typed.Message() != "order missing" {
		t.Fatalf("upstream message lost: %q", typed.Message())
	}
}

func TestUnreachableBackendIsDistinguishable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := newTestClient(t, srv.URL)
	_, err := c.ListOrders(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != pkgerrors.CodeUnreachable {
		t.Fatalf("expected DEPENDENCY_UNREACHABLE, got %s", typed.Code())
	}
	if typed.UpstreamStatus() != 0 {
		t.Fatalf("unreachable failures carry no status, got %d", typed.UpstreamStatus())
	}
}

func TestCreateRefundGeneratesIdempotencyKey(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body refundCreateRequest
		if err := decodeBody(r, &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		gotKey = body.IdempotencyKey
		_, _ = w.Write([]byte(`{"data":{"order_id":"o1","reason":"damaged","outcome":"pending"}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	refund, err := c.CreateRefund(context.Background(), "o1", "damaged")
	if err != nil {
		t.Fatalf("CreateRefund error: %v", err)
	}
	if refund.Outcome != RefundOutcomePending {
		t.Fatalf("unexpected outcome %s", refund.Outcome)
	}
	if !strings.HasPrefix(gotKey, "refund-") {
		t.Fatalf("expected generated idempotency key, got %q", gotKey)
	}
}

func decodeBody(r *http.Request, dest any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dest)
}
