package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/orderdesk/pkg/config"
	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
	"github.com/angelmondragon/orderdesk/pkg/logger"
	"github.com/angelmondragon/orderdesk/pkg/metrics"
)

var (
	errBaseURLRequired  = errors.New("commerce base url is required")
	errAPITokenRequired = errors.New("commerce api token is required")
	errLoggerRequired   = errors.New("commerce logger is required")
)

// Client exposes the commerce backend's admin primitives with centralized
// auth, logging, metrics, and error mapping. Every call performs exactly one
// HTTP round-trip; callers own retry decisions.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
	logger     *logger.Logger
	metrics    *metrics.CommerceCallMetrics
}

// NewClient initializes the commerce wrapper and validates the credentials.
func NewClient(ctx context.Context, cfg config.CommerceConfig, logg *logger.Logger, m *metrics.CommerceCallMetrics) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parsing commerce base url: %w", err)
	}

	apiToken := strings.TrimSpace(cfg.APIToken)
	if apiToken == "" {
		return nil, errAPITokenRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiToken:   apiToken,
		logger:     logg,
		metrics:    m,
	}

	logg.Info(ctx, "commerce client initialized")
	return c, nil
}

// BaseURL reports the normalized backend URL.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL
}

// NewIdempotencyKey returns a unique key for commerce mutations.
func (c *Client) NewIdempotencyKey(prefix string) string {
	key := strings.TrimSpace(prefix)
	if key == "" {
		key = "od"
	}
	return fmt.Sprintf("%s-%s", key, uuid.NewString())
}

// Ping verifies the backend is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil, "ping")
}

// Order operations

func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	c.log(ctx, "request", "list_orders", nil)

	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/api/admin/orders", nil, &orders, "list_orders"); err != nil {
		return nil, err
	}

	c.log(ctx, "response", "list_orders", map[string]any{"count": len(orders)})
	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status OrderStatus) (*StatusAck, error) {
	c.log(ctx, "request", "update_order_status", map[string]any{
		"order_id": orderID,
		"status":   string(status),
	})

	var ack StatusAck
	path := fmt.Sprintf("/api/admin/orders/%s/status", url.PathEscape(orderID))
	if err := c.do(ctx, http.MethodPatch, path, statusUpdateRequest{Status: status}, &ack, "update_order_status"); err != nil {
		return nil, err
	}

	c.log(ctx, "response", "update_order_status", map[string]any{
		"order_id": ack.OrderID,
		"status":   string(ack.Status),
	})
	return &ack, nil
}

func (c *Client) CreateRefund(ctx context.Context, orderID, reason string) (*RefundRequest, error) {
	c.log(ctx, "request", "create_refund", map[string]any{"order_id": orderID})

	body := refundCreateRequest{
		Reason:         reason,
		IdempotencyKey: c.NewIdempotencyKey("refund"),
	}
	var refund RefundRequest
	path := fmt.Sprintf("/api/admin/orders/%s/refund", url.PathEscape(orderID))
	if err := c.do(ctx, http.MethodPost, path, body, &refund, "create_refund"); err != nil {
		return nil, err
	}

	c.log(ctx, "response", "create_refund", map[string]any{
		"order_id": refund.OrderID,
		"outcome":  string(refund.Outcome),
	})
	return &refund, nil
}

// Payout operations

func (c *Client) ListVendorSalesSummaries(ctx context.Context) ([]VendorSalesSummary, error) {
	c.log(ctx, "request", "list_vendor_sales", nil)

	var summaries []VendorSalesSummary
	if err := c.do(ctx, http.MethodGet, "/api/admin/payments", nil, &summaries, "list_vendor_sales"); err != nil {
		return nil, err
	}

	c.log(ctx, "response", "list_vendor_sales", map[string]any{"count": len(summaries)})
	return summaries, nil
}

func (c *Client) CreatePayout(ctx context.Context, vendorID string, amount float64) (*PayoutAck, error) {
	c.log(ctx, "request", "create_payout", map[string]any{
		"vendor_id": vendorID,
		"amount":    amount,
	})

	body := payoutCreateRequest{
		VendorID:       vendorID,
		Amount:         amount,
		IdempotencyKey: c.NewIdempotencyKey("payout"),
	}
	var ack PayoutAck
	if err := c.do(ctx, http.MethodPost, "/api/admin/payouts", body, &ack, "create_payout"); err != nil {
		return nil, err
	}

	c.log(ctx, "response", "create_payout", map[string]any{
		"payout_id": ack.PayoutID,
		"vendor_id": ack.VendorID,
		"status":    ack.Status,
	})
	return &ack, nil
}

// Catalog operations

func (c *Client) ListBrands(ctx context.Context) ([]Brand, error) {
	var brands []Brand
	if err := c.do(ctx, http.MethodGet, "/api/brands", nil, &brands, "list_brands"); err != nil {
		return nil, err
	}
	return brands, nil
}

func (c *Client) CreateBrand(ctx context.Context, params BrandCreateParams) (*Brand, error) {
	c.log(ctx, "request", "create_brand", map[string]any{"name": params.Name})

	var brand Brand
	if err := c.do(ctx, http.MethodPost, "/api/brands", params, &brand, "create_brand"); err != nil {
		return nil, err
	}
	return &brand, nil
}

func (c *Client) DeleteBrand(ctx context.Context, brandID string) error {
	c.log(ctx, "request", "delete_brand", map[string]any{"brand_id": brandID})
	path := fmt.Sprintf("/api/brands/%s", url.PathEscape(brandID))
	return c.do(ctx, http.MethodDelete, path, nil, nil, "delete_brand")
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &categories, "list_categories"); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/api/admin/products", nil, &products, "list_products"); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) CreateProduct(ctx context.Context, params ProductCreateParams) (*Product, error) {
	c.log(ctx, "request", "create_product", map[string]any{"name": params.Name})

	var product Product
	if err := c.do(ctx, http.MethodPost, "/api/admin/products", params, &product, "create_product"); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, productID string, params ProductUpdateParams) (*Product, error) {
	c.log(ctx, "request", "update_product", map[string]any{"product_id": productID})

	var product Product
	path := fmt.Sprintf("/api/admin/products/%s", url.PathEscape(productID))
	if err := c.do(ctx, http.MethodPatch, path, params, &product, "update_product"); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	c.log(ctx, "request", "delete_product", map[string]any{"product_id": productID})
	path := fmt.Sprintf("/api/admin/products/%s", url.PathEscape(productID))
	return c.do(ctx, http.MethodDelete, path, nil, nil, "delete_product")
}

// envelope matches the backend's {"data": ...} response wrapper.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any, op string) error {
	start := time.Now()
	err := c.roundTrip(ctx, method, path, body, out)
	c.metrics.ObserveDuration(op, time.Since(start))
	if err != nil {
		code := pkgerrors.CodeInternal
		if typed := pkgerrors.As(err); typed != nil {
			code = typed.Code()
		}
		c.metrics.IncFailure(op, string(code))
		c.log(ctx, "error", op, map[string]any{"error": err.Error()})
		return err
	}
	c.metrics.IncSuccess(op)
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode commerce request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build commerce request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No HTTP status at all: the backend never answered.
		return pkgerrors.Wrap(pkgerrors.CodeUnreachable, err, "commerce backend unreachable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUnreachable, err, "read commerce response")
	}

	if resp.StatusCode >= 400 {
		return c.mapUpstreamError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode commerce response").
			WithUpstreamStatus(resp.StatusCode)
	}
	payload := env.Data
	if payload == nil {
		// Some endpoints answer unwrapped.
		payload = raw
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode commerce response").
			WithUpstreamStatus(resp.StatusCode)
	}
	return nil
}

func (c *Client) mapUpstreamError(status int, raw []byte) error {
	message := upstreamMessage(raw)
	if message == "" {
		message = fmt.Sprintf("commerce backend returned %d", status)
	}
	return pkgerrors.New(codeForStatus(status), message).
		WithUpstreamStatus(status).
		WithDetails(map[string]any{"upstream_status": status})
}

func upstreamMessage(raw []byte) string {
	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	if env.Error.Message != "" {
		return env.Error.Message
	}
	return env.Message
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	case http.StatusTooManyRequests:
		return pkgerrors.CodeRateLimit
	default:
		if status >= 400 && status < 500 {
			return pkgerrors.CodeValidation
		}
		return pkgerrors.CodeDependency
	}
}

func (c *Client) log(ctx context.Context, phase, op string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"operation": op,
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = c.redact(k, v)
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Error(ctx, fmt.Sprintf("commerce %s", op), errors.New(fmt.Sprint(fields["error"])))
	default:
		c.logger.Info(ctx, fmt.Sprintf("commerce %s", phase))
	}
}

func (c *Client) redact(key string, value any) any {
	lower := strings.ToLower(key)
	for _, sensitive := range []string{"token", "secret", "email", "phone", "reason"} {
		if strings.Contains(lower, sensitive) {
			return "[REDACTED]"
		}
	}
	return value
}
