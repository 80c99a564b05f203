package orders

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/orderdesk/pkg/commerce"
	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
	"github.com/angelmondragon/orderdesk/pkg/logger"
)

// remoteClient captures the commerce backend operations this service uses.
type remoteClient interface {
	ListOrders(ctx context.Context) ([]commerce.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status commerce.OrderStatus) (*commerce.StatusAck, error)
	CreateRefund(ctx context.Context, orderID, reason string) (*commerce.RefundRequest, error)
}

// Service mediates order status changes and refund issuance against the
// commerce backend. The backend is the authority on final state; the service
// keeps only the last-fetched snapshot for callers to read.
type Service interface {
	List(ctx context.Context) (*OrderList, error)
	Snapshot() *OrderList
	ChangeStatus(ctx context.Context, orderID string, status commerce.OrderStatus) (*commerce.StatusAck, error)
	RequestRefund(ctx context.Context, orderID, reason string) (*commerce.RefundRequest, error)
}

type service struct {
	remote remoteClient
	logger *logger.Logger

	mu sync.Mutex
	// issued and installed order concurrent fetches: a response whose
	// sequence is below the installed one lost the race and is dropped.
	issued    uint64
	installed uint64
	snapshot  *OrderList
}

// NewService wires an order lifecycle service with the provided remote client.
func NewService(remote remoteClient, logg *logger.Logger) (Service, error) {
	if remote == nil {
		return nil, fmt.Errorf("orders remote client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("orders logger required")
	}
	return &service{remote: remote, logger: logg}, nil
}

// List fetches the current orders from the backend and installs them as the
// snapshot. When two fetches race, the later-issued one wins the snapshot and
// the superseded response is discarded without surfacing an error.
func (s *service) List(ctx context.Context) (*OrderList, error) {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	fetched, err := s.remote.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	view := buildOrderList(fetched, time.Now().UTC())

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.installed {
		s.logger.Debug(ctx, "stale orders fetch discarded")
		return s.snapshot.clone(), nil
	}
	s.installed = seq
	s.snapshot = view
	return view.clone(), nil
}

// Snapshot returns a copy of the last installed view, or nil before the first
// successful List.
func (s *service) Snapshot() *OrderList {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.clone()
}

// ChangeStatus forwards any of the five closed-set statuses to the backend.
// There is deliberately no transition-table validation: operators may move an
// order backwards (such as shipped to pending) as an admin override.
func (s *service) ChangeStatus(ctx context.Context, orderID string, status commerce.OrderStatus) (*commerce.StatusAck, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]any{"status": string(status), "allowed": commerce.OrderStatuses()})
	}

	ack, err := s.remote.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		// The prior snapshot stays untouched; the caller sees the failure.
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot != nil {
		for i := range s.snapshot.Orders {
			if s.snapshot.Orders[i].ID == orderID {
				s.snapshot.Orders[i].Status = ack.Status
				break
			}
		}
		s.snapshot.StatusCounts = countByStatus(s.snapshot.Orders)
	}
	return ack, nil
}

// RequestRefund submits exactly one refund per invocation. Concurrent
// duplicates for the same order are not de-duplicated here; the backend is
// the idempotency authority.
func (s *service) RequestRefund(ctx context.Context, orderID, reason string) (*commerce.RefundRequest, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "refund reason is required")
	}

	return s.remote.CreateRefund(ctx, orderID, reason)
}
