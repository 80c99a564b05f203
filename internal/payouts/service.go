package payouts

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/orderdesk/pkg/commerce"
	"github.com/angelmondragon/orderdesk/pkg/errors"
	"github.com/angelmondragon/orderdesk/pkg/logger"
)

// remoteClient is the slice of the commerce backend the ledger needs.
type remoteClient interface {
	ListVendorSalesSummaries(ctx context.Context) ([]commerce.VendorSalesSummary, error)
	CreatePayout(ctx context.Context, vendorID string, amount float64) (*commerce.PayoutAck, error)
}

// Service maintains the vendor payout ledger against the commerce backend.
type Service interface {
	ListVendorSummaries(ctx context.Context) (*LedgerView, error)
	Snapshot() *LedgerView
	CreatePayout(ctx context.Context, vendorID string, amount float64) (*commerce.PayoutAck, error)
}

type service struct {
	remote         remoteClient
	logg           *logger.Logger
	commissionRate float64

	mu        sync.Mutex
	issued    uint64
	installed uint64
	snapshot  *LedgerView
}

func NewService(remote remoteClient, logg *logger.Logger, commissionRate float64) (Service, error) {
	if remote == nil {
		return nil, errors.New(errors.CodeInternal, "payouts: remote client is required")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeInternal, "payouts: logger is required")
	}
	if commissionRate <= 0 || commissionRate >= 1 {
		return nil, errors.New(errors.CodeInternal, "payouts: commission rate must be between 0 and 1 exclusive")
	}
	return &service{remote: remote, logg: logg, commissionRate: commissionRate}, nil
}

// ListVendorSummaries fetches the vendor sales summaries and installs the
// derived ledger view. When responses settle out of order the view from the
// later-issued fetch wins and earlier results are discarded.
func (s *service) ListVendorSummaries(ctx context.Context) (*LedgerView, error) {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	summaries, err := s.remote.ListVendorSalesSummaries(ctx)
	if err != nil {
		return nil, err
	}

	view := s.buildView(summaries, time.Now().UTC())

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.installed {
		s.logg.Debug(ctx, "stale vendor summaries fetch discarded")
		return s.snapshot.clone(), nil
	}
	s.installed = seq
	s.snapshot = view
	return view.clone(), nil
}

// Snapshot returns the last installed ledger view, nil before the first fetch.
func (s *service) Snapshot() *LedgerView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.clone()
}

// CreatePayout records a payout for a vendor. The vendor's current summary is
// checked before the remote call: already-paid vendors and vendors with
// nothing payable are rejected locally. The amount itself is forwarded as
// given. The paid flag only changes on the next summaries fetch; a repeated
// payout before then is forwarded and the backend decides.
func (s *service) CreatePayout(ctx context.Context, vendorID string, amount float64) (*commerce.PayoutAck, error) {
	vendorID = strings.TrimSpace(vendorID)
	if vendorID == "" {
		return nil, errors.New(errors.CodeValidation, "vendor id is required")
	}
	if amount <= 0 {
		return nil, errors.New(errors.CodeValidation, "payout amount must be greater than zero")
	}

	row, err := s.vendorRow(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if row.IsPaid {
		return nil, errors.New(errors.CodeValidation, "vendor has already been paid for this cycle").
			WithDetails(map[string]any{"vendor_id": vendorID})
	}
	if row.NetPayable <= 0 {
		return nil, errors.New(errors.CodeValidation, "vendor has no payable balance").
			WithDetails(map[string]any{"vendor_id": vendorID})
	}

	ack, err := s.remote.CreatePayout(ctx, vendorID, amount)
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithVendorID(ctx, vendorID), "payout recorded")
	return ack, nil
}

// vendorRow resolves a vendor from the installed snapshot, fetching a fresh
// one when no snapshot exists yet.
func (s *service) vendorRow(ctx context.Context, vendorID string) (*VendorRow, error) {
	view := s.Snapshot()
	if view == nil {
		var err error
		view, err = s.ListVendorSummaries(ctx)
		if err != nil {
			return nil, err
		}
	}
	for i := range view.Rows {
		if view.Rows[i].VendorID == vendorID {
			return &view.Rows[i], nil
		}
	}
	return nil, errors.New(errors.CodeNotFound, "vendor not found in payout ledger").
		WithDetails(map[string]any{"vendor_id": vendorID})
}

func (s *service) buildView(summaries []commerce.VendorSalesSummary, fetchedAt time.Time) *LedgerView {
	rows := make([]VendorRow, 0, len(summaries))
	for _, sum := range summaries {
		commission := sum.TotalSales * s.commissionRate
		rows = append(rows, VendorRow{
			VendorSalesSummary: sum,
			Commission:         commission,
			NetPayable:         sum.TotalSales - commission,
		})
	}
	return &LedgerView{
		Rows:      rows,
		Totals:    AggregateTotals(rows),
		FetchedAt: fetchedAt,
	}
}

// AggregateTotals reduces the rows three ways. Pending payout counts only
// vendors that have not been paid yet, so it never exceeds revenue minus
// commission.
func AggregateTotals(rows []VendorRow) Totals {
	var t Totals
	for i := range rows {
		t.TotalRevenue += rows[i].TotalSales
		t.TotalCommission += rows[i].Commission
		if !rows[i].IsPaid {
			t.TotalPendingPayout += rows[i].NetPayable
		}
	}
	return t
}
