package payouts

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/orderdesk/pkg/commerce"
)

// VendorRow pairs a backend sales summary with the figures derived from it.
// Commission and NetPayable stay unrounded; rounding happens only when a
// display string is produced.
type VendorRow struct {
	commerce.VendorSalesSummary
	Commission float64 `json:"commission"`
	NetPayable float64 `json:"net_payable"`
}

// Totals are three independent platform-wide reductions over the summaries.
type Totals struct {
	TotalRevenue       float64 `json:"total_revenue"`
	TotalCommission    float64 `json:"total_commission"`
	TotalPendingPayout float64 `json:"total_pending_payout"`
}

// LedgerView is the caller-ready result of the last vendor summaries fetch.
type LedgerView struct {
	Rows      []VendorRow `json:"rows"`
	Totals    Totals      `json:"totals"`
	FetchedAt time.Time   `json:"fetched_at"`
}

func (v *LedgerView) clone() *LedgerView {
	if v == nil {
		return nil
	}
	out := &LedgerView{
		Rows:      make([]VendorRow, len(v.Rows)),
		Totals:    v.Totals,
		FetchedAt: v.FetchedAt,
	}
	copy(out.Rows, v.Rows)
	return out
}

// DisplayAmount renders a monetary value with two decimal places for
// presentation. Aggregates are summed before rounding, so a column of
// displayed values may differ from the displayed total by a cent.
func DisplayAmount(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2)
}
