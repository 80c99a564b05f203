package controllers

import (
	"net/http"

	"github.com/angelmondragon/orderdesk/api/responses"
	"github.com/angelmondragon/orderdesk/api/validators"
	"github.com/angelmondragon/orderdesk/internal/payouts"
	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
	"github.com/angelmondragon/orderdesk/pkg/logger"
)

type createPayoutRequest struct {
	VendorID string  `json:"vendor_id" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

type vendorRowResponse struct {
	payouts.VendorRow
	DisplayTotalSales string `json:"display_total_sales"`
	DisplayCommission string `json:"display_commission"`
	DisplayNetPayable string `json:"display_net_payable"`
}

type ledgerResponse struct {
	Rows   []vendorRowResponse `json:"rows"`
	Totals totalsResponse      `json:"totals"`
}

type totalsResponse struct {
	payouts.Totals
	DisplayTotalRevenue       string `json:"display_total_revenue"`
	DisplayTotalCommission    string `json:"display_total_commission"`
	DisplayTotalPendingPayout string `json:"display_total_pending_payout"`
}

// AdminListVendorSummaries returns the payout ledger with display strings
// rounded to cents alongside the raw figures.
func AdminListVendorSummaries(svc payouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payouts service unavailable"))
			return
		}

		view, err := svc.ListVendorSummaries(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, buildLedgerResponse(view))
	}
}

// AdminCreatePayout records a vendor payout via the commerce backend.
func AdminCreatePayout(svc payouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payouts service unavailable"))
			return
		}

		var req createPayoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ack, err := svc.CreatePayout(r.Context(), req.VendorID, req.Amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, ack)
	}
}

func buildLedgerResponse(view *payouts.LedgerView) ledgerResponse {
	resp := ledgerResponse{Rows: make([]vendorRowResponse, 0, len(view.Rows))}
	for _, row := range view.Rows {
		resp.Rows = append(resp.Rows, vendorRowResponse{
			VendorRow:         row,
			DisplayTotalSales: payouts.DisplayAmount(row.TotalSales),
			DisplayCommission: payouts.DisplayAmount(row.Commission),
			DisplayNetPayable: payouts.DisplayAmount(row.NetPayable),
		})
	}
	resp.Totals = totalsResponse{
		Totals:                    view.Totals,
		DisplayTotalRevenue:       payouts.DisplayAmount(view.Totals.TotalRevenue),
		DisplayTotalCommission:    payouts.DisplayAmount(view.Totals.TotalCommission),
		DisplayTotalPendingPayout: payouts.DisplayAmount(view.Totals.TotalPendingPayout),
	}
	return resp
}
