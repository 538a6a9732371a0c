package handlers

import (
	"delivery-route-service/internal/api/dto"
	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/services"
	"net/http"
)

// OrderHandler exposes the order status engine and settlement totals.
type OrderHandler struct {
	Status     *services.StatusService
	Settlement *services.SettlementService
}

// UpdateStatus sets an order status. When ?orderIds= carries the active
// route subset, the response includes the subset after the change.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := services.ParseOrderID(r.PathValue("id"))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid order id")
		return
	}

	var req dto.StatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	status, ok := domain.ParseOrderStatus(req.Status)
	if !ok {
		writeError(w, r, http.StatusBadRequest, domain.ErrInvalidStatus.Error())
		return
	}

	change, err := h.Status.SetStatus(r.Context(), orderID, status)
	if err != nil {
		writeServiceError(w, r, "update status", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toStatusResponse(r, change))
}

// CollectCash confirms payment of a pending cash-on-delivery order.
func (h *OrderHandler) CollectCash(w http.ResponseWriter, r *http.Request) {
	orderID, ok := services.ParseOrderID(r.PathValue("id"))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid order id")
		return
	}

	change, err := h.Status.CollectCash(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, r, "collect cash", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toStatusResponse(r, change))
}

// Settle totals card and cash collections for the selected orders.
func (h *OrderHandler) Settle(w http.ResponseWriter, r *http.Request) {
	var req dto.SettlementRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sum, err := h.Settlement.Summarize(r.Context(), req.OrderIDs)
	if err != nil {
		writeServiceError(w, r, "settlement", err)
		return
	}

	res := dto.SettlementResponse{
		OrderCount:       sum.OrderCount,
		TotalOrderAmount: sum.TotalOrderAmount,
		TotalPaid:        sum.TotalPaid,
		PaidByCard:       sum.PaidByCard,
		PaidByCash:       sum.PaidByCash,
		Remaining:        sum.Remaining,
		Orders:           make([]dto.OrderSettlementResponse, 0, len(sum.Orders)),
	}
	for _, o := range sum.Orders {
		res.Orders = append(res.Orders, dto.OrderSettlementResponse{
			OrderID:      o.OrderID,
			CustomerName: o.CustomerName,
			Status:       string(o.Status),
			TotalAmount:  o.TotalAmount,
			Paid:         o.Paid,
			Remaining:    o.Remaining,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toStatusResponse(r *http.Request, change *services.StatusChange) dto.StatusResponse {
	res := dto.StatusResponse{
		OrderID:     change.OrderID,
		Status:      string(change.Status),
		LeavesRoute: change.LeavesRoute,
		Warnings:    change.Warnings,
	}

	active := services.ParseOrderIDs(r.URL.Query().Get("orderIds"))
	if next, useDefault := services.ReconcileRoute(active, change); !useDefault {
		res.OrderIDs = next
	}
	return res
}
