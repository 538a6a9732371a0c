package dto

type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// StatusResponse reports an applied status change. OrderIDs is the active
// route subset after reconciliation; null means the default route applies.
type StatusResponse struct {
	OrderID     int      `json:"order_id"`
	Status      string   `json:"status"`
	LeavesRoute bool     `json:"leaves_route"`
	Warnings    []string `json:"warnings"`
	OrderIDs    []int    `json:"orderIds"`
}

type SettlementRequest struct {
	OrderIDs []int `json:"orderIds" validate:"required,min=1,dive,gt=0"`
}

type OrderSettlementResponse struct {
	OrderID      int     `json:"order_id"`
	CustomerName string  `json:"customer_name"`
	Status       string  `json:"status"`
	TotalAmount  float64 `json:"total_amount"`
	Paid         float64 `json:"paid"`
	Remaining    float64 `json:"remaining"`
}

type SettlementResponse struct {
	OrderCount       int                       `json:"order_count"`
	TotalOrderAmount float64                   `json:"total_order_amount"`
	TotalPaid        float64                   `json:"total_paid"`
	PaidByCard       float64                   `json:"paid_by_card"`
	PaidByCash       float64                   `json:"paid_by_cash"`
	Remaining        float64                   `json:"remaining"`
	Orders           []OrderSettlementResponse `json:"orders"`
}
