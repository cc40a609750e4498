package request

import (
	"time"

	"github.com/google/uuid"
)

// VoucherItemRequest represents one line item in a voucher payload
type VoucherItemRequest struct {
	ProductID          uuid.UUID `json:"product_id" binding:"required"`
	Quantity           float64   `json:"quantity" binding:"required,gt=0"`
	UnitPrice          float64   `json:"unit_price" binding:"min=0"`
	DiscountPercentage float64   `json:"discount_percentage" binding:"min=0,max=100"`
	DiscountAmount     float64   `json:"discount_amount" binding:"min=0"`
}

// ChargeSetRequest represents the additional charges of a voucher
type ChargeSetRequest struct {
	Freight       float64 `json:"freight" binding:"min=0"`
	Installation  float64 `json:"installation" binding:"min=0"`
	Packing       float64 `json:"packing" binding:"min=0"`
	Insurance     float64 `json:"insurance" binding:"min=0"`
	Loading       float64 `json:"loading" binding:"min=0"`
	Unloading     float64 `json:"unloading" binding:"min=0"`
	Miscellaneous float64 `json:"miscellaneous" binding:"min=0"`
}

// CreatePurchaseOrderRequest represents a purchase order creation request
type CreatePurchaseOrderRequest struct {
	VendorID         uuid.UUID            `json:"vendor_id" binding:"required"`
	Date             *time.Time           `json:"date"`
	LineDiscountMode int                  `json:"line_discount_mode" binding:"min=0,max=2"`
	DocDiscountMode  int                  `json:"doc_discount_mode" binding:"min=0,max=2"`
	DocDiscountValue float64              `json:"doc_discount_value" binding:"min=0"`
	Charges          *ChargeSetRequest    `json:"charges"`
	Note             *string              `json:"note"`
	Items            []VoucherItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdatePurchaseOrderRequest represents a purchase order update request
type UpdatePurchaseOrderRequest struct {
	VendorID         *uuid.UUID           `json:"vendor_id"`
	Date             *time.Time           `json:"date"`
	LineDiscountMode *int                 `json:"line_discount_mode" binding:"omitempty,min=0,max=2"`
	DocDiscountMode  *int                 `json:"doc_discount_mode" binding:"omitempty,min=0,max=2"`
	DocDiscountValue *float64             `json:"doc_discount_value" binding:"omitempty,min=0"`
	Charges          *ChargeSetRequest    `json:"charges"`
	Note             *string              `json:"note"`
	Items            []VoucherItemRequest `json:"items" binding:"omitempty,dive"`
}

// CreateDispatchOrderRequest represents a dispatch order creation request
type CreateDispatchOrderRequest struct {
	CustomerID       uuid.UUID            `json:"customer_id" binding:"required"`
	CourierID        *uuid.UUID           `json:"courier_id"`
	Date             *time.Time           `json:"date"`
	DeliveryAddress  string               `json:"delivery_address"`
	LineDiscountMode int                  `json:"line_discount_mode" binding:"min=0,max=2"`
	DocDiscountMode  int                  `json:"doc_discount_mode" binding:"min=0,max=2"`
	DocDiscountValue float64              `json:"doc_discount_value" binding:"min=0"`
	Charges          *ChargeSetRequest    `json:"charges"`
	Note             *string              `json:"note"`
	Items            []VoucherItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ReceiptLineRequest carries the user-entered quantities for one GRN line
type ReceiptLineRequest struct {
	ItemID           uuid.UUID `json:"item_id" binding:"required"`
	ReceivedQuantity float64   `json:"received_quantity" binding:"min=0"`
	AcceptedQuantity float64   `json:"accepted_quantity" binding:"min=0"`
	RejectedQuantity float64   `json:"rejected_quantity" binding:"min=0"`
}

// UpdateGoodsReceiptRequest represents a GRN update request
type UpdateGoodsReceiptRequest struct {
	Lines            []ReceiptLineRequest `json:"lines" binding:"omitempty,dive"`
	DocDiscountMode  *int                 `json:"doc_discount_mode" binding:"omitempty,min=0,max=2"`
	DocDiscountValue *float64             `json:"doc_discount_value" binding:"omitempty,min=0"`
	Charges          *ChargeSetRequest    `json:"charges"`
	Note             *string              `json:"note"`
}

// ReturnLineRequest adjusts the returned quantity of one line
type ReturnLineRequest struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity float64   `json:"quantity" binding:"min=0"`
}

// UpdatePurchaseReturnRequest represents a purchase return update request
type UpdatePurchaseReturnRequest struct {
	Lines            []ReturnLineRequest `json:"lines" binding:"omitempty,dive"`
	DocDiscountMode  *int                `json:"doc_discount_mode" binding:"omitempty,min=0,max=2"`
	DocDiscountValue *float64            `json:"doc_discount_value" binding:"omitempty,min=0"`
	Charges          *ChargeSetRequest   `json:"charges"`
	Note             *string             `json:"note"`
}

// UpdatePurchaseVoucherRequest represents a purchase voucher update
// request. Line quantities stay bound to the source GRN.
type UpdatePurchaseVoucherRequest struct {
	VendorInvoiceNo  *string           `json:"vendor_invoice_no"`
	DocDiscountMode  *int              `json:"doc_discount_mode" binding:"omitempty,min=0,max=2"`
	DocDiscountValue *float64          `json:"doc_discount_value" binding:"omitempty,min=0"`
	Charges          *ChargeSetRequest `json:"charges"`
	Note             *string           `json:"note"`
}
