package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	UnitID        *uuid.UUID `json:"unit_id"`
	Name          string     `json:"name" binding:"required,min=2,max=255"`
	Code          string     `json:"code" binding:"omitempty,max=100"`
	HSNCode       *string    `json:"hsn_code" binding:"omitempty,max=8"`
	GSTRate       *float64   `json:"gst_rate" binding:"omitempty,min=0,max=100"`
	Quantity      float64    `json:"quantity" binding:"min=0"`
	QuantityAlert float64    `json:"quantity_alert" binding:"min=0"`
	PurchasePrice float64    `json:"purchase_price" binding:"min=0"`
	SellingPrice  float64    `json:"selling_price" binding:"min=0"`
	Notes         *string    `json:"notes"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	UnitID        *uuid.UUID `json:"unit_id"`
	Name          *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Code          *string    `json:"code" binding:"omitempty,min=1,max=100"`
	HSNCode       *string    `json:"hsn_code" binding:"omitempty,max=8"`
	GSTRate       *float64   `json:"gst_rate" binding:"omitempty,min=0,max=100"`
	Quantity      *float64   `json:"quantity" binding:"omitempty,min=0"`
	QuantityAlert *float64   `json:"quantity_alert" binding:"omitempty,min=0"`
	PurchasePrice *float64   `json:"purchase_price" binding:"omitempty,min=0"`
	SellingPrice  *float64   `json:"selling_price" binding:"omitempty,min=0"`
	Notes         *string    `json:"notes"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	UnitID    string `form:"unit_id"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
