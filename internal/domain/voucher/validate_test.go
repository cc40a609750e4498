package voucher

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
)

func TestValidateGoodsReceipt(t *testing.T) {
	pid := uuid.New()

	tests := []struct {
		name      string
		items     []entity.GoodsReceiptItem
		wantErr   bool
		wantLines []int
	}{
		{
			name: "valid quantities",
			items: []entity.GoodsReceiptItem{
				{ProductID: pid, ReceivedQuantity: 10, AcceptedQuantity: 8, RejectedQuantity: 2},
				{ProductID: pid, ReceivedQuantity: 5, AcceptedQuantity: 5, RejectedQuantity: 0},
			},
		},
		{
			name: "accepted plus rejected exceeds received",
			items: []entity.GoodsReceiptItem{
				{ProductID: pid, ReceivedQuantity: 5, AcceptedQuantity: 4, RejectedQuantity: 2},
			},
			wantErr:   true,
			wantLines: []int{1},
		},
		{
			name: "negative received",
			items: []entity.GoodsReceiptItem{
				{ProductID: pid, ReceivedQuantity: -1, AcceptedQuantity: 0, RejectedQuantity: 0},
			},
			wantErr:   true,
			wantLines: []int{1},
		},
		{
			name: "second line invalid",
			items: []entity.GoodsReceiptItem{
				{ProductID: pid, ReceivedQuantity: 10, AcceptedQuantity: 10, RejectedQuantity: 0},
				{ProductID: pid, ReceivedQuantity: 3, AcceptedQuantity: 3, RejectedQuantity: 1},
			},
			wantErr:   true,
			wantLines: []int{2},
		},
		{
			name: "multiple invalid lines",
			items: []entity.GoodsReceiptItem{
				{ProductID: pid, ReceivedQuantity: 1, AcceptedQuantity: 1, RejectedQuantity: 1},
				{ProductID: pid, ReceivedQuantity: 2, AcceptedQuantity: 0, RejectedQuantity: -1},
			},
			wantErr:   true,
			wantLines: []int{1, 2},
		},
		{
			name: "unresolved product link",
			items: []entity.GoodsReceiptItem{
				{ProductID: pid, ReceivedQuantity: 4, AcceptedQuantity: 4, RejectedQuantity: 0},
				{ProductID: uuid.Nil, ReceivedQuantity: 2, AcceptedQuantity: 2, RejectedQuantity: 0},
			},
			wantErr:   true,
			wantLines: []int{2},
		},
		{
			name:  "no items",
			items: nil,
		},
		{
			name: "boundary accepted plus rejected equals received",
			items: []entity.GoodsReceiptItem{
				{ProductID: pid, ReceivedQuantity: 6, AcceptedQuantity: 4, RejectedQuantity: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGoodsReceipt(tt.items)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateGoodsReceipt() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}

			if !errors.Is(err, ErrQuantityInvariant) {
				t.Error("error should wrap ErrQuantityInvariant")
			}
			var qe *QuantityError
			if !errors.As(err, &qe) {
				t.Fatalf("error = %T, want *QuantityError", err)
			}

			gotLines := map[int]bool{}
			for _, p := range qe.Problems {
				gotLines[p.Line] = true
			}
			for _, want := range tt.wantLines {
				if !gotLines[want] {
					t.Errorf("line %d not flagged; problems = %v", want, qe.Problems)
				}
			}
		})
	}
}
