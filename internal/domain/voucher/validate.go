package voucher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
)

// ErrQuantityInvariant is the sentinel wrapped by QuantityError when a
// goods receipt line violates accepted + rejected <= received.
var ErrQuantityInvariant = errors.New("quantity invariant violated")

// QuantityError reports the goods receipt lines whose quantities are
// invalid at submission time. Nothing is corrected automatically; the
// user fixes the listed lines and resubmits.
type QuantityError struct {
	Problems []LineProblem
}

// LineProblem describes one invalid line.
type LineProblem struct {
	Line    int
	Message string
}

func (e *QuantityError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = fmt.Sprintf("line %d: %s", p.Line, p.Message)
	}
	return strings.Join(parts, "; ")
}

// Unwrap lets callers match with errors.Is(err, ErrQuantityInvariant)
func (e *QuantityError) Unwrap() error {
	return ErrQuantityInvariant
}

// ValidateGoodsReceipt checks the line invariants of a goods receipt
// note before submission:
//
//	every line references a resolved product
//	received >= 0, accepted >= 0, rejected >= 0
//	accepted + rejected <= received
//
// Derivation carries an unresolved product link through as a warning;
// submission is where it becomes a hard error, because the accepted
// quantities are about to move stock.
//
// It returns nil when every line is valid, otherwise a *QuantityError
// listing every violation (1-based line numbers).
func ValidateGoodsReceipt(items []entity.GoodsReceiptItem) error {
	qe := &QuantityError{}
	for i, item := range items {
		n := i + 1
		if item.ProductID == uuid.Nil {
			qe.Problems = append(qe.Problems, LineProblem{Line: n, Message: "product link is unresolved"})
		}
		if item.ReceivedQuantity < 0 {
			qe.Problems = append(qe.Problems, LineProblem{Line: n, Message: "received quantity cannot be negative"})
		}
		if item.AcceptedQuantity < 0 {
			qe.Problems = append(qe.Problems, LineProblem{Line: n, Message: "accepted quantity cannot be negative"})
		}
		if item.RejectedQuantity < 0 {
			qe.Problems = append(qe.Problems, LineProblem{Line: n, Message: "rejected quantity cannot be negative"})
		}
		if item.AcceptedQuantity+item.RejectedQuantity > item.ReceivedQuantity {
			qe.Problems = append(qe.Problems, LineProblem{
				Line: n,
				Message: fmt.Sprintf("accepted (%g) + rejected (%g) exceeds received (%g)",
					item.AcceptedQuantity, item.RejectedQuantity, item.ReceivedQuantity),
			})
		}
	}
	if len(qe.Problems) == 0 {
		return nil
	}
	return qe
}
