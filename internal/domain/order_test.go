package domain

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitrine-tech/storefront-backend/pkg/e"
)

var allStatuses = []OrderStatus{
	StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled,
}

// allowed mirrors the transition table used by ApplyTransition.
var allowed = map[OrderStatus]map[OrderStatus]bool{
	StatusPending:   {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed: {StatusShipped: true, StatusCancelled: true},
	StatusShipped:   {StatusDelivered: true, StatusCancelled: true},
	StatusDelivered: {},
	StatusCancelled: {},
}

func TestApplyTransition_ExhaustivePairs(t *testing.T) {
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			order := &Order{ID: 1, CustomerID: 7, Status: from}

			err := order.ApplyTransition(to)
			if allowed[from][to] {
				require.NoError(t, err, "expected %s -> %s to be allowed", from, to)
				assert.Equal(t, to, order.Status)
				continue
			}

			require.Error(t, err, "expected %s -> %s to be rejected", from, to)

			var invalid *e.InvalidTransitionError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, string(from), invalid.From)
			assert.Equal(t, string(to), invalid.To)
			assert.Equal(t, from, order.Status, "order must be left unchanged on rejected transition")
		}
	}
}

func TestApplyTransition_TerminalStatesHaveNoOutgoingEdges(t *testing.T) {
	for _, terminal := range []OrderStatus{StatusDelivered, StatusCancelled} {
		for _, to := range allStatuses {
			order := &Order{Status: terminal}
			err := order.ApplyTransition(to)
			require.Error(t, err, "terminal status %s must reject transition to %s", terminal, to)
			assert.Equal(t, terminal, order.Status)
		}
	}
}

func TestProperty_TransitionLegalityMatchesTable(t *testing.T) {
	properties := gopter.NewProperties(nil)

	statusGen := gen.OneConstOf(
		StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled,
	)

	properties.Property("ApplyTransition succeeds exactly for edges in the table", prop.ForAll(
		func(from, to OrderStatus) bool {
			order := &Order{Status: from}
			err := order.ApplyTransition(to)

			if allowed[from][to] {
				return err == nil && order.Status == to
			}
			return err != nil && order.Status == from
		},
		statusGen,
		statusGen,
	))

	properties.TestingRun(t)
}

func TestComputeTotal_SumsLineSubtotals(t *testing.T) {
	lines := []OrderLine{
		NewOrderLine(1, 2, 1000), // 20.00
		NewOrderLine(2, 3, 550),  // 16.50
	}

	assert.Equal(t, int64(3650), ComputeTotal(lines))
}

func TestComputeTotal_EmptyLines(t *testing.T) {
	assert.Equal(t, int64(0), ComputeTotal(nil))
}

func TestProperty_TotalEqualsSumOfQuantityTimesUnitPrice(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("total equals the sum over lines of quantity*unit_price", prop.ForAll(
		func(quantities []int64, prices []int64) bool {
			n := len(quantities)
			if len(prices) < n {
				n = len(prices)
			}

			lines := make([]OrderLine, 0, n)
			var want int64
			for i := 0; i < n; i++ {
				q := quantities[i]%10 + 1    // 1..10
				p := prices[i] % 100_000     // cents
				if p < 0 {
					p = -p
				}
				lines = append(lines, NewOrderLine(int64(i+1), q, p))
				want += q * p
			}

			return ComputeTotal(lines) == want
		},
		gen.SliceOf(gen.Int64Range(0, 1_000_000)),
		gen.SliceOf(gen.Int64Range(0, 1_000_000)),
	))

	properties.TestingRun(t)
}

func TestNewOrderLine_RecomputesSubtotal(t *testing.T) {
	line := NewOrderLine(5, 4, 250)

	assert.Equal(t, int64(1000), line.Subtotal)
}

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    OrderStatus
		wantErr bool
	}{
		{"pending", StatusPending, false},
		{"confirmed", StatusConfirmed, false},
		{"shipped", StatusShipped, false},
		{"delivered", StatusDelivered, false},
		{"cancelled", StatusCancelled, false},
		{"canceled", "", true},
		{"PENDING", "", true},
		{"", "", true},
		{"refunded", "", true},
	}

	for _, tt := range tests {
		got, err := ParseOrderStatus(tt.in)
		if tt.wantErr {
			require.ErrorIs(t, err, e.ErrUnknownOrderStatus, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}
