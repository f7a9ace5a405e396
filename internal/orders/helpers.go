package orders

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mitienda/storefront-backend/pkg/db/models"
	"github.com/mitienda/storefront-backend/pkg/enums"
)

// NewOrderNumber builds a human-readable order reference: the last six
// digits of the unix millisecond clock plus a three digit random
// suffix. Uniqueness is enforced by the database, not here.
func NewOrderNumber(now time.Time) string {
	millis := fmt.Sprintf("%d", now.UnixMilli())
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return fmt.Sprintf("ORD-%s-%03d", millis, rand.Intn(1000))
}

// CanCancel reports whether the order is still early enough in its
// lifecycle to be cancelled.
func CanCancel(order models.OrderRecord) bool {
	return order.Status == enums.OrderStatusPending || order.Status == enums.OrderStatusPaid
}

// IsCompleted reports whether the order reached its terminal success
// state.
func IsCompleted(order models.OrderRecord) bool {
	return order.Status == enums.OrderStatusDelivered
}
