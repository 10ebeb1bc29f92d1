package order

import "github.com/farhanmaulid/commerce-inventory/constant"

// reservationAction names the stock side effect a status transition triggers.
type reservationAction int

const (
	actionNone reservationAction = iota
	actionConfirm
	actionRelease
	actionRestore
)

// allowedTransitions is the explicit state machine. Anything not listed is
// rejected with ErrInvalidTransition; DELIVERED and CANCELLED have no
// outgoing edges.
var allowedTransitions = map[constant.OrderStatus][]constant.OrderStatus{
	constant.OrderStatusPending:    {constant.OrderStatusConfirmed, constant.OrderStatusCancelled},
	constant.OrderStatusConfirmed:  {constant.OrderStatusProcessing, constant.OrderStatusShipped, constant.OrderStatusCancelled},
	constant.OrderStatusProcessing: {constant.OrderStatusShipped, constant.OrderStatusCancelled},
	constant.OrderStatusShipped:    {constant.OrderStatusDelivered, constant.OrderStatusCancelled},
}

func transitionAllowed(from, to constant.OrderStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// reservationActionFor maps a transition to its reservation side effect.
// Only the hold/consume bookkeeping depends on the previous status:
// confirming a pending order consumes held stock, cancelling a pending
// order frees the hold, cancelling a confirmed (or later) order returns
// consumed stock to on-hand.
func reservationActionFor(from, to constant.OrderStatus) reservationAction {
	switch {
	case from == constant.OrderStatusPending && to == constant.OrderStatusConfirmed:
		return actionConfirm
	case from == constant.OrderStatusPending && to == constant.OrderStatusCancelled:
		return actionRelease
	case to == constant.OrderStatusCancelled:
		return actionRestore
	default:
		return actionNone
	}
}
