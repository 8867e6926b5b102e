package cart

// Error is a cart business-rule violation. Errors with the same message are
// equal.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrItemAlreadyInCart    Error = "item already in cart"
	ErrItemNotInCart        Error = "item not in cart"
	ErrCouponAlreadyApplied Error = "coupon already applied"
	ErrCouponUnavailable    Error = "coupon not available"
	ErrInvalidQuantity      Error = "quantity must be positive"
)
