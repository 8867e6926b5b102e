package cart

import (
	"github.com/gmkumar2005/disintegrate/internal/decision"
	"github.com/gmkumar2005/disintegrate/internal/state"
)

// AddItem puts an item into a cart. An item can be in a cart once.
type AddItem struct {
	ItemID string `json:"item_id"`
	CartID string `json:"cart_id"`
}

func (d AddItem) StateQuery() state.Query[Event, Contents] {
	return Cart(d.CartID)
}

func (d AddItem) Process(c Contents) ([]Event, error) {
	if c.HasItem(d.ItemID) {
		return nil, ErrItemAlreadyInCart
	}
	return []Event{ItemAdded{ItemID: d.ItemID, CartID: d.CartID}}, nil
}

// RemoveItem takes an item out of a cart.
type RemoveItem struct {
	ItemID string `json:"item_id"`
	CartID string `json:"cart_id"`
}

func (d RemoveItem) StateQuery() state.Query[Event, Contents] {
	return Cart(d.CartID)
}

func (d RemoveItem) Process(c Contents) ([]Event, error) {
	if !c.HasItem(d.ItemID) {
		return nil, ErrItemNotInCart
	}
	return []Event{ItemRemoved{ItemID: d.ItemID, CartID: d.CartID}}, nil
}

// ApplyCoupon redeems one coupon against a cart.
type ApplyCoupon struct {
	CouponID string `json:"coupon_id"`
	CartID   string `json:"cart_id"`
}

func (d ApplyCoupon) StateQuery() state.Query[Event, state.Pair[Contents, int]] {
	return state.Join2[Event, Contents, int](Cart(d.CartID), Coupon(d.CouponID))
}

func (d ApplyCoupon) Process(s state.Pair[Contents, int]) ([]Event, error) {
	if s.First.HasCoupon(d.CouponID) {
		return nil, ErrCouponAlreadyApplied
	}
	if s.Second <= 0 {
		return nil, ErrCouponUnavailable
	}
	return []Event{CouponApplied{CouponID: d.CouponID, CartID: d.CartID}}, nil
}

// EmitCoupon makes quantity more coupons available.
type EmitCoupon struct {
	CouponID string `json:"coupon_id"`
	Quantity int    `json:"quantity"`
}

func (d EmitCoupon) StateQuery() state.Query[Event, int] {
	return Coupon(d.CouponID)
}

func (d EmitCoupon) Process(int) ([]Event, error) {
	if d.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	return []Event{CouponEmitted{CouponID: d.CouponID, Quantity: d.Quantity}}, nil
}

// Registry names every cart decision for scenarios and the CLI.
func Registry() *decision.Registry[Event] {
	r := decision.NewRegistry[Event]()
	decision.Register[AddItem, Event, Contents](r, "AddItem")
	decision.Register[RemoveItem, Event, Contents](r, "RemoveItem")
	decision.Register[ApplyCoupon, Event, state.Pair[Contents, int]](r, "ApplyCoupon")
	decision.Register[EmitCoupon, Event, int](r, "EmitCoupon")
	return r
}
