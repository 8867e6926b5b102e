package cart

import "github.com/gmkumar2005/disintegrate/internal/event"

// Event is any cart domain event.
type Event interface {
	event.Event
	isCartEvent()
}

// ItemAdded records an item put into a cart.
type ItemAdded struct {
	ItemID string `json:"item_id"`
	CartID string `json:"cart_id"`
}

// ItemRemoved records an item taken out of a cart.
type ItemRemoved struct {
	ItemID string `json:"item_id"`
	CartID string `json:"cart_id"`
}

// CouponApplied records a coupon redeemed against a cart.
type CouponApplied struct {
	CouponID string `json:"coupon_id"`
	CartID   string `json:"cart_id"`
}

// CouponEmitted records a batch of redeemable coupons.
type CouponEmitted struct {
	CouponID string `json:"coupon_id"`
	Quantity int    `json:"quantity"`
}

func (ItemAdded) EventType() string     { return "ItemAdded" }
func (ItemRemoved) EventType() string   { return "ItemRemoved" }
func (CouponApplied) EventType() string { return "CouponApplied" }
func (CouponEmitted) EventType() string { return "CouponEmitted" }

func (ItemAdded) isCartEvent()     {}
func (ItemRemoved) isCartEvent()   {}
func (CouponApplied) isCartEvent() {}
func (CouponEmitted) isCartEvent() {}

// Codec returns a codec for every cart event.
func Codec() *event.Codec[Event] {
	c := event.NewCodec[Event]()
	event.Register[ItemAdded](c)
	event.Register[ItemRemoved](c)
	event.Register[CouponApplied](c)
	event.Register[CouponEmitted](c)
	return c
}
