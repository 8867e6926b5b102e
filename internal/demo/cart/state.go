package cart

import (
	"slices"

	"github.com/gmkumar2005/disintegrate/internal/event"
	"github.com/gmkumar2005/disintegrate/internal/state"
)

// Contents is the state of one cart.
type Contents struct {
	Items   []string `json:"items"`
	Coupons []string `json:"coupons"`
}

// HasItem reports whether the cart holds itemID.
func (c Contents) HasItem(itemID string) bool {
	return slices.Contains(c.Items, itemID)
}

// HasCoupon reports whether couponID was applied to the cart.
func (c Contents) HasCoupon(couponID string) bool {
	return slices.Contains(c.Coupons, couponID)
}

// Cart projects the contents of cartID.
func Cart(cartID string) state.Part[Event, Contents] {
	return state.NewPart("cart", func() Contents {
		return Contents{Items: []string{}, Coupons: []string{}}
	}, func(c Contents, pe event.Persisted[Event]) Contents {
		switch e := pe.Event().(type) {
		case ItemAdded:
			c.Items = append(slices.Clone(c.Items), e.ItemID)
		case ItemRemoved:
			c.Items = slices.DeleteFunc(slices.Clone(c.Items), func(id string) bool { return id == e.ItemID })
		case CouponApplied:
			c.Coupons = append(slices.Clone(c.Coupons), e.CouponID)
		}
		return c
	}, "ItemAdded", "ItemRemoved", "CouponApplied").Where(func(e Event) bool {
		return cartOf(e) == cartID
	})
}

// Coupon projects how many couponID coupons remain.
func Coupon(couponID string) state.Part[Event, int] {
	return state.NewPart("coupon", nil, func(n int, pe event.Persisted[Event]) int {
		switch e := pe.Event().(type) {
		case CouponEmitted:
			return n + e.Quantity
		case CouponApplied:
			return n - 1
		}
		return n
	}, "CouponEmitted", "CouponApplied").Where(func(e Event) bool {
		return couponOf(e) == couponID
	})
}

// Summary projects every cart and coupon in the log. It is what replay
// compares.
func Summary() state.Multi[Event] {
	carts := state.NewPart("carts", func() map[string]Contents {
		return map[string]Contents{}
	}, func(m map[string]Contents, pe event.Persisted[Event]) map[string]Contents {
		id := cartOf(pe.Event())
		c, ok := m[id]
		if !ok {
			c = Contents{Items: []string{}, Coupons: []string{}}
		}
		switch e := pe.Event().(type) {
		case ItemAdded:
			c.Items = append(c.Items, e.ItemID)
		case ItemRemoved:
			c.Items = slices.DeleteFunc(c.Items, func(id string) bool { return id == e.ItemID })
		case CouponApplied:
			c.Coupons = append(c.Coupons, e.CouponID)
		}
		m[id] = c
		return m
	}, "ItemAdded", "ItemRemoved", "CouponApplied")

	coupons := state.NewPart("coupons", func() map[string]int {
		return map[string]int{}
	}, func(m map[string]int, pe event.Persisted[Event]) map[string]int {
		switch e := pe.Event().(type) {
		case CouponEmitted:
			m[e.CouponID] += e.Quantity
		case CouponApplied:
			m[e.CouponID]--
		}
		return m
	}, "CouponEmitted", "CouponApplied")

	return state.NewMulti[Event](carts, coupons)
}

func cartOf(e Event) string {
	switch e := e.(type) {
	case ItemAdded:
		return e.CartID
	case ItemRemoved:
		return e.CartID
	case CouponApplied:
		return e.CartID
	}
	return ""
}

func couponOf(e Event) string {
	switch e := e.(type) {
	case CouponApplied:
		return e.CouponID
	case CouponEmitted:
		return e.CouponID
	}
	return ""
}
