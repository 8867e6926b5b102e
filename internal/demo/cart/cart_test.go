package cart_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmkumar2005/disintegrate/internal/demo/cart"
	"github.com/gmkumar2005/disintegrate/internal/harness"
	"github.com/gmkumar2005/disintegrate/internal/state"
)

type couponState = state.Pair[cart.Contents, int]

func TestAddItem(t *testing.T) {
	harness.Given[cart.Contents, cart.Event](t,
		cart.ItemAdded{ItemID: "p1", CartID: "c1"},
	).
		When(cart.AddItem{ItemID: "p2", CartID: "c1"}).
		Then(cart.ItemAdded{ItemID: "p2", CartID: "c1"})
}

func TestAddItem_AlreadyInCart(t *testing.T) {
	harness.Given[cart.Contents, cart.Event](t,
		cart.ItemAdded{ItemID: "p1", CartID: "c1"},
	).
		When(cart.AddItem{ItemID: "p1", CartID: "c1"}).
		ThenErr(cart.ErrItemAlreadyInCart)
}

func TestAddItem_OtherCartIgnored(t *testing.T) {
	harness.Given[cart.Contents, cart.Event](t,
		cart.ItemAdded{ItemID: "p1", CartID: "c2"},
	).
		When(cart.AddItem{ItemID: "p1", CartID: "c1"}).
		Then(cart.ItemAdded{ItemID: "p1", CartID: "c1"})
}

func TestAddItem_AfterRemoval(t *testing.T) {
	harness.Given[cart.Contents, cart.Event](t,
		cart.ItemAdded{ItemID: "p1", CartID: "c1"},
		cart.ItemRemoved{ItemID: "p1", CartID: "c1"},
	).
		When(cart.AddItem{ItemID: "p1", CartID: "c1"}).
		Then(cart.ItemAdded{ItemID: "p1", CartID: "c1"})
}

func TestRemoveItem(t *testing.T) {
	harness.Given[cart.Contents, cart.Event](t,
		cart.ItemAdded{ItemID: "p1", CartID: "c1"},
	).
		When(cart.RemoveItem{ItemID: "p1", CartID: "c1"}).
		Then(cart.ItemRemoved{ItemID: "p1", CartID: "c1"})
}

func TestRemoveItem_NotInCart(t *testing.T) {
	harness.Given[cart.Contents, cart.Event](t).
		When(cart.RemoveItem{ItemID: "p1", CartID: "c1"}).
		ThenErr(cart.ErrItemNotInCart)
}

func TestApplyCoupon(t *testing.T) {
	harness.Given[couponState, cart.Event](t,
		cart.CouponEmitted{CouponID: "x", Quantity: 1},
		cart.ItemAdded{ItemID: "p1", CartID: "c1"},
	).
		When(cart.ApplyCoupon{CouponID: "x", CartID: "c1"}).
		Then(cart.CouponApplied{CouponID: "x", CartID: "c1"})
}

func TestApplyCoupon_Exhausted(t *testing.T) {
	harness.Given[couponState, cart.Event](t,
		cart.CouponEmitted{CouponID: "x", Quantity: 1},
		cart.CouponApplied{CouponID: "x", CartID: "c2"},
	).
		When(cart.ApplyCoupon{CouponID: "x", CartID: "c1"}).
		ThenErr(cart.ErrCouponUnavailable)
}

func TestApplyCoupon_AlreadyApplied(t *testing.T) {
	harness.Given[couponState, cart.Event](t,
		cart.CouponEmitted{CouponID: "x", Quantity: 5},
		cart.CouponApplied{CouponID: "x", CartID: "c1"},
	).
		When(cart.ApplyCoupon{CouponID: "x", CartID: "c1"}).
		ThenErr(cart.ErrCouponAlreadyApplied)
}

func TestEmitCoupon(t *testing.T) {
	harness.Given[int, cart.Event](t).
		When(cart.EmitCoupon{CouponID: "x", Quantity: 3}).
		ThenAssert(func(t testing.TB, events []cart.Event) {
			require.Len(t, events, 1)
			assert.Equal(t, "CouponEmitted", events[0].EventType())
		})
}

func TestEmitCoupon_InvalidQuantity(t *testing.T) {
	harness.Given[int, cart.Event](t).
		When(cart.EmitCoupon{CouponID: "x"}).
		ThenErr(cart.ErrInvalidQuantity)
}

func TestCodec(t *testing.T) {
	c := cart.Codec()
	assert.Equal(t, []string{"CouponApplied", "CouponEmitted", "ItemAdded", "ItemRemoved"}, c.Types())

	env, err := c.Encode(cart.ItemAdded{ItemID: "p1", CartID: "c1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"item_id":"p1","cart_id":"c1"}`, string(env.Data))

	back, err := c.Decode(env)
	require.NoError(t, err)
	assert.Equal(t, cart.ItemAdded{ItemID: "p1", CartID: "c1"}, back)
}

func TestRegistry(t *testing.T) {
	r := cart.Registry()
	assert.Equal(t, []string{"AddItem", "ApplyCoupon", "EmitCoupon", "RemoveItem"}, r.Names())

	run, err := r.Build("AddItem", json.RawMessage(`{"item_id":"p2","cart_id":"c1"}`))
	require.NoError(t, err)

	events, err := run.Run([]cart.Event{cart.ItemAdded{ItemID: "p1", CartID: "c1"}})
	require.NoError(t, err)
	assert.Equal(t, []cart.Event{cart.ItemAdded{ItemID: "p2", CartID: "c1"}}, events)
}

func TestSummary(t *testing.T) {
	snap := state.Fold[cart.Event, state.Snapshot](cart.Summary(), []cart.Event{
		cart.CouponEmitted{CouponID: "x", Quantity: 2},
		cart.ItemAdded{ItemID: "p1", CartID: "c1"},
		cart.ItemAdded{ItemID: "p2", CartID: "c1"},
		cart.ItemRemoved{ItemID: "p1", CartID: "c1"},
		cart.CouponApplied{CouponID: "x", CartID: "c1"},
	})

	carts := state.MustValue[map[string]cart.Contents](snap, "carts")
	assert.Equal(t, map[string]cart.Contents{
		"c1": {Items: []string{"p2"}, Coupons: []string{"x"}},
	}, carts)
	assert.Equal(t, map[string]int{"x": 1}, state.MustValue[map[string]int](snap, "coupons"))
}
