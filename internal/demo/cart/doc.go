// Package cart is a small shopping-cart domain: items go in and out of
// carts, and coupons are emitted in limited quantity and applied to carts.
//
// It exercises composite state: ApplyCoupon joins the cart's sub-state with
// the coupon's remaining quantity.
package cart
