// Package scenario runs decision tests declared in YAML.
//
// A scenario names a domain, a history, one decision with its arguments and
// the expected outcome:
//
//	name: add_second_item
//	description: "Adding a new item to a cart emits ItemAdded"
//	domain: cart
//	given:
//	  - type: ItemAdded
//	    data: { item_id: p1, cart_id: c1 }
//	when:
//	  decision: AddItem
//	  args: { item_id: p2, cart_id: c1 }
//	then:
//	  events:
//	    - type: ItemAdded
//	      data: { item_id: p2, cart_id: c1 }
//
// then holds either events (possibly none) or error, the message the
// decision is expected to fail with.
//
// Files are decoded strictly (unknown keys are errors) and then checked
// against the CUE schema in schema.cue. Run executes a scenario with the
// same fold-then-process protocol as package harness, using a domain's
// event codec and decision registry.
package scenario
