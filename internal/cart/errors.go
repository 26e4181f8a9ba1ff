package cart

import "errors"

var (
	// ErrStoreUnavailable means the cart store could not be reached. Callers
	// must treat it as "cart unknown", never as an empty cart.
	ErrStoreUnavailable = errors.New("cart store unavailable")

	// ErrItemNotFound means the targeted cart row no longer exists.
	ErrItemNotFound = errors.New("cart item not found")
)
