package cart

import "errors"

// User-facing failure messages surfaced through the store's error field. New
// failures overwrite rather than queue prior ones.
var (
	LoginRequiredErr   = errors.New("Please login to add items to cart")
	FetchFailedErr     = errors.New("Failed to fetch cart")
	AddFailedErr       = errors.New("Failed to add item to cart")
	UpdateFailedErr    = errors.New("Failed to update item")
	RemoveFailedErr    = errors.New("Failed to remove item")
	ClearFailedErr     = errors.New("Failed to clear cart")
	InvalidQuantityErr = errors.New("Quantity must be at least 1")
)
