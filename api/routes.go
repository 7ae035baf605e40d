package api

// Endpoint path constants
// Every server endpoint the client consumes is defined here to ensure
// consistency and prevent typos. Paths with %d are filled via fmt.Sprintf.
const (
	// Account endpoints
	RouteLogin    = "/api/accounts/login/"
	RouteRegister = "/api/accounts/register/"
	RouteProfile  = "/api/accounts/profile/"
	RouteMe       = "/api/accounts/me/"

	// Admin user-management endpoints
	RouteUsers            = "/api/accounts/users/"
	RouteUserByID         = "/api/accounts/users/%d/"
	RouteUserToggleStatus = "/api/accounts/users/%d/toggle-status/"

	// Product endpoints
	RouteProducts          = "/api/products/"
	RouteProductByID       = "/api/products/%d/"
	RouteProductCategories = "/api/products/categories/"

	// Cart endpoints
	RouteCart       = "/api/cart/"
	RouteCartAdd    = "/api/cart/add/"
	RouteCartUpdate = "/api/cart/update/%d/"
	RouteCartRemove = "/api/cart/remove/%d/"
	RouteCartClear  = "/api/cart/clear/"

	// Payment endpoints
	RouteCheckoutSession     = "/api/payments/create-checkout-session/"
	RouteCartCheckoutSession = "/api/payments/create-cart-checkout-session/"
	RoutePaymentHistory      = "/api/payments/history/"
)
