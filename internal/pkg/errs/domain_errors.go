package errs

// Checkout preconditions
var (
	ErrCartEmpty        = New("cart is empty")
	ErrTotalNotPositive = New("cart total must be positive")
)
