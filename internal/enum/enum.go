package enum

// ── Order lifecycle (forward path + cancel) ──

const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// ── Menu categories (fixed catalog vocabulary) ──

const (
	CategoryAppetizer  = "appetizer"
	CategoryMainCourse = "main-course"
	CategoryDessert    = "dessert"
	CategoryBeverage   = "beverage"
)

// ── Payment methods (collected at checkout, never transmitted) ──

const (
	PaymentMethodCard   = "card"
	PaymentMethodCash   = "cash"
	PaymentMethodUPI    = "upi"
	PaymentMethodWallet = "wallet"
)

// ── Auth roles ──

const (
	RoleAdmin = "ADMIN"
)

// DeliveryPickupDineIn is the delivery designator used when no address is given.
const DeliveryPickupDineIn = "In-store pickup / Dine-in"

// ValidOrderStatus reports whether s is a known order status value.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidCategory reports whether s is a known menu category.
func ValidCategory(s string) bool {
	switch s {
	case CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryBeverage:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether s is a known payment method.
func ValidPaymentMethod(s string) bool {
	switch s {
	case PaymentMethodCard, PaymentMethodCash, PaymentMethodUPI, PaymentMethodWallet:
		return true
	}
	return false
}
