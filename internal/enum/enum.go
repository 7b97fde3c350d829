package enum

// Order lifecycle. The forward flow is linear; CANCELLED is reachable from
// any non-terminal state. PAID and CANCELLED are terminal.
const (
	StatusPending       = "PENDING"
	StatusInPreparation = "IN_PREPARATION"
	StatusReadyToServe  = "READY_TO_SERVE"
	StatusDelivered     = "DELIVERED"
	StatusPaid          = "PAID"
	StatusCancelled     = "CANCELLED"
)

// StatusFlow is the canonical forward order of the lifecycle, used by the
// ordering UI to offer the single next step. CANCELLED is deliberately not
// part of the flow.
var StatusFlow = []string{
	StatusPending,
	StatusInPreparation,
	StatusReadyToServe,
	StatusDelivered,
	StatusPaid,
}

const (
	RoleAdmin    = "ADMIN"
	RoleWaiter   = "WAITER"
	RoleCustomer = "CUSTOMER"
)

// IsValidStatus reports whether s is a member of the six-value status set.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInPreparation, StatusReadyToServe,
		StatusDelivered, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// NextStatus returns the entry that follows s in the forward flow. The
// second return value is false when s is the last entry, CANCELLED, or not
// a known status.
func NextStatus(s string) (string, bool) {
	for i, status := range StatusFlow {
		if status == s && i < len(StatusFlow)-1 {
			return StatusFlow[i+1], true
		}
	}
	return "", false
}

// IsValidRole reports whether r is a member of the role set.
func IsValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleWaiter, RoleCustomer:
		return true
	}
	return false
}
