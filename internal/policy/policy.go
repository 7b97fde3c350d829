// Package policy maps user roles to the capabilities they may exercise.
// Access checks are plain set membership; there is no role inheritance.
package policy

import "github.com/comanda-pos/api/internal/enum"

// Capability names one guarded operation group.
type Capability string

const (
	CapManageMenu        Capability = "menu:manage"
	CapManageUsers       Capability = "users:manage"
	CapPlaceOrders       Capability = "orders:place"
	CapViewOrders        Capability = "orders:view"
	CapUpdateOrderStatus Capability = "orders:update-status"
	CapViewDashboard     Capability = "dashboard:view"
)

// grants is the full rule table. Admins run the restaurant, waiters work
// the floor, customers may place and follow orders.
var grants = map[string]map[Capability]bool{
	enum.RoleAdmin: {
		CapManageMenu:        true,
		CapManageUsers:       true,
		CapPlaceOrders:       true,
		CapViewOrders:        true,
		CapUpdateOrderStatus: true,
		CapViewDashboard:     true,
	},
	enum.RoleWaiter: {
		CapPlaceOrders:       true,
		CapViewOrders:        true,
		CapUpdateOrderStatus: true,
		CapViewDashboard:     true,
	},
	enum.RoleCustomer: {
		CapPlaceOrders: true,
		CapViewOrders:  true,
	},
}

// Allows reports whether the role holds the capability. Unknown roles hold
// nothing.
func Allows(role string, cap Capability) bool {
	return grants[role][cap]
}
