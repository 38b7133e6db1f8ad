package identity

// Permission names a capability a request must hold. Handlers ask the
// capability check instead of comparing role strings.
type Permission string

const (
	PermManageOwnOffers    Permission = "offers.manage_own"
	PermManageOwnHarvests  Permission = "harvests.manage_own"
	PermSuggestCategory    Permission = "categories.suggest"
	PermApproveCategory    Permission = "categories.approve"
	PermManageCatalog      Permission = "catalog.manage"
	PermModerateReviews    Permission = "reviews.moderate"
	PermManageUsers        Permission = "users.manage"
	PermManageAnyOrder     Permission = "orders.manage_any"
	PermPlaceOrders        Permission = "orders.place"
	PermWriteReviews       Permission = "reviews.write"
)

// Can decides whether a principal with the given role and farmer flag holds
// the permission. Administrators hold every permission.
func Can(role Role, isFarmer bool, perm Permission) bool {
	if role == RoleAdministrator {
		return true
	}

	switch perm {
	case PermPlaceOrders, PermWriteReviews, PermSuggestCategory:
		return role == RoleRegisteredUser || role == RoleModerator
	case PermManageOwnOffers, PermManageOwnHarvests:
		return isFarmer
	case PermApproveCategory, PermManageCatalog, PermModerateReviews:
		return role == RoleModerator
	case PermManageUsers, PermManageAnyOrder:
		return false
	}
	return false
}
