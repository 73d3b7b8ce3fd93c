package storage

// KeyPrefix namespaces every key this application writes
const KeyPrefix = "procurehub_"

const (
	KeyUsers         = KeyPrefix + "users"
	KeyCurrentUser   = KeyPrefix + "current_user"
	KeyProjects      = KeyPrefix + "projects"
	KeyBids          = KeyPrefix + "bids"
	KeyNotifications = KeyPrefix + "notifications"
	KeyLoans         = KeyPrefix + "loans"
	KeyOrders        = KeyPrefix + "orders"
	KeyPayments      = KeyPrefix + "payments"
	KeyInventory     = KeyPrefix + "inventory"
	KeyTheme         = KeyPrefix + "theme"
	KeySidebarOpen   = KeyPrefix + "sidebar_open"
	KeySeeded        = KeyPrefix + "seeded"
)
