package models

// Permission constants
const (
	// Wallet permissions
	PermissionWalletRead  = "wallet:read"
	PermissionWalletWrite = "wallet:write"

	// Marketplace permissions
	PermissionMarketplaceRead  = "marketplace:read"
	PermissionMarketplaceWrite = "marketplace:write"

	// Admin permissions
	PermissionReadAdmin         = "admin:read"
	PermissionWriteAdmin        = "admin:write"
	PermissionApproveWithdrawal = "withdrawal:approve"
)

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionWalletRead,
			PermissionWalletWrite,
			PermissionMarketplaceRead,
			PermissionMarketplaceWrite,
			PermissionReadAdmin,
			PermissionWriteAdmin,
			PermissionApproveWithdrawal,
		}
	case RoleUser:
		return []string{
			PermissionWalletRead,
			PermissionWalletWrite,
			PermissionMarketplaceRead,
			PermissionMarketplaceWrite,
		}
	default:
		return []string{}
	}
}
