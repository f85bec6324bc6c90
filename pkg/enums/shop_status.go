package enums

import "fmt"

// ShopStatus captures the shop approval lifecycle.
type ShopStatus string

const (
	ShopStatusPending   ShopStatus = "pending"
	ShopStatusApproved  ShopStatus = "approved"
	ShopStatusRejected  ShopStatus = "rejected"
	ShopStatusSuspended ShopStatus = "suspended"
)

var validShopStatuses = []ShopStatus{
	ShopStatusPending,
	ShopStatusApproved,
	ShopStatusRejected,
	ShopStatusSuspended,
}

// String implements fmt.Stringer.
func (s ShopStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ShopStatus.
func (s ShopStatus) IsValid() bool {
	for _, candidate := range validShopStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseShopStatus converts raw input into a ShopStatus.
func ParseShopStatus(value string) (ShopStatus, error) {
	for _, candidate := range validShopStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shop status %q", value)
}
