package enums

import "fmt"

// ProductStatus represents the supply-chain lifecycle states of a product record.
type ProductStatus string

const (
	ProductStatusCreated   ProductStatus = "Created"
	ProductStatusInTransit ProductStatus = "InTransit"
	ProductStatusDelivered ProductStatus = "Delivered"
	ProductStatusInspected ProductStatus = "Inspected"
	ProductStatusRejected  ProductStatus = "Rejected"
	ProductStatusRecalled  ProductStatus = "Recalled"
)

var validProductStatuses = []ProductStatus{
	ProductStatusCreated,
	ProductStatusInTransit,
	ProductStatusDelivered,
	ProductStatusInspected,
	ProductStatusRejected,
	ProductStatusRecalled,
}

// String implements fmt.Stringer.
func (s ProductStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductStatus.
func (s ProductStatus) IsValid() bool {
	for _, candidate := range validProductStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductStatus converts raw input into a ProductStatus.
func ParseProductStatus(value string) (ProductStatus, error) {
	for _, candidate := range validProductStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product status %q", value)
}
