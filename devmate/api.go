package devmate

import (
	"context"
)

// API defines the interface for DevMate operations
type API interface {
	// GetCustomerByID retrieves a single customer
	GetCustomerByID(ctx context.Context, id int64) (*Customer, error)

	// ListCustomers retrieves customers matching the given filters
	ListCustomers(ctx context.Context, opts CustomerListOptions) ([]Customer, error)

	// ListCustomersWithMeta also returns the listing metadata
	ListCustomersWithMeta(ctx context.Context, opts CustomerListOptions) ([]Customer, Meta, error)

	// CreateCustomer creates a customer
	CreateCustomer(ctx context.Context, customer *Customer) (*Customer, error)

	// UpdateCustomer updates an existing customer
	UpdateCustomer(ctx context.Context, customer *Customer) (*Customer, error)

	// CreateLicenseForCustomer issues a license to a customer
	CreateLicenseForCustomer(ctx context.Context, customerID int64, license *License) (*License, error)

	// ResetFirstActivation resets the first activation of a license
	ResetFirstActivation(ctx context.Context, activationKey string) error

	// Close releases the underlying transport
	Close() error
}

var _ API = (*Client)(nil)
