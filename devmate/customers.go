package devmate

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

const customersPath = "/v2/customers"

func customerPath(id int64) string {
	return customersPath + "/" + strconv.FormatInt(id, 10)
}

// GetCustomerByID retrieves a single customer
func (c *Client) GetCustomerByID(ctx context.Context, id int64) (*Customer, error) {
	if err := requirePositiveID("customer id", id); err != nil {
		return nil, err
	}

	payload, err := c.do(ctx, http.MethodGet, customerPath(id), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer %d: %w", id, err)
	}

	var customer Customer
	if err := payload.Decode(&customer); err != nil {
		return nil, fmt.Errorf("failed to parse customer %d: %w", id, err)
	}
	return &customer, nil
}

// ListCustomers retrieves customers matching opts
func (c *Client) ListCustomers(ctx context.Context, opts CustomerListOptions) ([]Customer, error) {
	customers, _, err := c.listCustomers(ctx, opts)
	return customers, err
}

// ListCustomersWithMeta retrieves customers matching opts together with the
// envelope metadata. Meta is empty when the API sent none
func (c *Client) ListCustomersWithMeta(ctx context.Context, opts CustomerListOptions) ([]Customer, Meta, error) {
	return c.listCustomers(ctx, opts)
}

func (c *Client) listCustomers(ctx context.Context, opts CustomerListOptions) ([]Customer, Meta, error) {
	payload, err := c.do(ctx, http.MethodGet, customersPath, nil, opts.Values())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list customers: %w", err)
	}

	var customers []Customer
	if err := payload.Decode(&customers); err != nil {
		return nil, nil, fmt.Errorf("failed to parse customers: %w", err)
	}

	meta := Meta{}
	if err := payload.DecodeMeta(&meta); err != nil {
		return nil, nil, fmt.Errorf("failed to parse customers: %w", err)
	}

	c.logger.Debug().
		Int("count", len(customers)).
		Msg("Retrieved customers from DevMate")

	return customers, meta, nil
}

// CreateCustomer creates a customer. The email field is required
func (c *Client) CreateCustomer(ctx context.Context, customer *Customer) (*Customer, error) {
	if customer == nil {
		return nil, fmt.Errorf("%w: customer is nil", ErrIllegalArgument)
	}
	if err := requireFields(customer, "Email"); err != nil {
		return nil, err
	}

	payload, err := c.do(ctx, http.MethodPost, customersPath, customer, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	var created Customer
	if err := payload.Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to parse created customer: %w", err)
	}

	c.logger.Info().
		Int64("customer_id", created.ID).
		Str("email", created.Email).
		Msg("Created customer")
	return &created, nil
}

// UpdateCustomer replaces the customer identified by customer.ID
func (c *Client) UpdateCustomer(ctx context.Context, customer *Customer) (*Customer, error) {
	if customer == nil {
		return nil, fmt.Errorf("%w: customer is nil", ErrIllegalArgument)
	}
	if err := requireFields(customer, "ID"); err != nil {
		return nil, err
	}

	payload, err := c.do(ctx, http.MethodPut, customerPath(customer.ID), customer, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to update customer %d: %w", customer.ID, err)
	}

	var updated Customer
	if err := payload.Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to parse updated customer %d: %w", customer.ID, err)
	}

	c.logger.Info().Int64("customer_id", updated.ID).Msg("Updated customer")
	return &updated, nil
}
