package devmate

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CreateLicenseForCustomer issues a license to an existing customer. The
// license type is required
func (c *Client) CreateLicenseForCustomer(ctx context.Context, customerID int64, license *License) (*License, error) {
	if err := requirePositiveID("customer id", customerID); err != nil {
		return nil, err
	}
	if license == nil {
		return nil, fmt.Errorf("%w: license is nil", ErrIllegalArgument)
	}
	if err := requireFields(license, "LicenseTypeID"); err != nil {
		return nil, err
	}

	payload, err := c.do(ctx, http.MethodPost, customerPath(customerID)+"/licenses", license, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create license for customer %d: %w", customerID, err)
	}

	var created License
	if err := payload.Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to parse created license: %w", err)
	}

	c.logger.Info().
		Int64("customer_id", customerID).
		Int64("license_id", created.ID).
		Msg("Created license")
	return &created, nil
}

// ResetFirstActivation clears the first activation marker of the license
// identified by its activation key
func (c *Client) ResetFirstActivation(ctx context.Context, activationKey string) error {
	if activationKey == "" {
		return fmt.Errorf("%w: activation key is required", ErrIllegalArgument)
	}

	path := "/v2/licenses/" + url.PathEscape(activationKey) + "/reset_first_activation"
	if _, err := c.do(ctx, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("failed to reset first activation: %w", err)
	}

	c.logger.Info().Str("activation_key", activationKey).Msg("Reset first activation")
	return nil
}
