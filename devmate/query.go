package devmate

import (
	"net/url"
	"strconv"
)

// CustomerListOptions narrows a customer listing. Zero values are not sent
type CustomerListOptions struct {
	Email        string
	FirstName    string
	LastName     string
	Company      string
	Phone        string
	Address      string
	Identifier   string
	Invoice      string
	Key          string
	ActivationID int64
	OrderID      int64
	Limit        int
	Offset       int
	WithLicenses bool
}

// Values encodes the options as query parameters. Filters use the
// filter[<name>] key, pagination uses bare limit and offset
func (o CustomerListOptions) Values() url.Values {
	params := url.Values{}

	setFilter := func(name, value string) {
		if value != "" {
			params.Set("filter["+name+"]", value)
		}
	}

	setFilter("email", o.Email)
	setFilter("first_name", o.FirstName)
	setFilter("last_name", o.LastName)
	setFilter("company", o.Company)
	setFilter("phone", o.Phone)
	setFilter("address", o.Address)
	setFilter("identifier", o.Identifier)
	setFilter("invoice", o.Invoice)
	setFilter("key", o.Key)
	if o.ActivationID != 0 {
		setFilter("activation_id", strconv.FormatInt(o.ActivationID, 10))
	}
	if o.OrderID != 0 {
		setFilter("order_id", strconv.FormatInt(o.OrderID, 10))
	}

	if o.Limit > 0 {
		params.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		params.Set("offset", strconv.Itoa(o.Offset))
	}
	if o.WithLicenses {
		params.Set("with", "licenses")
	}

	return params
}
