package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/devmate/devmate"
)

// maxConcurrentFetches bounds parallel lookups in `customers get`
const maxConcurrentFetches = 5

var (
	listOpts   devmate.CustomerListOptions
	whereExpr  string
	preset     string
	showMeta   bool
	customerIn devmate.Customer
)

// customersCmd groups the customer commands
var customersCmd = &cobra.Command{
	Use:     "customers",
	Aliases: []string{"customer"},
	Short:   "Look up, create and update customers",
}

var customersGetCmd = &cobra.Command{
	Use:   "get ID [ID...]",
	Short: "Show customers by id",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCustomersGet,
}

var customersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers matching the filter criteria",
	Long: `List customers using the API filters, optionally narrowed further with
a client-side expression (--where) or a preset from the config file.`,
	RunE: runCustomersList,
}

var customersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a customer",
	RunE:  runCustomersCreate,
}

var customersUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update fields of an existing customer",
	Args:  cobra.ExactArgs(1),
	RunE:  runCustomersUpdate,
}

func init() {
	customersCmd.AddCommand(customersGetCmd, customersListCmd, customersCreateCmd, customersUpdateCmd)

	f := customersListCmd.Flags()
	f.StringVar(&listOpts.Email, "email", "", "filter by email")
	f.StringVar(&listOpts.FirstName, "first-name", "", "filter by first name")
	f.StringVar(&listOpts.LastName, "last-name", "", "filter by last name")
	f.StringVar(&listOpts.Company, "company", "", "filter by company")
	f.StringVar(&listOpts.Phone, "phone", "", "filter by phone")
	f.StringVar(&listOpts.Address, "address", "", "filter by address")
	f.StringVar(&listOpts.Identifier, "identifier", "", "filter by activation identifier (e.g. MAC address)")
	f.StringVar(&listOpts.Invoice, "invoice", "", "filter by invoice")
	f.StringVar(&listOpts.Key, "key", "", "filter by activation key")
	f.Int64Var(&listOpts.ActivationID, "activation-id", 0, "filter by activation id")
	f.Int64Var(&listOpts.OrderID, "order-id", 0, "filter by order id")
	f.IntVar(&listOpts.Limit, "limit", 0, "maximum number of customers to return")
	f.IntVar(&listOpts.Offset, "offset", 0, "number of customers to skip")
	f.BoolVar(&listOpts.WithLicenses, "with-licenses", false, "include licenses in the result")
	f.StringVarP(&whereExpr, "where", "w", "", "client-side filter expression")
	f.StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	f.BoolVar(&showMeta, "meta", false, "print listing metadata")

	addCustomerFlags(customersCreateCmd)
	addCustomerFlags(customersUpdateCmd)
}

func addCustomerFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&customerIn.Email, "email", "", "email address")
	f.StringVar(&customerIn.FirstName, "first-name", "", "first name")
	f.StringVar(&customerIn.LastName, "last-name", "", "last name")
	f.StringVar(&customerIn.Company, "company", "", "company")
	f.StringVar(&customerIn.Phone, "phone", "", "phone number")
	f.StringVar(&customerIn.Address, "address", "", "postal address")
	f.StringVar(&customerIn.Note, "note", "", "free-form note")
}

func runCustomersGet(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	// Fetch concurrently, keep argument order
	customers := make([]devmate.Customer, len(ids))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxConcurrentFetches)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			customer, err := client.GetCustomerByID(ctx, id)
			if err != nil {
				return err
			}
			customers[i] = *customer
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return printCustomers(cmd.OutOrStdout(), customers, nil)
}

func runCustomersList(cmd *cobra.Command, args []string) error {
	expr, err := getFilterExpression()
	if err != nil {
		return err
	}

	customers, meta, err := client.ListCustomersWithMeta(cmd.Context(), listOpts)
	if err != nil {
		return err
	}

	if expr != "" {
		logger.Debug().Str("filter", expr).Int("customers", len(customers)).Msg("Applying client-side filter")

		compiled, err := compiler.Compile(expr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}

		customers, err = evaluator.Evaluate(cmd.Context(), compiled, customers)
		if err != nil {
			return err
		}
	}

	if !showMeta {
		meta = nil
	}
	return printCustomers(cmd.OutOrStdout(), customers, meta)
}

func runCustomersCreate(cmd *cobra.Command, args []string) error {
	customer := customerIn

	created, err := client.CreateCustomer(cmd.Context(), &customer)
	if err != nil {
		return err
	}

	return printCustomers(cmd.OutOrStdout(), []devmate.Customer{*created}, nil)
}

func runCustomersUpdate(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	customer, err := client.GetCustomerByID(ctx, ids[0])
	if err != nil {
		return err
	}

	// Only flags given on the command line overwrite the stored values
	changed := 0
	apply := func(flag string, dst *string, value string) {
		if cmd.Flags().Changed(flag) {
			*dst = value
			changed++
		}
	}
	apply("email", &customer.Email, customerIn.Email)
	apply("first-name", &customer.FirstName, customerIn.FirstName)
	apply("last-name", &customer.LastName, customerIn.LastName)
	apply("company", &customer.Company, customerIn.Company)
	apply("phone", &customer.Phone, customerIn.Phone)
	apply("address", &customer.Address, customerIn.Address)
	apply("note", &customer.Note, customerIn.Note)

	if changed == 0 {
		return fmt.Errorf("nothing to update: pass at least one field flag")
	}

	// Licenses are managed through their own endpoints
	customer.Licenses = nil

	updated, err := client.UpdateCustomer(ctx, customer)
	if err != nil {
		return err
	}

	return printCustomers(cmd.OutOrStdout(), []devmate.Customer{*updated}, nil)
}

// parseIDs converts positional arguments to positive ids
func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q: must be a positive integer", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// getFilterExpression determines the client-side filter to use
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset > default
	if whereExpr != "" {
		return whereExpr, nil
	}

	if preset != "" {
		if presetFilter, ok := cfg.Filter.Presets[preset]; ok {
			return presetFilter.Expression, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	return cfg.Filter.DefaultExpression, nil
}
