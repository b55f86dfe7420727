package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/devmate/devmate"
)

var (
	licenseCustomerID int64
	licenseInactive   bool
	licenseIn         devmate.License
)

// licensesCmd groups the license commands
var licensesCmd = &cobra.Command{
	Use:     "licenses",
	Aliases: []string{"license"},
	Short:   "Issue licenses and manage activations",
}

var licensesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Issue a license to a customer",
	RunE:  runLicensesCreate,
}

var licensesResetCmd = &cobra.Command{
	Use:   "reset-activation KEY",
	Short: "Reset the first activation of a license",
	Long: `Reset the first activation of the license identified by its activation
key, so the next activation is treated as the first one again.`,
	Args: cobra.ExactArgs(1),
	RunE: runLicensesReset,
}

func init() {
	licensesCmd.AddCommand(licensesCreateCmd, licensesResetCmd)

	f := licensesCreateCmd.Flags()
	f.Int64Var(&licenseCustomerID, "customer-id", 0, "customer to issue the license to")
	f.Int64Var(&licenseIn.LicenseTypeID, "license-type-id", 0, "license type to issue")
	f.StringVar(&licenseIn.Campaign, "campaign", "", "campaign name")
	f.StringVar(&licenseIn.Invoice, "invoice", "", "invoice reference")
	f.IntVar(&licenseIn.ActivationsTotal, "activations", 0, "number of allowed activations (default from license type)")
	f.BoolVar(&licenseIn.IsSubscription, "subscription", false, "issue a subscription license")
	f.BoolVar(&licenseInactive, "inactive", false, "issue the license as inactive")
	_ = licensesCreateCmd.MarkFlagRequired("customer-id")
	_ = licensesCreateCmd.MarkFlagRequired("license-type-id")
}

func runLicensesCreate(cmd *cobra.Command, args []string) error {
	license := licenseIn
	license.Status = devmate.LicenseStatusActive
	if licenseInactive {
		license.Status = devmate.LicenseStatusInactive
	}

	created, err := client.CreateLicenseForCustomer(cmd.Context(), licenseCustomerID, &license)
	if err != nil {
		return err
	}

	return printLicense(cmd.OutOrStdout(), created)
}

func runLicensesReset(cmd *cobra.Command, args []string) error {
	if err := client.ResetFirstActivation(cmd.Context(), args[0]); err != nil {
		return err
	}

	if cfg.Output.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), map[string]any{"activation_key": args[0], "reset": true})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ First activation reset for %s\n", args[0])
	return nil
}
