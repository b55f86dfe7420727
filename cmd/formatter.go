package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/s0up4200/devmate/devmate"
)

// printCustomers writes customers in the configured output format
func printCustomers(w io.Writer, customers []devmate.Customer, meta devmate.Meta) error {
	if cfg.Output.Format == "json" {
		doc := map[string]any{"data": customers}
		if len(meta) > 0 {
			doc["meta"] = meta
		}
		return writeJSON(w, doc)
	}

	_, err := io.WriteString(w, formatCustomerList(customers, meta, cfg.Output.ShowDetails))
	return err
}

// printLicense writes a license in the configured output format
func printLicense(w io.Writer, license *devmate.License) error {
	if cfg.Output.Format == "json" {
		return writeJSON(w, map[string]any{"data": license})
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nLicense %d issued:\n", license.ID)
	writeLicense(&sb, *license, "  ", true)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatCustomerList renders customers as a tree for the console
func formatCustomerList(customers []devmate.Customer, meta devmate.Meta, showDetails bool) string {
	if len(customers) == 0 {
		return "No customers found\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString("\nCustomer")
	if len(customers) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d):\n\n", len(customers))

	for i, customer := range customers {
		isLast := i == len(customers)-1
		prefix := "├"
		indent := "│   "
		if isLast {
			prefix = "╰"
			indent = "    "
		}

		fmt.Fprintf(&sb, "%s── #%d %s", prefix, customer.ID, customer.Email)
		if name := customer.FullName(); name != "" {
			fmt.Fprintf(&sb, " (%s)", name)
		}
		sb.WriteString("\n")

		if showDetails {
			writeCustomerDetails(&sb, customer, indent)
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	if len(meta) > 0 {
		keys := make([]string, 0, len(meta))
		for k := range meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, meta[k]))
		}
		fmt.Fprintf(&sb, "\nMeta: %s\n", strings.Join(parts, " "))
	}

	sb.WriteString("\n")
	return sb.String()
}

func writeCustomerDetails(sb *strings.Builder, customer devmate.Customer, indent string) {
	if customer.Company != "" {
		fmt.Fprintf(sb, "%sCompany: %s\n", indent, customer.Company)
	}

	var contact []string
	if customer.Phone != "" {
		contact = append(contact, "Phone: "+customer.Phone)
	}
	if customer.Address != "" {
		contact = append(contact, "Address: "+customer.Address)
	}
	if len(contact) > 0 {
		fmt.Fprintf(sb, "%s%s\n", indent, strings.Join(contact, " | "))
	}

	if customer.DateAdded > 0 {
		fmt.Fprintf(sb, "%sAdded: %s\n", indent, formatDate(customer.DateAdded))
	}
	if customer.Note != "" {
		fmt.Fprintf(sb, "%sNote: %s\n", indent, customer.Note)
	}

	for _, license := range customer.Licenses {
		writeLicense(sb, license, indent, false)
	}
}

func writeLicense(sb *strings.Builder, license devmate.License, indent string, detailed bool) {
	name := license.LicenseTypeName
	if name == "" {
		name = fmt.Sprintf("type %d", license.LicenseTypeID)
	}

	fmt.Fprintf(sb, "%sLicense: %s [%s]", indent, name, license.Status)
	if license.ActivationKey != "" {
		fmt.Fprintf(sb, " key %s", license.ActivationKey)
	}
	if license.ActivationsTotal > 0 {
		fmt.Fprintf(sb, " (%d/%d activations used)", license.ActivationsUsed, license.ActivationsTotal)
	}
	sb.WriteString("\n")

	if !detailed {
		return
	}

	if license.Campaign != "" {
		fmt.Fprintf(sb, "%sCampaign: %s\n", indent, license.Campaign)
	}
	if license.Invoice != "" {
		fmt.Fprintf(sb, "%sInvoice: %s\n", indent, license.Invoice)
	}
	if license.ExpirationDate > 0 {
		fmt.Fprintf(sb, "%sExpires: %s\n", indent, formatDate(license.ExpirationDate))
	}
	for _, product := range license.Products {
		fmt.Fprintf(sb, "%sProduct: %s (%s)\n", indent, product.Name, product.BundleID)
	}
}

func formatDate(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("2006-01-02")
}
