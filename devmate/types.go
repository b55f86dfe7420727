package devmate

// LicenseStatus represents the state of a license
type LicenseStatus int

const (
	// LicenseStatusInactive indicates a license that cannot be activated
	LicenseStatusInactive LicenseStatus = iota
	// LicenseStatusActive indicates a usable license
	LicenseStatusActive
)

// String returns the string representation of a LicenseStatus
func (ls LicenseStatus) String() string {
	switch ls {
	case LicenseStatusInactive:
		return "INACTIVE"
	case LicenseStatusActive:
		return "ACTIVE"
	default:
		return "UNKNOWN"
	}
}

// HistoryRecordType represents the kind of event in a license history
type HistoryRecordType int

const (
	// HistoryRecordUnknown represents an unknown history event
	HistoryRecordUnknown HistoryRecordType = iota
	// HistoryRecordActivation is a product activation
	HistoryRecordActivation
	// HistoryRecordDeactivation is a product deactivation
	HistoryRecordDeactivation
	// HistoryRecordNote is a note added by a user
	HistoryRecordNote
	// HistoryRecordResetFirstActivation is a reset of the first activation date
	HistoryRecordResetFirstActivation
)

// String returns the string representation of a HistoryRecordType
func (t HistoryRecordType) String() string {
	switch t {
	case HistoryRecordActivation:
		return "ACTIVATION"
	case HistoryRecordDeactivation:
		return "DEACTIVATION"
	case HistoryRecordNote:
		return "NOTE"
	case HistoryRecordResetFirstActivation:
		return "RESET_FIRST_ACTIVATION"
	default:
		return "UNKNOWN"
	}
}

// Customer represents a DevMate customer. Writable fields are always
// encoded so an update can clear them; server-assigned fields are omitted
// when unset
type Customer struct {
	ID        int64     `json:"id,omitempty" validate:"required,gt=0"`
	Email     string    `json:"email" validate:"required"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Company   string    `json:"company"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Note      string    `json:"note"`
	DateAdded int64     `json:"dateAdded,omitempty"`
	Licenses  []License `json:"licenses,omitempty"`
}

// FullName joins first and last name
func (c *Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// License represents a license issued to a customer. A zero
// ActivationsTotal or ExpirationDate is omitted so the license type
// defaults apply
type License struct {
	ID               int64           `json:"id,omitempty"`
	Campaign         string          `json:"campaign"`
	Status           LicenseStatus   `json:"status"`
	LicenseTypeID    int64           `json:"license_type_id" validate:"required,gt=0"`
	LicenseTypeName  string          `json:"license_type_name,omitempty"`
	Invoice          string          `json:"invoice"`
	ActivationsTotal int             `json:"activations_total,omitempty"`
	ActivationsUsed  int             `json:"activations_used,omitempty"`
	ActivationKey    string          `json:"activation_key,omitempty"`
	IsSubscription   bool            `json:"is_subscription"`
	DateCreated      int64           `json:"date_created,omitempty"`
	ExpirationDate   int64           `json:"expiration_date,omitempty"`
	Products         []Product       `json:"products,omitempty"`
	History          []HistoryRecord `json:"history,omitempty"`
}

// IsActive checks if the license is active
func (l *License) IsActive() bool {
	return l.Status == LicenseStatusActive
}

// ActivationsLeft returns how many activations remain, never below zero
func (l *License) ActivationsLeft() int {
	if left := l.ActivationsTotal - l.ActivationsUsed; left > 0 {
		return left
	}
	return 0
}

// Product represents a product a license unlocks
type Product struct {
	ID                int64  `json:"id,omitempty"`
	Name              string `json:"name,omitempty"`
	BundleID          string `json:"bundle_id,omitempty"`
	UseOfflineLicense bool   `json:"use_offline_license,omitempty"`
}

// HistoryRecord is one event in a license history
type HistoryRecord struct {
	ID              int64             `json:"id,omitempty"`
	Type            HistoryRecordType `json:"type,omitempty"`
	UserName        string            `json:"user_name,omitempty"`
	Note            string            `json:"note"`
	Timestamp       int64             `json:"timestamp,omitempty"`
	LicenseID       int64             `json:"license_id,omitempty"`
	ActivationID    int64             `json:"activation_id,omitempty"`
	ActivationName  string            `json:"activation_name,omitempty"`
	ActivationEmail string            `json:"activation_email,omitempty"`
	OfflineLicense  string            `json:"offline_license,omitempty"`
	ProductName     string            `json:"product_name,omitempty"`
	Identifiers     string            `json:"identifiers,omitempty"`
	Deactivated     int               `json:"deactivated,omitempty"`
}

// Meta is the envelope metadata of a list response, such as totals
type Meta map[string]any
