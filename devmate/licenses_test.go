package devmate

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLicenseForCustomer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/customers/1/licenses", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"data":{
			"campaign":"",
			"status":0,
			"license_type_id":1,
			"invoice":"",
			"is_subscription":false
		}}`, string(body))

		writeJSON(t, w, http.StatusCreated, map[string]any{"data": defaultLicense()})
	})

	license, err := client.CreateLicenseForCustomer(context.Background(), 1, &License{
		LicenseTypeID: 1,
		Status:        LicenseStatusInactive,
	})
	require.NoError(t, err)
	assert.Equal(t, defaultLicense(), *license)
}

func TestCreateLicenseForCustomer_InvalidArguments(t *testing.T) {
	client, calls := newOfflineClient(t)

	tests := []struct {
		name       string
		customerID int64
		license    *License
	}{
		{name: "negative customer id", customerID: -1, license: &License{}},
		{name: "zero customer id", customerID: 0, license: &License{}},
		{name: "without license type id", customerID: 1, license: &License{}},
		{name: "nil license", customerID: 1, license: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CreateLicenseForCustomer(context.Background(), tt.customerID, tt.license)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrIllegalArgument)
		})
	}
	assert.Zero(t, *calls)
}

func TestResetFirstActivation(t *testing.T) {
	const key = "id123456789098odr"

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/licenses/"+key+"/reset_first_activation", r.URL.Path)
		assert.Equal(t, "Token "+testToken, r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Empty(t, body)

		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.ResetFirstActivation(context.Background(), key))
}

func TestResetFirstActivation_EscapesKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/licenses/a%2Fb/reset_first_activation", r.URL.EscapedPath())
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.ResetFirstActivation(context.Background(), "a/b"))
}

func TestResetFirstActivation_Errors(t *testing.T) {
	t.Run("empty key", func(t *testing.T) {
		client, calls := newOfflineClient(t)

		err := client.ResetFirstActivation(context.Background(), "")
		assert.ErrorIs(t, err, ErrIllegalArgument)
		assert.Zero(t, *calls)
	})

	t.Run("unknown key", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		err := client.ResetFirstActivation(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("server failure", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		err := client.ResetFirstActivation(context.Background(), "key")
		assert.ErrorIs(t, err, ErrServer)
	})
}

func TestLicense(t *testing.T) {
	t.Run("IsActive", func(t *testing.T) {
		assert.True(t, (&License{Status: LicenseStatusActive}).IsActive())
		assert.False(t, (&License{Status: LicenseStatusInactive}).IsActive())
	})

	t.Run("ActivationsLeft", func(t *testing.T) {
		assert.Equal(t, 50, (&License{ActivationsTotal: 100, ActivationsUsed: 50}).ActivationsLeft())
		assert.Equal(t, 0, (&License{ActivationsTotal: 1, ActivationsUsed: 3}).ActivationsLeft())
	})
}

func TestLicenseStatus(t *testing.T) {
	assert.Equal(t, "ACTIVE", LicenseStatusActive.String())
	assert.Equal(t, "INACTIVE", LicenseStatusInactive.String())
	assert.Equal(t, "UNKNOWN", LicenseStatus(99).String())
}

func TestHistoryRecordType(t *testing.T) {
	tests := []struct {
		recordType HistoryRecordType
		expected   string
	}{
		{HistoryRecordActivation, "ACTIVATION"},
		{HistoryRecordDeactivation, "DEACTIVATION"},
		{HistoryRecordNote, "NOTE"},
		{HistoryRecordResetFirstActivation, "RESET_FIRST_ACTIVATION"},
		{HistoryRecordUnknown, "UNKNOWN"},
		{HistoryRecordType(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.recordType.String())
		})
	}
}
