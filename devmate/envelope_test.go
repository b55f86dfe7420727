package devmate

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonHeader() http.Header {
	return http.Header{"Content-Type": {contentTypeJSON}}
}

func TestExtractPayload(t *testing.T) {
	tests := []struct {
		name     string
		header   http.Header
		body     string
		wantKind PayloadKind
		wantData string
		wantMeta string
	}{
		{
			name:     "empty body",
			header:   http.Header{},
			body:     "",
			wantKind: PayloadRaw,
		},
		{
			name:     "not json",
			header:   jsonHeader(),
			body:     "OK",
			wantKind: PayloadRaw,
		},
		{
			name:     "data without meta",
			header:   jsonHeader(),
			body:     `{"data":{"dead":"beef"}}`,
			wantKind: PayloadEnveloped,
			wantData: `{"dead":"beef"}`,
		},
		{
			name:     "data with meta",
			header:   jsonHeader(),
			body:     `{"data":{"dead":"beef"},"meta":{"beef":"dead"}}`,
			wantKind: PayloadEnveloped,
			wantData: `{"dead":"beef"}`,
			wantMeta: `{"beef":"dead"}`,
		},
		{
			name:     "json content type with charset",
			header:   http.Header{"Content-Type": {"application/json; charset=utf-8"}},
			body:     `{"data":[1,2]}`,
			wantKind: PayloadEnveloped,
			wantData: `[1,2]`,
		},
		{
			name:     "no data field",
			header:   jsonHeader(),
			body:     `{"dead":"beef"}`,
			wantKind: PayloadBare,
			wantData: `{"dead":"beef"}`,
		},
		{
			name:     "json array",
			header:   jsonHeader(),
			body:     `[{"data":1}]`,
			wantKind: PayloadBare,
			wantData: `[{"data":1}]`,
		},
		{
			name:     "envelope under another content type",
			header:   http.Header{"Content-Type": {"text/plain"}},
			body:     `{"data":{"dead":"beef"}}`,
			wantKind: PayloadBare,
			wantData: `{"data":{"dead":"beef"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := extractPayload(tt.header, []byte(tt.body))

			require.Equal(t, tt.wantKind, payload.Kind)
			assert.Equal(t, tt.body, string(payload.Raw))
			if tt.wantData != "" {
				assert.JSONEq(t, tt.wantData, string(payload.Data))
			}
			if tt.wantMeta != "" {
				require.True(t, payload.HasMeta())
				assert.JSONEq(t, tt.wantMeta, string(payload.Meta))
			} else {
				assert.False(t, payload.HasMeta())
			}
		})
	}
}

func TestPayload_Decode(t *testing.T) {
	t.Run("raw payload", func(t *testing.T) {
		payload := extractPayload(http.Header{}, nil)

		var v map[string]any
		err := payload.Decode(&v)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("type mismatch", func(t *testing.T) {
		payload := extractPayload(jsonHeader(), []byte(`{"data":"text"}`))

		var v []Customer
		err := payload.Decode(&v)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("meta absent", func(t *testing.T) {
		payload := extractPayload(jsonHeader(), []byte(`{"data":[]}`))

		meta := Meta{}
		require.NoError(t, payload.DecodeMeta(&meta))
		assert.Empty(t, meta)
	})
}

func TestPayloadKind(t *testing.T) {
	assert.Equal(t, "raw", PayloadRaw.String())
	assert.Equal(t, "enveloped", PayloadEnveloped.String())
	assert.Equal(t, "bare", PayloadBare.String())
	assert.Equal(t, "unknown", PayloadKind(99).String())
}
