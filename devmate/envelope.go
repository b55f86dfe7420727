package devmate

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
)

const contentTypeJSON = "application/json"

// PayloadKind tells how a response body was interpreted
type PayloadKind int

const (
	// PayloadRaw means the body is not JSON (an empty body included)
	PayloadRaw PayloadKind = iota
	// PayloadEnveloped means the body is a {"data": ..., "meta": ...} envelope
	PayloadEnveloped
	// PayloadBare means the body is JSON without a data envelope
	PayloadBare
)

// String returns the string representation of a PayloadKind
func (k PayloadKind) String() string {
	switch k {
	case PayloadRaw:
		return "raw"
	case PayloadEnveloped:
		return "enveloped"
	case PayloadBare:
		return "bare"
	default:
		return "unknown"
	}
}

// Payload is the interpreted body of a successful response
type Payload struct {
	Kind PayloadKind
	// Raw holds the body as received. It is the only field set for PayloadRaw
	Raw []byte
	// Data is the envelope's data member, or the whole body for PayloadBare
	Data json.RawMessage
	// Meta is the envelope's meta member; nil when the API sent none
	Meta json.RawMessage
}

// HasMeta reports whether the envelope carried a meta member
func (p *Payload) HasMeta() bool {
	return p.Kind == PayloadEnveloped && p.Meta != nil
}

// Decode unmarshals the payload data into v
func (p *Payload) Decode(v any) error {
	if p.Kind == PayloadRaw {
		return fmt.Errorf("%w: body is not JSON", ErrInvalidResponse)
	}
	if err := json.Unmarshal(p.Data, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return nil
}

// DecodeMeta unmarshals the envelope meta into v. It is a no-op when the
// response had no meta member
func (p *Payload) DecodeMeta(v any) error {
	if !p.HasMeta() {
		return nil
	}
	if err := json.Unmarshal(p.Meta, v); err != nil {
		return fmt.Errorf("%w: meta: %w", ErrInvalidResponse, err)
	}
	return nil
}

// extractPayload decides once how the body is read
func extractPayload(header http.Header, body []byte) *Payload {
	if !json.Valid(body) {
		return &Payload{Kind: PayloadRaw, Raw: body}
	}

	if isJSONContentType(header.Get("Content-Type")) {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err == nil {
			if data, ok := envelope["data"]; ok {
				return &Payload{
					Kind: PayloadEnveloped,
					Raw:  body,
					Data: data,
					Meta: envelope["meta"],
				}
			}
		}
	}

	return &Payload{Kind: PayloadBare, Raw: body, Data: body}
}

func isJSONContentType(value string) bool {
	if value == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return false
	}
	return mediaType == contentTypeJSON
}
