package domain

import "encoding/json"

// Location is the structured value returned by a location backend.
type Location struct { //nolint:govet // fieldalignment less important than grouping of fields.
	CountryCode string  `json:"countryCode"`
	CountryName string  `json:"countryName"`
	Region      string  `json:"region"`
	City        string  `json:"city"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`

	TimeZone       string `json:"timeZone"`
	PostalCode     string `json:"postalCode"`
	MetroCode      uint   `json:"metroCode"`
	AccuracyRadius uint16 `json:"accuracyRadius"`
}

// Outcome is the result of consulting one configured attribute backend:
// either a value or the failure the backend reported.
type Outcome[T any] struct {
	Value T
	Err   error
}

func Ok[T any](value T) *Outcome[T] {
	return &Outcome[T]{Value: value}
}

func Fail[T any](err error) *Outcome[T] {
	return &Outcome[T]{Err: err}
}

func (o Outcome[T]) MarshalJSON() ([]byte, error) {
	if o.Err != nil {
		return json.Marshal(struct { //nolint:wrapcheck // stdlib error is descriptive enough
			Error string `json:"error"`
		}{Error: o.Err.Error()})
	}

	return json.Marshal(struct { //nolint:wrapcheck // stdlib error is descriptive enough
		Value T `json:"value"`
	}{Value: o.Value})
}

// Result is the aggregate of all attribute outcomes for one raw address.
//
// A nil field means the category was never configured, a non-nil field means
// a configured backend was consulted, successfully or not. Consumers rely on
// this distinction to tell "service absent" apart from "service failed".
type Result struct {
	Location       *Outcome[Location] `json:"location,omitempty"`
	ISP            *Outcome[string]   `json:"isp,omitempty"`
	Organization   *Outcome[string]   `json:"organization,omitempty"`
	Domain         *Outcome[string]   `json:"domain,omitempty"`
	ConnectionType *Outcome[string]   `json:"connectionType,omitempty"`
}
