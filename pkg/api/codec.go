// Package api defines the request and response messages of the SplitMonth
// RPC services.
//
// Messages are plain Go structs carried over Connect with Codec, a JSON codec
// registered under the "json" name. Money is encoded as decimal strings
// (e.g. "33.33") so that no precision is lost on the way to the browser.
package api

import (
	"encoding/json"
)

// Codec marshals messages as JSON. It replaces Connect's default protobuf
// JSON codec, which only handles generated protobuf types.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (Codec) Unmarshal(data []byte, message any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, message)
}
