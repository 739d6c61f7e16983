// Package pagekey encodes and decodes opaque pagination cursors. A cursor is
// a JSON object of attribute name to scalar, percent-encoded so it survives a
// round trip through a URL query parameter.
package pagekey

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// Key is a store continuation key. A nil Key means "start from the first
// page" on input and "no more pages" on output.
type Key map[string]any

// Decode parses a raw query parameter into a Key. An empty raw value yields a
// nil Key. Malformed input is rejected rather than passed to the store.
func Decode(raw string) (Key, error) {
	if raw == "" {
		return nil, nil
	}

	unescaped, err := url.QueryUnescape(raw)
	if err != nil {
		return nil, fmt.Errorf("unescape page key: %w", err)
	}

	var key Key
	if err := json.Unmarshal([]byte(unescaped), &key); err != nil {
		return nil, fmt.Errorf("parse page key: %w", err)
	}
	return key, nil
}

// Encode serializes a Key into a query-parameter-safe string. A nil Key
// yields an empty string, signalling the caller there are no more pages.
func Encode(key Key) (string, error) {
	if key == nil {
		return "", nil
	}

	data, err := json.Marshal(key)
	if err != nil {
		return "", fmt.Errorf("serialize page key: %w", err)
	}
	return url.QueryEscape(string(data)), nil
}
