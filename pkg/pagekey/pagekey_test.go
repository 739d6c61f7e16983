package pagekey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		key  Key
	}{
		{name: "single_attribute", key: Key{"orderId": "order4"}},
		{name: "multiple_attributes", key: Key{"orderId": "order4", "shard": float64(3)}},
		{name: "special_characters", key: Key{"orderId": "a b+c/d&e=f"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := Encode(tt.key)
			require.NoError(t, err)
			require.NotEmpty(t, encoded)

			decoded, err := Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.key, decoded)
		})
	}
}

func TestEncodeNilKey(t *testing.T) {
	encoded, err := Encode(nil)
	require.NoError(t, err)
	assert.Empty(t, encoded)
}

func TestDecodeAbsent(t *testing.T) {
	key, err := Decode("")
	require.NoError(t, err)
	assert.Nil(t, key)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "bad_percent_escape", raw: "%zz"},
		{name: "not_json", raw: "order4"},
		{name: "json_scalar", raw: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			assert.Error(t, err)
		})
	}
}
