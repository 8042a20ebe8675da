package b64

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankit-chaubey/formula-metrics/core"
)

func TestDecode_Padding(t *testing.T) {
	cases := map[string]string{
		"Zm9v":     "foo",
		"Zm9vYg==": "foob",
		"Zm9vYg":   "foob",
		"Zm9vYmE=": "fooba",
		"Zm9vYmE":  "fooba",
		"":         "",
	}
	for in, want := range cases {
		got, err := Decode(in, 0)
		require.NoError(t, err, in)
		assert.Equal(t, want, string(got), in)
	}
}

func TestDecode_Capped(t *testing.T) {
	raw := bytes.Repeat([]byte{0xAB, 0xCD, 0xEF, 0x01}, 1000)
	enc := base64.StdEncoding.EncodeToString(raw)

	for _, max := range []int{1, 2, 3, 4, 87, PNGPrefixLen, 89} {
		got, err := Decode(enc, max)
		require.NoError(t, err)
		assert.Len(t, got, max)
		assert.Equal(t, raw[:max], got)
	}
}

func TestDecode_CapLargerThanInput(t *testing.T) {
	got, err := Decode("Zm9vYg==", PNGPrefixLen)
	require.NoError(t, err)
	assert.Equal(t, "foob", string(got))
}

func TestDecode_CapIgnoresGarbageBeyondPrefix(t *testing.T) {
	enc := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 90)) + "!!not base64!!"
	got, err := Decode(enc, PNGPrefixLen)
	require.NoError(t, err)
	assert.Len(t, got, PNGPrefixLen)
}

func TestDecode_Invalid(t *testing.T) {
	for _, in := range []string{"Zm9v!", "Z", "Zm=9v", strings.Repeat("*", 8)} {
		_, err := Decode(in, 0)
		assert.ErrorIs(t, err, core.ErrInvalidEncoding, in)
	}
}
