package ident

import (
	"errors"
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	samples := []string{"0", "1", "42", "1000000", "9223372036854775807"}
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		samples = append(samples, strconv.FormatInt(r.Int63(), 10))
	}

	for _, s := range samples {
		id, err := Encode(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, Decode(id))
	}
}

func TestEncodeRejects(t *testing.T) {
	cases := map[string]string{
		"":                     "empty",
		"abc":                  "not a number",
		"12a":                  "not a number",
		" 42":                  "not a number",
		"4.2":                  "not a number",
		"+7":                   "not a number",
		"007":                  "not canonical",
		"00":                   "not canonical",
		"-0":                   "not canonical",
		"-012":                 "not canonical",
		"9223372036854775808":  "out of range",
		"-9223372036854775809": "out of range",
		"99999999999999999999": "out of range",
	}
	for text, reason := range cases {
		_, err := Encode(text)
		require.Error(t, err, text)
		assert.True(t, errors.Is(err, ErrInvalidIdentifier), text)

		var ie *Error
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, reason, ie.Reason, text)
		assert.Equal(t, text, ie.Text)
	}
}

func TestDecodeExtremes(t *testing.T) {
	assert.Equal(t, "9223372036854775807", Decode(math.MaxInt64))
	assert.Equal(t, "-9223372036854775808", Decode(math.MinInt64))
}
