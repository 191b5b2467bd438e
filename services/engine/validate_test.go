package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare ten digits", "9876543210", "+919876543210", false},
		{"dashes and spaces", "98-76 543210", "+919876543210", false},
		{"already has country code", "+449876543210", "+449876543210", false},
		{"too short", "12345", "", true},
		{"eleven digits without plus", "19876543210", "+19876543210", false},
		{"letters rejected", "98765abcde", "", true},
		{"leading plus ten digits kept", "+9876543210", "+9876543210", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizePhone(tc.in, "+91")
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("a@b.com"))
	assert.True(t, ValidEmail("weird@local"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail(""))
}

func TestParseCount(t *testing.T) {
	n, err := ParseCount(" 3 ", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, bad := range []string{"0", "-1", "two", "", "1.5"} {
		_, err := ParseCount(bad, 1)
		assert.Error(t, err, "input %q", bad)
	}

	_, err = ParseCount("1", 2)
	assert.Error(t, err, "below the minimum")
}

func TestParseCommaList(t *testing.T) {
	got, err := ParseCommaList("Goa, Manali , Jaipur", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Goa", "Manali", "Jaipur"}, got)

	_, err = ParseCommaList("Goa, ,", 2)
	assert.Error(t, err, "empty entries don't count")
}

func TestParsePassengerLineLenient(t *testing.T) {
	p, err := ParsePassengerLine("Asha, 30, 9876543210", "+91", false)
	require.NoError(t, err)
	assert.Equal(t, "Asha", p.Name)
	assert.Equal(t, 30, p.Age)
	assert.Equal(t, "+919876543210", p.Phone)
	assert.Equal(t, "adult", p.Role)

	// Lenient mode falls back on malformed age and phone.
	p, err = ParsePassengerLine("Raj, old, 123", "+91", false)
	require.NoError(t, err)
	assert.Equal(t, defaultPassengerAge, p.Age)
	assert.Equal(t, "", p.Phone)

	p, err = ParsePassengerLine("Mini, 9", "+91", false)
	require.NoError(t, err)
	assert.Equal(t, "child", p.Role)

	_, err = ParsePassengerLine("X", "+91", false)
	assert.Error(t, err, "name too short even in lenient mode")
}

func TestParsePassengerLineStrict(t *testing.T) {
	_, err := ParsePassengerLine("Raj, old, 9876543210", "+91", true)
	assert.Error(t, err, "bad age rejected")

	_, err = ParsePassengerLine("Raj", "+91", true)
	assert.Error(t, err, "missing age rejected")

	_, err = ParsePassengerLine("Raj, 32, 123", "+91", true)
	assert.Error(t, err, "bad phone rejected")

	p, err := ParsePassengerLine("Raj, 32, 9123456789", "+91", true)
	require.NoError(t, err)
	assert.Equal(t, "+919123456789", p.Phone)
}
