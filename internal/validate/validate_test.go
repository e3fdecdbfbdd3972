package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKenyanPhone(t *testing.T) {
	valid := []string{
		"0712345678",
		"712345678",
		"254712345678",
		"+254 712 345 678",
		"0110123456",
	}
	for _, phone := range valid {
		require.True(t, KenyanPhone(phone), "expected valid: %q", phone)
	}

	invalid := []string{
		"",
		"12345",
		"254212345678", // landline prefix
		"07123456789",  // too long
		"071234567",    // too short
	}
	for _, phone := range invalid {
		require.False(t, KenyanPhone(phone), "expected invalid: %q", phone)
	}
}

func TestEmail(t *testing.T) {
	require.True(t, Email("grace@example.com"))
	require.True(t, Email("g.wanjiku+rent@mail.co.ke"))

	require.False(t, Email(""))
	require.False(t, Email("no-at-sign"))
	require.False(t, Email("two@@example.com"))
	require.False(t, Email("no-dot@example"))
	require.False(t, Email("spaces in@example.com"))
}

func TestKenyanID(t *testing.T) {
	require.True(t, KenyanID("1234567"))
	require.True(t, KenyanID("12345678"))
	require.True(t, KenyanID("12 34 56 78"))

	require.False(t, KenyanID("123456"))
	require.False(t, KenyanID("123456789"))
	require.False(t, KenyanID(""))
}
