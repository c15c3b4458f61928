package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePassword_Default(t *testing.T) {
	pw, err := GeneratePassword(DefaultPasswordOptions())
	require.NoError(t, err)

	assert.Len(t, pw, DefaultPasswordLength)
	assert.True(t, strings.ContainsAny(pw, lowerChars))
	assert.True(t, strings.ContainsAny(pw, upperChars))
	assert.True(t, strings.ContainsAny(pw, digitChars))
	assert.True(t, strings.ContainsAny(pw, symbolChars))
}

func TestGeneratePassword_LengthBounds(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantErr bool
	}{
		{name: "below minimum", length: MinPasswordLength - 1, wantErr: true},
		{name: "minimum", length: MinPasswordLength},
		{name: "maximum", length: MaxPasswordLength},
		{name: "above maximum", length: MaxPasswordLength + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultPasswordOptions()
			opts.Length = tt.length

			pw, err := GeneratePassword(opts)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrPasswordLength)
				assert.Empty(t, pw)
				return
			}
			require.NoError(t, err)
			assert.Len(t, pw, tt.length)
		})
	}
}

func TestGeneratePassword_NoSets(t *testing.T) {
	_, err := GeneratePassword(PasswordOptions{Length: 16})
	assert.ErrorIs(t, err, ErrNoCharacterSets)
}

func TestGeneratePassword_SingleSet(t *testing.T) {
	pw, err := GeneratePassword(PasswordOptions{Length: 64, Digits: true})
	require.NoError(t, err)

	for _, r := range pw {
		assert.Contains(t, digitChars, string(r))
	}
}

func TestGeneratePassword_ExcludeLookAlike(t *testing.T) {
	opts := DefaultPasswordOptions()
	opts.Length = MaxPasswordLength
	opts.ExcludeLookAlike = true

	for range 20 {
		pw, err := GeneratePassword(opts)
		require.NoError(t, err)
		assert.False(t, strings.ContainsAny(pw, lookAlikes), "password %q contains a look-alike", pw)
	}
}

func TestGeneratePassword_Varies(t *testing.T) {
	a, err := GeneratePassword(DefaultPasswordOptions())
	require.NoError(t, err)
	b, err := GeneratePassword(DefaultPasswordOptions())
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
