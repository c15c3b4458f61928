package utils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	MinPasswordLength     = 4
	MaxPasswordLength     = 128
	DefaultPasswordLength = 16

	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+[]{};:,.?/"
	lookAlikes  = "0OoIl1"
)

var (
	ErrPasswordLength  = errors.New("password length out of range")
	ErrNoCharacterSets = errors.New("at least one character set must be enabled")
)

// PasswordOptions controls GeneratePassword.
type PasswordOptions struct {
	Length           int
	Lowercase        bool
	Uppercase        bool
	Digits           bool
	Symbols          bool
	ExcludeLookAlike bool
}

// DefaultPasswordOptions enables every character set at the default length.
func DefaultPasswordOptions() PasswordOptions {
	return PasswordOptions{
		Length:    DefaultPasswordLength,
		Lowercase: true,
		Uppercase: true,
		Digits:    true,
		Symbols:   true,
	}
}

// GeneratePassword builds a random password from crypto/rand. Every enabled
// character set contributes at least one character.
func GeneratePassword(opts PasswordOptions) (string, error) {
	if opts.Length < MinPasswordLength || opts.Length > MaxPasswordLength {
		return "", fmt.Errorf("%w: %d not in [%d, %d]", ErrPasswordLength, opts.Length, MinPasswordLength, MaxPasswordLength)
	}

	var sets []string
	for _, s := range []struct {
		on    bool
		chars string
	}{
		{opts.Lowercase, lowerChars},
		{opts.Uppercase, upperChars},
		{opts.Digits, digitChars},
		{opts.Symbols, symbolChars},
	} {
		if !s.on {
			continue
		}
		chars := s.chars
		if opts.ExcludeLookAlike {
			chars = stripChars(chars, lookAlikes)
		}
		sets = append(sets, chars)
	}
	if len(sets) == 0 {
		return "", ErrNoCharacterSets
	}

	all := strings.Join(sets, "")
	out := make([]byte, 0, opts.Length)
	for _, set := range sets {
		c, err := randomChar(set)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	for len(out) < opts.Length {
		c, err := randomChar(all)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	if err := shuffle(out); err != nil {
		return "", err
	}

	return string(out), nil
}

func randomIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("read random: %w", err)
	}
	return int(v.Int64()), nil
}

func randomChar(chars string) (byte, error) {
	i, err := randomIndex(len(chars))
	if err != nil {
		return 0, err
	}
	return chars[i], nil
}

// shuffle is a Fisher-Yates shuffle so the guaranteed characters do not
// always lead.
func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := randomIndex(i + 1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}

func stripChars(s, drop string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(drop, r) {
			return -1
		}
		return r
	}, s)
}
