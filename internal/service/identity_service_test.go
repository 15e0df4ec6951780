package service

import (
	"strings"
	"testing"

	"swipenotes/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePassphrase(t *testing.T) {
	svc := NewIdentityService()

	phrase, err := svc.GeneratePassphrase()
	require.NoError(t, err)
	assert.Len(t, strings.Fields(phrase), 12)
	assert.True(t, svc.ValidatePassphrase(phrase))
}

func TestGeneratePassphrase_Distinct(t *testing.T) {
	svc := NewIdentityService()

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		phrase, err := svc.GeneratePassphrase()
		require.NoError(t, err)
		assert.False(t, seen[phrase], "duplicate passphrase generated")
		seen[phrase] = true
	}
}

func TestValidatePassphrase(t *testing.T) {
	svc := NewIdentityService()

	valid, err := svc.GeneratePassphrase()
	require.NoError(t, err)

	tests := []struct {
		name   string
		phrase string
		want   bool
	}{
		{"generated phrase", valid, true},
		{"known good phrase", "legal winner thank year wave sausage worth useful legal winner thank yellow", true},
		{"empty", "", false},
		{"whitespace only", "   \t  ", false},
		{"too few words", "abandon ability able", false},
		{"wrong wordlist", strings.Repeat("zzzzz ", 11) + "zzzzz", false},
		{"bad checksum", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.ValidatePassphrase(tt.phrase))
		})
	}
}

func TestGenerateUserID_Deterministic(t *testing.T) {
	svc := NewIdentityService()

	phrase, err := svc.GeneratePassphrase()
	require.NoError(t, err)

	first, err := svc.GenerateUserID(phrase)
	require.NoError(t, err)
	second, err := svc.GenerateUserID(phrase)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 8)
	assert.Equal(t, strings.ToLower(first), first)
}

func TestGenerateUserID_IgnoresSurroundingWhitespace(t *testing.T) {
	svc := NewIdentityService()

	phrase, err := svc.GeneratePassphrase()
	require.NoError(t, err)

	plain, err := svc.GenerateUserID(phrase)
	require.NoError(t, err)
	padded, err := svc.GenerateUserID("  " + phrase + "\n")
	require.NoError(t, err)

	assert.Equal(t, plain, padded)
}

func TestGenerateUserID_DistinctPhrases(t *testing.T) {
	svc := NewIdentityService()

	a, err := svc.GeneratePassphrase()
	require.NoError(t, err)
	b, err := svc.GeneratePassphrase()
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	idA, err := svc.GenerateUserID(a)
	require.NoError(t, err)
	idB, err := svc.GenerateUserID(b)
	require.NoError(t, err)

	assert.NotEqual(t, idA, idB)
}

func TestGenerateUserID_Empty(t *testing.T) {
	svc := NewIdentityService()

	_, err := svc.GenerateUserID("")
	assert.ErrorIs(t, err, common.ErrEmptyPassphrase)

	_, err = svc.GenerateUserID("   ")
	assert.ErrorIs(t, err, common.ErrEmptyPassphrase)
}

func TestGenerateUserID_InvalidPhrase(t *testing.T) {
	svc := NewIdentityService()

	_, err := svc.GenerateUserID("definitely not a valid mnemonic")
	assert.ErrorIs(t, err, common.ErrInvalidPassphrase)
}
