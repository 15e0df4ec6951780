package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"swipenotes/internal/common"

	"github.com/tyler-smith/go-bip39"
)

const (
	passphraseWordCount = 12
	passphraseEntropy   = 128 // bits; yields a 12-word mnemonic
	userIdBytes         = 4   // 8 hex chars
)

// IIdentityService derives the stable sync identity from a recovery phrase.
// The phrase never leaves the device; only the derived id is sent anywhere.
type IIdentityService interface {
	// GeneratePassphrase produces a fresh 12-word recovery phrase from a
	// cryptographically secure random source.
	GeneratePassphrase() (string, error)
	// ValidatePassphrase fails closed: empty input, wrong word count or a
	// wordlist/checksum failure all return false.
	ValidatePassphrase(phrase string) bool
	// GenerateUserID deterministically derives the 8-char lowercase hex
	// identifier. Same phrase, same id.
	GenerateUserID(phrase string) (string, error)
}

type identityService struct{}

func NewIdentityService() IIdentityService {
	return &identityService{}
}

func (s *identityService) GeneratePassphrase() (string, error) {
	entropy, err := bip39.NewEntropy(passphraseEntropy)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

func (s *identityService) ValidatePassphrase(phrase string) bool {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return false
	}
	if len(strings.Fields(phrase)) != passphraseWordCount {
		return false
	}
	if !bip39.IsMnemonicValid(phrase) {
		return false
	}
	// Must also round-trip through the seed derivation.
	if _, err := bip39.NewSeedWithErrorChecking(phrase, ""); err != nil {
		return false
	}
	return true
}

func (s *identityService) GenerateUserID(phrase string) (string, error) {
	if strings.TrimSpace(phrase) == "" {
		return "", common.ErrEmptyPassphrase
	}
	seed, err := bip39.NewSeedWithErrorChecking(strings.TrimSpace(phrase), "")
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidPassphrase, err)
	}
	sum := sha256.Sum256(seed)
	return hex.EncodeToString(sum[:userIdBytes]), nil
}
