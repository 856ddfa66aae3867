package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt cost used when none is configured. Higher
// cost trades login/sign latency for brute-force resistance.
const DefaultHashCost = 12

// credentialService is the implementation of [CredentialService].
type credentialService struct {
	// hashCost is the bcrypt cost factor applied by HashSecretKey.
	hashCost int
}

// NewCredentialService constructs a [CredentialService] with the given
// bcrypt cost. A cost of 0 selects [DefaultHashCost]; out-of-range values
// are clamped to what bcrypt supports.
func NewCredentialService(hashCost int) CredentialService {
	switch {
	case hashCost == 0:
		hashCost = DefaultHashCost
	case hashCost < bcrypt.MinCost:
		hashCost = bcrypt.MinCost
	case hashCost > bcrypt.MaxCost:
		hashCost = bcrypt.MaxCost
	}

	return &credentialService{hashCost: hashCost}
}

// GenerateSecretKey implements [CredentialService].
//
// Format: SK-XXXXXXXX-XXXXXXXXXXXXXXXX — eight hex characters from a random
// UUID followed by sixteen hex characters read from the OS CSPRNG,
// uppercased for easier manual copying.
func (c *credentialService) GenerateSecretKey() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("error generating secret key uuid: %w", err)
	}

	randomPart := make([]byte, 8)
	if _, err := io.ReadFull(rand.Reader, randomPart); err != nil {
		return "", fmt.Errorf("error reading random bytes for secret key: %w", err)
	}

	key := fmt.Sprintf("SK-%s-%s", hex.EncodeToString(id[:4]), hex.EncodeToString(randomPart))
	return strings.ToUpper(key), nil
}

// HashSecretKey implements [CredentialService].
func (c *credentialService) HashSecretKey(secretKey string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secretKey), c.hashCost)
	if err != nil {
		return "", fmt.Errorf("error hashing secret key: %w", err)
	}

	return string(hash), nil
}

// VerifySecretKey implements [CredentialService].
func (c *credentialService) VerifySecretKey(secretKey, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(secretKey)) == nil
}
