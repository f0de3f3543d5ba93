package account

import "golang.org/x/crypto/bcrypt"

// CredentialVerifier isolates how passwords are stored and compared so the
// storage format can change without touching the service contract.
type CredentialVerifier interface {
	// Hash prepares a password for storage.
	Hash(password string) (string, error)
	// Verify compares a stored credential with a login attempt.
	Verify(stored, candidate string) error
}

// PlaintextVerifier reproduces the source behavior: passwords stored and
// compared as-is. It is the default so existing stored collections keep
// working.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Hash(password string) (string, error) { return password, nil }

func (PlaintextVerifier) Verify(stored, candidate string) error {
	if stored != candidate {
		return ErrInvalidCredentials
	}
	return nil
}

// BcryptVerifier is the drop-in secure implementation. Stores created with
// it are not readable by PlaintextVerifier and vice versa.
type BcryptVerifier struct{}

func (BcryptVerifier) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (BcryptVerifier) Verify(stored, candidate string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
