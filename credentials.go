package folio

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// This file handles provider credentials: reading them from the environment
// and storing them encrypted at rest.

const (
	// EnvKeyID and EnvSecretKey are read from the environment (or a .env
	// file) and take precedence over the credentials file.
	EnvKeyID     = "FOLIO_API_KEY_ID"
	EnvSecretKey = "FOLIO_API_SECRET_KEY"

	// credentialsMagic prefixes an encrypted credentials file so a wrong
	// passphrase or a foreign file is detected before decrypting.
	credentialsMagic = "FOLIO-CREDS"
)

// ErrBadPassphrase is returned when a credentials file does not decrypt to
// valid content with the given passphrase.
var ErrBadPassphrase = errors.New("wrong passphrase or corrupted credentials file")

// Credentials authenticate against the market-data provider.
type Credentials struct {
	APIKey    string `json:"apiKey"`
	APISecret string `json:"apiSecret"`
}

// IsZero returns true when no credential is set.
func (c Credentials) IsZero() bool { return c.APIKey == "" && c.APISecret == "" }

// CredentialsFromEnv reads credentials from the environment, loading a .env
// file first when one exists. A missing .env file is not an error.
func CredentialsFromEnv() Credentials {
	godotenv.Load()
	return Credentials{
		APIKey:    os.Getenv(EnvKeyID),
		APISecret: os.Getenv(EnvSecretKey),
	}
}

// credentialsKey derives the 32-byte AES key from a passphrase.
func credentialsKey(passphrase string) []byte {
	sum := sha256.Sum256([]byte(passphrase))
	return sum[:]
}

// SaveCredentials writes the credentials to path, AES-CFB encrypted with a
// key derived from passphrase. The file is created with owner-only
// permissions.
func SaveCredentials(path string, creds Credentials, passphrase string) error {
	plain, err := json.Marshal(creds)
	if err != nil {
		return err
	}

	block, err := aes.NewCipher(credentialsKey(passphrase))
	if err != nil {
		return err
	}
	ciphertext := make([]byte, aes.BlockSize+len(plain))
	iv := ciphertext[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return err
	}
	cipher.NewCFBEncrypter(block, iv).XORKeyStream(ciphertext[aes.BlockSize:], plain)

	data := append([]byte(credentialsMagic), ciphertext...)
	return os.WriteFile(path, data, 0o600)
}

// LoadCredentials resolves credentials in order of precedence: environment
// first, then the encrypted file at path. A missing file with an empty
// environment yields ErrNoCredentials.
func LoadCredentials(path, passphrase string) (Credentials, error) {
	if creds := CredentialsFromEnv(); !creds.IsZero() {
		return creds, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Credentials{}, ErrNoCredentials
	}
	if err != nil {
		return Credentials{}, err
	}
	return decryptCredentials(data, passphrase)
}

func decryptCredentials(data []byte, passphrase string) (Credentials, error) {
	magic := []byte(credentialsMagic)
	if len(data) < len(magic)+aes.BlockSize || string(data[:len(magic)]) != credentialsMagic {
		return Credentials{}, ErrBadPassphrase
	}
	data = data[len(magic):]

	block, err := aes.NewCipher(credentialsKey(passphrase))
	if err != nil {
		return Credentials{}, err
	}
	iv := data[:aes.BlockSize]
	plain := make([]byte, len(data)-aes.BlockSize)
	cipher.NewCFBDecrypter(block, iv).XORKeyStream(plain, data[aes.BlockSize:])

	var creds Credentials
	if err := json.Unmarshal(plain, &creds); err != nil {
		return Credentials{}, fmt.Errorf("%w: %w", ErrBadPassphrase, err)
	}
	return creds, nil
}
