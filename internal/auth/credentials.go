package auth

import (
	"crypto/subtle"

	"invoice-desk/internal/config"

	"golang.org/x/crypto/bcrypt"
)

type account struct {
	username string
	hash     string
}

// Credentials is the fixed list of accounts allowed to use the app.
// Passwords are kept only as bcrypt hashes.
type Credentials struct {
	accounts []account
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func NewCredentials(list []config.Credential) (*Credentials, error) {
	c := &Credentials{accounts: make([]account, 0, len(list))}

	for _, cred := range list {
		if cred.Username == "" {
			continue
		}
		hash, err := HashPassword(cred.Password)
		if err != nil {
			return nil, err
		}
		c.accounts = append(c.accounts, account{username: cred.Username, hash: hash})
	}

	return c, nil
}

// Len reports how many accounts are configured.
func (c *Credentials) Len() int {
	return len(c.accounts)
}

// Verify reports whether the pair matches any configured account.
func (c *Credentials) Verify(username, password string) bool {
	if username == "" || password == "" {
		return false
	}

	for _, a := range c.accounts {
		if subtle.ConstantTimeCompare([]byte(a.username), []byte(username)) != 1 {
			continue
		}
		if CheckPasswordHash(password, a.hash) {
			return true
		}
	}

	return false
}
