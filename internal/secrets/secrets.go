// Package secrets resolves AbraFlexi credentials for configured companies.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/flexidash/flexidash/internal/config"
)

// ErrMissingCredentials is returned when a company lacks a URL, user or password.
var ErrMissingCredentials = errors.New("missing credentials")

// PasswordEnvPrefix prefixes the per-company password variable.
const PasswordEnvPrefix = "FLEXIDASH_PASSWORD_"

// Credentials authenticate against one AbraFlexi company.
type Credentials struct {
	URL      string
	User     string
	Password string
}

// Store resolves credentials for a company.
type Store interface {
	Credentials(ctx context.Context, company config.Company) (Credentials, error)
}

// EnvStore takes URL and user from the company config and the password from
// the environment.
type EnvStore struct {
	lookup func(string) (string, bool)
}

// NewEnvStore returns a store reading the process environment.
func NewEnvStore() *EnvStore {
	return &EnvStore{lookup: os.LookupEnv}
}

// NewMapStore returns a store reading passwords from a fixed map, keyed by
// environment variable name.
func NewMapStore(env map[string]string) *EnvStore {
	return &EnvStore{lookup: func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}}
}

// PasswordVar returns the environment variable holding the password of a
// company: the id upper-cased with every other character replaced by '_'.
func PasswordVar(companyID string) string {
	var b strings.Builder
	b.WriteString(PasswordEnvPrefix)
	for _, r := range strings.ToUpper(companyID) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Credentials pairs the company's URL and user with the password found under
// PasswordVar(company.ID).
func (s *EnvStore) Credentials(ctx context.Context, company config.Company) (Credentials, error) {
	if err := ctx.Err(); err != nil {
		return Credentials{}, err
	}
	password, _ := s.lookup(PasswordVar(company.ID))
	creds := Credentials{URL: company.URL, User: company.User, Password: password}

	var missing []string
	if creds.URL == "" {
		missing = append(missing, "url")
	}
	if creds.User == "" {
		missing = append(missing, "user")
	}
	if creds.Password == "" {
		missing = append(missing, PasswordVar(company.ID))
	}
	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("company %q: %w: %s", company.ID, ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return creds, nil
}

// LoadDotEnv loads variables from a .env file without overriding ones
// already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}
