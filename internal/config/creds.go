package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names for the posting API.
// The names match what the X developer portal hands out, so a .env copied
// from the portal works without renaming.
const (
	EnvAPIKey            = "X_API_KEY"
	EnvAPISecret         = "X_API_SECRET"
	EnvAccessToken       = "X_ACCESS_TOKEN"
	EnvAccessTokenSecret = "X_ACCESS_TOKEN_SECRET"
	EnvDryRun            = "DRY_RUN"
)

// Credentials holds the OAuth 1.0a user-context credentials for the
// posting API.
type Credentials struct {
	// APIKey is the application consumer key.
	APIKey string

	// APISecret is the application consumer secret.
	APISecret string

	// AccessToken is the user access token.
	AccessToken string

	// AccessTokenSecret is the user access token secret.
	AccessTokenSecret string
}

// Validate reports whether all four credentials are present.
func (c Credentials) Validate() error {
	if c.APIKey == "" || c.APISecret == "" || c.AccessToken == "" || c.AccessTokenSecret == "" {
		return ErrMissingCredentials
	}
	return nil
}

// LoadEnvironment reads credentials and the dry-run flag from the process
// environment, loading a .env file from the working directory first if one
// exists. A missing .env is not an error; variables already set in the
// environment take precedence over the file (godotenv never overwrites).
//
// Design decision: DRY_RUN unset means dry run. A credentials-bearing bot
// should require an explicit opt-in ("DRY_RUN=false") before talking to
// the network on someone's behalf.
func LoadEnvironment() (Credentials, bool) {
	_ = godotenv.Load() //nolint:errcheck // absent .env file is fine

	creds := Credentials{
		APIKey:            os.Getenv(EnvAPIKey),
		APISecret:         os.Getenv(EnvAPISecret),
		AccessToken:       os.Getenv(EnvAccessToken),
		AccessTokenSecret: os.Getenv(EnvAccessTokenSecret),
	}

	return creds, parseDryRun(os.Getenv(EnvDryRun))
}

// parseDryRun interprets the DRY_RUN variable. Only an explicit false-like
// value ("false", "0", "no", "n", "off") disables dry run; everything else,
// including unset, keeps it on.
func parseDryRun(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "false", "0", "no", "n", "off":
		return false
	default:
		return true
	}
}
