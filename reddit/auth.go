package reddit

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Credentials for a reddit "script" application, as stored in the local auth
// file (default ~/.redditrc) under an [authentication] section.
type Credentials struct {
	ClientID     string `ini:"client_id"`
	ClientSecret string `ini:"client_secret"`
	Username     string `ini:"username"`
	Password     string `ini:"password"`
	UserAgent    string `ini:"user_agent"`
}

// ReadCredentials parses the auth file at path.
func ReadCredentials(path string) (*Credentials, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("reading auth file: %w", err)
	}
	sec, err := f.GetSection("authentication")
	if err != nil {
		return nil, fmt.Errorf("auth file missing [authentication] section: %w", err)
	}
	var creds Credentials
	if err := sec.MapTo(&creds); err != nil {
		return nil, fmt.Errorf("parsing auth file: %w", err)
	}
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("auth file missing client_id or client_secret")
	}
	return &creds, nil
}
