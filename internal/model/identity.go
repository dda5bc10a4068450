package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidProvider = errors.New("model: invalid identity provider")

type Provider string

const (
	ProviderGoogle   Provider = "google"
	ProviderGitHub   Provider = "github"
	ProviderFacebook Provider = "facebook"
	ProviderApple    Provider = "apple"
)

// Providers lists the sign-in providers in the order the login screen shows them.
var Providers = []Provider{ProviderGoogle, ProviderGitHub, ProviderFacebook, ProviderApple}

func (p Provider) IsValid() bool {
	switch p {
	case ProviderGoogle, ProviderGitHub, ProviderFacebook, ProviderApple:
		return true
	default:
		return false
	}
}

func (p Provider) DisplayName() string {
	switch p {
	case ProviderGoogle:
		return "Google"
	case ProviderGitHub:
		return "GitHub"
	case ProviderFacebook:
		return "Facebook"
	case ProviderApple:
		return "Apple"
	default:
		return string(p)
	}
}

func ParseProvider(raw string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(raw)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidProvider, raw)
	}
	return p, nil
}

type Identity struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Avatar   string   `json:"avatar,omitempty"`
	Provider Provider `json:"provider"`
}

func (i Identity) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return errors.New("model: identity id is required")
	}
	if strings.TrimSpace(i.Name) == "" {
		return errors.New("model: identity name is required")
	}
	if !i.Provider.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidProvider, i.Provider)
	}
	return nil
}
