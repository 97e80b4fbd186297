// Package settings provides storage for loctree user settings,
// currently provider API credentials.
//
// Credentials are stored in the XDG data directory:
//
//	$XDG_DATA_HOME/loctree/auth.json  (default: ~/.local/share/loctree/auth.json)
//
// The file is a JSON object keyed by provider ID. File permissions are
// 0600 (owner read/write only).
//
// Lookup order for API keys:
//  1. --api-key flag (highest priority)
//  2. LOCTREE_API_KEY environment variable
//  3. This credential store
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dataDirName = "loctree"
	fileName    = "auth.json"
)

// Info holds the stored credentials for one provider.
type Info struct {
	// Key is the API key.
	Key string `json:"key,omitempty"`
	// BaseURL is a custom endpoint URL (custom-openai).
	BaseURL string `json:"baseUrl,omitempty"`
}

// Store holds all provider credentials, keyed by provider ID.
type Store map[string]*Info

// dataDir returns the XDG data directory for loctree.
// Respects $XDG_DATA_HOME, falling back to ~/.local/share.
func dataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, dataDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", dataDirName), nil
}

func filePath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// FilePath returns the auth.json file path for display purposes.
func FilePath() string {
	p, err := filePath()
	if err != nil {
		return ""
	}
	return p
}

// Load reads the credential store. A missing file yields an empty
// store.
func Load() (Store, error) {
	path, err := filePath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var store Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if store == nil {
		store = Store{}
	}
	return store, nil
}

// Save writes the credential store with 0600 permissions.
func (s Store) Save() error {
	path, err := filePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Get returns the stored credentials for a provider.
func (s Store) Get(providerID string) (*Info, bool) {
	info, ok := s[providerID]
	return info, ok && info != nil
}

// Set stores credentials for a provider.
func (s Store) Set(providerID string, info *Info) {
	s[providerID] = info
}

// Remove deletes a provider's credentials. It reports whether an entry
// existed.
func (s Store) Remove(providerID string) bool {
	if _, ok := s[providerID]; !ok {
		return false
	}
	delete(s, providerID)
	return true
}

// APIKeyFor resolves the API key for a provider using the documented
// lookup order: explicit flag value, then the LOCTREE_API_KEY
// environment variable, then the store.
func (s Store) APIKeyFor(providerID, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("LOCTREE_API_KEY"); env != "" {
		return env
	}
	if info, ok := s.Get(providerID); ok {
		return info.Key
	}
	return ""
}
