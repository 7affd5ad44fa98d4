package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store persists the single configuration value this client keeps
// across sessions: the analysis webhook URL.
type Store struct {
	path string
}

type fileFormat struct {
	WebhookURL string `yaml:"webhook_url"`
}

// DefaultPath is ~/.config/biocore/config.yaml (or the platform
// equivalent of the user config dir).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "biocore", "config.yaml"), nil
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted webhook URL. found is false when the file
// does not exist yet or holds no URL.
func (s *Store) Load() (url string, found bool, err error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read config: %w", err)
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return "", false, fmt.Errorf("parse config: %w", err)
	}
	if f.WebhookURL == "" {
		return "", false, nil
	}
	return f.WebhookURL, true, nil
}

// Save stores the trimmed URL, overwriting any prior value.
func (s *Store) Save(url string) error {
	data, err := yaml.Marshal(fileFormat{WebhookURL: strings.TrimSpace(url)})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
