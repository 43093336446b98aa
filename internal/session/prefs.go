package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Prefs are the only values persisted across sessions. Filter, sort, and
// search state is session-only and resets on restart.
type Prefs struct {
	Theme  string `json:"theme,omitempty"`
	Accent string `json:"accent,omitempty"`
}

// DefaultPrefsPath returns the preference file location under the user
// config directory.
func DefaultPrefsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("prefs: resolve config dir: %w", err)
	}
	return filepath.Join(dir, "pulseboard", "prefs.json"), nil
}

// LoadPrefs reads preferences from path. A missing file is not an error; it
// returns zero-value Prefs so defaults apply.
func LoadPrefs(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Prefs{}, nil
		}
		return Prefs{}, fmt.Errorf("prefs: read %s: %w", path, err)
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Prefs{}, fmt.Errorf("prefs: unmarshal %s: %w", path, err)
	}
	return p, nil
}

// SavePrefs writes preferences to path, creating parent directories as
// needed.
func SavePrefs(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prefs: mkdir %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("prefs: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("prefs: write %s: %w", path, err)
	}
	return nil
}
