package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// Keys of the records kept in the local store.
const (
	settingsKey = "settings"
	sessionKey  = "session"
)

// ErrNoSession is returned by Session when nobody is logged in.
var ErrNoSession = errors.New("store: no session")

// Persistence is the local state of the warden client: the facility
// settings and the logged in session. Facility records themselves live on
// the remote API and are never stored here.
type Persistence interface {
	Settings() (Settings, error)
	SaveSettings(s Settings) error
	ResetSettings() (Settings, error)
	Session() (Session, error)
	SaveSession(s Session) error
	ClearSession() error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Session records the signed in operator.
type Session struct {
	User     string    `json:"user" yaml:"user"`
	LoggedIn time.Time `json:"loggedIn" yaml:"loggedIn"`
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg *Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:  basePath,
		Transform: func(string) []string { return []string{} },
		// No cache: another warden process may rewrite the same files.
		CacheSizeMax: 0,
		FilePerm:     0o600,
		PathPerm:     0o755,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) readJSON(key string, target any) (bool, error) {
	if !p.d.Has(key) {
		return false, nil
	}
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if len(strings.TrimSpace(string(val))) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(val, target); err != nil {
		return false, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return true, nil
}

func (p *persistence) writeJSON(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return p.d.Write(key, data)
}

// Settings returns the saved settings, or the defaults when none are saved.
// Fields missing from an older save keep their default value.
func (p *persistence) Settings() (Settings, error) {
	s := DefaultSettings()
	if _, err := p.readJSON(settingsKey, &s); err != nil {
		return DefaultSettings(), err
	}
	return s, nil
}

func (p *persistence) SaveSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return p.writeJSON(settingsKey, s)
}

func (p *persistence) ResetSettings() (Settings, error) {
	s := DefaultSettings()
	if err := p.writeJSON(settingsKey, s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (p *persistence) Session() (Session, error) {
	var s Session
	ok, err := p.readJSON(sessionKey, &s)
	if err != nil {
		return Session{}, err
	}
	if !ok || strings.TrimSpace(s.User) == "" {
		return Session{}, ErrNoSession
	}
	return s, nil
}

func (p *persistence) SaveSession(s Session) error {
	if strings.TrimSpace(s.User) == "" {
		return errors.New("store: session user required")
	}
	if s.LoggedIn.IsZero() {
		s.LoggedIn = time.Now()
	}
	return p.writeJSON(sessionKey, s)
}

func (p *persistence) ClearSession() error {
	if !p.d.Has(sessionKey) {
		return nil
	}
	return p.d.Erase(sessionKey)
}
