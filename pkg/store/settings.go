package store

import (
	"fmt"
	"net/mail"
	"sort"
	"strconv"
	"strings"
)

// Settings are the facility-wide options edited on the settings panel.
type Settings struct {
	FacilityName       string `json:"facilityName" yaml:"facilityName"`
	FacilityAddress    string `json:"facilityAddress" yaml:"facilityAddress"`
	AdminEmail         string `json:"adminEmail" yaml:"adminEmail"`
	MaxCapacity        string `json:"maxCapacity" yaml:"maxCapacity"`
	VisitorHours       string `json:"visitorHours" yaml:"visitorHours"`
	EmergencyContact   string `json:"emergencyContact" yaml:"emergencyContact"`
	AutoBackup         bool   `json:"autoBackup" yaml:"autoBackup"`
	EmailNotifications bool   `json:"emailNotifications" yaml:"emailNotifications"`
	SMSAlerts          bool   `json:"smsAlerts" yaml:"smsAlerts"`
	MaintenanceMode    bool   `json:"maintenanceMode" yaml:"maintenanceMode"`
	SessionTimeout     string `json:"sessionTimeout" yaml:"sessionTimeout"`
	PasswordPolicy     string `json:"passwordPolicy" yaml:"passwordPolicy"`
	AuditLogging       bool   `json:"auditLogging" yaml:"auditLogging"`
}

// PasswordPolicies lists the accepted password policy values.
var PasswordPolicies = []string{"Basic", "Medium", "Strong"}

// DefaultSettings returns the factory settings.
func DefaultSettings() Settings {
	return Settings{
		FacilityName:       "Central Correctional Facility",
		FacilityAddress:    "123 Security Blvd, Justice City, JC 12345",
		AdminEmail:         "admin@jail-management.com",
		MaxCapacity:        "1500",
		VisitorHours:       "Monday-Friday: 9:00 AM - 5:00 PM",
		EmergencyContact:   "(555) 911-HELP",
		AutoBackup:         true,
		EmailNotifications: true,
		SMSAlerts:          false,
		MaintenanceMode:    false,
		SessionTimeout:     "30",
		PasswordPolicy:     "Strong",
		AuditLogging:       true,
	}
}

type settingField struct {
	get func(*Settings) string
	set func(*Settings, string) error
}

func textField(p func(*Settings) *string) settingField {
	return settingField{
		get: func(s *Settings) string { return *p(s) },
		set: func(s *Settings, v string) error { *p(s) = v; return nil },
	}
}

func boolField(p func(*Settings) *bool) settingField {
	return settingField{
		get: func(s *Settings) string { return strconv.FormatBool(*p(s)) },
		set: func(s *Settings, v string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("store: expected true or false, got %q", v)
			}
			*p(s) = b
			return nil
		},
	}
}

var settingFields = map[string]settingField{
	"facilityName":       textField(func(s *Settings) *string { return &s.FacilityName }),
	"facilityAddress":    textField(func(s *Settings) *string { return &s.FacilityAddress }),
	"adminEmail":         textField(func(s *Settings) *string { return &s.AdminEmail }),
	"maxCapacity":        textField(func(s *Settings) *string { return &s.MaxCapacity }),
	"visitorHours":       textField(func(s *Settings) *string { return &s.VisitorHours }),
	"emergencyContact":   textField(func(s *Settings) *string { return &s.EmergencyContact }),
	"sessionTimeout":     textField(func(s *Settings) *string { return &s.SessionTimeout }),
	"passwordPolicy":     textField(func(s *Settings) *string { return &s.PasswordPolicy }),
	"autoBackup":         boolField(func(s *Settings) *bool { return &s.AutoBackup }),
	"emailNotifications": boolField(func(s *Settings) *bool { return &s.EmailNotifications }),
	"smsAlerts":          boolField(func(s *Settings) *bool { return &s.SMSAlerts }),
	"maintenanceMode":    boolField(func(s *Settings) *bool { return &s.MaintenanceMode }),
	"auditLogging":       boolField(func(s *Settings) *bool { return &s.AuditLogging }),
}

// SettingKeys returns the setting names accepted by Get and Set, sorted.
func SettingKeys() []string {
	keys := make([]string, 0, len(settingFields))
	for k := range settingFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the named setting as text.
func (s Settings) Get(key string) (string, error) {
	f, ok := settingFields[key]
	if !ok {
		return "", fmt.Errorf("store: unknown setting %q", key)
	}
	return f.get(&s), nil
}

// Set assigns the named setting from text.
func (s *Settings) Set(key, value string) error {
	f, ok := settingFields[key]
	if !ok {
		return fmt.Errorf("store: unknown setting %q", key)
	}
	return f.set(s, value)
}

// Validate checks the numeric and enumerated settings.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.FacilityName) == "" {
		return fmt.Errorf("store: facilityName is required")
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s.MaxCapacity)); err != nil || n <= 0 {
		return fmt.Errorf("store: maxCapacity must be a positive number, got %q", s.MaxCapacity)
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s.SessionTimeout)); err != nil || n <= 0 {
		return fmt.Errorf("store: sessionTimeout must be a positive number of minutes, got %q", s.SessionTimeout)
	}
	if s.AdminEmail != "" {
		if _, err := mail.ParseAddress(s.AdminEmail); err != nil {
			return fmt.Errorf("store: adminEmail: %w", err)
		}
	}
	for _, p := range PasswordPolicies {
		if p == s.PasswordPolicy {
			return nil
		}
	}
	return fmt.Errorf("store: passwordPolicy must be one of %s", strings.Join(PasswordPolicies, ", "))
}
