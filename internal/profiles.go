package internal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile represents one named conversion profile from the YAML file: a
// source and target format plus the key family (and curve for EC).
type Profile struct {
	Name       string `yaml:"name"`
	Family     string `yaml:"family"`
	Curve      string `yaml:"curve,omitempty"`
	FromFormat string `yaml:"from"`
	ToFormat   string `yaml:"to"`
}

// ProfileDefaults holds fallback values applied to profiles that omit them.
type ProfileDefaults struct {
	Family string `yaml:"family,omitempty"`
	Curve  string `yaml:"curve,omitempty"`
}

// profilesYAML represents the full YAML structure with defaults and profiles
type profilesYAML struct {
	Defaults *ProfileDefaults `yaml:"defaults,omitempty"`
	Profiles []Profile        `yaml:"profiles"`
}

// LoadProfiles loads conversion profiles from the specified YAML file,
// applying the defaults section to profiles that omit family or curve.
func LoadProfiles(path string) ([]Profile, ProfileDefaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ProfileDefaults{}, err
	}

	var cfg profilesYAML
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, ProfileDefaults{}, fmt.Errorf("parsing profiles %s: %w", path, err)
	}

	defaults := ProfileDefaults{}
	if cfg.Defaults != nil {
		defaults = *cfg.Defaults
	}
	for i := range cfg.Profiles {
		if cfg.Profiles[i].Family == "" {
			cfg.Profiles[i].Family = defaults.Family
		}
		if cfg.Profiles[i].Curve == "" {
			cfg.Profiles[i].Curve = defaults.Curve
		}
	}
	return cfg.Profiles, defaults, nil
}

// FindProfile returns the profile with the given name, or an error listing
// the available names.
func FindProfile(profiles []Profile, name string) (Profile, error) {
	var names []string
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
		names = append(names, p.Name)
	}
	return Profile{}, fmt.Errorf("no profile named %q (available: %v)", name, names)
}
