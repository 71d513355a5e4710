package config

// Profile holds a reusable sender identity.
// Submissions from the same person repeat the sender half of the form
// verbatim, so profiles let the CLI prefill those fields from the
// configuration file instead of requiring four flags per submission.
type Profile struct {
	// Name is the sender's full name.
	Name string `yaml:"name,omitempty"`

	// Phone is the sender's phone number. It may be raw digits; the form
	// normalizer applies the display mask before transmission.
	Phone string `yaml:"phone,omitempty"`

	// Email is the sender's email address.
	Email string `yaml:"email,omitempty"`

	// Address is the sender's pickup address.
	Address string `yaml:"address,omitempty"`
}

// File represents the structure of the .senderplus configuration file.
type File struct {
	// BaseURL overrides the default submission service endpoint.
	BaseURL string `yaml:"base_url,omitempty"`

	// Profiles maps profile names to sender identities.
	// Keys are free-form labels chosen by the user (e.g., "work", "home").
	Profiles map[string]Profile `yaml:"profiles,omitempty"`

	// Defaults contains the default sender identity applied when no
	// profile is named, and as the base for every named profile.
	Defaults Profile `yaml:"defaults,omitempty"`
}

// GetProfile returns the sender identity for a profile name.
// It merges the named profile with the defaults; fields left empty in the
// named profile fall back to the default identity. An empty name returns
// the defaults unchanged.
func (cf *File) GetProfile(name string) (Profile, bool) {
	result := cf.Defaults

	if name == "" {
		return result, true
	}

	p, ok := cf.Profiles[name]
	if !ok {
		return result, false
	}
	if p.Name != "" {
		result.Name = p.Name
	}
	if p.Phone != "" {
		result.Phone = p.Phone
	}
	if p.Email != "" {
		result.Email = p.Email
	}
	if p.Address != "" {
		result.Address = p.Address
	}

	return result, true
}
