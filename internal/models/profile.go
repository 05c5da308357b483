package models

import "fmt"

// Role is the portal role a profile belongs to. It is also the path segment
// of the profile endpoint.
type Role string

const (
	RoleAssociate Role = "associate"
	RoleFirm      Role = "firm"
	RoleVendor    Role = "vendor"
	RoleAdmin     Role = "admin" // может работать с профилем любой фирмы
)

// ParseRole validates a role name coming from user input or a URL.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAssociate, RoleFirm, RoleVendor, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// ProfileRole reports whether the role owns an editable profile.
func (r Role) ProfileRole() bool {
	return r == RoleAssociate || r == RoleFirm || r == RoleVendor
}

// AssociateProfile is the typed view of an associate's own profile.
type AssociateProfile struct {
	FirstName   string   `json:"firstName,omitempty"`
	LastName    string   `json:"lastName,omitempty"`
	Title       string   `json:"title,omitempty"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Location    string   `json:"location,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
}

// FirmProfile is the typed view of a design firm profile.
type FirmProfile struct {
	Name         string   `json:"name,omitempty"`
	Tagline      string   `json:"tagline,omitempty"`
	Website      string   `json:"website,omitempty"`
	Headquarters string   `json:"headquarters,omitempty"`
	Description  string   `json:"description,omitempty"`
	Services     []string `json:"services,omitempty"`
	TeamSize     int      `json:"teamSize,omitempty"`
}

// VendorProfile is the typed view of a vendor profile.
type VendorProfile struct {
	CompanyName string   `json:"companyName,omitempty"`
	Category    string   `json:"category,omitempty"`
	Website     string   `json:"website,omitempty"`
	Description string   `json:"description,omitempty"`
	Regions     []string `json:"regions,omitempty"`
}
