package sharepoint

// Principal represents a user, group, or security principal
type Principal struct {
	ID            int64
	PrincipalType int64
	Title         string
	LoginName     string
	Email         string
}

// IsUser returns true if this is a user principal
func (p *Principal) IsUser() bool {
	return p.PrincipalType == PrincipalTypeUser
}

// IsGroup returns true if this is a group principal
func (p *Principal) IsGroup() bool {
	return p.PrincipalType == PrincipalTypeSecurity || p.PrincipalType == PrincipalTypeDistribution
}

// IsSharePointGroup returns true if this is a SharePoint group
func (p *Principal) IsSharePointGroup() bool {
	return p.PrincipalType == PrincipalTypeSharePointGroup
}

// GetDisplayName returns the best display name for the principal
func (p *Principal) GetDisplayName() string {
	if p.Title != "" {
		return p.Title
	}
	if p.LoginName != "" {
		return p.LoginName
	}
	return p.Email
}

// BasePermissions is the High/Low bitmask pair SharePoint uses for permission levels.
// Both halves travel as decimal strings on the wire.
type BasePermissions struct {
	High string `json:"High"`
	Low  string `json:"Low"`
}

// RoleDefinition represents a SharePoint permission level
type RoleDefinition struct {
	ID              int64
	Name            string
	Description     string
	Order           int
	RoleTypeKind    int
	Hidden          bool
	BasePermissions BasePermissions
}

// RoleAssignment binds a principal to one or more role definitions on a securable object
type RoleAssignment struct {
	PrincipalID     int64
	Member          *Principal
	RoleDefinitions []*RoleDefinition
}

// HasRole reports whether the assignment grants the named role definition.
func (a *RoleAssignment) HasRole(name string) bool {
	for _, rd := range a.RoleDefinitions {
		if rd != nil && rd.Name == name {
			return true
		}
	}
	return false
}

// Common SharePoint principal types
const (
	PrincipalTypeUser            = 1
	PrincipalTypeDistribution    = 2
	PrincipalTypeSecurity        = 4
	PrincipalTypeSharePointGroup = 8
	PrincipalTypeAll             = 15
)

// RoleType values (SP.RoleType) accepted by roledefinitions/getbytype
const (
	RoleTypeNone          = 0
	RoleTypeGuest         = 1
	RoleTypeReader        = 2
	RoleTypeContributor   = 3
	RoleTypeWebDesigner   = 4
	RoleTypeAdministrator = 5
	RoleTypeEditor        = 6
)
