package sharepoint

import "fmt"

// TemplateFileType selects the blank file template used by files/addTemplateFile.
type TemplateFileType int

const (
	TemplateFileTypeStandardPage   TemplateFileType = 0
	TemplateFileTypeWikiPage       TemplateFileType = 1
	TemplateFileTypeFormPage       TemplateFileType = 2
	TemplateFileTypeClientSidePage TemplateFileType = 3
)

// PromotedState is the news promotion state of a client side page.
type PromotedState int

const (
	// PromotedStateNotPromoted is a regular client side page
	PromotedStateNotPromoted PromotedState = 0
	// PromotedStatePromoteOnPublish is promoted as a news article after publishing
	PromotedStatePromoteOnPublish PromotedState = 1
	// PromotedStatePromoted is promoted as a news article
	PromotedStatePromoted PromotedState = 2
)

// SocialActorType identifies what kind of actor a social following call targets.
type SocialActorType int

const (
	SocialActorTypeUser     SocialActorType = 0
	SocialActorTypeDocument SocialActorType = 1
	SocialActorTypeSite     SocialActorType = 2
	SocialActorTypeTag      SocialActorType = 3
)

// SocialActorTypes is the bit set accepted by social.following/my/followed(types=...).
type SocialActorTypes int

const (
	SocialActorTypesNone      SocialActorTypes = 0
	SocialActorTypesUsers     SocialActorTypes = 1
	SocialActorTypesDocuments SocialActorTypes = 2
	SocialActorTypesSites     SocialActorTypes = 4
	SocialActorTypesTags      SocialActorTypes = 8
	SocialActorTypesAll       SocialActorTypes = 15
)

// SocialFollowResult is the outcome of a follow request.
type SocialFollowResult int

const (
	SocialFollowResultOk               SocialFollowResult = 0
	SocialFollowResultAlreadyFollowing SocialFollowResult = 1
	SocialFollowResultLimitReached     SocialFollowResult = 2
	SocialFollowResultInternalError    SocialFollowResult = 3
)

func (r SocialFollowResult) String() string {
	switch r {
	case SocialFollowResultOk:
		return "Ok"
	case SocialFollowResultAlreadyFollowing:
		return "AlreadyFollowing"
	case SocialFollowResultLimitReached:
		return "LimitReached"
	case SocialFollowResultInternalError:
		return "InternalError"
	default:
		return fmt.Sprintf("Unknown (%d)", int(r))
	}
}

// PrincipalTypeNames expands a PrincipalType flag set.
// Flags: User=1, DistributionList=2, SecurityGroup=4, SharePointGroup=8 (All=15)
func PrincipalTypeNames(v int) []string {
	if v == 15 {
		return []string{"All"}
	}
	type bitName struct {
		bit  int
		name string
	}
	bits := []bitName{
		{1, "User"},
		{2, "DistributionList"},
		{4, "SecurityGroup"},
		{8, "SharePointGroup"},
	}
	var out []string
	for _, bn := range bits {
		if v&bn.bit != 0 {
			out = append(out, bn.name)
		}
	}
	if len(out) == 0 {
		out = []string{fmt.Sprintf("Unknown (%d)", v)}
	}
	return out
}

// RoleTypeName returns the SP.RoleType label for v.
func RoleTypeName(v int) string {
	switch v {
	case RoleTypeNone:
		return "None"
	case RoleTypeGuest:
		return "Guest"
	case RoleTypeReader:
		return "Reader"
	case RoleTypeContributor:
		return "Contributor"
	case RoleTypeWebDesigner:
		return "WebDesigner"
	case RoleTypeAdministrator:
		return "Administrator"
	case RoleTypeEditor:
		return "Editor"
	default:
		return fmt.Sprintf("Unknown (%d)", v)
	}
}
