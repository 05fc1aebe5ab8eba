package contracts

import (
	"context"

	"sppages/domain/sharepoint"
)

// RegionalSettingsReader exposes the regional settings of the web pages live in.
type RegionalSettingsReader interface {
	RegionalSettings(ctx context.Context) (*sharepoint.RegionalSettings, error)
	TimeZones(ctx context.Context) ([]sharepoint.TimeZone, error)
}

// SocialFollower manages social following for the current user.
type SocialFollower interface {
	Follow(ctx context.Context, actor sharepoint.SocialActorInfo) (sharepoint.SocialFollowResult, error)
	IsFollowed(ctx context.Context, actor sharepoint.SocialActorInfo) (bool, error)
	StopFollowing(ctx context.Context, actor sharepoint.SocialActorInfo) error
}

// WebPartCatalog lists the client side web parts available on the web.
type WebPartCatalog interface {
	GetClientSideWebParts(ctx context.Context) ([]sharepoint.ClientSidePageComponent, error)
}
