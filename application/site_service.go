package application

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"sppages/domain/clientside"
	"sppages/domain/contracts"
	"sppages/domain/sharepoint"
	"sppages/logging"
)

// SiteService exposes the web's regional settings and the current user's social following.
type SiteService interface {
	RegionalSettings(ctx context.Context) (*sharepoint.RegionalSettings, error)
	TimeZones(ctx context.Context) ([]sharepoint.TimeZone, error)
	Follow(ctx context.Context, actor sharepoint.SocialActorInfo) (sharepoint.SocialFollowResult, error)
	IsFollowed(ctx context.Context, actor sharepoint.SocialActorInfo) (bool, error)
	StopFollowing(ctx context.Context, actor sharepoint.SocialActorInfo) error
	WebParts(ctx context.Context) ([]WebPartInfo, error)
}

// WebPartInfo is a web part that can be placed on a page layout.
type WebPartInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// SiteServiceImpl forwards to the remote site.
type SiteServiceImpl struct {
	regional contracts.RegionalSettingsReader
	social   contracts.SocialFollower
	webParts contracts.WebPartCatalog
	logger   *logging.Logger
}

// NewSiteService creates a site service.
func NewSiteService(regional contracts.RegionalSettingsReader, social contracts.SocialFollower, webParts contracts.WebPartCatalog) SiteService {
	return &SiteServiceImpl{
		regional: regional,
		social:   social,
		webParts: webParts,
		logger:   logging.Default().WithComponent("site_service"),
	}
}

func (s *SiteServiceImpl) RegionalSettings(ctx context.Context) (*sharepoint.RegionalSettings, error) {
	return s.regional.RegionalSettings(ctx)
}

func (s *SiteServiceImpl) TimeZones(ctx context.Context) ([]sharepoint.TimeZone, error) {
	return s.regional.TimeZones(ctx)
}

// Follow starts following actor.
func (s *SiteServiceImpl) Follow(ctx context.Context, actor sharepoint.SocialActorInfo) (sharepoint.SocialFollowResult, error) {
	if err := validateActor(actor); err != nil {
		return sharepoint.SocialFollowResultInternalError, err
	}
	result, err := s.social.Follow(ctx, actor)
	if err != nil {
		return result, err
	}
	s.logger.WithContext(ctx).SharePoint("Follow requested", "actor_type", int(actor.ActorType), "result", result.String())
	return result, nil
}

func (s *SiteServiceImpl) IsFollowed(ctx context.Context, actor sharepoint.SocialActorInfo) (bool, error) {
	if err := validateActor(actor); err != nil {
		return false, err
	}
	return s.social.IsFollowed(ctx, actor)
}

// StopFollowing stops following actor.
func (s *SiteServiceImpl) StopFollowing(ctx context.Context, actor sharepoint.SocialActorInfo) error {
	if err := validateActor(actor); err != nil {
		return err
	}
	if err := s.social.StopFollowing(ctx, actor); err != nil {
		return err
	}
	s.logger.WithContext(ctx).SharePoint("Stopped following", "actor_type", int(actor.ActorType))
	return nil
}

// WebParts lists the available web parts. Components whose manifest has no
// preconfigured entry cannot be placed and are skipped.
func (s *SiteServiceImpl) WebParts(ctx context.Context) ([]WebPartInfo, error) {
	components, err := s.webParts.GetClientSideWebParts(ctx)
	if err != nil {
		return nil, err
	}
	logger := s.logger.WithContext(ctx)
	out := make([]WebPartInfo, 0, len(components))
	for _, component := range components {
		part, err := clientside.NewWebPartFromComponent(component)
		if err != nil {
			logger.Debug("Skipping web part", "component", component.Name, "error", err)
			continue
		}
		out = append(out, WebPartInfo{ID: part.WebPartID(), Title: part.Title(), Description: part.Description()})
	}
	return out, nil
}

// validateActor checks that the identifier the actor type needs is present.
func validateActor(actor sharepoint.SocialActorInfo) error {
	err := validation.ValidateStruct(&actor,
		validation.Field(&actor.ActorType, validation.In(
			sharepoint.SocialActorTypeUser,
			sharepoint.SocialActorTypeDocument,
			sharepoint.SocialActorTypeSite,
			sharepoint.SocialActorTypeTag,
		)),
		validation.Field(&actor.AccountName, validation.When(actor.ActorType == sharepoint.SocialActorTypeUser, validation.Required)),
		validation.Field(&actor.ContentURI, validation.When(
			actor.ActorType == sharepoint.SocialActorTypeDocument || actor.ActorType == sharepoint.SocialActorTypeSite,
			validation.Required)),
		validation.Field(&actor.TagGUID, validation.When(actor.ActorType == sharepoint.SocialActorTypeTag, validation.Required)),
	)
	if err != nil {
		return fmt.Errorf("%w: actor: %v", ErrInvalidRequest, err)
	}
	return nil
}
