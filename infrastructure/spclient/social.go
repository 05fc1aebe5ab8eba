package spclient

import (
	"context"
	"fmt"

	"sppages/domain/contracts"
	"sppages/domain/sharepoint"
)

var _ contracts.SocialFollower = (*Social)(nil)

// Social is the social.following endpoint of the current user.
type Social struct {
	client *Client
	url    string
}

// URL returns the REST URL of the endpoint.
func (s *Social) URL() string {
	return s.url
}

// Follow starts following actor.
func (s *Social) Follow(ctx context.Context, actor sharepoint.SocialActorInfo) (sharepoint.SocialFollowResult, error) {
	data, err := s.client.do(ctx, methodPost, joinPath(s.url, "follow"), actorRequestBody(actor), verboseHeaders)
	if err != nil {
		return sharepoint.SocialFollowResultInternalError, fmt.Errorf("follow: %w", err)
	}
	result, err := decodeValue[int](data, "Follow")
	if err != nil {
		return sharepoint.SocialFollowResultInternalError, err
	}
	return sharepoint.SocialFollowResult(result), nil
}

// IsFollowed reports whether the current user follows actor.
func (s *Social) IsFollowed(ctx context.Context, actor sharepoint.SocialActorInfo) (bool, error) {
	data, err := s.client.do(ctx, methodPost, joinPath(s.url, "isfollowed"), actorRequestBody(actor), verboseHeaders)
	if err != nil {
		return false, fmt.Errorf("is followed: %w", err)
	}
	return decodeValue[bool](data, "IsFollowed")
}

// StopFollowing stops following actor.
func (s *Social) StopFollowing(ctx context.Context, actor sharepoint.SocialActorInfo) error {
	if _, err := s.client.do(ctx, methodPost, joinPath(s.url, "stopfollowing"), actorRequestBody(actor), verboseHeaders); err != nil {
		return fmt.Errorf("stop following: %w", err)
	}
	return nil
}

// My returns the current user's social data.
func (s *Social) My() *MySocial {
	return &MySocial{client: s.client, url: joinPath(s.url, "my")}
}

func actorRequestBody(actor sharepoint.SocialActorInfo) map[string]any {
	info := map[string]any{
		"ActorType": int(actor.ActorType),
		"Id":        nil,
	}
	if actor.AccountName != "" {
		info["AccountName"] = actor.AccountName
	}
	if actor.ContentURI != "" {
		info["ContentUri"] = actor.ContentURI
	}
	if actor.ID != "" {
		info["Id"] = actor.ID
	}
	if actor.TagGUID != "" {
		info["TagGuid"] = actor.TagGUID
	}
	return map[string]any{"actor": withMetadata("SP.Social.SocialActorInfo", info)}
}

// MySocial is the social.following/my endpoint.
type MySocial struct {
	client *Client
	url    string
}

// URL returns the REST URL of the endpoint.
func (m *MySocial) URL() string {
	return m.url
}

// Followed lists the actors of the given types the current user follows.
func (m *MySocial) Followed(ctx context.Context, types sharepoint.SocialActorTypes) ([]sharepoint.SocialActor, error) {
	endpoint := joinPath(m.url, fmt.Sprintf("followed(types=%d)", int(types)))
	data, err := m.client.do(ctx, methodGet, endpoint, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get followed actors: %w", err)
	}
	actors, err := decodeCollection[sharepoint.SocialActor](data)
	if err != nil {
		return nil, fmt.Errorf("decode followed actors: %w", err)
	}
	return actors, nil
}
