package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sppages/domain/sharepoint"
)

// MockRegionalSettingsReader implements contracts.RegionalSettingsReader for testing
type MockRegionalSettingsReader struct {
	mock.Mock
}

func (m *MockRegionalSettingsReader) RegionalSettings(ctx context.Context) (*sharepoint.RegionalSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sharepoint.RegionalSettings), args.Error(1)
}

func (m *MockRegionalSettingsReader) TimeZones(ctx context.Context) ([]sharepoint.TimeZone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sharepoint.TimeZone), args.Error(1)
}

// MockSocialFollower implements contracts.SocialFollower for testing
type MockSocialFollower struct {
	mock.Mock
}

func (m *MockSocialFollower) Follow(ctx context.Context, actor sharepoint.SocialActorInfo) (sharepoint.SocialFollowResult, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(sharepoint.SocialFollowResult), args.Error(1)
}

func (m *MockSocialFollower) IsFollowed(ctx context.Context, actor sharepoint.SocialActorInfo) (bool, error) {
	args := m.Called(ctx, actor)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialFollower) StopFollowing(ctx context.Context, actor sharepoint.SocialActorInfo) error {
	args := m.Called(ctx, actor)
	return args.Error(0)
}

// MockWebPartCatalog implements contracts.WebPartCatalog for testing
type MockWebPartCatalog struct {
	mock.Mock
}

func (m *MockWebPartCatalog) GetClientSideWebParts(ctx context.Context) ([]sharepoint.ClientSidePageComponent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sharepoint.ClientSidePageComponent), args.Error(1)
}
