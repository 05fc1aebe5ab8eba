package spclient

import (
	"context"
	"fmt"
	"time"

	"sppages/domain/sharepoint"
)

// RegionalSettings is the SP.RegionalSettings resource of a web.
type RegionalSettings struct {
	client *Client
	url    string
}

// URL returns the REST URL of the regional settings.
func (r *RegionalSettings) URL() string {
	return r.url
}

// Get retrieves the regional settings.
func (r *RegionalSettings) Get(ctx context.Context) (*sharepoint.RegionalSettings, error) {
	data, err := r.client.do(ctx, methodGet, r.url, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get regional settings: %w", err)
	}
	var settings sharepoint.RegionalSettings
	if err := decodeEntity(data, &settings); err != nil {
		return nil, fmt.Errorf("decode regional settings: %w", err)
	}
	return &settings, nil
}

// InstalledLanguages returns the installed languages resource.
func (r *RegionalSettings) InstalledLanguages() *InstalledLanguages {
	return &InstalledLanguages{client: r.client, url: joinPath(r.url, "installedlanguages")}
}

// TimeZone returns the time zone of the web.
func (r *RegionalSettings) TimeZone() *TimeZone {
	return &TimeZone{client: r.client, url: joinPath(r.url, "timezone")}
}

// TimeZones returns every time zone known to the farm.
func (r *RegionalSettings) TimeZones() *TimeZones {
	return &TimeZones{client: r.client, url: joinPath(r.url, "timezones")}
}

// InstalledLanguages is the installed UI language set.
type InstalledLanguages struct {
	client *Client
	url    string
}

// URL returns the REST URL of the resource.
func (l *InstalledLanguages) URL() string {
	return l.url
}

// Get retrieves the installed languages.
func (l *InstalledLanguages) Get(ctx context.Context) ([]sharepoint.Language, error) {
	data, err := l.client.do(ctx, methodGet, l.url, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get installed languages: %w", err)
	}
	var payload struct {
		Items []sharepoint.Language `json:"Items"`
	}
	if err := decodeEntity(data, &payload); err != nil {
		return nil, fmt.Errorf("decode installed languages: %w", err)
	}
	if payload.Items == nil {
		// verbose responses nest the array one level deeper
		var verbose struct {
			Items struct {
				Results []sharepoint.Language `json:"results"`
			} `json:"Items"`
		}
		if err := decodeEntity(data, &verbose); err == nil {
			payload.Items = verbose.Items.Results
		}
	}
	return payload.Items, nil
}

// TimeZone is an SP.TimeZone resource.
type TimeZone struct {
	client *Client
	url    string
}

// URL returns the REST URL of the time zone.
func (t *TimeZone) URL() string {
	return t.url
}

// Get retrieves the time zone.
func (t *TimeZone) Get(ctx context.Context) (*sharepoint.TimeZone, error) {
	data, err := t.client.do(ctx, methodGet, t.url, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get time zone: %w", err)
	}
	var tz sharepoint.TimeZone
	if err := decodeEntity(data, &tz); err != nil {
		return nil, fmt.Errorf("decode time zone: %w", err)
	}
	return &tz, nil
}

// UTCToLocalTime converts a UTC instant into the time zone's wall clock time.
// The result is returned as SharePoint formats it, without an offset.
func (t *TimeZone) UTCToLocalTime(ctx context.Context, utc time.Time) (string, error) {
	return t.convert(ctx, "utctolocaltime", "UTCToLocalTime", utc.UTC().Format(time.RFC3339))
}

// LocalTimeToUTC converts a wall clock time of the time zone into UTC.
func (t *TimeZone) LocalTimeToUTC(ctx context.Context, local time.Time) (string, error) {
	return t.convert(ctx, "localtimetoutc", "LocalTimeToUTC", local.Format("2006-01-02T15:04:05"))
}

func (t *TimeZone) convert(ctx context.Context, fn, resultName, value string) (string, error) {
	endpoint := joinPath(t.url, fmt.Sprintf("%s('%s')", fn, literal(value)))
	data, err := t.client.do(ctx, methodPost, endpoint, nil, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", fn, err)
	}
	return decodeValue[string](data, resultName)
}

// TimeZones is the SP.TimeZoneCollection resource.
type TimeZones struct {
	client *Client
	url    string
}

// URL returns the REST URL of the collection.
func (t *TimeZones) URL() string {
	return t.url
}

// Get retrieves every time zone.
func (t *TimeZones) Get(ctx context.Context) ([]sharepoint.TimeZone, error) {
	data, err := t.client.do(ctx, methodGet, t.url, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get time zones: %w", err)
	}
	zones, err := decodeCollection[sharepoint.TimeZone](data)
	if err != nil {
		return nil, fmt.Errorf("decode time zones: %w", err)
	}
	return zones, nil
}

// GetByID retrieves one time zone by its SharePoint id.
func (t *TimeZones) GetByID(ctx context.Context, id int) (*sharepoint.TimeZone, error) {
	endpoint := joinPath(t.url, fmt.Sprintf("GetById(%d)", id))
	data, err := t.client.do(ctx, methodPost, endpoint, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get time zone %d: %w", id, err)
	}
	var tz sharepoint.TimeZone
	if err := decodeEntity(data, &tz); err != nil {
		return nil, fmt.Errorf("decode time zone: %w", err)
	}
	return &tz, nil
}
