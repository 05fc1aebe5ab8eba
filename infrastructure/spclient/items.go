package spclient

import (
	"context"
	"encoding/json"
	"fmt"

	"sppages/domain/contracts"
	"sppages/domain/sharepoint"
)

// Item is an SP.ListItem resource.
type Item struct {
	client *Client
	url    string
	listID string
	id     int
}

var _ contracts.ListItem = (*Item)(nil)

// URL returns the REST URL of the item.
func (i *Item) URL() string {
	return i.url
}

// Fields returns the raw field values of the item.
func (i *Item) Fields(ctx context.Context) (map[string]any, error) {
	data, err := i.client.do(ctx, methodGet, i.url, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get item fields: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(unwrapVerbose(data), &fields); err != nil {
		return nil, fmt.Errorf("%w: item fields: %v", sharepoint.ErrMalformedResponse, err)
	}
	delete(fields, "__metadata")
	return fields, nil
}

// Update merges fields into the item. eTag is sent as If-Match; "*" or "" is unconditional.
// A stale eTag fails with sharepoint.ErrETagMismatch.
func (i *Item) Update(ctx context.Context, fields map[string]any, eTag string) (*sharepoint.ItemUpdateResult, error) {
	if eTag == "" {
		eTag = "*"
	}
	headers := map[string]string{
		"IF-Match":      eTag,
		"X-HTTP-Method": "MERGE",
	}
	if _, err := i.client.do(ctx, methodMerge, i.url, fields, headers); err != nil {
		return nil, fmt.Errorf("update item %d: %w", i.id, err)
	}
	return &sharepoint.ItemUpdateResult{ListID: i.listID, ID: i.id, Fields: fields}, nil
}

// SetCommentsDisabled toggles page comments on the item.
func (i *Item) SetCommentsDisabled(ctx context.Context, disabled bool) error {
	body := map[string]any{"value": disabled}
	if _, err := i.client.do(ctx, methodPost, joinPath(i.url, "SetCommentsDisabled"), body, nil); err != nil {
		return fmt.Errorf("set comments disabled: %w", err)
	}
	return nil
}
