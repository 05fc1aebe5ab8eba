package spclient

import (
	"context"
	"fmt"

	"sppages/domain/sharepoint"
)

// ContentTypes is an SP.ContentTypeCollection.
type ContentTypes struct {
	client *Client
	url    string
}

// URL returns the REST URL of the collection.
func (c *ContentTypes) URL() string {
	return c.url
}

// Get retrieves every content type.
func (c *ContentTypes) Get(ctx context.Context) ([]*sharepoint.ContentType, error) {
	data, err := c.client.do(ctx, methodGet, c.url, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get content types: %w", err)
	}
	items, err := decodeValidatedCollection[contentTypeJSON](data, "content types")
	if err != nil {
		return nil, err
	}
	out := make([]*sharepoint.ContentType, 0, len(items))
	for _, item := range items {
		out = append(out, item.toDomain())
	}
	return out, nil
}

// GetByID addresses a content type by its string id.
func (c *ContentTypes) GetByID(id string) *ContentType {
	return &ContentType{client: c.client, url: fmt.Sprintf("%s('%s')", c.url, literal(id))}
}

// ContentType is one SP.ContentType.
type ContentType struct {
	client *Client
	url    string
}

// URL returns the REST URL of the content type.
func (c *ContentType) URL() string {
	return c.url
}

// Get retrieves the content type.
func (c *ContentType) Get(ctx context.Context) (*sharepoint.ContentType, error) {
	data, err := c.client.do(ctx, methodGet, c.url, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get content type: %w", err)
	}
	ct, err := decodeValidated[contentTypeJSON](data, "content type")
	if err != nil {
		return nil, err
	}
	return ct.toDomain(), nil
}
