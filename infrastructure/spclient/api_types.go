package spclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"sppages/domain/sharepoint"
)

// Response shapes of the endpoints used by the client. Each validates the fields
// the domain relies on; a missing required field fails the call.

type webJSON struct {
	ID          string `json:"Id"`
	Title       string `json:"Title"`
	URL         string `json:"Url"`
	WebTemplate string `json:"WebTemplate"`
}

func (w webJSON) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.ID, validation.Required),
		validation.Field(&w.URL, validation.Required),
	)
}

func (w webJSON) toDomain() *sharepoint.Web {
	return &sharepoint.Web{ID: w.ID, URL: w.URL, Title: w.Title, Template: w.WebTemplate}
}

type listJSON struct {
	ID                         string `json:"Id"`
	Title                      string `json:"Title"`
	BaseTemplate               int    `json:"BaseTemplate"`
	ItemCount                  int    `json:"ItemCount"`
	Hidden                     bool   `json:"Hidden"`
	ListItemEntityTypeFullName string `json:"ListItemEntityTypeFullName"`
	RootFolder                 struct {
		ServerRelativeURL string `json:"ServerRelativeUrl"`
	} `json:"RootFolder"`
}

func (l listJSON) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.ID, validation.Required),
	)
}

func (l listJSON) toDomain() *sharepoint.List {
	return &sharepoint.List{
		ID:                         l.ID,
		Title:                      l.Title,
		BaseTemplate:               l.BaseTemplate,
		ItemCount:                  l.ItemCount,
		Hidden:                     l.Hidden,
		RootFolderServerRelURL:     l.RootFolder.ServerRelativeURL,
		ListItemEntityTypeFullName: l.ListItemEntityTypeFullName,
	}
}

type fileJSON struct {
	UniqueID          string      `json:"UniqueId"`
	Name              string      `json:"Name"`
	ServerRelativeURL string      `json:"ServerRelativeUrl"`
	Length            json.Number `json:"Length"`
	TimeCreated       *time.Time  `json:"TimeCreated"`
	TimeLastModified  *time.Time  `json:"TimeLastModified"`
}

func (f fileJSON) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.ServerRelativeURL, validation.Required),
	)
}

func (f fileJSON) toDomain() *sharepoint.File {
	length, _ := f.Length.Int64()
	return &sharepoint.File{
		UniqueID:          f.UniqueID,
		Name:              f.Name,
		ServerRelativeURL: f.ServerRelativeURL,
		Length:            length,
		TimeCreated:       f.TimeCreated,
		TimeLastModified:  f.TimeLastModified,
	}
}

type serverRelativePathJSON struct {
	ServerRelativePath *struct {
		DecodedURL string `json:"DecodedUrl"`
	} `json:"ServerRelativePath"`
}

func (p serverRelativePathJSON) Validate() error {
	if p.ServerRelativePath == nil {
		return errors.New("ServerRelativePath: cannot be blank")
	}
	return validation.Validate(p.ServerRelativePath.DecodedURL, validation.Required.Error("DecodedUrl cannot be blank"))
}

type itemRefJSON struct {
	ID         int    `json:"Id"`
	GUID       string `json:"GUID"`
	ParentList struct {
		ID string `json:"Id"`
	} `json:"ParentList"`
}

func (i itemRefJSON) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.ID, validation.Required),
		validation.Field(&i.ParentList, validation.By(func(any) error {
			return validation.Validate(i.ParentList.ID, validation.Required)
		})),
	)
}

type principalJSON struct {
	ID            int64  `json:"Id"`
	Title         string `json:"Title"`
	LoginName     string `json:"LoginName"`
	PrincipalType int64  `json:"PrincipalType"`
	Email         string `json:"Email"`
}

func (p principalJSON) toDomain() *sharepoint.Principal {
	return &sharepoint.Principal{
		ID:            p.ID,
		PrincipalType: p.PrincipalType,
		Title:         p.Title,
		LoginName:     p.LoginName,
		Email:         p.Email,
	}
}

type roleDefinitionJSON struct {
	ID              int64                      `json:"Id"`
	Name            string                     `json:"Name"`
	Description     string                     `json:"Description"`
	Order           int                        `json:"Order"`
	RoleTypeKind    int                        `json:"RoleTypeKind"`
	Hidden          bool                       `json:"Hidden"`
	BasePermissions sharepoint.BasePermissions `json:"BasePermissions"`
}

func (r roleDefinitionJSON) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Name, validation.Required),
	)
}

func (r roleDefinitionJSON) toDomain() *sharepoint.RoleDefinition {
	return &sharepoint.RoleDefinition{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		Order:           r.Order,
		RoleTypeKind:    r.RoleTypeKind,
		Hidden:          r.Hidden,
		BasePermissions: r.BasePermissions,
	}
}

type roleAssignmentJSON struct {
	PrincipalID            int64                 `json:"PrincipalId"`
	Member                 *principalJSON        `json:"Member"`
	RoleDefinitionBindings []*roleDefinitionJSON `json:"RoleDefinitionBindings"`
}

func (r roleAssignmentJSON) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PrincipalID, validation.Required),
	)
}

func (r roleAssignmentJSON) toDomain() *sharepoint.RoleAssignment {
	out := &sharepoint.RoleAssignment{
		PrincipalID:     r.PrincipalID,
		RoleDefinitions: make([]*sharepoint.RoleDefinition, 0, len(r.RoleDefinitionBindings)),
	}
	if r.Member != nil {
		out.Member = r.Member.toDomain()
	}
	for _, rd := range r.RoleDefinitionBindings {
		if rd != nil {
			out.RoleDefinitions = append(out.RoleDefinitions, rd.toDomain())
		}
	}
	return out
}

type contentTypeJSON struct {
	StringID string `json:"StringId"`
	ID       *struct {
		StringValue string `json:"StringValue"`
	} `json:"Id"`
	Name        string `json:"Name"`
	Description string `json:"Description"`
	Group       string `json:"Group"`
	Hidden      bool   `json:"Hidden"`
	ReadOnly    bool   `json:"ReadOnly"`
}

func (c contentTypeJSON) id() string {
	if c.StringID != "" {
		return c.StringID
	}
	if c.ID != nil {
		return c.ID.StringValue
	}
	return ""
}

func (c contentTypeJSON) Validate() error {
	return validation.Validate(c.id(), validation.Required.Error("StringId cannot be blank"))
}

func (c contentTypeJSON) toDomain() *sharepoint.ContentType {
	return &sharepoint.ContentType{
		ID:          c.id(),
		Name:        c.Name,
		Description: c.Description,
		Group:       c.Group,
		Hidden:      c.Hidden,
		ReadOnly:    c.ReadOnly,
	}
}

// decodeValidated decodes a single entity and runs its validation rules.
func decodeValidated[T validation.Validatable](data []byte, what string) (T, error) {
	var v T
	if err := decodeEntity(data, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", what, err)
	}
	if err := v.Validate(); err != nil {
		return v, fmt.Errorf("%w: %s: %v", sharepoint.ErrMalformedResponse, what, err)
	}
	return v, nil
}

// decodeValidatedCollection decodes a collection and validates every element.
func decodeValidatedCollection[T validation.Validatable](data []byte, what string) ([]T, error) {
	items, err := decodeCollection[T](data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", what, err)
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %v", sharepoint.ErrMalformedResponse, what, i, err)
		}
	}
	return items, nil
}
