package spclient

import (
	"context"
	"fmt"

	"sppages/domain/sharepoint"
)

// RoleAssignments is the SP.RoleAssignmentCollection of a securable object.
type RoleAssignments struct {
	client *Client
	url    string
}

// URL returns the REST URL of the collection.
func (r *RoleAssignments) URL() string {
	return r.url
}

// Get retrieves every role assignment with its member and bindings.
func (r *RoleAssignments) Get(ctx context.Context) ([]*sharepoint.RoleAssignment, error) {
	data, err := r.client.do(ctx, methodGet, r.url+"?$expand=Member,RoleDefinitionBindings", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get role assignments: %w", err)
	}
	items, err := decodeValidatedCollection[roleAssignmentJSON](data, "role assignments")
	if err != nil {
		return nil, err
	}
	out := make([]*sharepoint.RoleAssignment, 0, len(items))
	for _, item := range items {
		out = append(out, item.toDomain())
	}
	return out, nil
}

// GetByID addresses the assignment of principal id.
func (r *RoleAssignments) GetByID(id int) *RoleAssignment {
	return &RoleAssignment{client: r.client, url: fmt.Sprintf("%s(%d)", r.url, id)}
}

// Add grants roleDefID to principalID.
func (r *RoleAssignments) Add(ctx context.Context, principalID, roleDefID int) error {
	endpoint := joinPath(r.url, fmt.Sprintf("addroleassignment(principalid=%d,roledefid=%d)", principalID, roleDefID))
	if _, err := r.client.do(ctx, methodPost, endpoint, nil, nil); err != nil {
		return fmt.Errorf("add role assignment: %w", err)
	}
	return nil
}

// Remove revokes roleDefID from principalID.
func (r *RoleAssignments) Remove(ctx context.Context, principalID, roleDefID int) error {
	endpoint := joinPath(r.url, fmt.Sprintf("removeroleassignment(principalid=%d,roledefid=%d)", principalID, roleDefID))
	if _, err := r.client.do(ctx, methodPost, endpoint, nil, nil); err != nil {
		return fmt.Errorf("remove role assignment: %w", err)
	}
	return nil
}

// RoleAssignment is one SP.RoleAssignment.
type RoleAssignment struct {
	client *Client
	url    string
}

// URL returns the REST URL of the assignment.
func (r *RoleAssignment) URL() string {
	return r.url
}

// Groups returns the groups resource of the assignment.
func (r *RoleAssignment) Groups() *Principals {
	return &Principals{client: r.client, url: joinPath(r.url, "groups")}
}

// Bindings returns the role definitions bound by the assignment.
func (r *RoleAssignment) Bindings() *RoleDefinitions {
	return &RoleDefinitions{client: r.client, url: joinPath(r.url, "roledefinitionbindings")}
}

// Delete removes the assignment.
func (r *RoleAssignment) Delete(ctx context.Context) error {
	if _, err := r.client.do(ctx, methodDelete, r.url, nil, nil); err != nil {
		return fmt.Errorf("delete role assignment: %w", err)
	}
	return nil
}

// Principals is a collection of users or groups.
type Principals struct {
	client *Client
	url    string
}

// URL returns the REST URL of the collection.
func (p *Principals) URL() string {
	return p.url
}

// Get retrieves the principals.
func (p *Principals) Get(ctx context.Context) ([]*sharepoint.Principal, error) {
	data, err := p.client.do(ctx, methodGet, p.url, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get principals: %w", err)
	}
	items, err := decodeCollection[principalJSON](data)
	if err != nil {
		return nil, fmt.Errorf("decode principals: %w", err)
	}
	out := make([]*sharepoint.Principal, 0, len(items))
	for _, item := range items {
		out = append(out, item.toDomain())
	}
	return out, nil
}

// RoleDefinitions is the SP.RoleDefinitionCollection of a web.
type RoleDefinitions struct {
	client *Client
	url    string
}

// URL returns the REST URL of the collection.
func (r *RoleDefinitions) URL() string {
	return r.url
}

// Get retrieves every role definition.
func (r *RoleDefinitions) Get(ctx context.Context) ([]*sharepoint.RoleDefinition, error) {
	data, err := r.client.do(ctx, methodGet, r.url, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get role definitions: %w", err)
	}
	items, err := decodeValidatedCollection[roleDefinitionJSON](data, "role definitions")
	if err != nil {
		return nil, err
	}
	out := make([]*sharepoint.RoleDefinition, 0, len(items))
	for _, item := range items {
		out = append(out, item.toDomain())
	}
	return out, nil
}

// GetByID addresses a role definition by id.
func (r *RoleDefinitions) GetByID(id int) *RoleDefinition {
	return &RoleDefinition{client: r.client, url: joinPath(r.url, fmt.Sprintf("getById(%d)", id))}
}

// GetByName addresses a role definition by name.
func (r *RoleDefinitions) GetByName(name string) *RoleDefinition {
	return &RoleDefinition{client: r.client, url: joinPath(r.url, fmt.Sprintf("getbyname('%s')", literal(name)))}
}

// GetByType addresses the role definition of an SP.RoleType.
func (r *RoleDefinitions) GetByType(roleType int) *RoleDefinition {
	return &RoleDefinition{client: r.client, url: joinPath(r.url, fmt.Sprintf("getbytype(%d)", roleType))}
}

// Add creates a permission level on the web.
func (r *RoleDefinitions) Add(ctx context.Context, name, description string, order int, perms sharepoint.BasePermissions) (*sharepoint.RoleDefinition, error) {
	body := withMetadata("SP.RoleDefinition", map[string]any{
		"BasePermissions": withMetadata("SP.BasePermissions", map[string]any{
			"High": perms.High,
			"Low":  perms.Low,
		}),
		"Description": description,
		"Name":        name,
		"Order":       order,
	})
	data, err := r.client.do(ctx, methodPost, r.url, body, verboseHeaders)
	if err != nil {
		return nil, fmt.Errorf("add role definition %q: %w", name, err)
	}
	created, err := decodeValidated[roleDefinitionJSON](data, "role definition")
	if err != nil {
		return nil, err
	}
	return created.toDomain(), nil
}

// RoleDefinition is one SP.RoleDefinition.
type RoleDefinition struct {
	client *Client
	url    string
}

// URL returns the REST URL of the role definition.
func (r *RoleDefinition) URL() string {
	return r.url
}

// Get retrieves the role definition.
func (r *RoleDefinition) Get(ctx context.Context) (*sharepoint.RoleDefinition, error) {
	data, err := r.client.do(ctx, methodGet, r.url, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get role definition: %w", err)
	}
	rd, err := decodeValidated[roleDefinitionJSON](data, "role definition")
	if err != nil {
		return nil, err
	}
	return rd.toDomain(), nil
}

// Delete removes the role definition.
func (r *RoleDefinition) Delete(ctx context.Context) error {
	if _, err := r.client.do(ctx, methodDelete, r.url, nil, nil); err != nil {
		return fmt.Errorf("delete role definition: %w", err)
	}
	return nil
}
