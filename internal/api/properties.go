package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Sachintlgt/brd-admin-sub000/internal/dtos"
)

// -----------------------------------------------------------------------------
// GET /properties
// -----------------------------------------------------------------------------
func (c *Client) ListProperties(ctx context.Context, q dtos.ListQuery) (*dtos.PropertyPage, error) {
	var resp struct {
		Success    bool                  `json:"success"`
		Message    string                `json:"message"`
		Data       []dtos.Property       `json:"data"`
		Pagination dtos.ServerPagination `json:"pagination"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/properties", listQueryValues(q), nil, &resp); err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("list properties: %w", &APIError{Status: http.StatusOK, Message: resp.Message})
	}
	return &dtos.PropertyPage{
		Properties: resp.Data,
		Pagination: resp.Pagination.Remap(),
	}, nil
}

func listQueryValues(q dtos.ListQuery) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Name != "" {
		v.Set("name", q.Name)
	}
	if q.Location != "" {
		v.Set("location", q.Location)
	}
	if q.IsActive != nil {
		v.Set("isActive", strconv.FormatBool(*q.IsActive))
	}
	if q.IsFeatured != nil {
		v.Set("isFeatured", strconv.FormatBool(*q.IsFeatured))
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sortOrder", q.SortOrder)
	}
	if q.MinPrice != nil {
		v.Set("minPrice", strconv.FormatFloat(*q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64))
	}
	if q.StaffID != "" {
		v.Set("staffId", q.StaffID)
	}
	return v
}

// -----------------------------------------------------------------------------
// GET /properties/:id
// -----------------------------------------------------------------------------
func (c *Client) GetProperty(ctx context.Context, id string) (*dtos.Property, error) {
	var data dtos.Property
	if _, err := c.unwrap(ctx, http.MethodGet, "/properties/"+id, nil, nil, &data); err != nil {
		return nil, fmt.Errorf("get property %s: %w", id, err)
	}
	return &data, nil
}

// -----------------------------------------------------------------------------
// POST /properties  (multipart)
// -----------------------------------------------------------------------------
func (c *Client) CreateProperty(ctx context.Context, payload *Payload) (*dtos.Property, error) {
	var env struct {
		Success bool          `json:"success"`
		Message string        `json:"message"`
		Data    dtos.Property `json:"data"`
	}
	if err := c.doMultipart(ctx, http.MethodPost, "/properties", payload, &env); err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("create property: %w", &APIError{Status: http.StatusOK, Message: env.Message})
	}
	return &env.Data, nil
}

// -----------------------------------------------------------------------------
// PATCH /properties/:id  (multipart, update mode)
// -----------------------------------------------------------------------------
func (c *Client) UpdateProperty(ctx context.Context, id string, payload *Payload) (*dtos.Property, error) {
	var env struct {
		Success bool          `json:"success"`
		Message string        `json:"message"`
		Data    dtos.Property `json:"data"`
	}
	if err := c.doMultipart(ctx, http.MethodPatch, "/properties/"+id, payload, &env); err != nil {
		return nil, fmt.Errorf("update property %s: %w", id, err)
	}
	if !env.Success {
		return nil, fmt.Errorf("update property %s: %w", id, &APIError{Status: http.StatusOK, Message: env.Message})
	}
	return &env.Data, nil
}

// -----------------------------------------------------------------------------
// DELETE /properties/:id
// -----------------------------------------------------------------------------
func (c *Client) DeleteProperty(ctx context.Context, id string) error {
	if _, err := c.unwrap(ctx, http.MethodDelete, "/properties/"+id, nil, nil, nil); err != nil {
		return fmt.Errorf("delete property %s: %w", id, err)
	}
	return nil
}

// -----------------------------------------------------------------------------
// PATCH /properties/:id/toggle-active
// -----------------------------------------------------------------------------
func (c *Client) ToggleActive(ctx context.Context, id string, isActive bool) (*dtos.Property, error) {
	var data dtos.Property
	body := map[string]bool{"isActive": isActive}
	if _, err := c.unwrap(ctx, http.MethodPatch, "/properties/"+id+"/toggle-active", nil, body, &data); err != nil {
		return nil, fmt.Errorf("toggle active %s: %w", id, err)
	}
	return &data, nil
}

// -----------------------------------------------------------------------------
// PATCH /properties/:id/toggle-featured
// -----------------------------------------------------------------------------
func (c *Client) ToggleFeatured(ctx context.Context, id string, isFeatured bool) (*dtos.Property, error) {
	var data dtos.Property
	body := map[string]bool{"isFeatured": isFeatured}
	if _, err := c.unwrap(ctx, http.MethodPatch, "/properties/"+id+"/toggle-featured", nil, body, &data); err != nil {
		return nil, fmt.Errorf("toggle featured %s: %w", id, err)
	}
	return &data, nil
}
