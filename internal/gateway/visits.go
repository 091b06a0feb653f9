package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/caredesk/caredesk/internal/visit"
)

// SearchPatients looks patients up by name or MRN fragment. Callers coalesce
// rapid keystrokes through util.Debouncer; the gateway itself issues exactly
// one request per call.
func (c *Client) SearchPatients(ctx context.Context, query string) ([]visit.Patient, error) {
	q := url.Values{}
	q.Set("q", query)
	var out []visit.Patient
	if err := c.doJSON(ctx, http.MethodGet, "/api/patients", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetVisit loads an existing emergency visit.
func (c *Client) GetVisit(ctx context.Context, id string) (*visit.Visit, error) {
	var out visit.Visit
	if err := c.doJSON(ctx, http.MethodGet, "/api/visits/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateVisit persists a new visit and returns it with its assigned id.
func (c *Client) CreateVisit(ctx context.Context, v *visit.Visit) (*visit.Visit, error) {
	var out visit.Visit
	if err := c.doJSON(ctx, http.MethodPost, "/api/visits", nil, v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateVisit persists changes to an existing visit.
func (c *Client) UpdateVisit(ctx context.Context, v *visit.Visit) (*visit.Visit, error) {
	var out visit.Visit
	if err := c.doJSON(ctx, http.MethodPut, "/api/visits/"+v.ID, nil, v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveVisit creates or updates depending on whether the visit has an id.
func (c *Client) SaveVisit(ctx context.Context, v *visit.Visit) (*visit.Visit, error) {
	if v.ID == "" {
		return c.CreateVisit(ctx, v)
	}
	return c.UpdateVisit(ctx, v)
}
