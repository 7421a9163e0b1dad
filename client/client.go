// Package client is a small Go consumer for the ShipFlow operation
// gateway. It speaks the gateway's single-POST wire shape and exposes
// typed helpers for each operation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Shipment is the wire shape returned by the gateway
type Shipment struct {
	ID                string   `json:"id"`
	TrackingNumber    string   `json:"trackingNumber"`
	Status            string   `json:"status"`
	Origin            string   `json:"origin"`
	Destination       string   `json:"destination"`
	Carrier           string   `json:"carrier"`
	Priority          string   `json:"priority"`
	Type              string   `json:"type"`
	Weight            *float64 `json:"weight"`
	Cost              *float64 `json:"cost"`
	EstimatedDelivery *string  `json:"estimatedDelivery"`
	ActualDelivery    *string  `json:"actualDelivery"`
	Shipper           *string  `json:"shipper"`
	Consignee         *string  `json:"consignee"`
	CustomerName      *string  `json:"customerName"`
	CustomerEmail     *string  `json:"customerEmail"`
	CustomerPhone     *string  `json:"customerPhone"`
	Dimensions        *string  `json:"dimensions"`
	Notes             *string  `json:"notes"`
	CreatedBy         *string  `json:"createdBy"`
	CreatedAt         string   `json:"createdAt"`
	UpdatedAt         string   `json:"updatedAt"`
}

// PageInfo mirrors the gateway's pagination block
type PageInfo struct {
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	TotalCount      int64 `json:"totalCount"`
	TotalPages      int   `json:"totalPages"`
	CurrentPage     int   `json:"currentPage"`
}

// ShipmentConnection is a page of shipments
type ShipmentConnection struct {
	Edges    []*Shipment `json:"edges"`
	PageInfo PageInfo    `json:"pageInfo"`
}

// Profile is the caller's own account record
type Profile struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FullName  *string `json:"fullName"`
	AvatarURL *string `json:"avatarUrl"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// RoleRecord is the caller's role assignment
type RoleRecord struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// Error is a gateway error with its HTTP status
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway error (status %d): %s", e.Status, e.Message)
}

// Client talks to one gateway endpoint with one bearer token
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token sent on every request
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the given gateway endpoint URL
// (e.g. "http://localhost:3000/graphql").
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type wireRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

type wireError struct {
	Message string `json:"message"`
}

type wireResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []wireError                `json:"errors"`
}

// Do posts one operation and decodes the payload under the operation
// key into out. out may be nil to discard the payload.
func (c *Client) Do(ctx context.Context, query, operationName string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(wireRequest{
		Query:         query,
		OperationName: operationName,
		Variables:     variables,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	var wire wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if len(wire.Errors) > 0 {
		return &Error{Status: resp.StatusCode, Message: wire.Errors[0].Message}
	}
	if resp.StatusCode != http.StatusOK {
		return &Error{Status: resp.StatusCode, Message: resp.Status}
	}

	if out == nil {
		return nil
	}
	payload, ok := wire.Data[operationName]
	if !ok {
		return fmt.Errorf("response missing %q payload", operationName)
	}
	return json.Unmarshal(payload, out)
}

// ShipmentsParams selects, orders and pages the shipment list
type ShipmentsParams struct {
	Filter map[string]interface{}
	Sort   map[string]interface{}
	Page   int
	Limit  int
}

const shipmentsQuery = `query shipments($filter: ShipmentFilter, $sort: ShipmentSort, $page: Int, $limit: Int) { shipments(filter: $filter, sort: $sort, page: $page, limit: $limit) { edges pageInfo } }`

// Shipments fetches one page of shipments
func (c *Client) Shipments(ctx context.Context, params ShipmentsParams) (*ShipmentConnection, error) {
	vars := map[string]interface{}{}
	if params.Filter != nil {
		vars["filter"] = params.Filter
	}
	if params.Sort != nil {
		vars["sort"] = params.Sort
	}
	if params.Page > 0 {
		vars["page"] = params.Page
	}
	if params.Limit > 0 {
		vars["limit"] = params.Limit
	}

	var conn ShipmentConnection
	if err := c.Do(ctx, shipmentsQuery, "shipments", vars, &conn); err != nil {
		return nil, err
	}
	return &conn, nil
}

// Shipment fetches a single shipment by id; nil when it does not exist
func (c *Client) Shipment(ctx context.Context, id string) (*Shipment, error) {
	var s *Shipment
	err := c.Do(ctx, `query shipment($id: ID!) { shipment(id: $id) }`, "shipment",
		map[string]interface{}{"id": id}, &s)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Me fetches the caller's profile; nil when no profile row exists
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var p *Profile
	if err := c.Do(ctx, `query me { me }`, "me", nil, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// MyRole fetches the caller's role record; nil when none is assigned
func (c *Client) MyRole(ctx context.Context) (*RoleRecord, error) {
	var r *RoleRecord
	if err := c.Do(ctx, `query myRole { myRole }`, "myRole", nil, &r); err != nil {
		return nil, err
	}
	return r, nil
}

// CreateShipment creates a shipment from camelCase input fields
func (c *Client) CreateShipment(ctx context.Context, input map[string]interface{}) (*Shipment, error) {
	var s Shipment
	err := c.Do(ctx, `mutation createShipment($input: ShipmentInput!) { createShipment(input: $input) }`,
		"createShipment", map[string]interface{}{"input": input}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateShipment applies a partial update to a shipment
func (c *Client) UpdateShipment(ctx context.Context, id string, input map[string]interface{}) (*Shipment, error) {
	var s Shipment
	err := c.Do(ctx, `mutation updateShipment($id: ID!, $input: ShipmentUpdateInput!) { updateShipment(id: $id, input: $input) }`,
		"updateShipment", map[string]interface{}{"id": id, "input": input}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteShipment deletes a shipment by id
func (c *Client) DeleteShipment(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := c.Do(ctx, `mutation deleteShipment($id: ID!) { deleteShipment(id: $id) }`,
		"deleteShipment", map[string]interface{}{"id": id}, &ok)
	if err != nil {
		return false, err
	}
	return ok, nil
}
