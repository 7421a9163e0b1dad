package domain

import (
	"regexp"
	"strings"
)

// ShipmentStatus represents the delivery state of a shipment
type ShipmentStatus string

const (
	StatusPending        ShipmentStatus = "pending"
	StatusPickedUp       ShipmentStatus = "picked_up"
	StatusInTransit      ShipmentStatus = "in_transit"
	StatusOutForDelivery ShipmentStatus = "out_for_delivery"
	StatusDelivered      ShipmentStatus = "delivered"
	StatusDelayed        ShipmentStatus = "delayed"
	StatusCancelled      ShipmentStatus = "cancelled"
)

// Valid checks if the status is one of the enumerated values
func (s ShipmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPickedUp, StatusInTransit, StatusOutForDelivery,
		StatusDelivered, StatusDelayed, StatusCancelled:
		return true
	}
	return false
}

// ShipmentPriority represents the urgency of a shipment
type ShipmentPriority string

const (
	PriorityLow      ShipmentPriority = "low"
	PriorityMedium   ShipmentPriority = "medium"
	PriorityHigh     ShipmentPriority = "high"
	PriorityCritical ShipmentPriority = "critical"
)

// Valid checks if the priority is one of the enumerated values
func (p ShipmentPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// ShipmentType represents the service class of a shipment
type ShipmentType string

const (
	TypeStandard  ShipmentType = "standard"
	TypeExpress   ShipmentType = "express"
	TypeOvernight ShipmentType = "overnight"
	TypeFreight   ShipmentType = "freight"
	TypeLTL       ShipmentType = "ltl"
)

// Valid checks if the type is one of the enumerated values
func (t ShipmentType) Valid() bool {
	switch t {
	case TypeStandard, TypeExpress, TypeOvernight, TypeFreight, TypeLTL:
		return true
	}
	return false
}

// Role represents the authorization level of a user
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Valid checks if the role is one of the enumerated values
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// Field length limits
const (
	MaxLocationLen = 200
	MaxNotesLen    = 500
)

// SortDirection represents a sort order
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort represents a sort request in wire field naming
type Sort struct {
	Field     string
	Direction SortDirection
}

// DefaultSort is applied when the caller sends no sort input
var DefaultSort = Sort{Field: "createdAt", Direction: SortDesc}

// DefaultLimit is the page size when the caller sends no limit
const DefaultLimit = 10

// ShipmentFilter holds the list operation's filter predicates.
// Status/Carrier/Priority/Type are exact-match equality constraints
// combined with AND. Search is a case-insensitive substring match ORed
// across tracking number, origin, destination, shipper and consignee,
// then ANDed with the rest.
type ShipmentFilter struct {
	Status   string
	Carrier  string
	Priority string
	Type     string
	Search   string
}

// Empty returns true if no predicate is set
func (f ShipmentFilter) Empty() bool {
	return f.Status == "" && f.Carrier == "" && f.Priority == "" && f.Type == "" && f.Search == ""
}

// ListQuery is the store-level list request. SortColumn is in storage
// (snake_case) naming; the Gateway translates wire names before handing
// the query to a repository.
type ListQuery struct {
	Filter     ShipmentFilter
	SortColumn string
	SortDesc   bool
	Offset     int
	Limit      int
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail checks basic email syntax
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}
