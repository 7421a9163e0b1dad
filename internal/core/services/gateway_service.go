package services

import (
	"context"
	"fmt"

	"tms-shipflow/internal/adapters/persistence/repositories"
	"tms-shipflow/internal/core/domain"
	"tms-shipflow/internal/pkg/gqlparse"
)

// Recognized operations
const (
	OpShipments      = "shipments"
	OpShipment       = "shipment"
	OpMe             = "me"
	OpMyRole         = "myRole"
	OpCreateShipment = "createShipment"
	OpUpdateShipment = "updateShipment"
	OpDeleteShipment = "deleteShipment"
)

var knownOps = map[string]bool{
	OpShipments:      true,
	OpShipment:       true,
	OpMe:             true,
	OpMyRole:         true,
	OpCreateShipment: true,
	OpUpdateShipment: true,
	OpDeleteShipment: true,
}

var mutatingOps = map[string]bool{
	OpCreateShipment: true,
	OpUpdateShipment: true,
	OpDeleteShipment: true,
}

// GatewayRequest is one raw operation request
type GatewayRequest struct {
	Query         string
	OperationName string
	Variables     map[string]interface{}
}

// Gateway dispatches the seven recognized operations, gates them by
// caller identity and role, and reshapes rows into wire form. It is
// stateless between calls; all state lives in the repositories.
type Gateway struct {
	shipments repositories.ShipmentRepository
	profiles  repositories.ProfileRepository
	roles     repositories.UserRoleRepository
}

// NewGateway creates a new gateway with explicit store handles
func NewGateway(
	shipments repositories.ShipmentRepository,
	profiles repositories.ProfileRepository,
	roles repositories.UserRoleRepository,
) *Gateway {
	return &Gateway{
		shipments: shipments,
		profiles:  profiles,
		roles:     roles,
	}
}

// Execute runs one operation and returns the success payload keyed by
// operation name. callerID is the authenticated user id, empty for
// anonymous callers.
func (g *Gateway) Execute(ctx context.Context, req *GatewayRequest, callerID string) (map[string]interface{}, error) {
	op, err := gqlparse.Operation(req.Query, req.OperationName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnrecognizedOperation, err)
	}
	if !knownOps[op] {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnrecognizedOperation, op)
	}

	if callerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if mutatingOps[op] {
		if err := g.requireAdmin(ctx, callerID); err != nil {
			return nil, err
		}
	}

	vars := req.Variables
	if vars == nil {
		vars = map[string]interface{}{}
	}

	var result interface{}
	switch op {
	case OpShipments:
		result, err = g.resolveShipments(ctx, vars)
	case OpShipment:
		result, err = g.resolveShipment(ctx, vars)
	case OpMe:
		result, err = g.resolveMe(ctx, callerID)
	case OpMyRole:
		result, err = g.resolveMyRole(ctx, callerID)
	case OpCreateShipment:
		result, err = g.resolveCreateShipment(ctx, vars, callerID)
	case OpUpdateShipment:
		result, err = g.resolveUpdateShipment(ctx, vars)
	case OpDeleteShipment:
		result, err = g.resolveDeleteShipment(ctx, vars)
	}
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{op: result}, nil
}

// requireAdmin checks the caller's row in user_roles; the role table is
// authoritative, not the token claim.
func (g *Gateway) requireAdmin(ctx context.Context, callerID string) error {
	role, err := g.roles.GetByUserID(ctx, callerID)
	if err != nil {
		return storeErr(err)
	}
	if role == nil || role.Role != string(domain.RoleAdmin) {
		return domain.ErrForbidden
	}
	return nil
}

func validationErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, fmt.Sprintf(format, args...))
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStore, err)
}
