package handlers

import (
	"errors"
	"log"

	"tms-shipflow/internal/core/domain"
	"tms-shipflow/internal/core/services"
	"tms-shipflow/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// GraphQLHandler exposes the single-endpoint operation gateway
type GraphQLHandler struct {
	gateway *services.Gateway
}

// NewGraphQLHandler creates a new GraphQL handler
func NewGraphQLHandler(gateway *services.Gateway) *GraphQLHandler {
	return &GraphQLHandler{gateway: gateway}
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Execute godoc
// @Summary Execute a shipment operation
// @Description Runs one of the recognized query or mutation operations (shipments, shipment, me, myRole, createShipment, updateShipment, deleteShipment)
// @Tags GraphQL
// @Accept json
// @Produce json
// @Param request body graphqlRequest true "Operation request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Security BearerAuth
// @Router /graphql [post]
func (h *GraphQLHandler) Execute(c *fiber.Ctx) error {
	var req graphqlRequest
	if err := c.BodyParser(&req); err != nil {
		return response.GraphQLError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	callerID, _ := c.Locals("userID").(string)

	data, err := h.gateway.Execute(c.Context(), &services.GatewayRequest{
		Query:         req.Query,
		OperationName: req.OperationName,
		Variables:     req.Variables,
	}, callerID)
	if err != nil {
		return h.writeError(c, err)
	}

	return response.GraphQLData(c, data)
}

// writeError maps domain errors onto HTTP statuses while passing the
// error message through in GraphQL error shape.
func (h *GraphQLHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return response.GraphQLError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return response.GraphQLError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUnrecognizedOperation):
		return response.GraphQLError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return response.GraphQLError(c, fiber.StatusNotFound, err.Error())
	default:
		log.Printf("❌ Gateway operation failed: %v", err)
		return response.GraphQLError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
