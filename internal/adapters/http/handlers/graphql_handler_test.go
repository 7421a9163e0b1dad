package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"tms-shipflow/internal/adapters/http/middleware"
	"tms-shipflow/internal/adapters/persistence/models"
	"tms-shipflow/internal/adapters/persistence/repositories"
	"tms-shipflow/internal/config"
	"tms-shipflow/internal/core/services"
	"tms-shipflow/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type stubProfileRepo struct {
	profiles map[string]*models.Profile
}

func (r *stubProfileRepo) Create(_ context.Context, p *models.Profile) error {
	r.profiles[p.ID] = p
	return nil
}

func (r *stubProfileRepo) GetByID(_ context.Context, id string) (*models.Profile, error) {
	return r.profiles[id], nil
}

func (r *stubProfileRepo) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	for _, p := range r.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (r *stubProfileRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	p, _ := r.GetByEmail(ctx, email)
	return p != nil, nil
}

type stubRoleRepo struct {
	roles map[string]*models.UserRole
}

func (r *stubRoleRepo) Create(_ context.Context, role *models.UserRole) error {
	r.roles[role.UserID] = role
	return nil
}

func (r *stubRoleRepo) GetByUserID(_ context.Context, userID string) (*models.UserRole, error) {
	return r.roles[userID], nil
}

const (
	testAdminID    = "aaaaaaaa-0000-0000-0000-000000000001"
	testEmployeeID = "aaaaaaaa-0000-0000-0000-000000000002"
)

func newTestApp(t *testing.T) (*fiber.App, *repositories.MemoryShipmentRepository) {
	t.Helper()

	config.AppConfig = &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "handler-test-secret",
			RefreshSecret:    "handler-test-refresh",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}

	shipments := repositories.NewMemoryShipmentRepository()
	profiles := &stubProfileRepo{profiles: map[string]*models.Profile{
		testAdminID: {ID: testAdminID, Email: "admin@shipflow.io"},
	}}
	roles := &stubRoleRepo{roles: map[string]*models.UserRole{
		testAdminID:    {ID: "r1", UserID: testAdminID, Role: "admin"},
		testEmployeeID: {ID: "r2", UserID: testEmployeeID, Role: "employee"},
	}}

	gateway := services.NewGateway(shipments, profiles, roles)
	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	app.Post("/graphql", middleware.OptionalAuth(), NewGraphQLHandler(gateway).Execute)
	return app, shipments
}

func accessToken(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(userID, "user@shipflow.io", role,
		config.AppConfig.JWT.Secret, config.AppConfig.JWT.AccessTokenMins)
	require.NoError(t, err)
	return token
}

func postGraphQL(t *testing.T, app *fiber.App, token string, body map[string]interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	return resp, decoded
}

func firstErrorMessage(t *testing.T, body map[string]interface{}) string {
	t.Helper()
	errs, ok := body["errors"].([]interface{})
	require.True(t, ok, "expected errors array, got %v", body)
	require.NotEmpty(t, errs)
	return errs[0].(map[string]interface{})["message"].(string)
}

func TestGraphQL_AnonymousGets401(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := postGraphQL(t, app, "", map[string]interface{}{
		"query": `query { shipments { edges } }`,
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NotEmpty(t, firstErrorMessage(t, body))
	require.NotContains(t, body, "data")
}

func TestGraphQL_InvalidTokenIsAnonymous(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := postGraphQL(t, app, "garbage-token", map[string]interface{}{
		"query": `query { shipments { edges } }`,
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGraphQL_EmployeeListsShipments(t *testing.T) {
	app, shipments := newTestApp(t)
	require.NoError(t, shipments.Create(context.Background(), &models.Shipment{
		ID: "s1", TrackingNumber: "TMS-2026-000301",
		Origin: "Chicago, IL", Destination: "Dallas, TX",
		Status: "pending", Carrier: "FedEx", Priority: "medium", Type: "standard",
	}))

	resp, body := postGraphQL(t, app, accessToken(t, testEmployeeID, "employee"), map[string]interface{}{
		"query": `query { shipments { edges pageInfo } }`,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	conn := data["shipments"].(map[string]interface{})
	edges := conn["edges"].([]interface{})
	require.Len(t, edges, 1)
	require.Equal(t, "TMS-2026-000301", edges[0].(map[string]interface{})["trackingNumber"])

	pageInfo := conn["pageInfo"].(map[string]interface{})
	require.Equal(t, float64(1), pageInfo["totalCount"])
	require.Equal(t, false, pageInfo["hasNextPage"])
}

func TestGraphQL_EmployeeMutationGets403(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := postGraphQL(t, app, accessToken(t, testEmployeeID, "employee"), map[string]interface{}{
		"query": `mutation { createShipment(input: $input) { id } }`,
		"variables": map[string]interface{}{
			"input": map[string]interface{}{
				"origin": "A", "destination": "B", "carrier": "UPS",
			},
		},
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Contains(t, firstErrorMessage(t, body), "admin")
}

func TestGraphQL_AdminCreatesShipment(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := postGraphQL(t, app, accessToken(t, testAdminID, "admin"), map[string]interface{}{
		"query": `mutation { createShipment(input: $input) { id trackingNumber } }`,
		"variables": map[string]interface{}{
			"input": map[string]interface{}{
				"origin": "Chicago, IL", "destination": "Dallas, TX", "carrier": "FedEx",
			},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	created := data["createShipment"].(map[string]interface{})
	require.Regexp(t, `^TMS-\d{4}-\d{6}$`, created["trackingNumber"])
	require.Equal(t, "pending", created["status"])
}

func TestGraphQL_UnknownOperationGets400(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := postGraphQL(t, app, accessToken(t, testEmployeeID, "employee"), map[string]interface{}{
		"query": `query { warehouses { id } }`,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGraphQL_DeleteMissingGets404(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := postGraphQL(t, app, accessToken(t, testAdminID, "admin"), map[string]interface{}{
		"query":     `mutation { deleteShipment(id: $id) }`,
		"variables": map[string]interface{}{"id": "no-such-id"},
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGraphQL_MissingShipmentIsNull200(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := postGraphQL(t, app, accessToken(t, testEmployeeID, "employee"), map[string]interface{}{
		"query":     `query { shipment(id: $id) { id } }`,
		"variables": map[string]interface{}{"id": "no-such-id"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	require.Contains(t, data, "shipment")
	require.Nil(t, data["shipment"])
}

func TestGraphQL_MalformedBodyGets400(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGraphQL_OperationNameSelectsFromMultiOpDocument(t *testing.T) {
	app, shipments := newTestApp(t)
	require.NoError(t, shipments.Create(context.Background(), &models.Shipment{
		ID: "s1", TrackingNumber: "TMS-2026-000302",
		Origin: "A", Destination: "B",
		Status: "pending", Carrier: "UPS", Priority: "medium", Type: "standard",
	}))

	resp, body := postGraphQL(t, app, accessToken(t, testAdminID, "admin"), map[string]interface{}{
		"query": `
			query List { shipments { edges } }
			mutation Remove($id: ID!) { deleteShipment(id: $id) }
		`,
		"operationName": "Remove",
		"variables":     map[string]interface{}{"id": "s1"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	require.Equal(t, true, data["deleteShipment"])
	require.NotContains(t, data, "shipments")
}

func TestCORS_PreflightAnsweredInDev(t *testing.T) {
	config.AppConfig = &config.Config{AppMode: "dev"}
	app := fiber.New()
	middleware.Setup(app, config.AppConfig)
	app.Post("/graphql", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/graphql", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	require.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}
