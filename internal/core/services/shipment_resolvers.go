package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"tms-shipflow/internal/adapters/persistence/models"
	"tms-shipflow/internal/core/domain"
	"tms-shipflow/internal/pkg/pagination"

	"github.com/google/uuid"
)

// maxTrackingAttempts bounds the retry loop when a generated tracking
// number collides with an existing one
const maxTrackingAttempts = 5

const dateLayout = "2006-01-02"

// ShipmentConnection is the wire shape of a list result
type ShipmentConnection struct {
	Edges    []*models.ShipmentResponse `json:"edges"`
	PageInfo pagination.PageInfo        `json:"pageInfo"`
}

// resolveShipments handles the list operation
func (g *Gateway) resolveShipments(ctx context.Context, vars map[string]interface{}) (interface{}, error) {
	filter, err := decodeFilter(vars)
	if err != nil {
		return nil, err
	}
	sortReq, err := decodeSort(vars)
	if err != nil {
		return nil, err
	}

	page := 1
	if v, ok, err := intVar(vars, "page"); err != nil {
		return nil, err
	} else if ok {
		if v < 1 {
			return nil, validationErr("page must be at least 1")
		}
		page = v
	}

	limit := domain.DefaultLimit
	if v, ok, err := intVar(vars, "limit"); err != nil {
		return nil, err
	} else if ok {
		if v <= 0 {
			return nil, validationErr("limit must be greater than zero")
		}
		limit = v
	}

	// Translate the wire sort field to its storage column; translation
	// doubles as the sortable-column whitelist
	sortCol, ok := models.ShipmentColumnForWire(sortReq.Field)
	if !ok {
		return nil, validationErr("unknown sort field %q", sortReq.Field)
	}

	q := domain.ListQuery{
		Filter:     filter,
		SortColumn: sortCol,
		SortDesc:   sortReq.Direction == domain.SortDesc,
		Offset:     pagination.Offset(page, limit),
		Limit:      limit,
	}

	rows, total, err := g.shipments.List(ctx, q)
	if err != nil {
		return nil, storeErr(err)
	}

	edges := make([]*models.ShipmentResponse, 0, len(rows))
	for _, row := range rows {
		edges = append(edges, row.ToResponse())
	}

	return &ShipmentConnection{
		Edges:    edges,
		PageInfo: pagination.GetPageInfo(total, page, limit),
	}, nil
}

func decodeFilter(vars map[string]interface{}) (domain.ShipmentFilter, error) {
	var filter domain.ShipmentFilter
	fm, ok, err := mapVar(vars, "filter")
	if err != nil || !ok {
		return filter, err
	}

	if v, ok, err := stringField(fm, "status"); err != nil {
		return filter, err
	} else if ok {
		if !domain.ShipmentStatus(v).Valid() {
			return filter, validationErr("invalid status %q", v)
		}
		filter.Status = v
	}
	if v, ok, err := stringField(fm, "carrier"); err != nil {
		return filter, err
	} else if ok {
		filter.Carrier = v
	}
	if v, ok, err := stringField(fm, "priority"); err != nil {
		return filter, err
	} else if ok {
		if !domain.ShipmentPriority(v).Valid() {
			return filter, validationErr("invalid priority %q", v)
		}
		filter.Priority = v
	}
	if v, ok, err := stringField(fm, "type"); err != nil {
		return filter, err
	} else if ok {
		if !domain.ShipmentType(v).Valid() {
			return filter, validationErr("invalid type %q", v)
		}
		filter.Type = v
	}
	if v, ok, err := stringField(fm, "search"); err != nil {
		return filter, err
	} else if ok {
		filter.Search = v
	}
	return filter, nil
}

func decodeSort(vars map[string]interface{}) (domain.Sort, error) {
	sm, ok, err := mapVar(vars, "sort")
	if err != nil || !ok {
		return domain.DefaultSort, err
	}

	field, ok, err := stringField(sm, "field")
	if err != nil {
		return domain.Sort{}, err
	}
	if !ok {
		field = domain.DefaultSort.Field
	}

	dir, ok, err := stringField(sm, "direction")
	if err != nil {
		return domain.Sort{}, err
	}
	direction := domain.DefaultSort.Direction
	if ok {
		switch domain.SortDirection(strings.ToLower(dir)) {
		case domain.SortAsc:
			direction = domain.SortAsc
		case domain.SortDesc:
			direction = domain.SortDesc
		default:
			return domain.Sort{}, validationErr("sort direction must be asc or desc")
		}
	}
	return domain.Sort{Field: field, Direction: direction}, nil
}

// resolveShipment handles the get-one operation; a missing id resolves
// to null, not an error
func (g *Gateway) resolveShipment(ctx context.Context, vars map[string]interface{}) (interface{}, error) {
	id, err := requiredStringVar(vars, "id")
	if err != nil {
		return nil, err
	}
	shipment, err := g.shipments.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if shipment == nil {
		return nil, nil
	}
	return shipment.ToResponse(), nil
}

// resolveCreateShipment handles the create operation
func (g *Gateway) resolveCreateShipment(ctx context.Context, vars map[string]interface{}, callerID string) (interface{}, error) {
	input, ok, err := mapVar(vars, "input")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, validationErr("input is required")
	}

	origin, err := requiredLocation(input, "origin")
	if err != nil {
		return nil, err
	}
	destination, err := requiredLocation(input, "destination")
	if err != nil {
		return nil, err
	}
	carrier, ok, err := stringField(input, "carrier")
	if err != nil {
		return nil, err
	}
	if !ok || strings.TrimSpace(carrier) == "" {
		return nil, validationErr("carrier is required")
	}

	weight, err := floatField(input, "weight")
	if err != nil {
		return nil, err
	}
	if weight != nil && *weight < 0 {
		return nil, validationErr("weight must not be negative")
	}
	cost, err := floatField(input, "cost")
	if err != nil {
		return nil, err
	}
	if cost != nil && *cost < 0 {
		return nil, validationErr("cost must not be negative")
	}

	estimatedDelivery, err := dateField(input, "estimatedDelivery")
	if err != nil {
		return nil, err
	}
	shipper, err := optionalText(input, "shipper", domain.MaxLocationLen)
	if err != nil {
		return nil, err
	}
	consignee, err := optionalText(input, "consignee", domain.MaxLocationLen)
	if err != nil {
		return nil, err
	}
	notes, err := optionalText(input, "notes", domain.MaxNotesLen)
	if err != nil {
		return nil, err
	}

	priority := string(domain.PriorityMedium)
	if v, ok, err := stringField(input, "priority"); err != nil {
		return nil, err
	} else if ok {
		if !domain.ShipmentPriority(v).Valid() {
			return nil, validationErr("invalid priority %q", v)
		}
		priority = v
	}

	shipType := string(domain.TypeStandard)
	if v, ok, err := stringField(input, "type"); err != nil {
		return nil, err
	} else if ok {
		if !domain.ShipmentType(v).Valid() {
			return nil, validationErr("invalid type %q", v)
		}
		shipType = v
	}

	trackingNumber, err := g.allocateTrackingNumber(ctx)
	if err != nil {
		return nil, err
	}

	shipment := &models.Shipment{
		ID:                uuid.NewString(),
		TrackingNumber:    trackingNumber,
		Origin:            strings.TrimSpace(origin),
		Destination:       strings.TrimSpace(destination),
		Status:            string(domain.StatusPending),
		Carrier:           strings.TrimSpace(carrier),
		Weight:            weight,
		EstimatedDelivery: estimatedDelivery,
		Shipper:           shipper,
		Consignee:         consignee,
		Priority:          priority,
		Type:              shipType,
		Cost:              cost,
		Notes:             notes,
		CreatedBy:         &callerID,
	}

	if err := g.shipments.Create(ctx, shipment); err != nil {
		return nil, storeErr(err)
	}
	return shipment.ToResponse(), nil
}

// allocateTrackingNumber generates TMS-<year>-<6 digit> numbers until
// one is free, bounded by maxTrackingAttempts
func (g *Gateway) allocateTrackingNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxTrackingAttempts; attempt++ {
		trackingNumber := generateTrackingNumber()
		exists, err := g.shipments.ExistsByTrackingNumber(ctx, trackingNumber)
		if err != nil {
			return "", storeErr(err)
		}
		if !exists {
			return trackingNumber, nil
		}
	}
	return "", fmt.Errorf("%w: could not allocate a unique tracking number", domain.ErrStore)
}

func generateTrackingNumber() string {
	return fmt.Sprintf("TMS-%d-%06d", time.Now().Year(), rand.Intn(1000000))
}

// resolveUpdateShipment handles the partial-patch update operation
func (g *Gateway) resolveUpdateShipment(ctx context.Context, vars map[string]interface{}) (interface{}, error) {
	id, err := requiredStringVar(vars, "id")
	if err != nil {
		return nil, err
	}
	input, ok, err := mapVar(vars, "input")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, validationErr("input is required")
	}

	changes, err := buildShipmentPatch(input)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return nil, validationErr("update requires at least one field")
	}

	updated, err := g.shipments.Patch(ctx, id, changes)
	if err != nil {
		return nil, storeErr(err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: shipment %s", domain.ErrNotFound, id)
	}
	return updated.ToResponse(), nil
}

// buildShipmentPatch validates a partial update and translates present
// wire fields into storage columns. Keys present with null clear
// nullable fields; absent keys stay untouched.
func buildShipmentPatch(input map[string]interface{}) (map[string]interface{}, error) {
	changes := make(map[string]interface{}, len(input))

	for field, raw := range input {
		col, ok := models.ShipmentColumnForWire(field)
		if !ok {
			return nil, validationErr("unknown field %q", field)
		}

		switch field {
		case "origin", "destination":
			v, err := patchText(field, raw, domain.MaxLocationLen, false)
			if err != nil {
				return nil, err
			}
			changes[col] = v
		case "carrier":
			v, err := patchText(field, raw, 100, false)
			if err != nil {
				return nil, err
			}
			changes[col] = v
		case "status":
			v, err := patchText(field, raw, 0, false)
			if err != nil {
				return nil, err
			}
			if !domain.ShipmentStatus(v.(string)).Valid() {
				return nil, validationErr("invalid status %q", v)
			}
			changes[col] = v
		case "priority":
			v, err := patchText(field, raw, 0, false)
			if err != nil {
				return nil, err
			}
			if !domain.ShipmentPriority(v.(string)).Valid() {
				return nil, validationErr("invalid priority %q", v)
			}
			changes[col] = v
		case "type":
			v, err := patchText(field, raw, 0, false)
			if err != nil {
				return nil, err
			}
			if !domain.ShipmentType(v.(string)).Valid() {
				return nil, validationErr("invalid type %q", v)
			}
			changes[col] = v
		case "weight", "cost":
			if raw == nil {
				changes[col] = nil
				continue
			}
			v, ok := raw.(float64)
			if !ok {
				return nil, validationErr("%q must be a number", field)
			}
			if v < 0 {
				return nil, validationErr("%q must not be negative", field)
			}
			changes[col] = v
		case "estimatedDelivery", "actualDelivery":
			if raw == nil {
				changes[col] = nil
				continue
			}
			v, ok := raw.(string)
			if !ok {
				return nil, validationErr("%q must be a date string", field)
			}
			if _, err := time.Parse(dateLayout, v); err != nil {
				return nil, validationErr("%q must be a date in YYYY-MM-DD form", field)
			}
			changes[col] = v
		case "customerEmail":
			if raw == nil {
				changes[col] = nil
				continue
			}
			v, ok := raw.(string)
			if !ok || !domain.ValidEmail(v) {
				return nil, validationErr("customerEmail must be a valid email address")
			}
			changes[col] = v
		case "shipper", "consignee":
			v, err := patchText(field, raw, domain.MaxLocationLen, true)
			if err != nil {
				return nil, err
			}
			changes[col] = v
		case "dimensions", "customerName":
			v, err := patchText(field, raw, 100, true)
			if err != nil {
				return nil, err
			}
			changes[col] = v
		case "customerPhone":
			v, err := patchText(field, raw, 30, true)
			if err != nil {
				return nil, err
			}
			changes[col] = v
		case "notes":
			v, err := patchText(field, raw, domain.MaxNotesLen, true)
			if err != nil {
				return nil, err
			}
			changes[col] = v
		default:
			// id, trackingNumber, createdBy, createdAt, updatedAt
			return nil, validationErr("field %q is not updatable", field)
		}
	}

	return changes, nil
}

// patchText validates one textual patch value. nullable fields accept
// null (clear); others reject it.
func patchText(field string, raw interface{}, maxLen int, nullable bool) (interface{}, error) {
	if raw == nil {
		if !nullable {
			return nil, validationErr("%q cannot be null", field)
		}
		return nil, nil
	}
	v, ok := raw.(string)
	if !ok {
		return nil, validationErr("%q must be a string", field)
	}
	if !nullable && strings.TrimSpace(v) == "" {
		return nil, validationErr("%q cannot be empty", field)
	}
	if maxLen > 0 && len(v) > maxLen {
		return nil, validationErr("%q must be at most %d characters", field, maxLen)
	}
	return v, nil
}

// resolveDeleteShipment handles the delete operation. Deleting a
// missing id is NotFound, matching updateShipment.
func (g *Gateway) resolveDeleteShipment(ctx context.Context, vars map[string]interface{}) (interface{}, error) {
	id, err := requiredStringVar(vars, "id")
	if err != nil {
		return nil, err
	}
	deleted, err := g.shipments.Delete(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if !deleted {
		return nil, fmt.Errorf("%w: shipment %s", domain.ErrNotFound, id)
	}
	return true, nil
}

// ============================================================
// Create-input helpers
// ============================================================

func requiredLocation(input map[string]interface{}, field string) (string, error) {
	v, ok, err := stringField(input, field)
	if err != nil {
		return "", err
	}
	if !ok || strings.TrimSpace(v) == "" {
		return "", validationErr("%s is required", field)
	}
	if len(v) > domain.MaxLocationLen {
		return "", validationErr("%s must be at most %d characters", field, domain.MaxLocationLen)
	}
	return v, nil
}

func optionalText(input map[string]interface{}, field string, maxLen int) (*string, error) {
	v, ok, err := stringField(input, field)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	if len(v) > maxLen {
		return nil, validationErr("%s must be at most %d characters", field, maxLen)
	}
	return &v, nil
}

func dateField(input map[string]interface{}, field string) (*string, error) {
	v, ok, err := stringField(input, field)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	if _, err := time.Parse(dateLayout, v); err != nil {
		return nil, validationErr("%s must be a date in YYYY-MM-DD form", field)
	}
	return &v, nil
}
