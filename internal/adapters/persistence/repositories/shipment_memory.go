package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"tms-shipflow/internal/adapters/persistence/models"
	"tms-shipflow/internal/core/domain"
)

// MemoryShipmentRepository is an in-memory ShipmentRepository with the
// same filter/sort/page semantics as the GORM implementation. It backs
// service tests and local runs without a database.
type MemoryShipmentRepository struct {
	mu        sync.RWMutex
	shipments map[string]*models.Shipment
}

// NewMemoryShipmentRepository creates an empty in-memory repository
func NewMemoryShipmentRepository() *MemoryShipmentRepository {
	return &MemoryShipmentRepository{
		shipments: make(map[string]*models.Shipment),
	}
}

func (r *MemoryShipmentRepository) matches(s *models.Shipment, f domain.ShipmentFilter) bool {
	if f.Empty() {
		return true
	}
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	if f.Carrier != "" && s.Carrier != f.Carrier {
		return false
	}
	if f.Priority != "" && s.Priority != f.Priority {
		return false
	}
	if f.Type != "" && s.Type != f.Type {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		fields := []string{
			s.TrackingNumber,
			s.Origin,
			s.Destination,
			deref(s.Shipper),
			deref(s.Consignee),
		}
		hit := false
		for _, v := range fields {
			if strings.Contains(strings.ToLower(v), term) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// compare orders a against b on the given storage column; ties break on ID
func compare(a, b *models.Shipment, col string) int {
	cmp := 0
	switch col {
	case "created_at":
		cmp = compareTime(a.CreatedAt, b.CreatedAt)
	case "updated_at":
		cmp = compareTime(a.UpdatedAt, b.UpdatedAt)
	case "weight":
		cmp = compareFloatPtr(a.Weight, b.Weight)
	case "cost":
		cmp = compareFloatPtr(a.Cost, b.Cost)
	case "estimated_delivery":
		cmp = strings.Compare(deref(a.EstimatedDelivery), deref(b.EstimatedDelivery))
	case "actual_delivery":
		cmp = strings.Compare(deref(a.ActualDelivery), deref(b.ActualDelivery))
	case "tracking_number":
		cmp = strings.Compare(a.TrackingNumber, b.TrackingNumber)
	case "origin":
		cmp = strings.Compare(a.Origin, b.Origin)
	case "destination":
		cmp = strings.Compare(a.Destination, b.Destination)
	case "status":
		cmp = strings.Compare(a.Status, b.Status)
	case "carrier":
		cmp = strings.Compare(a.Carrier, b.Carrier)
	case "priority":
		cmp = strings.Compare(a.Priority, b.Priority)
	case "type":
		cmp = strings.Compare(a.Type, b.Type)
	case "shipper":
		cmp = strings.Compare(deref(a.Shipper), deref(b.Shipper))
	case "consignee":
		cmp = strings.Compare(deref(a.Consignee), deref(b.Consignee))
	default:
		cmp = compareTime(a.CreatedAt, b.CreatedAt)
	}
	if cmp == 0 {
		cmp = strings.Compare(a.ID, b.ID)
	}
	return cmp
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

func compareFloatPtr(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}

// List returns one page of matching shipments plus the total match count
func (r *MemoryShipmentRepository) List(ctx context.Context, q domain.ListQuery) ([]*models.Shipment, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*models.Shipment
	for _, s := range r.shipments {
		if r.matches(s, q.Filter) {
			matched = append(matched, s)
		}
	}
	total := int64(len(matched))

	sort.SliceStable(matched, func(i, j int) bool {
		cmp := compare(matched[i], matched[j], q.SortColumn)
		if q.SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})

	start := q.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]*models.Shipment, 0, end-start)
	for _, s := range matched[start:end] {
		cp := *s
		page = append(page, &cp)
	}
	return page, total, nil
}

// GetByID gets a shipment by ID, (nil, nil) when absent
func (r *MemoryShipmentRepository) GetByID(ctx context.Context, id string) (*models.Shipment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.shipments[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// Create stores a new shipment, stamping timestamps like autoCreateTime
func (r *MemoryShipmentRepository) Create(ctx context.Context, shipment *models.Shipment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if shipment.CreatedAt.IsZero() {
		shipment.CreatedAt = now
	}
	if shipment.UpdatedAt.IsZero() {
		shipment.UpdatedAt = now
	}
	cp := *shipment
	r.shipments[shipment.ID] = &cp
	return nil
}

// Patch applies column changes and refreshes updated_at
func (r *MemoryShipmentRepository) Patch(ctx context.Context, id string, changes map[string]interface{}) (*models.Shipment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shipments[id]
	if !ok {
		return nil, nil
	}
	for col, val := range changes {
		if err := applyChange(s, col, val); err != nil {
			return nil, err
		}
	}
	s.UpdatedAt = time.Now()
	cp := *s
	return &cp, nil
}

func applyChange(s *models.Shipment, col string, val interface{}) error {
	switch col {
	case "origin":
		return setString(&s.Origin, col, val)
	case "destination":
		return setString(&s.Destination, col, val)
	case "status":
		return setString(&s.Status, col, val)
	case "carrier":
		return setString(&s.Carrier, col, val)
	case "priority":
		return setString(&s.Priority, col, val)
	case "type":
		return setString(&s.Type, col, val)
	case "weight":
		return setFloatPtr(&s.Weight, col, val)
	case "cost":
		return setFloatPtr(&s.Cost, col, val)
	case "dimensions":
		return setStringPtr(&s.Dimensions, col, val)
	case "estimated_delivery":
		return setStringPtr(&s.EstimatedDelivery, col, val)
	case "actual_delivery":
		return setStringPtr(&s.ActualDelivery, col, val)
	case "shipper":
		return setStringPtr(&s.Shipper, col, val)
	case "consignee":
		return setStringPtr(&s.Consignee, col, val)
	case "customer_name":
		return setStringPtr(&s.CustomerName, col, val)
	case "customer_email":
		return setStringPtr(&s.CustomerEmail, col, val)
	case "customer_phone":
		return setStringPtr(&s.CustomerPhone, col, val)
	case "notes":
		return setStringPtr(&s.Notes, col, val)
	}
	return fmt.Errorf("unknown column %q", col)
}

func setString(dst *string, col string, val interface{}) error {
	v, ok := val.(string)
	if !ok {
		return fmt.Errorf("column %q expects a string", col)
	}
	*dst = v
	return nil
}

func setStringPtr(dst **string, col string, val interface{}) error {
	if val == nil {
		*dst = nil
		return nil
	}
	v, ok := val.(string)
	if !ok {
		return fmt.Errorf("column %q expects a string or null", col)
	}
	*dst = &v
	return nil
}

func setFloatPtr(dst **float64, col string, val interface{}) error {
	if val == nil {
		*dst = nil
		return nil
	}
	v, ok := val.(float64)
	if !ok {
		return fmt.Errorf("column %q expects a number or null", col)
	}
	*dst = &v
	return nil
}

// Delete removes the row, false when id is unknown
func (r *MemoryShipmentRepository) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shipments[id]; !ok {
		return false, nil
	}
	delete(r.shipments, id)
	return true, nil
}

// ExistsByTrackingNumber checks if a tracking number is already taken
func (r *MemoryShipmentRepository) ExistsByTrackingNumber(ctx context.Context, trackingNumber string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.shipments {
		if s.TrackingNumber == trackingNumber {
			return true, nil
		}
	}
	return false, nil
}

// MarkOverdueDelayed flags undelivered shipments past their estimated
// delivery date as delayed
func (r *MemoryShipmentRepository) MarkOverdueDelayed(ctx context.Context, before string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.shipments {
		switch domain.ShipmentStatus(s.Status) {
		case domain.StatusPending, domain.StatusPickedUp, domain.StatusInTransit, domain.StatusOutForDelivery:
		default:
			continue
		}
		if s.EstimatedDelivery == nil || *s.EstimatedDelivery >= before {
			continue
		}
		s.Status = string(domain.StatusDelayed)
		s.UpdatedAt = time.Now()
		n++
	}
	return n, nil
}
