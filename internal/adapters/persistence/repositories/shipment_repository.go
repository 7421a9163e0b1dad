package repositories

import (
	"context"
	"errors"
	"strings"

	"tms-shipflow/internal/adapters/persistence/models"
	"tms-shipflow/internal/core/domain"

	"gorm.io/gorm"
)

// shipmentRepository implements ShipmentRepository on GORM/MySQL
type shipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository creates a new shipment repository
func NewShipmentRepository(db *gorm.DB) ShipmentRepository {
	return &shipmentRepository{db: db}
}

// searchColumns are the five columns the search predicate matches against
var searchColumns = []string{"tracking_number", "origin", "destination", "shipper", "consignee"}

// applyFilter adds the filter predicates to the query. Equality
// constraints AND together; the search term ORs across searchColumns.
func applyFilter(db *gorm.DB, f domain.ShipmentFilter) *gorm.DB {
	if f.Empty() {
		return db
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.Carrier != "" {
		db = db.Where("carrier = ?", f.Carrier)
	}
	if f.Priority != "" {
		db = db.Where("priority = ?", f.Priority)
	}
	if f.Type != "" {
		db = db.Where("type = ?", f.Type)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		conds := make([]string, 0, len(searchColumns))
		args := make([]interface{}, 0, len(searchColumns))
		for _, col := range searchColumns {
			conds = append(conds, "LOWER("+col+") LIKE ?")
			args = append(args, pattern)
		}
		db = db.Where(strings.Join(conds, " OR "), args...)
	}
	return db
}

// List returns one page of matching shipments plus the total match count
func (r *shipmentRepository) List(ctx context.Context, q domain.ListQuery) ([]*models.Shipment, int64, error) {
	var shipments []*models.Shipment
	var total int64

	base := applyFilter(r.db.WithContext(ctx).Model(&models.Shipment{}), q.Filter)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dir := "ASC"
	if q.SortDesc {
		dir = "DESC"
	}

	err := base.
		Order(q.SortColumn + " " + dir).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&shipments).Error
	if err != nil {
		return nil, 0, err
	}

	return shipments, total, nil
}

// GetByID gets a shipment by ID, (nil, nil) when absent
func (r *shipmentRepository) GetByID(ctx context.Context, id string) (*models.Shipment, error) {
	var shipment models.Shipment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&shipment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shipment, nil
}

// Create creates a new shipment
func (r *shipmentRepository) Create(ctx context.Context, shipment *models.Shipment) error {
	return r.db.WithContext(ctx).Create(shipment).Error
}

// Patch writes only the given columns. GORM refreshes updated_at on
// map updates automatically.
func (r *shipmentRepository) Patch(ctx context.Context, id string, changes map[string]interface{}) (*models.Shipment, error) {
	var shipment models.Shipment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&shipment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&shipment).Updates(changes).Error; err != nil {
		return nil, err
	}

	// Reload so autoUpdateTime and defaults are reflected
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&shipment).Error; err != nil {
		return nil, err
	}
	return &shipment, nil
}

// Delete hard deletes a shipment, false when id is unknown
func (r *shipmentRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Shipment{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ExistsByTrackingNumber checks if a tracking number is already taken
func (r *shipmentRepository) ExistsByTrackingNumber(ctx context.Context, trackingNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Shipment{}).
		Where("tracking_number = ?", trackingNumber).
		Count(&count).Error
	return count > 0, err
}

// MarkOverdueDelayed flags undelivered shipments past their estimated
// delivery date as delayed
func (r *shipmentRepository) MarkOverdueDelayed(ctx context.Context, before string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Shipment{}).
		Where("status IN ?", []string{
			string(domain.StatusPending),
			string(domain.StatusPickedUp),
			string(domain.StatusInTransit),
			string(domain.StatusOutForDelivery),
		}).
		Where("estimated_delivery IS NOT NULL AND estimated_delivery < ?", before).
		Update("status", string(domain.StatusDelayed))
	return res.RowsAffected, res.Error
}
