package repositories

import (
	"context"

	"tms-shipflow/internal/adapters/persistence/models"
	"tms-shipflow/internal/core/domain"
)

// ShipmentRepository defines the record store handle for shipments.
// Implementations: GORM/MySQL (production) and in-memory (tests, local
// runs). Get-style methods return (nil, nil) when no row matches.
type ShipmentRepository interface {
	// List returns one page of matching rows plus the total match count
	List(ctx context.Context, q domain.ListQuery) ([]*models.Shipment, int64, error)
	GetByID(ctx context.Context, id string) (*models.Shipment, error)
	Create(ctx context.Context, shipment *models.Shipment) error
	// Patch writes only the given storage columns and refreshes
	// updated_at; returns the updated row, or (nil, nil) if id is unknown
	Patch(ctx context.Context, id string, changes map[string]interface{}) (*models.Shipment, error)
	// Delete removes the row permanently; false when id is unknown
	Delete(ctx context.Context, id string) (bool, error)
	ExistsByTrackingNumber(ctx context.Context, trackingNumber string) (bool, error)
	// MarkOverdueDelayed flags undelivered shipments whose estimated
	// delivery date is before the given ISO date as delayed
	MarkOverdueDelayed(ctx context.Context, before string) (int64, error)
}

// ProfileRepository defines profile data access
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// UserRoleRepository defines role data access
type UserRoleRepository interface {
	Create(ctx context.Context, role *models.UserRole) error
	GetByUserID(ctx context.Context, userID string) (*models.UserRole, error)
}

// RefreshTokenRepository defines refresh token data access
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) error
}
