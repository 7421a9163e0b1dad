package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Shipment (storage shape: snake_case columns)
// ============================================================

// Shipment represents the shipments table
type Shipment struct {
	ID                string    `gorm:"column:id;primaryKey;size:36"`
	TrackingNumber    string    `gorm:"column:tracking_number;uniqueIndex;size:20;not null"`
	Origin            string    `gorm:"column:origin;size:200;not null"`
	Destination       string    `gorm:"column:destination;size:200;not null"`
	Status            string    `gorm:"column:status;size:20;not null;default:'pending'"`
	Carrier           string    `gorm:"column:carrier;size:100;not null"`
	Weight            *float64  `gorm:"column:weight"`
	Dimensions        *string   `gorm:"column:dimensions;size:100"`
	EstimatedDelivery *string   `gorm:"column:estimated_delivery;type:date"`
	ActualDelivery    *string   `gorm:"column:actual_delivery;type:date"`
	Shipper           *string   `gorm:"column:shipper;size:200"`
	Consignee         *string   `gorm:"column:consignee;size:200"`
	CustomerName      *string   `gorm:"column:customer_name;size:100"`
	CustomerEmail     *string   `gorm:"column:customer_email;size:100"`
	CustomerPhone     *string   `gorm:"column:customer_phone;size:30"`
	Priority          string    `gorm:"column:priority;size:20;not null;default:'medium'"`
	Type              string    `gorm:"column:type;size:20;not null;default:'standard'"`
	Cost              *float64  `gorm:"column:cost;type:decimal(12,2)"`
	Notes             *string   `gorm:"column:notes;size:500"`
	CreatedBy         *string   `gorm:"column:created_by;size:36;index"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Shipment) TableName() string {
	return "shipments"
}

// ShipmentResponse is the wire (camelCase) shape of a shipment
type ShipmentResponse struct {
	ID                string    `json:"id"`
	TrackingNumber    string    `json:"trackingNumber"`
	Origin            string    `json:"origin"`
	Destination       string    `json:"destination"`
	Status            string    `json:"status"`
	Carrier           string    `json:"carrier"`
	Weight            *float64  `json:"weight"`
	Dimensions        *string   `json:"dimensions"`
	EstimatedDelivery *string   `json:"estimatedDelivery"`
	ActualDelivery    *string   `json:"actualDelivery"`
	Shipper           *string   `json:"shipper"`
	Consignee         *string   `json:"consignee"`
	CustomerName      *string   `json:"customerName"`
	CustomerEmail     *string   `json:"customerEmail"`
	CustomerPhone     *string   `json:"customerPhone"`
	Priority          string    `json:"priority"`
	Type              string    `json:"type"`
	Cost              *float64  `json:"cost"`
	Notes             *string   `json:"notes"`
	CreatedBy         *string   `json:"createdBy"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ToResponse reshapes the storage row into the wire representation
func (s *Shipment) ToResponse() *ShipmentResponse {
	return &ShipmentResponse{
		ID:                s.ID,
		TrackingNumber:    s.TrackingNumber,
		Origin:            s.Origin,
		Destination:       s.Destination,
		Status:            s.Status,
		Carrier:           s.Carrier,
		Weight:            s.Weight,
		Dimensions:        s.Dimensions,
		EstimatedDelivery: s.EstimatedDelivery,
		ActualDelivery:    s.ActualDelivery,
		Shipper:           s.Shipper,
		Consignee:         s.Consignee,
		CustomerName:      s.CustomerName,
		CustomerEmail:     s.CustomerEmail,
		CustomerPhone:     s.CustomerPhone,
		Priority:          s.Priority,
		Type:              s.Type,
		Cost:              s.Cost,
		Notes:             s.Notes,
		CreatedBy:         s.CreatedBy,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// ============================================================
// Profile
// ============================================================

// Profile represents the profiles table
type Profile struct {
	ID           string    `gorm:"column:id;primaryKey;size:36"`
	Email        string    `gorm:"column:email;uniqueIndex;size:100;not null"`
	FullName     *string   `gorm:"column:full_name;size:100"`
	AvatarURL    *string   `gorm:"column:avatar_url;size:255"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}

// ProfileResponse is the wire shape of a profile
type ProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"fullName"`
	AvatarURL *string   `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToResponse reshapes the storage row into the wire representation
func (p *Profile) ToResponse() *ProfileResponse {
	return &ProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ============================================================
// UserRole
// ============================================================

// UserRole represents the user_roles table. One row per user.
type UserRole struct {
	ID        string    `gorm:"column:id;primaryKey;size:36"`
	UserID    string    `gorm:"column:user_id;uniqueIndex;size:36;not null"`
	Role      string    `gorm:"column:role;size:20;not null;default:'employee'"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

// UserRoleResponse is the wire shape of a role row
type UserRoleResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToResponse reshapes the storage row into the wire representation
func (r *UserRole) ToResponse() *UserRoleResponse {
	return &UserRoleResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		Role:      r.Role,
		CreatedAt: r.CreatedAt,
	}
}

// ============================================================
// RefreshToken
// ============================================================

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"column:user_id;index;size:36;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Profile{},
		&UserRole{},
		&RefreshToken{},
		&Shipment{},
	)
}
