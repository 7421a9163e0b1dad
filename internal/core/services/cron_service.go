package services

import (
	"context"
	"log"
	"time"

	"tms-shipflow/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

const (
	// OverdueSweepSchedule flags overdue shipments at 06:00 daily
	OverdueSweepSchedule = "0 6 * * *"
	// TokenCleanupSchedule prunes expired refresh tokens at 03:00 daily
	TokenCleanupSchedule = "0 3 * * *"
)

// CronService runs scheduled maintenance jobs: flagging overdue
// shipments as delayed and pruning expired refresh tokens.
type CronService struct {
	cron          *cron.Cron
	shipmentRepo  repositories.ShipmentRepository
	refreshTokens repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(
	shipmentRepo repositories.ShipmentRepository,
	refreshTokens repositories.RefreshTokenRepository,
) *CronService {
	return &CronService{
		cron:          cron.New(),
		shipmentRepo:  shipmentRepo,
		refreshTokens: refreshTokens,
	}
}

// Start schedules the jobs and launches the cron loop
func (s *CronService) Start() {
	if _, err := s.cron.AddFunc(OverdueSweepSchedule, s.sweepOverdueShipments); err != nil {
		log.Printf("❌ Failed to schedule overdue sweep: %v", err)
	}
	if _, err := s.cron.AddFunc(TokenCleanupSchedule, s.cleanupExpiredTokens); err != nil {
		log.Printf("❌ Failed to schedule token cleanup: %v", err)
	}
	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop stops the cron loop
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 CronService stopped")
}

// sweepOverdueShipments marks undelivered shipments whose estimated
// delivery date has passed as delayed
func (s *CronService) sweepOverdueShipments() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := time.Now().Format("2006-01-02")
	n, err := s.shipmentRepo.MarkOverdueDelayed(ctx, today)
	if err != nil {
		log.Printf("❌ Overdue sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("✅ Overdue sweep: %d shipment(s) marked delayed", n)
	}
}

func (s *CronService) cleanupExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.refreshTokens.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Refresh token cleanup failed: %v", err)
	}
}
