package jobs

import (
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"SellerPulse/internal/serviceiface"
)

type SchedulerService struct {
	config map[string]interface{}
	db     *pgxpool.Pool
}

func NewSchedulerService(cfg map[string]interface{}, db *pgxpool.Pool) serviceiface.Service {
	return &SchedulerService{
		config: cfg,
		db:     db,
	}
}

func (s *SchedulerService) Name() string {
	return "scheduler"
}

func (s *SchedulerService) Start() error {
	log.Println("Starting scheduler service...")

	retentionCfg := NewDefaultRetentionConfig()

	// Override from services.yaml if provided
	if s.config != nil {
		if schedule, ok := s.config["retention_schedule"].(string); ok && schedule != "" {
			retentionCfg.Schedule = schedule
		}
		if days, ok := s.config["retention_days"].(int); ok && days > 0 {
			retentionCfg.RetentionDays = days
		}
		if tz, ok := s.config["time_zone"].(string); ok && tz != "" {
			retentionCfg.TimeZone = tz
		}
	}

	if err := RunRetentionScheduler(retentionCfg, s.db); err != nil {
		return fmt.Errorf("failed to start retention scheduler: %v", err)
	}
	log.Println("Scheduler service started — retention job scheduled")

	return nil
}

func (s *SchedulerService) Stop() error {
	return nil
}
