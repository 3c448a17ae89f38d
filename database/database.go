package database

import (
	"encoding/json"
	"fmt"
	"os"

	"events-backend/config"
	"events-backend/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB initializes the database connection
func InitDB(cfg *config.Config) error {
	var err error

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	DB, err = gorm.Open(sqlite.Open(cfg.DatabasePath), gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = DB.AutoMigrate(
		&models.Event{},
		&models.EventDate{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logrus.Info("database initialized")
	return nil
}

// seedEvent mirrors models.SubmitEventRequest plus the fields a seed file
// may pin directly (state, trust score).
type seedEvent struct {
	models.SubmitEventRequest
	State      string `json:"state"`
	TrustScore int    `json:"trust_score"`
}

// LoadEventData loads events from a JSON seed file into the database.
// Skipped when the events table is already populated.
func LoadEventData(cfg *config.Config, filePath string) error {
	var count int64
	DB.Model(&models.Event{}).Count(&count)
	if count > 0 {
		logrus.WithField("events", count).Info("database already populated, skipping seed load")
		return nil
	}

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seeds []seedEvent
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	successCount := 0
	errorCount := 0
	for _, seed := range seeds {
		event, err := seed.ToEvent()
		if err != nil {
			logrus.WithError(err).WithField("name", seed.Name).Warn("skipping seed event with bad dates")
			errorCount++
			continue
		}

		event.ID = uuid.NewString()
		event.DedupDates()
		event.TrustScore = seed.TrustScore
		event.State = seed.State
		if event.State == "" {
			event.State = models.StateApproved
		}
		event.ComputePopularity(models.PopularityConfig{
			ImageBonus:       cfg.ImagePopularityBonus,
			FeaturedBonus:    cfg.FeaturedPopularityBonus,
			MaxExternalScore: cfg.MaxExternalScore,
		})

		if err := event.Validate(cfg.MaxDatesInternal); err != nil {
			logrus.WithError(err).WithField("name", event.Name).Warn("skipping invalid seed event")
			errorCount++
			continue
		}

		if err := DB.Create(&event).Error; err != nil {
			logrus.WithError(err).WithField("name", event.Name).Warn("failed to insert seed event")
			errorCount++
			continue
		}
		successCount++
	}

	logrus.WithFields(logrus.Fields{
		"loaded": successCount,
		"errors": errorCount,
	}).Info("seed load complete")
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
