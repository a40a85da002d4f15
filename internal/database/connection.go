package database

import (
	"fmt"
	"time"

	"github.com/mroshb/debate_arena/internal/config"
	"github.com/mroshb/debate_arena/internal/models"
	"github.com/mroshb/debate_arena/internal/repositories"
	"github.com/mroshb/debate_arena/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.GetDSN()

	var logLevel gormlogger.LogLevel
	if cfg.AppEnv == "development" {
		logLevel = gormlogger.Info
	} else {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		SkipDefaultTransaction: true, // Skip wrapping every operation in a transaction
		PrepareStmt:            true, // Cache prepared statements
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// The workload is many short-lived polling requests, so keep a warm
	// idle pool and let it scale under load.
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetMaxOpenConns(200)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	logger.Info("Database connected successfully")
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Debate{},
		&models.DebateMessage{},
		&models.DebateVote{},
		&models.DebateTopic{},
	)

	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// The fixed prompt catalogue. SeedTopics only inserts what is missing,
// so operator-imported topics survive restarts.
var defaultTopics = []string{
	"Should the government provide universal healthcare?",
	"Is nuclear energy the solution to climate change?",
	"Should college education be free for all citizens?",
	"Should the minimum wage be raised to $15 per hour?",
	"Should social media platforms be regulated like public utilities?",
	"Should the electoral college be abolished?",
	"Is capitalism the best economic system?",
	"Should recreational marijuana be legalized nationwide?",
	"Should the United States adopt stricter gun control laws?",
	"Should the government implement a universal basic income?",
	"Are charter schools better than public schools?",
	"Should the United States have a single-payer healthcare system?",
	"Should the voting age be lowered to 16?",
	"Should the Supreme Court have term limits?",
	"Is a flat tax system fairer than a progressive tax system?",
}

func SeedTopics(db *gorm.DB) error {
	logger.Info("Checking topic catalogue...")

	repo := repositories.NewTopicRepository(db)
	count, err := repo.CountTopics()
	if err != nil {
		return err
	}

	if count >= int64(len(defaultTopics)) {
		return nil
	}

	logger.Info("Seeding debate topics...", "existing", count)
	return repo.SeedTopics(defaultTopics)
}
