package service

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/Lingaraj8064/Crop-AI-Sys/config"
	"github.com/Lingaraj8064/Crop-AI-Sys/models"

	_ "github.com/microsoft/go-mssqldb"
)

// ArchiveService mirrors completed analyses into a SQL Server table
// for reporting. The service is optional: when the archive config is
// absent the app runs without it, and a failed ping at startup only
// logs a warning so a temporarily unreachable server does not block
// the application.
type ArchiveService struct {
	db *sql.DB
}

func NewArchiveService(cfg config.ArchiveConfig) (*ArchiveService, error) {
	if cfg.Server == "" || cfg.Database == "" {
		return nil, fmt.Errorf("archive SQL Server configuration is incomplete")
	}

	connectionString := buildConnectionString(cfg)

	db, err := sql.Open("sqlserver", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQL Server connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Printf("Warning: failed to ping archive SQL Server during initialization: %v", err)
	} else if err := ensureSchema(db); err != nil {
		log.Printf("Warning: failed to ensure archive schema: %v", err)
	}

	return &ArchiveService{db: db}, nil
}

func buildConnectionString(cfg config.ArchiveConfig) string {
	connStr := fmt.Sprintf("server=%s;port=%s;database=%s",
		cfg.Server, cfg.Port, cfg.Database)

	if cfg.UserID != "" {
		connStr += fmt.Sprintf(";user id=%s;password=%s", cfg.UserID, cfg.Password)
	} else {
		connStr += ";trusted_connection=true"
	}

	if cfg.Encrypt {
		// Use TLS but skip CA verification so self-signed / internal certs work.
		// NOTE: For production, you should configure proper certificates instead.
		connStr += ";encrypt=true;TrustServerCertificate=true"
	} else {
		connStr += ";encrypt=false"
	}

	return connStr
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
IF OBJECT_ID('dbo.crop_analyses', 'U') IS NULL
CREATE TABLE dbo.crop_analyses (
    id NVARCHAR(64) NOT NULL PRIMARY KEY,
    plant_name NVARCHAR(128) NOT NULL,
    disease_name NVARCHAR(128) NULL,
    is_healthy BIT NOT NULL,
    confidence FLOAT NOT NULL,
    severity NVARCHAR(32) NULL,
    filename NVARCHAR(256) NOT NULL,
    created_at DATETIME2 NOT NULL
)`)
	return err
}

func (s *ArchiveService) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordAnalysis inserts one completed analysis into the archive
// table.
func (s *ArchiveService) RecordAnalysis(record models.AnalysisRecord) error {
	if s.db == nil {
		return fmt.Errorf("archive connection is not initialized")
	}

	createdAt, err := time.Parse(time.RFC3339, record.CreatedAt)
	if err != nil {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.Exec(`
INSERT INTO dbo.crop_analyses (id, plant_name, disease_name, is_healthy, confidence, severity, filename, created_at)
VALUES (@p1, @p2, @p3, @p4, @p5, @p6, @p7, @p8)`,
		record.ID,
		record.PlantName,
		sql.NullString{String: record.DiseaseName, Valid: record.DiseaseName != ""},
		record.IsHealthy,
		record.Confidence,
		sql.NullString{String: record.Severity, Valid: record.Severity != ""},
		record.Filename,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to archive analysis %s: %w", record.ID, err)
	}

	return nil
}

// IsConnected reports whether the archive backend currently answers.
func (s *ArchiveService) IsConnected() bool {
	if s.db == nil {
		return false
	}
	return s.db.Ping() == nil
}
