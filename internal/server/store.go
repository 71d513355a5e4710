package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/senderplus/internal/model"
)

// ErrNotFound is returned when no package exists for a tracking ID.
var ErrNotFound = errors.New("package not found")

// PackageStore provides SQLite-based storage for submitted packages.
// It manages connection pooling and provides methods for CRUD operations.
//
// Design decision: We use a single database file for all packages rather
// than partitioning by date or sender. The demo service handles modest
// volumes, and a single file simplifies backup and inspection.
type PackageStore struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// StoreOptions configures PackageStore behavior.
type StoreOptions struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultStoreOptions returns the default store options.
func DefaultStoreOptions() StoreOptions {
	return StoreOptions{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// OpenStore opens or creates a PackageStore at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func OpenStore(dataDir string, opts StoreOptions) (*PackageStore, error) {
	dbPath := filepath.Join(dataDir, "senderplus.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dataDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	// Build connection string
	// We use modernc.org/sqlite which uses a different connection string format.
	// When CreateIfNotExists is false, we use mode=rw to prevent creating new files.
	// When CreateIfNotExists is true, we use mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	// SQLite doesn't benefit from multiple connections for writes,
	// but multiple readers can improve performance
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	store := &PackageStore{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := store.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *PackageStore) Close() error {
	return s.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (s *PackageStore) createTables() error {
	schema := `
	-- Packages store one row per submission, keyed by tracking ID
	CREATE TABLE IF NOT EXISTS packages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tracking_id TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL DEFAULT 'waiting_bus',
		sender_name TEXT NOT NULL,
		sender_phone TEXT NOT NULL,
		sender_email TEXT NOT NULL,
		sender_address TEXT NOT NULL,
		recipient_name TEXT NOT NULL,
		recipient_phone TEXT NOT NULL,
		recipient_email TEXT,
		recipient_address TEXT NOT NULL,
		package_name TEXT NOT NULL,
		package_type TEXT NOT NULL,
		weight TEXT NOT NULL DEFAULT '0',
		value TEXT,
		description TEXT,
		photo_path TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_packages_tracking ON packages(tracking_id);
	CREATE INDEX IF NOT EXISTS idx_packages_status ON packages(status);
	CREATE INDEX IF NOT EXISTS idx_packages_created ON packages(created_at);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// StoredPackage is the server-side package row.
// Status holds the stage wire code; the display label is applied when the
// record is serialized for the track response.
type StoredPackage struct {
	ID               int64
	TrackingID       string
	Status           model.Stage
	SenderName       string
	SenderPhone      string
	SenderEmail      string
	SenderAddress    string
	RecipientName    string
	RecipientPhone   string
	RecipientEmail   string
	RecipientAddress string
	PackageName      string
	PackageType      string
	Weight           string
	Value            string
	Description      string
	PhotoPath        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewTrackingID generates a fresh tracking identifier.
// The identifier is the first 8 characters of a random UUID, which keeps
// it short enough to read over the phone while leaving collisions
// vanishingly rare at demo-service scale.
func NewTrackingID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// InsertPackage inserts a new package row.
// The caller is expected to have set a fresh TrackingID; the row ID is
// returned on success.
func (s *PackageStore) InsertPackage(ctx context.Context, pkg *StoredPackage) (int64, error) {
	query := `
	INSERT INTO packages (
		tracking_id, status,
		sender_name, sender_phone, sender_email, sender_address,
		recipient_name, recipient_phone, recipient_email, recipient_address,
		package_name, package_type, weight, value, description, photo_path
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		pkg.TrackingID,
		pkg.Status.Code(),
		pkg.SenderName,
		pkg.SenderPhone,
		pkg.SenderEmail,
		pkg.SenderAddress,
		pkg.RecipientName,
		pkg.RecipientPhone,
		pkg.RecipientEmail,
		pkg.RecipientAddress,
		pkg.PackageName,
		pkg.PackageType,
		pkg.Weight,
		pkg.Value,
		pkg.Description,
		pkg.PhotoPath,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert package: %w", err)
	}

	return result.LastInsertId()
}

// GetPackage retrieves a package by tracking ID.
// Returns ErrNotFound when no row matches.
func (s *PackageStore) GetPackage(ctx context.Context, trackingID string) (*StoredPackage, error) {
	query := `
	SELECT id, tracking_id, status,
		sender_name, sender_phone, sender_email, sender_address,
		recipient_name, recipient_phone, recipient_email, recipient_address,
		package_name, package_type, weight, value, description, photo_path,
		created_at, updated_at
	FROM packages
	WHERE tracking_id = ?
	`

	var pkg StoredPackage
	var status, createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, query, trackingID).Scan(
		&pkg.ID,
		&pkg.TrackingID,
		&status,
		&pkg.SenderName,
		&pkg.SenderPhone,
		&pkg.SenderEmail,
		&pkg.SenderAddress,
		&pkg.RecipientName,
		&pkg.RecipientPhone,
		&pkg.RecipientEmail,
		&pkg.RecipientAddress,
		&pkg.PackageName,
		&pkg.PackageType,
		&pkg.Weight,
		&pkg.Value,
		&pkg.Description,
		&pkg.PhotoPath,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	pkg.Status = model.ParseStage(status)
	pkg.CreatedAt = parseTimestamp(createdAt)
	pkg.UpdatedAt = parseTimestamp(updatedAt)

	return &pkg, nil
}

// AdvanceStatus moves a package to its next delivery stage.
// A package already at the terminal stage is left unchanged; the stored
// status is authoritative either way. Returns the refreshed row.
func (s *PackageStore) AdvanceStatus(ctx context.Context, trackingID string) (*StoredPackage, error) {
	pkg, err := s.GetPackage(ctx, trackingID)
	if err != nil {
		return nil, err
	}

	next := pkg.Status.Next()
	if next == pkg.Status {
		return pkg, nil
	}

	query := `
	UPDATE packages
	SET status = ?, updated_at = CURRENT_TIMESTAMP
	WHERE tracking_id = ?
	`
	if _, err := s.db.ExecContext(ctx, query, next.Code(), trackingID); err != nil {
		return nil, fmt.Errorf("failed to advance status: %w", err)
	}

	return s.GetPackage(ctx, trackingID)
}

// CountPackages returns the number of stored packages.
func (s *PackageStore) CountPackages(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM packages").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count packages: %w", err)
	}
	return count, nil
}

// timestampFormats lists the layouts SQLite may use for DATETIME columns.
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05.999999999-07:00",
}

// parseTimestamp parses a SQLite timestamp string.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	// Return zero time if no format matches
	// This is a fallback to avoid breaking functionality for edge cases
	return time.Time{}
}
