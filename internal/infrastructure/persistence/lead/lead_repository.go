// Package lead provides the concrete SQL-based implementation of the lead
// domain repository. Platform lists are stored as JSON text; the domain
// only ever sees []string.
package lead

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	domain "github.com/mwdesignstudio/leadpulse-go/internal/domain/lead"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/logging"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/persistence/database"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/security"
)

const timeLayout = "2006-01-02 15:04:05"

// SQLLeadRepository is the SQL-based implementation of the lead Repository.
type SQLLeadRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

// NewSQLLeadRepository creates a new instance of the repository.
func NewSQLLeadRepository(db *database.DB, logger *logging.ChanneledLogger) *SQLLeadRepository {
	return &SQLLeadRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema creates the leads table if it does not exist.
func (r *SQLLeadRepository) EnsureSchema() error {
	const query = `
		CREATE TABLE IF NOT EXISTS leads (
			id TEXT PRIMARY KEY,
			business_name TEXT NOT NULL,
			website TEXT NOT NULL DEFAULT '',
			brand_story TEXT NOT NULL DEFAULT '',
			usp TEXT NOT NULL DEFAULT '',
			demographics TEXT NOT NULL DEFAULT '',
			brand_voice TEXT NOT NULL DEFAULT '',
			competitors TEXT NOT NULL DEFAULT '',
			budget TEXT NOT NULL DEFAULT '',
			platforms TEXT NOT NULL DEFAULT '[]',
			timeline TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'New',
			priority TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT
		)`

	if _, err := r.db.Exec(query); err != nil {
		r.logger.Database().Error("Failed to ensure leads schema", "error", err.Error())
		return fmt.Errorf("failed to ensure leads schema: %w", err)
	}

	const indexQuery = `CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads (created_at)`
	if _, err := r.db.Exec(indexQuery); err != nil {
		return fmt.Errorf("failed to ensure leads index: %w", err)
	}
	return nil
}

const selectColumns = `
	SELECT id, business_name, website, brand_story, usp, demographics,
	       brand_voice, competitors, budget, platforms, timeline, status,
	       priority, notes, created_at, updated_at
	FROM leads`

// FindAll returns the complete snapshot of lead records.
func (r *SQLLeadRepository) FindAll() ([]*domain.Lead, error) {
	query := selectColumns + ` ORDER BY created_at`

	start := time.Now()
	r.logger.Database().Debug("Loading all leads")

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to load leads", "error", err.Error())
		return nil, fmt.Errorf("failed to load leads: %w", err)
	}
	defer rows.Close()

	leads, err := r.scanLeads(rows)
	if err != nil {
		return nil, err
	}

	duration := time.Since(start)
	r.logger.Database().Debug("Loaded all leads", "count", len(leads), "duration", duration)
	database.CheckAndLogSlowQuery(r.logger, "SELECT * FROM leads", duration)
	return leads, nil
}

// FindByCreatedRange returns leads created within the inclusive date window.
func (r *SQLLeadRepository) FindByCreatedRange(startDate, endDate time.Time) ([]*domain.Lead, error) {
	query := selectColumns + ` WHERE date(created_at) >= ? AND date(created_at) <= ? ORDER BY created_at`

	start := time.Now()
	rows, err := r.db.Query(query, startDate.UTC().Format("2006-01-02"), endDate.UTC().Format("2006-01-02"))
	if err != nil {
		r.logger.Database().Error("Failed to load leads by range", "error", err.Error())
		return nil, fmt.Errorf("failed to load leads by range: %w", err)
	}
	defer rows.Close()

	leads, err := r.scanLeads(rows)
	if err != nil {
		return nil, err
	}

	database.CheckAndLogSlowQuery(r.logger, "SELECT * FROM leads WHERE date range", time.Since(start))
	return leads, nil
}

// CountByStatus counts leads currently in the given pipeline stage.
func (r *SQLLeadRepository) CountByStatus(status string) (int, error) {
	const query = `SELECT COUNT(*) FROM leads WHERE status = ?`

	var count int
	if err := r.db.QueryRow(query, status).Scan(&count); err != nil {
		r.logger.Database().Error("Failed to count leads by status", "error", err.Error(), "status", status)
		return 0, fmt.Errorf("failed to count leads by status: %w", err)
	}
	return count, nil
}

// CountByCreatedRange counts leads created inside the inclusive window.
func (r *SQLLeadRepository) CountByCreatedRange(startDate, endDate time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM leads WHERE date(created_at) >= ? AND date(created_at) <= ?`

	var count int
	err := r.db.QueryRow(query, startDate.UTC().Format("2006-01-02"), endDate.UTC().Format("2006-01-02")).Scan(&count)
	if err != nil {
		r.logger.Database().Error("Failed to count leads by range", "error", err.Error())
		return 0, fmt.Errorf("failed to count leads by range: %w", err)
	}
	return count, nil
}

// CountByCreatedRangeAndStatus combines the date window and stage filters.
func (r *SQLLeadRepository) CountByCreatedRangeAndStatus(startDate, endDate time.Time, status string) (int, error) {
	const query = `SELECT COUNT(*) FROM leads WHERE date(created_at) >= ? AND date(created_at) <= ? AND status = ?`

	var count int
	err := r.db.QueryRow(query, startDate.UTC().Format("2006-01-02"), endDate.UTC().Format("2006-01-02"), status).Scan(&count)
	if err != nil {
		r.logger.Database().Error("Failed to count leads by range and status", "error", err.Error(), "status", status)
		return 0, fmt.Errorf("failed to count leads by range and status: %w", err)
	}
	return count, nil
}

// Store inserts a new lead record, minting a ULID when the caller left the
// ID empty.
func (r *SQLLeadRepository) Store(l *domain.Lead) error {
	const query = `
		INSERT INTO leads (id, business_name, website, brand_story, usp, demographics,
		                   brand_voice, competitors, budget, platforms, timeline, status,
		                   priority, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if l.ID == "" {
		l.ID = security.GenerateULID()
	}

	platforms, err := json.Marshal(l.Platforms)
	if err != nil {
		return fmt.Errorf("failed to encode platforms: %w", err)
	}

	var updatedAt any
	if l.UpdatedAt != nil {
		updatedAt = l.UpdatedAt.UTC().Format(timeLayout)
	}

	start := time.Now()
	r.logger.Database().Debug("Executing lead insert", "id", l.ID, "business", l.BusinessName)

	_, err = r.db.Exec(
		query,
		l.ID,
		l.BusinessName,
		l.Website,
		l.BrandStory,
		l.USP,
		l.Demographics,
		l.BrandVoice,
		l.Competitors,
		l.Budget,
		string(platforms),
		l.Timeline,
		l.Status,
		l.Priority,
		l.Notes,
		l.CreatedAt.UTC().Format(timeLayout),
		updatedAt,
	)
	if err != nil {
		r.logger.Database().Error("Lead insert failed", "error", err.Error(), "id", l.ID)
		return fmt.Errorf("failed to store lead: %w", err)
	}

	r.logger.Database().Info("Lead insert completed", "id", l.ID, "duration", time.Since(start))
	return nil
}

// UpdateStatus moves a lead to a new stage and stamps updated_at.
func (r *SQLLeadRepository) UpdateStatus(id, status string, at time.Time) error {
	const query = `UPDATE leads SET status = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.Exec(query, status, at.UTC().Format(timeLayout), id)
	if err != nil {
		r.logger.Database().Error("Lead status update failed", "error", err.Error(), "id", id, "status", status)
		return fmt.Errorf("failed to update lead status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("lead %s not found", id)
	}

	r.logger.Database().Info("Lead status updated", "id", id, "status", status)
	return nil
}

// scanLeads converts result rows to domain leads, decoding the platforms
// JSON column once at the persistence boundary.
func (r *SQLLeadRepository) scanLeads(rows *sql.Rows) ([]*domain.Lead, error) {
	var leads []*domain.Lead

	for rows.Next() {
		var l domain.Lead
		var platformsJSON string
		var createdAt string
		var updatedAt sql.NullString

		err := rows.Scan(
			&l.ID,
			&l.BusinessName,
			&l.Website,
			&l.BrandStory,
			&l.USP,
			&l.Demographics,
			&l.BrandVoice,
			&l.Competitors,
			&l.Budget,
			&platformsJSON,
			&l.Timeline,
			&l.Status,
			&l.Priority,
			&l.Notes,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}

		if err := json.Unmarshal([]byte(platformsJSON), &l.Platforms); err != nil {
			r.logger.Database().Warn("Malformed platforms column, using empty list", "id", l.ID, "error", err.Error())
			l.Platforms = nil
		}

		l.CreatedAt, err = time.ParseInLocation(timeLayout, createdAt, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for lead %s: %w", l.ID, err)
		}

		if updatedAt.Valid && updatedAt.String != "" {
			t, err := time.ParseInLocation(timeLayout, updatedAt.String, time.UTC)
			if err != nil {
				return nil, fmt.Errorf("failed to parse updated_at for lead %s: %w", l.ID, err)
			}
			l.UpdatedAt = &t
		}

		leads = append(leads, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lead row iteration failed: %w", err)
	}
	return leads, nil
}
