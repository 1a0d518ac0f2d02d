package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/logging"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/persistence/database"
)

// DBHandlers exposes database status for the dashboard health widget.
type DBHandlers struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

func NewDBHandlers(db *database.DB, logger *logging.ChanneledLogger) *DBHandlers {
	return &DBHandlers{db: db, logger: logger}
}

// GetDatabaseStatus handles GET /api/v1/db/status.
func (h *DBHandlers) GetDatabaseStatus(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		h.logger.Database().Error("Database status check failed", "error", err.Error())
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
