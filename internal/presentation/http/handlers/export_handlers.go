package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mwdesignstudio/leadpulse-go/internal/application/services"
	"github.com/mwdesignstudio/leadpulse-go/internal/domain/lead"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/logging"
)

// ExportHandlers serves CSV downloads of the lead collection.
type ExportHandlers struct {
	leadRepo      lead.Repository
	exportService *services.ExportService
	logger        *logging.ChanneledLogger
}

func NewExportHandlers(leadRepo lead.Repository, exportService *services.ExportService, logger *logging.ChanneledLogger) *ExportHandlers {
	return &ExportHandlers{leadRepo: leadRepo, exportService: exportService, logger: logger}
}

// GetExport handles GET /api/v1/leads/export?ids=a,b,c. Without ids the
// full collection is exported.
func (h *ExportHandlers) GetExport(c *gin.Context) {
	snapshot, err := h.leadRepo.FindAll()
	if err != nil {
		h.logger.Analytics().Error("Failed to load leads for export", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leads"})
		return
	}

	var ids []string
	if raw := c.Query("ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}

	content, err := h.exportService.ExportCSV(snapshot, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	filename := fmt.Sprintf("leadpulse_submissions_%s.csv", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", content)
}
