package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"campusshield/logger"
	"campusshield/middleware"
	"campusshield/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DashboardController serves the authenticated admin endpoints.
type DashboardController struct {
	svc *services.ComplaintService
	loc *time.Location
}

func NewDashboardController(svc *services.ComplaintService, loc *time.Location) *DashboardController {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardController{svc: svc, loc: loc}
}

// List handles GET /api/admin/complaints?category=&status=&q=.
func (ctl *DashboardController) List(c *gin.Context) {
	var f services.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter"})
		return
	}

	d, err := ctl.svc.Dashboard(c.Request.Context(), f)
	if err != nil {
		logger.Log.Error("list complaints failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching complaints"})
		return
	}
	c.JSON(http.StatusOK, d)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export handles GET /api/admin/complaints/export and writes the filtered
// list as xlsx (default) or csv.
func (ctl *DashboardController) Export(c *gin.Context) {
	var f services.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter"})
		return
	}
	format := strings.ToLower(c.DefaultQuery("format", "xlsx"))
	if format != "xlsx" && format != "csv" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be xlsx or csv"})
		return
	}

	d, err := ctl.svc.Dashboard(c.Request.Context(), f)
	if err != nil {
		logger.Log.Error("export complaints failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching complaints"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="complaints.`+format+`"`)
	if format == "csv" {
		c.Header("Content-Type", "text/csv; charset=utf-8")
		err = services.WriteCSV(c.Writer, d.Complaints, ctl.loc)
	} else {
		c.Header("Content-Type", xlsxContentType)
		err = services.WriteXLSX(c.Writer, d.Complaints, ctl.loc)
	}
	if err != nil {
		// headers are already sent
		logger.Log.Error("write export failed", zap.String("format", format), zap.Error(err))
		_ = c.Error(err)
		return
	}

	logger.Log.Info("complaints exported",
		zap.String("format", format),
		zap.Int("rows", len(d.Complaints)),
		zap.String("admin", c.GetString(middlewares.AdminEmailKey)),
	)
}

// GetCase handles GET /api/admin/cases/:ticketId.
func (ctl *DashboardController) GetCase(c *gin.Context) {
	complaint, err := ctl.svc.CaseDetail(c.Request.Context(), c.Param("ticketId"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
			return
		}
		logger.Log.Error("fetch case failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching complaint"})
		return
	}
	c.JSON(http.StatusOK, complaint)
}

// UpdateCase handles PUT /api/admin/cases/:ticketId.
func (ctl *DashboardController) UpdateCase(c *gin.Context) {
	var upd services.CaseUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	adminID := c.GetString(middlewares.AdminEmailKey)
	complaint, err := ctl.svc.UpdateCase(c.Request.Context(), c.Param("ticketId"), upd, adminID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be pending, in-review or resolved"})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		default:
			logger.Log.Error("update case failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update case"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Case updated successfully", "complaint": complaint})
}
