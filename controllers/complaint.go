package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"campusshield/logger"
	"campusshield/models"
	"campusshield/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ComplaintController serves the anonymous, unauthenticated endpoints.
type ComplaintController struct {
	svc       *services.ComplaintService
	maxUpload int64
}

func NewComplaintController(svc *services.ComplaintService, maxUpload int64) *ComplaintController {
	return &ComplaintController{svc: svc, maxUpload: maxUpload}
}

type submitForm struct {
	Category    string `form:"category" json:"category" binding:"required"`
	Description string `form:"description" json:"description" binding:"required"`
	Email       string `form:"email" json:"email" binding:"omitempty,email"`
	Phone       string `form:"phone" json:"phone" binding:"omitempty,max=20"`
}

// Submit handles POST /api/complaints (multipart or JSON).
func (ctl *ComplaintController) Submit(c *gin.Context) {
	if ctl.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ctl.maxUpload+1<<20)
	}

	var form submitForm
	if err := c.ShouldBind(&form); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File must be 10MB or smaller"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category and description are required; email must be valid"})
		return
	}

	in := services.SubmitInput{
		Category:    form.Category,
		Description: form.Description,
		Email:       form.Email,
		Phone:       form.Phone,
	}

	fh, err := c.FormFile("file")
	switch {
	case err == nil:
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
			return
		}
		defer f.Close()
		in.File = &services.Attachment{Filename: fh.Filename, Size: fh.Size, Content: f}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case errors.Is(err, multipart.ErrMessageTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File must be 10MB or smaller"})
		return
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid upload"})
		return
	}

	complaint, err := ctl.svc.Submit(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCategory):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		case errors.Is(err, services.ErrEmptyDescription):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Description is required"})
		case errors.Is(err, services.ErrUnsupportedFile):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only JPG, PNG, PDF, DOC and DOCX files are allowed"})
		case errors.Is(err, services.ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File must be 10MB or smaller"})
		default:
			logger.Log.Error("submit complaint failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit complaint"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Complaint submitted successfully",
		"ticketId": complaint.TicketID,
	})
}

// Track handles GET /api/complaints/:ticketId for the public status page.
func (ctl *ComplaintController) Track(c *gin.Context) {
	complaint, err := ctl.svc.Track(c.Request.Context(), c.Param("ticketId"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
			return
		}
		logger.Log.Error("track complaint failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching complaint"})
		return
	}
	c.JSON(http.StatusOK, complaint)
}

type categoryOption struct {
	Value models.Category `json:"value"`
	Label string          `json:"label"`
}

func Categories(c *gin.Context) {
	out := make([]categoryOption, 0, len(models.Categories))
	for _, cat := range models.Categories {
		out = append(out, categoryOption{Value: cat, Label: cat.Label()})
	}
	c.JSON(http.StatusOK, out)
}
