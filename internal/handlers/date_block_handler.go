package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-scheduler/internal/httperr"
	"github.com/BruksfildServices01/booking-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
	"github.com/BruksfildServices01/booking-scheduler/internal/timezone"
)

type DateBlockHandler struct {
	db *gorm.DB
}

func NewDateBlockHandler(db *gorm.DB) *DateBlockHandler {
	return &DateBlockHandler{db: db}
}

type CreateDateBlockRequest struct {
	Title     string `json:"title" binding:"required,max=100"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	IsAllDay  *bool  `json:"isAllDay"`
}

type UpdateDateBlockRequest struct {
	Title     *string `json:"title" binding:"omitempty,min=1,max=100"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	IsAllDay  *bool   `json:"isAllDay"`
}

func (h *DateBlockHandler) List(c *gin.Context) {
	p, ok := currentProvider(c, h.db)
	if !ok {
		return
	}

	var blocks []models.DateBlock
	if err := h.db.WithContext(c.Request.Context()).
		Where("provider_id = ?", p.ID).
		Order("start_date ASC").
		Find(&blocks).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, blocks)
}

func (h *DateBlockHandler) Create(c *gin.Context) {
	p, ok := currentProvider(c, h.db)
	if !ok {
		return
	}

	var req CreateDateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	block := models.DateBlock{
		ProviderID: p.ID,
		Title:      strings.TrimSpace(req.Title),
		IsAllDay:   true,
	}
	if req.IsAllDay != nil {
		block.IsAllDay = *req.IsAllDay
	}
	if err := applyBlockDates(&block, &req.StartDate, &req.EndDate); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Omit("Provider").
		Select("*").
		Create(&block).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, block)
}

func (h *DateBlockHandler) Update(c *gin.Context) {
	block, ok := h.owned(c)
	if !ok {
		return
	}

	var req UpdateDateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	if req.Title != nil {
		block.Title = strings.TrimSpace(*req.Title)
	}
	if req.IsAllDay != nil {
		block.IsAllDay = *req.IsAllDay
	}
	if err := applyBlockDates(block, req.StartDate, req.EndDate); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Omit("Provider").Save(block).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, block)
}

func (h *DateBlockHandler) Delete(c *gin.Context) {
	block, ok := h.owned(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(block).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Date block deleted.")
}

func (h *DateBlockHandler) owned(c *gin.Context) (*models.DateBlock, bool) {
	p, ok := currentProvider(c, h.db)
	if !ok {
		return nil, false
	}
	id, ok := idParam(c, httperr.CodeDateBlockNotFound)
	if !ok {
		return nil, false
	}

	var block models.DateBlock
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND provider_id = ?", id, p.ID).
		First(&block).Error; err != nil {
		lookupError(c, err, httperr.CodeDateBlockNotFound)
		return nil, false
	}
	return &block, true
}

// applyBlockDates parses whichever bounds are given and checks the
// resulting range. All-day blocks are normalised to midnight.
func applyBlockDates(b *models.DateBlock, start, end *string) error {
	if start != nil {
		t, err := parseDay(*start)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeValidation)
		}
		b.StartDate = t
	}
	if end != nil {
		t, err := parseDay(*end)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeValidation)
		}
		b.EndDate = t
	}

	if b.IsAllDay {
		b.StartDate = timezone.StartOfDay(b.StartDate)
		b.EndDate = timezone.StartOfDay(b.EndDate)
	}
	if b.EndDate.Before(b.StartDate) {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}
	return nil
}
