package handlers

import (

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-scheduler/internal/httperr"
	"github.com/BruksfildServices01/booking-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
	"github.com/BruksfildServices01/booking-scheduler/internal/validators"
)

type AvailabilityHandler struct {
	db *gorm.DB
}

func NewAvailabilityHandler(db *gorm.DB) *AvailabilityHandler {
	return &AvailabilityHandler{db: db}
}

type CreateAvailabilityRequest struct {
	DayOfWeek *int   `json:"dayOfWeek" binding:"required,min=0,max=6"`
	StartTime string `json:"startTime" binding:"required,hhmm"`
	EndTime   string `json:"endTime" binding:"required,hhmm"`
	IsEnabled *bool  `json:"isEnabled"`
}

type UpdateAvailabilityRequest struct {
	DayOfWeek *int    `json:"dayOfWeek" binding:"omitempty,min=0,max=6"`
	StartTime *string `json:"startTime" binding:"omitempty,hhmm"`
	EndTime   *string `json:"endTime" binding:"omitempty,hhmm"`
	IsEnabled *bool   `json:"isEnabled"`
}

func (h *AvailabilityHandler) List(c *gin.Context) {
	p, ok := currentProvider(c, h.db)
	if !ok {
		return
	}

	var rules []models.Availability
	if err := h.db.WithContext(c.Request.Context()).
		Where("provider_id = ?", p.ID).
		Order("day_of_week ASC, start_time ASC").
		Find(&rules).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, rules)
}

func (h *AvailabilityHandler) Create(c *gin.Context) {
	p, ok := currentProvider(c, h.db)
	if !ok {
		return
	}

	var req CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}
	if !validators.ClockRangeValid(req.StartTime, req.EndTime) {
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeValidation))
		return
	}

	rule := models.Availability{
		ProviderID: p.ID,
		DayOfWeek:  *req.DayOfWeek,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		IsEnabled:  true,
	}
	if req.IsEnabled != nil {
		rule.IsEnabled = *req.IsEnabled
	}

	if err := h.db.WithContext(c.Request.Context()).
		Omit("Provider").
		Select("*").
		Create(&rule).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, rule)
}

func (h *AvailabilityHandler) Update(c *gin.Context) {
	rule, ok := h.owned(c)
	if !ok {
		return
	}

	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	if req.DayOfWeek != nil {
		rule.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		rule.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		rule.EndTime = *req.EndTime
	}
	if req.IsEnabled != nil {
		rule.IsEnabled = *req.IsEnabled
	}
	if !validators.ClockRangeValid(rule.StartTime, rule.EndTime) {
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeValidation))
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Omit("Provider").Save(rule).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, rule)
}

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	rule, ok := h.owned(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(rule).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Availability deleted.")
}

func (h *AvailabilityHandler) owned(c *gin.Context) (*models.Availability, bool) {
	p, ok := currentProvider(c, h.db)
	if !ok {
		return nil, false
	}
	id, ok := idParam(c, httperr.CodeAvailabilityNotFound)
	if !ok {
		return nil, false
	}

	var rule models.Availability
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND provider_id = ?", id, p.ID).
		First(&rule).Error; err != nil {
		lookupError(c, err, httperr.CodeAvailabilityNotFound)
		return nil, false
	}
	return &rule, true
}
