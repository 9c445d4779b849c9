package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-scheduler/internal/httperr"
	"github.com/BruksfildServices01/booking-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Description string   `json:"description" binding:"max=255"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Duration    int      `json:"duration" binding:"required,min=1,max=1440"`
	IsActive    *bool    `json:"isActive"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=255"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Duration    *int     `json:"duration" binding:"omitempty,min=1,max=1440"`
	IsActive    *bool    `json:"isActive"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	p, ok := currentProvider(c, h.db)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("provider_id = ?", p.ID).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	p, ok := currentProvider(c, h.db)
	if !ok {
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	service := models.Service{
		ProviderID:  p.ID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       *req.Price,
		Duration:    req.Duration,
		IsActive:    true,
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	// gorm skips zero-value bools that carry a default tag
	if err := h.db.WithContext(c.Request.Context()).
		Omit("Provider").
		Select("*").
		Create(&service).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	service, ok := h.owned(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Duration != nil {
		service.Duration = *req.Duration
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Omit("Provider").Save(service).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	service, ok := h.owned(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(service).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Service deleted.")
}

func (h *ServiceHandler) owned(c *gin.Context) (*models.Service, bool) {
	p, ok := currentProvider(c, h.db)
	if !ok {
		return nil, false
	}
	id, ok := idParam(c, httperr.CodeServiceNotFound)
	if !ok {
		return nil, false
	}

	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND provider_id = ?", id, p.ID).
		First(&service).Error; err != nil {
		lookupError(c, err, httperr.CodeServiceNotFound)
		return nil, false
	}
	return &service, true
}
