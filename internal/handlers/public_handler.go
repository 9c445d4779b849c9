package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/booking-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-scheduler/internal/dto"
	"github.com/BruksfildServices01/booking-scheduler/internal/httperr"
	"github.com/BruksfildServices01/booking-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
	"github.com/BruksfildServices01/booking-scheduler/internal/timezone"
	"github.com/BruksfildServices01/booking-scheduler/internal/validators"
)

type SlotFinder interface {
	Execute(ctx context.Context, in domain.AvailabilityInput) ([]domain.TimeSlot, error)
}

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db     *gorm.DB
	create AppointmentCreator
	slots  SlotFinder
}

func NewPublicHandler(db *gorm.DB, create AppointmentCreator, slots SlotFinder) *PublicHandler {
	return &PublicHandler{
		db:     db,
		create: create,
		slots:  slots,
	}
}

////////////////////////////////////////////////////////
// PROVIDER
////////////////////////////////////////////////////////

func (h *PublicHandler) Provider(c *gin.Context) {
	p, ok := h.activeProvider(c)
	if !ok {
		return
	}
	httpresp.OK(c, dto.PublicProvider(p))
}

func (h *PublicHandler) Services(c *gin.Context) {
	p, ok := h.activeProvider(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("provider_id = ? AND is_active = ?", p.ID, true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.PublicServices(services))
}

////////////////////////////////////////////////////////
// SLOTS
////////////////////////////////////////////////////////

func (h *PublicHandler) Slots(c *gin.Context) {
	day, err := timezone.ParseDate(c.Query("date"))
	if err != nil {
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeValidation))
		return
	}
	serviceID, err := uuid.Parse(c.Query("serviceId"))
	if err != nil {
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeValidation))
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), domain.AvailabilityInput{
		Slug:      c.Param("slug"),
		ServiceID: serviceID,
		Date:      day,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"date":  day.Format(timezone.DateLayout),
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// BOOK
////////////////////////////////////////////////////////

func (h *PublicHandler) Book(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	in, err := req.input()
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	in.Slug = c.Param("slug")

	ap, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *PublicHandler) activeProvider(c *gin.Context) (*models.Provider, bool) {
	var p models.Provider
	err := h.db.WithContext(c.Request.Context()).
		Where("slug = ? AND is_active = ?", validators.NormalizeSlug(c.Param("slug")), true).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeSlugNotFound))
		return nil, false
	}
	if err != nil {
		httperr.Respond(c, err)
		return nil, false
	}
	return &p, true
}
