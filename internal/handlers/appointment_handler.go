package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/booking-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-scheduler/internal/dto"
	"github.com/BruksfildServices01/booking-scheduler/internal/httperr"
	"github.com/BruksfildServices01/booking-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/booking-scheduler/internal/middleware"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
	"github.com/BruksfildServices01/booking-scheduler/internal/timezone"
	"github.com/BruksfildServices01/booking-scheduler/internal/usecase/appointment"
)

// ======================================================
// USE CASE PORTS
// ======================================================

type AppointmentCreator interface {
	Execute(ctx context.Context, in appointment.CreateAppointmentInput) (*models.Appointment, error)
}

type AppointmentUpdater interface {
	Execute(ctx context.Context, in appointment.UpdateAppointmentInput) (*models.Appointment, error)
}

type AppointmentLister interface {
	Execute(ctx context.Context, providerID uuid.UUID, q appointment.ListQuery) ([]dto.AppointmentListDTO, error)
}

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db     *gorm.DB
	create AppointmentCreator
	update AppointmentUpdater
	list   AppointmentLister
}

func NewAppointmentHandler(
	db *gorm.DB,
	create AppointmentCreator,
	update AppointmentUpdater,
	list AppointmentLister,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:     db,
		create: create,
		update: update,
		list:   list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// BookingRequest is the client-facing part of a booking. Price and
// duration are not accepted; they come from the service.
type BookingRequest struct {
	ServiceID       uuid.UUID `json:"serviceId" binding:"required"`
	ClientName      string    `json:"clientName" binding:"required,max=100"`
	ClientPhone     string    `json:"clientPhone" binding:"required,max=20"`
	ClientEmail     string    `json:"clientEmail" binding:"omitempty,email,max=100"`
	AppointmentDate string    `json:"appointmentDate" binding:"required"`
	Notes           string    `json:"notes" binding:"max=500"`
}

type CreateAppointmentRequest struct {
	BookingRequest
	Status string `json:"status" binding:"omitempty,oneof=pending confirmed"`
}

type UpdateAppointmentRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes" binding:"omitempty,max=500"`
}

func (r BookingRequest) input() (appointment.CreateAppointmentInput, error) {
	start, err := timezone.ParseDateTime(r.AppointmentDate)
	if err != nil {
		return appointment.CreateAppointmentInput{}, httperr.ErrBusiness(httperr.CodeValidation)
	}

	return appointment.CreateAppointmentInput{
		ServiceID:       r.ServiceID,
		ClientName:      r.ClientName,
		ClientPhone:     r.ClientPhone,
		ClientEmail:     r.ClientEmail,
		AppointmentDate: start,
		Notes:           r.Notes,
	}, nil
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	p, ok := currentProvider(c, h.db)
	if !ok {
		return
	}

	q := appointment.ListQuery{Date: c.Query("date")}
	var err error
	if q.Year, err = queryInt(c, "year"); err != nil {
		httperr.Respond(c, err)
		return
	}
	if q.Month, err = queryInt(c, "month"); err != nil {
		httperr.Respond(c, err)
		return
	}

	list, err := h.list.Execute(c.Request.Context(), p.ID, q)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, list)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	p, ok := currentProvider(c, h.db)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	in, err := req.input()
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	userID := middleware.UserID(c)
	in.ProviderID = p.ID
	in.ActorID = &userID
	in.Status = domain.Status(req.Status)

	ap, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// UPDATE (status / notes)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	p, ok := currentProvider(c, h.db)
	if !ok {
		return
	}
	id, ok := idParam(c, httperr.CodeAppointmentNotFound)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	userID := middleware.UserID(c)
	in := appointment.UpdateAppointmentInput{
		ProviderID:    p.ID,
		AppointmentID: id,
		ActorID:       &userID,
		Notes:         req.Notes,
	}
	if req.Status != nil {
		s := domain.Status(*req.Status)
		in.Status = &s
	}

	ap, err := h.update.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}
