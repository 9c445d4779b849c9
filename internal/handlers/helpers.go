package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-scheduler/internal/httperr"
	"github.com/BruksfildServices01/booking-scheduler/internal/middleware"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
	"github.com/BruksfildServices01/booking-scheduler/internal/timezone"
)

// currentProvider loads the provider owned by the session user. It
// writes the error response itself and reports false on failure.
func currentProvider(c *gin.Context, db *gorm.DB) (*models.Provider, bool) {
	userID := middleware.UserID(c)

	var p models.Provider
	err := db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeProviderNotFound))
		return nil, false
	}
	if err != nil {
		httperr.Respond(c, err)
		return nil, false
	}
	return &p, true
}

// idParam parses :id. A malformed id can never match a row, so it is
// reported with the caller's not-found code.
func idParam(c *gin.Context, notFoundCode string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Respond(c, httperr.ErrBusiness(notFoundCode))
		return uuid.Nil, false
	}
	return id, true
}

// parseDay accepts a plain date or a date-time and keeps the wall clock.
func parseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := timezone.ParseDate(s); err == nil {
		return t, nil
	}
	return timezone.ParseDateTime(s)
}

// queryInt reads an optional positive integer query parameter. Absent
// means 0.
func queryInt(c *gin.Context, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, httperr.ErrBusiness(httperr.CodeValidation)
	}
	return n, nil
}

func lookupError(c *gin.Context, err error, notFoundCode string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Respond(c, httperr.ErrBusiness(notFoundCode))
		return
	}
	httperr.Respond(c, err)
}
