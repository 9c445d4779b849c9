package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-scheduler/internal/audit"
	"github.com/BruksfildServices01/booking-scheduler/internal/httperr"
	"github.com/BruksfildServices01/booking-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/booking-scheduler/internal/media"
	"github.com/BruksfildServices01/booking-scheduler/internal/middleware"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
	"github.com/BruksfildServices01/booking-scheduler/internal/validators"
)

const maxImageBytes = 5 << 20

type ProviderHandler struct {
	db      *gorm.DB
	audit   audit.Recorder
	storage media.Uploader
}

// NewProviderHandler builds the handler. storage may be nil, in which
// case image upload answers not_configured.
func NewProviderHandler(db *gorm.DB, rec audit.Recorder, storage media.Uploader) *ProviderHandler {
	return &ProviderHandler{db: db, audit: rec, storage: storage}
}

// --------- Requests ---------

type CreateProviderRequest struct {
	BusinessName string `json:"businessName" binding:"required,max=100"`
	Slug         string `json:"slug" binding:"required,slug"`
	Description  string `json:"description" binding:"max=2000"`
	Category     string `json:"category" binding:"max=50"`
	Address      string `json:"address" binding:"max=255"`
	Phone        string `json:"phone" binding:"max=20"`
}

type UpdateProviderRequest struct {
	BusinessName *string `json:"businessName" binding:"omitempty,min=1,max=100"`
	Slug         *string `json:"slug" binding:"omitempty,slug"`
	Description  *string `json:"description" binding:"omitempty,max=2000"`
	Category     *string `json:"category" binding:"omitempty,max=50"`
	Address      *string `json:"address" binding:"omitempty,max=255"`
	Phone        *string `json:"phone" binding:"omitempty,max=20"`
	IsActive     *bool   `json:"isActive"`
}

// --------- Handlers ---------

func (h *ProviderHandler) Get(c *gin.Context) {
	p, ok := currentProvider(c, h.db)
	if !ok {
		return
	}
	httpresp.OK(c, p)
}

func (h *ProviderHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)
	ctx := c.Request.Context()

	var req CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	var count int64
	if err := h.db.WithContext(ctx).Model(&models.Provider{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	if count > 0 {
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeProviderExists))
		return
	}

	slug := validators.NormalizeSlug(req.Slug)
	if taken, err := h.slugTaken(c, slug, nil); err != nil || taken {
		h.slugError(c, err)
		return
	}

	p := models.Provider{
		UserID:       userID,
		BusinessName: strings.TrimSpace(req.BusinessName),
		Slug:         slug,
		Description:  req.Description,
		Category:     req.Category,
		Address:      req.Address,
		Phone:        req.Phone,
		IsActive:     true,
	}

	if err := h.db.WithContext(ctx).Omit("User").Create(&p).Error; err != nil {
		h.saveError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ProviderID: p.ID,
		UserID:     &userID,
		Action:     "provider_created",
		Entity:     "provider",
		EntityID:   &p.ID,
		Metadata:   map[string]any{"slug": p.Slug},
	})

	httpresp.Created(c, p)
}

func (h *ProviderHandler) Update(c *gin.Context) {
	p, ok := h.ownedProvider(c)
	if !ok {
		return
	}

	var req UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	if req.Slug != nil {
		slug := validators.NormalizeSlug(*req.Slug)
		if slug != p.Slug {
			if taken, err := h.slugTaken(c, slug, p); err != nil || taken {
				h.slugError(c, err)
				return
			}
			p.Slug = slug
		}
	}
	if req.BusinessName != nil {
		p.BusinessName = strings.TrimSpace(*req.BusinessName)
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Omit("User").Save(p).Error; err != nil {
		h.saveError(c, err)
		return
	}

	httpresp.OK(c, p)
}

// UploadImage accepts a multipart "image" field, converts it to a webp
// avatar and stores it.
func (h *ProviderHandler) UploadImage(c *gin.Context) {
	if h.storage == nil {
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeNotConfigured))
		return
	}

	p, ok := h.ownedProvider(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("image")
	if err != nil || fh.Size > maxImageBytes {
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeValidation))
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	defer f.Close()

	data, err := media.ToWebP(f, media.MaxSide)
	if errors.Is(err, media.ErrUnsupportedImage) {
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeValidation))
		return
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ctx := c.Request.Context()
	url, err := h.storage.Upload(ctx, media.ProfileImageKey(p.ID.String()), media.ContentType, data)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(ctx).
		Model(p).
		Update("profile_image_url", url).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profileImageUrl": url})
}

// --------- Helpers ---------

func (h *ProviderHandler) ownedProvider(c *gin.Context) (*models.Provider, bool) {
	id, ok := idParam(c, httperr.CodeProviderNotFound)
	if !ok {
		return nil, false
	}

	var p models.Provider
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", id, middleware.UserID(c)).
		First(&p).Error; err != nil {
		lookupError(c, err, httperr.CodeProviderNotFound)
		return nil, false
	}
	return &p, true
}

func (h *ProviderHandler) slugTaken(c *gin.Context, slug string, self *models.Provider) (bool, error) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.Provider{}).Where("slug = ?", slug)
	if self != nil {
		q = q.Where("id <> ?", self.ID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (h *ProviderHandler) slugError(c *gin.Context, err error) {
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httperr.Respond(c, httperr.ErrBusiness(httperr.CodeSlugExists))
}

// saveError maps unique-index races on slug and user_id.
func (h *ProviderHandler) saveError(c *gin.Context, err error) {
	if httperr.IsUniqueViolation(err) {
		if strings.Contains(httperr.ConstraintOf(err), "user_id") {
			httperr.Respond(c, httperr.ErrBusiness(httperr.CodeProviderExists))
			return
		}
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeSlugExists))
		return
	}
	httperr.Respond(c, err)
}
