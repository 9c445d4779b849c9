package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-scheduler/internal/config"
	"github.com/BruksfildServices01/booking-scheduler/internal/httperr"
	"github.com/BruksfildServices01/booking-scheduler/internal/middleware"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
	"github.com/BruksfildServices01/booking-scheduler/internal/session"
	"github.com/BruksfildServices01/booking-scheduler/internal/validators"
)

type Verifier interface {
	SendVerification(ctx context.Context, userID uuid.UUID, email, name string) bool
	VerifyCode(ctx context.Context, email, code string) (uuid.UUID, error)
	ResendCode(ctx context.Context, userID uuid.UUID, email, name string) (bool, error)
}

type AuthHandler struct {
	db       *gorm.DB
	config   *config.Config
	sessions *session.Manager
	verifier Verifier
}

func NewAuthHandler(
	db *gorm.DB,
	cfg *config.Config,
	sessions *session.Manager,
	verifier Verifier,
) *AuthHandler {
	return &AuthHandler{
		db:       db,
		config:   cfg,
		sessions: sessions,
		verifier: verifier,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Name     string `json:"name" binding:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

type ResendVerificationRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
	Email  string    `json:"email" binding:"required,email"`
	Name   string    `json:"name" binding:"max=100"`
}

type userResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	EmailVerified bool      `json:"emailVerified"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		EmailVerified: u.EmailVerified,
	}
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	ctx := c.Request.Context()
	email := validators.NormalizeEmail(req.Email)

	if h.config.CheckEmailDomain && !validators.IsEmailDomainValid(email) {
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeValidation))
		return
	}

	var count int64
	if err := h.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	if count > 0 {
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeEmailExists))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
	}

	if err := h.db.WithContext(ctx).Create(&user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Respond(c, httperr.ErrBusiness(httperr.CodeEmailExists))
			return
		}
		httperr.Respond(c, err)
		return
	}

	sent := h.verifier.SendVerification(ctx, user.ID, user.Email, user.Name)

	if !h.startSession(c, user.ID) {
		return
	}

	message := "Account created. Check your email for the verification code."
	if !sent {
		message = "Account created, but the verification email could not be sent. Request a new code."
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    toUserResponse(&user),
		"message": message,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	var user models.User
	err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", validators.NormalizeEmail(req.Email)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeBadCredentials))
		return
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeBadCredentials))
		return
	}

	if !h.startSession(c, user.ID) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(&user)})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(session.CookieName); err == nil && token != "" {
		if err := h.sessions.Revoke(c.Request.Context(), token); err != nil {
			slog.DebugContext(c.Request.Context(), "logout with stale session", "error", err)
		}
	}

	h.sessions.ClearCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}

func (h *AuthHandler) User(c *gin.Context) {
	var user models.User
	err := h.db.WithContext(c.Request.Context()).
		Where("id = ?", middleware.UserID(c)).
		First(&user).Error
	if err != nil {
		lookupError(c, err, httperr.CodeUserNotFound)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(&user))
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	userID, err := h.verifier.VerifyCode(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Email verified.",
		"userId":  userID,
	})
}

func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	sent, err := h.verifier.ResendCode(c.Request.Context(), req.UserID, req.Email, req.Name)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if !sent {
		httperr.Internal(c, "email_not_sent", "Could not send the verification email.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "A new verification code was sent."})
}

// --------- Session ---------

func (h *AuthHandler) startSession(c *gin.Context, userID uuid.UUID) bool {
	token, err := h.sessions.Issue(c.Request.Context(), userID)
	if err != nil {
		httperr.Respond(c, err)
		return false
	}
	h.sessions.SetCookie(c, token)
	return true
}
