package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mcomanduci/diario-de-gratidao/internal/application"
	"github.com/mcomanduci/diario-de-gratidao/pkg/helpers"
	"github.com/mcomanduci/diario-de-gratidao/pkg/mailer"
	"github.com/mcomanduci/diario-de-gratidao/pkg/response"
	"github.com/mcomanduci/diario-de-gratidao/pkg/validation"
)

// AuthHandler owns the password reset flow. Reset links are delivered
// through the email queue; the API itself never returns the token.
type AuthHandler struct {
	Svc         *application.UserService
	Logger      *logrus.Logger
	Pub         *helpers.RabbitPublisher
	ResetURL    string
	MailEnabled bool
}

func NewAuthHandler(svc *application.UserService, logger *logrus.Logger, pub *helpers.RabbitPublisher, resetURL string, mailEnabled bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Pub: pub, ResetURL: resetURL, MailEnabled: mailEnabled}
}

type resetInitRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,pwd"`
}

// ResetInit POST /api/password/reset
//
// Always answers OK for well-formed requests so the endpoint cannot be
// used to probe which emails have accounts.
func (h *AuthHandler) ResetInit(c *gin.Context) {
	var req resetInitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	token, u, err := h.Svc.InitPasswordReset(c.Request.Context(), req.Email)
	if err == nil && h.Pub != nil && h.MailEnabled {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailer.TemplateResetPassword,
			Data: map[string]any{
				"Name":      u.Name,
				"ResetURL":  h.ResetURL + "?token=" + token,
				"ExpiresIn": "30 minutos",
			},
		}
		if perr := h.Pub.PublishJSON(c, job); perr != nil && h.Logger != nil {
			h.Logger.WithError(perr).WithField("user_id", u.ID).Warn("reset email enqueue failed")
		}
	}

	response.Success[any](c, http.StatusOK, gin.H{"requested": true}, "if the email exists, a reset link has been sent", nil)
}

// ResetConfirm POST /api/password/reset/confirm
func (h *AuthHandler) ResetConfirm(c *gin.Context) {
	var req resetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ConfirmPasswordReset(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		writeServiceError(c, h.Logger, err, "failed to reset password")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"reset": true}, "password reset", nil)
}
