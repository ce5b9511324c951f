package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bookhubapp/bookhub/internal/pkg/errcode"
	"github.com/bookhubapp/bookhub/internal/pkg/response"
	"github.com/bookhubapp/bookhub/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
	otps *service.OtpService
}

func NewAuthHandler(auth *service.AuthService, otps *service.OtpService) *AuthHandler {
	return &AuthHandler{auth: auth, otps: otps}
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"username": user.Username,
	})
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	user, token, err := h.auth.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
		},
	})
}

type verifyEmailRequest struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if err := h.otps.VerifyEmail(c.Request.Context(), req.Username, req.Code); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"verified": true})
}

type emailRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) ResendCode(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if err := h.otps.Resend(c.Request.Context(), req.Email); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"sent": true})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if err := h.otps.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"sent": true})
}

type resetPasswordRequest struct {
	Username        string `json:"username"`
	Code            string `json:"code"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	err := h.otps.ConfirmPasswordReset(c.Request.Context(), req.Username, req.Code, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"reset": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.Me(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"id":          user.ID,
		"email":       user.Email,
		"username":    user.Username,
		"is_verified": user.IsVerified != 0,
	})
}
