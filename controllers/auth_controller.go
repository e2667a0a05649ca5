package controllers

import (
	"net/http"

	"github.com/souramoo/calorie-counter-vibe/models"
	"github.com/souramoo/calorie-counter-vibe/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func authResponse(token string, u *models.User) gin.H {
	return gin.H{
		"token": token,
		"user": gin.H{
			"id":          u.ID,
			"username":    u.Username,
			"email":       u.Email,
			"calorieGoal": u.CalorieGoal,
		},
	}
}

func (h *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidation(c, err)
		return
	}

	user, token, err := h.Auth.RegisterUser(c.Request.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		respondError(c, err, "Error registering new user")
		return
	}
	c.JSON(http.StatusCreated, authResponse(token, user))
}

func (h *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidation(c, err)
		return
	}

	user, token, err := h.Auth.AuthenticateUser(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err, "Error logging in")
		return
	}
	c.JSON(http.StatusOK, authResponse(token, user))
}

func (h *AuthController) ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidation(c, err)
		return
	}

	if err := h.Auth.ForgotPassword(c.Request.Context(), input.Email); err != nil {
		respondError(c, err, "Failed to send reset code")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a reset code has been sent"})
}

func (h *AuthController) ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidation(c, err)
		return
	}

	if err := h.Auth.ResetPassword(c.Request.Context(), input.Email, input.Token, input.NewPassword); err != nil {
		respondError(c, err, "Failed to reset password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
}
