package controllers

import (
	"net/http"

	"github.com/souramoo/calorie-counter-vibe/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

type ProfileInput struct {
	Username       string `json:"username" binding:"omitempty,min=3,max=64"`
	Email          string `json:"email" binding:"omitempty,email"`
	Password       string `json:"password" binding:"omitempty,min=6"`
	CalorieGoal    *int   `json:"calorieGoal" binding:"omitempty,min=0"`
	ProfilePicture string `json:"profilePicture"`
}

func (h *UserController) GetProfile(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.Users.GetUserProfile(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err, "Error retrieving user profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":             user.ID,
		"username":       user.Username,
		"email":          user.Email,
		"calorieGoal":    user.CalorieGoal,
		"profilePicture": user.ProfilePicture,
		"createdAt":      user.CreatedAt,
	})
}

func (h *UserController) UpdateProfile(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}

	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidation(c, err)
		return
	}

	user, err := h.Users.UpdateUserProfile(c.Request.Context(), uid, services.ProfileInput{
		Username:       input.Username,
		Email:          input.Email,
		Password:       input.Password,
		CalorieGoal:    input.CalorieGoal,
		ProfilePicture: input.ProfilePicture,
	})
	if err != nil {
		respondError(c, err, "Error updating user profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":             user.ID,
		"username":       user.Username,
		"email":          user.Email,
		"calorieGoal":    user.CalorieGoal,
		"profilePicture": user.ProfilePicture,
		"updatedAt":      user.UpdatedAt,
	})
}
