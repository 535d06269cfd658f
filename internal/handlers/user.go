package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dil-bolahlautner/automatic-poll-generator/internal/models"
	"github.com/dil-bolahlautner/automatic-poll-generator/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type SetAdminRequest struct {
	IsAdmin bool `json:"is_admin"`
}

// ListUsers godoc
// @Summary      List users
// @Description  List registered users (admin only)
// @Tags         users
// @Produce      json
// @Param        skip query int false "Offset"
// @Param        limit query int false "Page size (max 100)"
// @Success      200 {array} User
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	users, err := h.userService.List(skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Remove a user account (admin only)
// @Tags         users
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	if err := h.userService.Delete(uint(userID)); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "user deleted"})
}

// SetAdmin godoc
// @Summary      Set admin flag
// @Description  Promote or demote a user (admin only)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path int true "User ID"
// @Param        request body SetAdminRequest true "Admin flag"
// @Success      200 {object} User
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/users/{id}/admin [put]
func (h *UserHandler) SetAdmin(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	var req SetAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.userService.SetAdmin(uint(userID), req.IsAdmin)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}
