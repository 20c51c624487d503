package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/dto"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/service"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/pkg/response"
)

// UserHandler serves account and employee-registry endpoints.
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Create
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validasi parameter gagal")
		return
	}

	result, err := h.userSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.Conflict(c, 13001, "username sudah digunakan")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// Update
// PATCH /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validasi parameter gagal")
		return
	}

	result, err := h.userSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11004, "pengguna tidak ditemukan")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// List
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	result, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Profiles lists the employee registry (user_data.json).
// GET /api/v1/users/profiles
func (h *UserHandler) Profiles(c *gin.Context) {
	response.OK(c, h.userSvc.Profiles(c.Request.Context()))
}

// ReloadProfiles forces a registry re-read.
// POST /api/v1/users/profiles/reload
func (h *UserHandler) ReloadProfiles(c *gin.Context) {
	if err := h.userSvc.ReloadProfiles(c.Request.Context()); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
