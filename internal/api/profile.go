package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abdelelgendy/mealmind/backend/internal/middleware"
	"github.com/abdelelgendy/mealmind/backend/internal/service"
	"github.com/abdelelgendy/mealmind/backend/internal/store"
	"github.com/abdelelgendy/mealmind/backend/internal/types"
)

type ProfileHandler struct {
	profiles store.ProfileStore
	images   *service.ImageService
	auth     service.IAuthService
	logger   *zap.Logger
}

func NewProfileHandler(profiles store.ProfileStore, images *service.ImageService, auth service.IAuthService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, images: images, auth: auth, logger: logger}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile", middleware.AuthMiddleware(h.auth))
	{
		profile.GET("", h.Get)
		profile.PATCH("", h.Update)
		profile.POST("/picture", h.UploadPicture)
	}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	profile, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.UpsertProfile(c.Request.Context(), userID, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UploadPicture(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	file, header, err := c.Request.FormFile("picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "picture file is required"})
		return
	}
	defer file.Close()

	url, err := h.images.UploadProfilePicture(c.Request.Context(), userID, file, header.Header.Get("Content-Type"))
	if err != nil {
		h.logger.Error("profile picture upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload picture"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
