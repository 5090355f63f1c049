package api

import (
	"net/http"

	"evolution/fitness-dashboard/internal/domain"
	"evolution/fitness-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// UpdateProfileRequest is the full profile payload; saving overwrites the
// record wholesale. PhotoKey is the object key returned by the photo upload
// endpoint (null clears the photo).
type UpdateProfileRequest struct {
	Name     string  `json:"name" binding:"required"`
	Weight   float64 `json:"weight"`
	Level    string  `json:"level"`
	PhotoKey *string `json:"photoKey"`
}

// ProfileResponse is the DTO for the profile including the resolved photo URL.
type ProfileResponse struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Level  string  `json:"level"`
	Photo  *string `json:"photo"`
}

func mapProfileToResponse(view *service.ProfileView) ProfileResponse {
	return ProfileResponse{
		Name:   view.Name,
		Weight: view.Weight,
		Level:  view.Level,
		Photo:  view.PhotoURL,
	}
}

// GetProfile returns the persisted profile, seeded from the token identity
// when no row exists yet.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	name, photo := getUserIdentityFromContext(c)

	view, err := h.profileService.GetProfile(c.Request.Context(), userID, name, photo)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load profile.")
		return
	}
	c.JSON(http.StatusOK, mapProfileToResponse(view))
}

// UpdateProfile persists the full profile payload.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	view, err := h.profileService.UpdateProfile(c.Request.Context(), &domain.UserProfile{
		UserID:   userID,
		Name:     req.Name,
		Weight:   req.Weight,
		Level:    req.Level,
		PhotoKey: req.PhotoKey,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to update profile.")
		return
	}
	c.JSON(http.StatusOK, mapProfileToResponse(view))
}

// PhotoUploadRequest asks for an upload slot for a captured still image.
type PhotoUploadRequest struct {
	ContentType string `json:"contentType"`
}

// CreatePhotoUpload issues a presigned PUT URL for the captured profile
// photo; the client uploads the frame there and saves the returned key.
func (h *ProfileHandler) CreatePhotoUpload(c *gin.Context) {
	var req PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	upload, err := h.profileService.NewPhotoUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to prepare photo upload.")
		return
	}
	c.JSON(http.StatusCreated, upload)
}
