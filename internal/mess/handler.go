package mess

import (
	"errors"
	"log"
	"net/http"

	"github.com/MaheshKadam182/meals-spotter-new/internal/storage"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// Public: list messes
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	messes, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Printf("[MESS] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch messes"})
		return
	}

	c.JSON(http.StatusOK, messes)
}

// --------------------------------------------------
// Public: mess details
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	m, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "mess not found"})
			return
		}
		log.Printf("[MESS] get %s failed: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch mess"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// --------------------------------------------------
// Owner: own profile
// --------------------------------------------------
func (h *Handler) MyProfile(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}

	m, err := h.service.GetMyProfile(c.Request.Context(), ownerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":             err.Error(),
				"redirect_to_setup": true,
			})
			return
		}
		log.Printf("[MESS] profile for %s failed: %v", ownerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// --------------------------------------------------
// Owner: update (or create) profile
// --------------------------------------------------
func (h *Handler) UpdateProfile(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}

	var req ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	m, err := h.service.UpdateProfile(c.Request.Context(), ownerID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidProfile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[MESS] update profile for %s failed: %v", ownerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// --------------------------------------------------
// Owner: upload an image
// --------------------------------------------------
func (h *Handler) UploadImage(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}
	defer file.Close()

	if header.Size > storage.MaxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
		return
	}

	url, err := h.service.UploadImage(
		c.Request.Context(),
		ownerID,
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrImagesDisabled):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		case errors.Is(err, storage.ErrUnsupportedImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "redirect_to_setup": true})
		default:
			log.Printf("[MESS] image upload for %s failed: %v", ownerID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}

func currentUser(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user context"})
		return "", false
	}
	return userID, true
}
