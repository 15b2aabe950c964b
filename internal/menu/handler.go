package menu

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/MaheshKadam182/meals-spotter-new/internal/mess"
	"github.com/MaheshKadam182/meals-spotter-new/internal/timeline"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// GET /mess/menu
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), ownerID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// --------------------------------------------------
// POST /mess/menu
// --------------------------------------------------
func (h *Handler) Add(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}

	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.service.AddDishes(c.Request.Context(), ownerID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// --------------------------------------------------
// PUT /mess/menu/:day/:dish
// --------------------------------------------------
func (h *Handler) Edit(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}

	dayIndex, dishIndex, ok := position(c)
	if !ok {
		return
	}

	var req EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.service.EditDish(c.Request.Context(), ownerID, dayIndex, dishIndex, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// --------------------------------------------------
// DELETE /mess/menu/:day/:dish
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}

	dayIndex, dishIndex, ok := position(c)
	if !ok {
		return
	}

	resp, err := h.service.DeleteDish(c.Request.Context(), ownerID, dayIndex, dishIndex)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, timeline.ErrValidation), errors.Is(err, timeline.ErrIndexOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, mess.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "redirect_to_setup": true})
	default:
		log.Printf("[MENU] request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func position(c *gin.Context) (int, int, bool) {
	dayIndex, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day index"})
		return 0, 0, false
	}
	dishIndex, err := strconv.Atoi(c.Param("dish"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dish index"})
		return 0, 0, false
	}
	return dayIndex, dishIndex, true
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
