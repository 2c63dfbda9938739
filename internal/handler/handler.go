package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/domain"
	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/service"
)

const roomImageField = "roomImage"

type Handler struct {
	bookings service.BookingService
	images   service.ImageService
	log      *zap.Logger
}

func NewHandler(bookings service.BookingService, images service.ImageService, log *zap.Logger) *Handler {
	return &Handler{
		bookings: bookings,
		images:   images,
		log:      log,
	}
}

// BookRoom handles POST /book-room. The status reflects only whether the
// booking was stored; notification outcomes never reach the client.
func (h *Handler) BookRoom(c *gin.Context) {
	var req domain.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid booking request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid booking request"})
		return
	}

	if err := h.bookings.SubmitBooking(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Booking failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking successful"})
}

// UploadRoomImage handles POST /upload-room-image.
func (h *Handler) UploadRoomImage(c *gin.Context) {
	fileHeader, err := c.FormFile(roomImageField)
	if err != nil {
		h.log.Warn("Failed to get file from form", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "No roomImage file provided"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.Error("Failed to open file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file"})
		return
	}
	defer file.Close()

	image, err := h.images.UploadRoomImage(c.Request.Context(), file, fileHeader.Filename, fileHeader.Size)
	if err != nil {
		h.log.Error("Failed to upload image",
			zap.String("filename", fileHeader.Filename),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageUrl": image.URL})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
