package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aadeeee/booking-backend/internal/domain"
	"github.com/aadeeee/booking-backend/internal/middleware"
	"github.com/aadeeee/booking-backend/internal/service"
)

// BookingHandler exposes the booking endpoints. Request bodies keep the
// original wire vocabulary (namatempat, jam_peminjaman, detail_kegiatan)
// for client compatibility.
type BookingHandler struct {
	bookingService *service.BookingService
}

func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

type bookingWindow struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type createBookingRequest struct {
	RoomName       string        `json:"namatempat" binding:"required"`
	RequesterName  string        `json:"nama" binding:"required"`
	Window         bookingWindow `json:"jam_peminjaman" binding:"required"`
	ActivityDetail string        `json:"detail_kegiatan"`
}

type decideBookingRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "namatempat, nama and jam_peminjaman are required")
		return
	}

	booking, err := h.bookingService.RequestBooking(c.Request.Context(), service.BookingRequest{
		RoomName:       req.RoomName,
		UserID:         userID,
		RequesterName:  req.RequesterName,
		Start:          req.Window.Start,
		End:            req.Window.End,
		ActivityDetail: req.ActivityDetail,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Peminjaman ruangan berhasil!",
		"booking": booking,
	})
}

// Mine handles GET /api/bookings/mine.
func (h *BookingHandler) Mine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	bookings, err := h.bookingService.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{"bookings": bookings})
}

// Pending handles GET /api/bookings/pending (admin review queue).
func (h *BookingHandler) Pending(c *gin.Context) {
	bookings, err := h.bookingService.ListPendingBookings(c.Request.Context(), middleware.IsAdmin(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{"bookings": bookings})
}

// All handles GET /api/bookings (admin, full history).
func (h *BookingHandler) All(c *gin.Context) {
	bookings, err := h.bookingService.ListAllBookings(c.Request.Context(), middleware.IsAdmin(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{"bookings": bookings})
}

// Decide handles PUT /api/bookings/:id/decision.
func (h *BookingHandler) Decide(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid booking id")
		return
	}

	var req decideBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "status is required")
		return
	}
	decision := domain.Decision(req.Status)
	if decision != domain.DecisionAccept && decision != domain.DecisionReject {
		ErrorResponse(c, http.StatusBadRequest, "Status tidak valid!")
		return
	}

	booking, err := h.bookingService.DecideBooking(c.Request.Context(), id, decision, middleware.IsAdmin(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Status peminjaman berhasil diubah.",
		"booking": booking,
	})
}
