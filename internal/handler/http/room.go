package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aadeeee/booking-backend/internal/service"
)

// RoomHandler exposes the public room listing.
type RoomHandler struct {
	roomService *service.RoomService
}

func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// List handles GET /api/rooms: every room with its status projected at
// read time.
func (h *RoomHandler) List(c *gin.Context) {
	entries, err := h.roomService.ListRoomStatuses(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, entries)
}
