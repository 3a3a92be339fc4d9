package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aadeeee/booking-backend/internal/domain"
	"github.com/aadeeee/booking-backend/internal/repository/mocks"
	"github.com/aadeeee/booking-backend/internal/service"
)

func TestListRooms(t *testing.T) {
	gin.SetMode(gin.TestMode)
	bookingRepo := new(mocks.BookingRepository)
	roomRepo := new(mocks.RoomRepository)

	clock := fixedClock{t: time.Date(2024, time.March, 12, 9, 30, 0, 0, wib)}
	svc := service.NewRoomService(roomRepo, bookingRepo, clock, wib, nil)
	h := NewRoomHandler(svc)

	r := gin.New()
	r.GET("/api/rooms", h.List)

	roomRepo.On("List", mock.Anything).Return([]domain.Room{
		{Name: "Auditorium", Category: domain.CategoryMultiPurpose},
		{Name: "Kelas TK A", Category: domain.CategoryKindergarten},
	}, nil).Once()
	bookingRepo.On("FindActiveByRoom", mock.Anything, "Auditorium").
		Return([]domain.Booking{{Status: domain.BookingPending, ExpiresAt: clock.t.Add(time.Hour)}}, nil).Once()
	bookingRepo.On("FindActiveByRoom", mock.Anything, "Kelas TK A").
		Return(nil, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var entries []domain.RoomStatusEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "Auditorium", entries[0].RoomName)
	assert.Equal(t, domain.RoomPending, entries[0].Status)
	assert.Equal(t, domain.RoomAvailable, entries[1].Status)
}
