package availability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"moffatbay/internal/domain"
	"moffatbay/internal/pkg/response"
)

type CustomerResolver interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Customer, error)
}

type Handler struct {
	service   *Service
	customers CustomerResolver
}

func NewHandler(service *Service, customers CustomerResolver) *Handler {
	return &Handler{service: service, customers: customers}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/availability", h.Search)
}

func (h *Handler) Search(c *gin.Context) {
	checkInStr := c.Query("check_in")
	checkOutStr := c.Query("check_out")
	if checkInStr == "" || checkOutStr == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Please select both check-in and check-out dates")
		return
	}

	checkIn, checkOut, err := ParseDates(checkInStr, checkOutStr, time.Now())
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	q := Query{CheckIn: checkIn, CheckOut: checkOut}
	if v := c.Query("guests"); v != "" {
		guests, err := strconv.Atoi(v)
		if err != nil || guests < 1 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid guest count")
			return
		}
		q.Guests = guests
	}
	if v := c.Query("room_type_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room type")
			return
		}
		q.RoomTypeID = &id
	}

	options, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Availability search failed")
		return
	}

	resp := SearchResponse{
		RoomTypes: options,
		NoResults: len(options) == 0,
	}

	// Warn signed-in customers about their own clashing reservations.
	if userID := c.GetInt64("user_id"); userID > 0 && c.GetString("role") != string(domain.RoleStaff) {
		if customer, err := h.customers.GetByUserID(c.Request.Context(), userID); err == nil {
			overlaps, err := h.service.CustomerOverlaps(c.Request.Context(), customer.ID, checkIn, checkOut)
			if err == nil && len(overlaps) > 0 {
				resp.OverlapWarning = true
				resp.OverlappingReservations = overlaps
			}
		}
	}

	response.Success(c, http.StatusOK, resp)
}
