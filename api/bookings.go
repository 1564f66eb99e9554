package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/parkbooking/internal/apperrors"
	"github.com/Domenick1991/parkbooking/internal/domain"
	"github.com/Domenick1991/parkbooking/internal/service/booking"
	"github.com/Domenick1991/parkbooking/internal/validation"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service   booking.BookingUseCase
	validator *validation.Validator
}

type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}

type dataResponse struct {
	Data any `json:"data"`
}

type userResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

type parkingResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type bookingResponse struct {
	ID        int64            `json:"id"`
	User      *userResponse    `json:"user"`
	Parking   *parkingResponse `json:"parking"`
	StartDate string           `json:"startDate"`
	EndDate   string           `json:"endDate"`
	CreatedAt string           `json:"createdAt"`
	UpdatedAt string           `json:"updatedAt"`
}

func NewBookingHandler(service booking.BookingUseCase, validator *validation.Validator) *BookingHandler {
	return &BookingHandler{service: service, validator: validator}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PATCH("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *BookingHandler) create(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		writeError(c, apperrors.Forbidden())
		return
	}

	var req validation.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, validation.DecodeIssues(err))
		return
	}
	input, err := h.validator.CreateBooking(req)
	if err != nil {
		writeError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), caller.ID, input.ParkingID, input.Timeframe)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse{Success: true, Data: createdResponse{ID: created.ID}})
}

func (h *BookingHandler) get(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		writeError(c, apperrors.Forbidden())
		return
	}
	id, err := validation.PathID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), caller, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dataResponse{Data: toBookingResponse(b)})
}

func (h *BookingHandler) update(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		writeError(c, apperrors.Forbidden())
		return
	}
	id, err := validation.PathID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	var req validation.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, validation.DecodeIssues(err))
		return
	}
	tf, err := h.validator.UpdateBooking(req)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.service.Update(c.Request.Context(), caller, id, tf); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse{Success: true})
}

func (h *BookingHandler) delete(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		writeError(c, apperrors.Forbidden())
		return
	}
	id, err := validation.PathID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.service.DeleteByID(c.Request.Context(), caller, id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse{Success: true})
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	resp := bookingResponse{
		ID:        b.ID,
		StartDate: formatTime(b.StartTime),
		EndDate:   formatTime(b.EndTime),
		CreatedAt: formatTime(b.CreatedAt),
		UpdatedAt: formatTime(b.UpdatedAt),
	}
	if b.User != nil {
		resp.User = &userResponse{
			ID:        b.User.ID,
			FirstName: b.User.FirstName,
			LastName:  b.User.LastName,
			Email:     b.User.Email,
			Role:      string(b.User.Role),
		}
	}
	if b.Parking != nil {
		resp.Parking = &parkingResponse{ID: b.Parking.ID, Name: b.Parking.Name}
	}
	return resp
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
