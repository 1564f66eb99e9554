package api

import (
	"net/http"

	"github.com/Domenick1991/parkbooking/internal/service/parking"
	"github.com/Domenick1991/parkbooking/internal/validation"
	"github.com/gin-gonic/gin"
)

type ParkingHandler struct {
	service parking.ParkingUseCase
}

func NewParkingHandler(service parking.ParkingUseCase) *ParkingHandler {
	return &ParkingHandler{service: service}
}

func (h *ParkingHandler) Register(router *gin.RouterGroup) {
	router.GET("/:id", h.get)
}

func (h *ParkingHandler) get(c *gin.Context) {
	id, err := validation.PathID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dataResponse{Data: parkingResponse{ID: p.ID, Name: p.Name}})
}
