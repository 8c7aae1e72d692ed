package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/reposekdz/eastgate-sub004/services"
	"github.com/reposekdz/eastgate-sub004/utils"
)

type AvailabilityController struct {
	Availability *services.AvailabilityService
}

func NewAvailabilityController(availability *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{Availability: availability}
}

// Check handles GET /api/availability?roomId&checkIn&checkOut. It is a
// read with no side effects; callers may poll it freely.
func (ctrl *AvailabilityController) Check(c *gin.Context) {
	roomID, err := strconv.ParseUint(c.Query("roomId"), 10, 64)
	if err != nil || roomID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidRoomId", "roomId must be a positive integer")
		return
	}

	checkIn, err := services.ParseDate(c.Query("checkIn"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	checkOut, err := services.ParseDate(c.Query("checkOut"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	result, err := ctrl.Availability.CheckAvailability(c.Request.Context(), uint(roomID), checkIn, checkOut, 0)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}
