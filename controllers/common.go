package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/reposekdz/eastgate-sub004/repository"
	"github.com/reposekdz/eastgate-sub004/services"
	"github.com/reposekdz/eastgate-sub004/utils"
)

// respondServiceError maps the engine error taxonomy onto HTTP. The
// sentinel decides the status and the stable error code; err.Error()
// carries the detail (e.g. which transition was attempted).
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidDateRange):
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDateRange",
			"check-in must be a valid date strictly before check-out")
	case errors.Is(err, services.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, "error.validation", err.Error())
	case errors.Is(err, services.ErrRoomNotAvailable):
		utils.JSONError(c, http.StatusConflict, "error.roomNotAvailable",
			"the room is not available for the requested dates")
	case errors.Is(err, services.ErrInvalidTransition):
		utils.JSONError(c, http.StatusConflict, "error.invalidTransition", err.Error())
	case errors.Is(err, services.ErrInvalidCancellation):
		utils.JSONError(c, http.StatusBadRequest, "error.invalidCancellation", err.Error())
	case errors.Is(err, repository.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.notFound", "record not found")
	case errors.Is(err, repository.ErrDuplicate):
		utils.JSONError(c, http.StatusConflict, "error.duplicate", "a conflicting record already exists")
	default:
		log.Printf("internal error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "internal server error")
	}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
