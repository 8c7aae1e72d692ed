package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/reposekdz/eastgate-sub004/models"
	"github.com/reposekdz/eastgate-sub004/services"
	"github.com/reposekdz/eastgate-sub004/utils"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{Rooms: rooms}
}

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	var branchID uint
	if raw := c.Query("branchId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidBranchId", "branchId must be an integer")
			return
		}
		branchID = uint(parsed)
	}
	rooms, err := ctrl.Rooms.List(c.Request.Context(), branchID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	room, err := ctrl.Rooms.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	if err := ctrl.Rooms.Create(c.Request.Context(), &room); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	room.ID = id
	if err := ctrl.Rooms.Update(c.Request.Context(), &room); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

type roomStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateRoomStatus is the cached-projection write collaborators use —
// housekeeping flipping cleaning back to available, maintenance blocks.
// It never touches the booking timeline.
func (ctrl *RoomController) UpdateRoomStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req roomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	room, err := ctrl.Rooms.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

type priceOverrideRequest struct {
	NightlyRate int64 `json:"nightlyRate" binding:"required"`
	Active      *bool `json:"active"`
}

func (ctrl *RoomController) SetPriceOverride(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req priceOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	override, err := ctrl.Rooms.SetPriceOverride(c.Request.Context(), id, req.NightlyRate, active)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, override)
}

func (ctrl *RoomController) GetBranches(c *gin.Context) {
	branches, err := ctrl.Rooms.ListBranches(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, branches)
}

func (ctrl *RoomController) CreateBranch(c *gin.Context) {
	var branch models.Branch
	if err := c.ShouldBindJSON(&branch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	if err := ctrl.Rooms.CreateBranch(c.Request.Context(), &branch); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, branch)
}
