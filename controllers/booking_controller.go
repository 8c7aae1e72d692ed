package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reposekdz/eastgate-sub004/middleware"
	"github.com/reposekdz/eastgate-sub004/models"
	"github.com/reposekdz/eastgate-sub004/services"
	"github.com/reposekdz/eastgate-sub004/utils"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{Bookings: bookings}
}

type createBookingRequest struct {
	RoomID          uint            `json:"roomId" binding:"required"`
	GuestName       string          `json:"guestName" binding:"required"`
	GuestEmail      string          `json:"guestEmail" binding:"required"`
	GuestPhone      string          `json:"guestPhone"`
	CheckInDate     string          `json:"checkInDate" binding:"required"`
	CheckOutDate    string          `json:"checkOutDate" binding:"required"`
	Adults          int             `json:"adults"`
	Children        int             `json:"children"`
	NumberOfGuests  int             `json:"numberOfGuests"`
	PaymentMethod   string          `json:"paymentMethod"`
	SpecialRequests json.RawMessage `json:"specialRequests"`
}

func (r *createBookingRequest) toInput(confirmed bool) services.CreateBookingInput {
	adults := r.Adults
	if adults == 0 && r.NumberOfGuests > 0 {
		adults = r.NumberOfGuests
	}
	return services.CreateBookingInput{
		RoomID:          r.RoomID,
		GuestName:       r.GuestName,
		GuestEmail:      r.GuestEmail,
		GuestPhone:      r.GuestPhone,
		CheckIn:         r.CheckInDate,
		CheckOut:        r.CheckOutDate,
		Adults:          adults,
		Children:        r.Children,
		PaymentMethod:   r.PaymentMethod,
		SpecialRequests: r.SpecialRequests,
		Confirmed:       confirmed,
	}
}

func bookingResponse(booking *models.Booking) gin.H {
	return gin.H{
		"booking": booking,
		"pricing": services.Quote{
			Nights:      booking.Nights,
			NightlyRate: booking.NightlyRate,
			Total:       booking.TotalAmount,
		},
	}
}

// CreateBooking is the guest-facing create: the booking starts life
// pending, and back-dated stays are rejected here even though the
// engine allows them for staff corrections.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	if checkIn, err := services.ParseDate(req.CheckInDate); err != nil {
		respondServiceError(c, err)
		return
	} else if checkIn.Before(services.Today()) {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDateRange", "check-in date is in the past")
		return
	}

	booking, err := ctrl.Bookings.Create(c.Request.Context(), req.toInput(false))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, bookingResponse(booking))
}

// CreateStaffBooking trusts the receptionist: the booking is created
// directly as confirmed and historical date ranges are accepted.
func (ctrl *BookingController) CreateStaffBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	booking, err := ctrl.Bookings.Create(c.Request.Context(), req.toInput(true))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, bookingResponse(booking))
}

// canActOn implements the owner-or-staff rule for guest-reachable
// mutations: a staff token always passes; otherwise the caller must
// present the booking's reference code and guest email.
func canActOn(c *gin.Context, booking *models.Booking, email, reference string) bool {
	if middleware.IsStaff(c) {
		return true
	}
	return email != "" && reference != "" &&
		strings.EqualFold(strings.TrimSpace(email), booking.GuestEmail) &&
		strings.EqualFold(strings.TrimSpace(reference), booking.ReferenceCode)
}

type modifyBookingRequest struct {
	CheckInDate     string          `json:"checkInDate"`
	CheckOutDate    string          `json:"checkOutDate"`
	Adults          *int            `json:"adults"`
	Children        *int            `json:"children"`
	SpecialRequests json.RawMessage `json:"specialRequests"`

	// Owner proof for unauthenticated guests.
	GuestEmail    string `json:"guestEmail"`
	ReferenceCode string `json:"referenceCode"`
}

// UpdateBooking handles PUT /api/bookings/:id — date or occupancy
// changes, re-validated against the room timeline with the booking
// excluded from its own conflict check.
func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req modifyBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	booking, err := ctrl.Bookings.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !canActOn(c, booking, req.GuestEmail, req.ReferenceCode) {
		utils.JSONError(c, http.StatusForbidden, "error.forbidden", "not the booking owner")
		return
	}

	updated, err := ctrl.Bookings.Modify(c.Request.Context(), id, services.ModifyBookingInput{
		CheckIn:         req.CheckInDate,
		CheckOut:        req.CheckOutDate,
		Adults:          req.Adults,
		Children:        req.Children,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookingResponse(updated))
}

// CancelBooking handles DELETE /api/bookings/:id?reason=. The booking
// is never deleted, only moved to cancelled; 400 when its state
// disallows cancellation.
func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	booking, err := ctrl.Bookings.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !canActOn(c, booking, c.Query("guestEmail"), c.Query("referenceCode")) {
		utils.JSONError(c, http.StatusForbidden, "error.forbidden", "not the booking owner")
		return
	}

	cancelled, err := ctrl.Bookings.Cancel(c.Request.Context(), id, c.Query("reason"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, cancelled)
}

func (ctrl *BookingController) GetBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.Bookings.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !canActOn(c, booking, c.Query("guestEmail"), c.Query("referenceCode")) {
		utils.JSONError(c, http.StatusForbidden, "error.forbidden", "not the booking owner")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookingResponse(booking))
}

func (ctrl *BookingController) ListBookings(c *gin.Context) {
	bookings, err := ctrl.Bookings.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// Receptionist fast paths. Each is a single state-machine edge.

func (ctrl *BookingController) ConfirmBooking(c *gin.Context) {
	ctrl.transition(c, ctrl.Bookings.Confirm)
}

func (ctrl *BookingController) CheckInBooking(c *gin.Context) {
	ctrl.transition(c, ctrl.Bookings.CheckIn)
}

func (ctrl *BookingController) CheckOutBooking(c *gin.Context) {
	ctrl.transition(c, ctrl.Bookings.CheckOut)
}

func (ctrl *BookingController) transition(c *gin.Context, action func(ctx context.Context, id uint) (*models.Booking, error)) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	booking, err := action(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}
