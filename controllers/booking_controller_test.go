package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/reposekdz/eastgate-sub004/controllers"
	"github.com/reposekdz/eastgate-sub004/models"
	"github.com/reposekdz/eastgate-sub004/repository"
	"github.com/reposekdz/eastgate-sub004/routes"
	"github.com/reposekdz/eastgate-sub004/services"
)

const testJWTSecret = "test-secret"

type testAPI struct {
	router *gin.Engine
	store  *repository.MemoryStore
	room   *models.Room
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	ctx := context.Background()

	branch := &models.Branch{Name: "Main Branch", Code: "MAIN"}
	if err := store.CreateBranch(ctx, branch); err != nil {
		t.Fatalf("seed branch: %v", err)
	}
	room := &models.Room{
		BranchID:    branch.ID,
		Number:      "101",
		Type:        "Standard",
		Floor:       "1",
		NightlyRate: 45000,
		Status:      models.RoomStatusAvailable,
	}
	if err := store.CreateRoom(ctx, room); err != nil {
		t.Fatalf("seed room: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("front-desk-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	staff := &models.StaffAccount{
		FullName: "Front Desk",
		Username: "frontdesk",
		Password: string(hash),
		Role:     models.StaffRoleReceptionist,
	}
	if err := store.CreateStaff(ctx, staff); err != nil {
		t.Fatalf("seed staff: %v", err)
	}

	pricing := services.NewPricingService(store)
	availability := services.NewAvailabilityService(store, pricing)
	bookings := services.NewBookingService(store, availability, services.NoopPublisher{})

	router := routes.SetupRouter(
		controllers.NewAvailabilityController(availability),
		controllers.NewBookingController(bookings),
		controllers.NewRoomController(services.NewRoomService(store)),
		controllers.NewAuthController(services.NewAuthService(store, testJWTSecret, time.Hour)),
		testJWTSecret,
		nil,
	)
	return &testAPI{router: router, store: store, room: room}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return env
}

func futureDate(days int) string {
	return services.Today().AddDate(0, 0, days).Format("2006-01-02")
}

func guestBookingBody(roomID uint, checkIn, checkOut string) gin.H {
	return gin.H{
		"roomId":       roomID,
		"guestName":    "Alex Guest",
		"guestEmail":   "alex@example.com",
		"checkInDate":  checkIn,
		"checkOutDate": checkOut,
		"adults":       2,
	}
}

func (a *testAPI) login(t *testing.T) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "frontdesk",
		"password": "front-desk-pass",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d body %s", w.Code, w.Body.String())
	}
	var result services.LoginResult
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &result); err != nil {
		t.Fatalf("decode login result: %v", err)
	}
	return result.Token
}

func TestCreateBookingEndpoint(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/bookings", "", guestBookingBody(api.room.ID, futureDate(1), futureDate(4)))
	if w.Code != http.StatusCreated {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}

	var data struct {
		Booking models.Booking `json:"booking"`
		Pricing services.Quote `json:"pricing"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Booking.Status != models.BookingStatusPending {
		t.Errorf("status = %s, want pending", data.Booking.Status)
	}
	if data.Booking.ReferenceCode == "" {
		t.Error("reference code missing")
	}
	if data.Pricing.Nights != 3 || data.Pricing.Total != 135000 {
		t.Errorf("pricing = %+v", data.Pricing)
	}
}

func TestCreateBookingConflictEndpoint(t *testing.T) {
	api := newTestAPI(t)

	first := api.do(t, http.MethodPost, "/api/bookings", "", guestBookingBody(api.room.ID, futureDate(1), futureDate(5)))
	if first.Code != http.StatusCreated {
		t.Fatalf("seed booking: status %d", first.Code)
	}

	second := api.do(t, http.MethodPost, "/api/bookings", "", guestBookingBody(api.room.ID, futureDate(3), futureDate(7)))
	if second.Code != http.StatusConflict {
		t.Fatalf("status %d, want 409; body %s", second.Code, second.Body.String())
	}
	if env := decodeEnvelope(t, second); env.Error.Code != "error.roomNotAvailable" {
		t.Errorf("error code = %q", env.Error.Code)
	}
}

func TestCreateBookingRejectsPastCheckIn(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/bookings", "", guestBookingBody(api.room.ID, "2020-01-01", "2020-01-03"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400; body %s", w.Code, w.Body.String())
	}
	if env := decodeEnvelope(t, w); env.Error.Code != "error.invalidDateRange" {
		t.Errorf("error code = %q", env.Error.Code)
	}
}

func TestAvailabilityEndpoint(t *testing.T) {
	api := newTestAPI(t)

	path := fmt.Sprintf("/api/availability?roomId=%d&checkIn=%s&checkOut=%s", api.room.ID, futureDate(1), futureDate(3))
	w := api.do(t, http.MethodGet, path, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}

	var result services.Availability
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !result.Available || result.Quote == nil {
		t.Errorf("result = %+v, want available with pricing", result)
	}

	if api.do(t, http.MethodPost, "/api/bookings", "", guestBookingBody(api.room.ID, futureDate(1), futureDate(3))).Code != http.StatusCreated {
		t.Fatal("seed booking failed")
	}
	w = api.do(t, http.MethodGet, path, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Available {
		t.Error("room should no longer be available")
	}
}

func TestBookingOwnerProof(t *testing.T) {
	api := newTestAPI(t)

	created := api.do(t, http.MethodPost, "/api/bookings", "", guestBookingBody(api.room.ID, futureDate(1), futureDate(3)))
	if created.Code != http.StatusCreated {
		t.Fatalf("seed booking: status %d", created.Code)
	}
	var data struct {
		Booking models.Booking `json:"booking"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, created).Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	id := data.Booking.ID
	ref := data.Booking.ReferenceCode

	if w := api.do(t, http.MethodGet, fmt.Sprintf("/api/bookings/%d", id), "", nil); w.Code != http.StatusForbidden {
		t.Errorf("no proof: status %d, want 403", w.Code)
	}
	path := fmt.Sprintf("/api/bookings/%d?guestEmail=alex@example.com&referenceCode=%s", id, ref)
	if w := api.do(t, http.MethodGet, path, "", nil); w.Code != http.StatusOK {
		t.Errorf("with proof: status %d body %s", w.Code, w.Body.String())
	}

	cancel := fmt.Sprintf("/api/bookings/%d?guestEmail=alex@example.com&referenceCode=%s&reason=changed+plans", id, ref)
	w := api.do(t, http.MethodDelete, cancel, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: status %d body %s", w.Code, w.Body.String())
	}
	var cancelled models.Booking
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &cancelled); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cancelled.Status != models.BookingStatusCancelled || cancelled.CancelReason != "changed plans" {
		t.Errorf("cancelled = %s reason %q", cancelled.Status, cancelled.CancelReason)
	}
}

func TestStaffTransitionsRequireAuth(t *testing.T) {
	api := newTestAPI(t)

	created := api.do(t, http.MethodPost, "/api/bookings", "", guestBookingBody(api.room.ID, futureDate(1), futureDate(3)))
	if created.Code != http.StatusCreated {
		t.Fatalf("seed booking: status %d", created.Code)
	}
	var data struct {
		Booking models.Booking `json:"booking"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, created).Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	confirmPath := fmt.Sprintf("/api/bookings/%d/confirm", data.Booking.ID)

	if w := api.do(t, http.MethodPost, confirmPath, "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous confirm: status %d, want 401", w.Code)
	}

	token := api.login(t)
	w := api.do(t, http.MethodPost, confirmPath, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("staff confirm: status %d body %s", w.Code, w.Body.String())
	}
	var confirmed models.Booking
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &confirmed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if confirmed.Status != models.BookingStatusConfirmed {
		t.Errorf("status = %s, want confirmed", confirmed.Status)
	}

	// Double confirm is an invalid edge.
	if w := api.do(t, http.MethodPost, confirmPath, token, nil); w.Code != http.StatusConflict {
		t.Errorf("double confirm: status %d, want 409", w.Code)
	}
}

func TestAdminRoutesRejectReceptionist(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t)

	w := api.do(t, http.MethodPost, "/api/rooms", token, gin.H{
		"branchId":    1,
		"number":      "202",
		"type":        "Deluxe",
		"nightlyRate": 60000,
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("receptionist creating room: status %d, want 403", w.Code)
	}
}
