package e2e

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventtix/internal/database"
	"eventtix/internal/domain"
	"eventtix/internal/middleware"
	"eventtix/internal/modules/admin"
	"eventtix/internal/modules/auth"
	"eventtix/internal/modules/booking"
	"eventtix/internal/modules/event"
	"eventtix/internal/modules/payment"
	"eventtix/internal/modules/seatfeed"
	jwtsvc "eventtix/internal/pkg/jwt"
	"eventtix/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const paymentSecret = "e2e_key_secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repository.AutoMigrate(db))

	jwtService := jwtsvc.New("e2e-secret", time.Hour)

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	orderRepo := repository.NewPaymentOrderRepository(db)

	hub := seatfeed.NewHub()

	authService := auth.NewService(userRepo, jwtService)
	eventService := event.NewService(eventRepo)
	bookingService := booking.NewService(bookingRepo, eventRepo, hub)
	paymentService := payment.NewService(orderRepo, "e2e_key_id", paymentSecret, "INR")
	adminService := admin.NewService(userRepo, bookingRepo, bookingService)

	// the register endpoint only creates plain users
	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), &domain.User{
		Email:        "admin@example.com",
		PasswordHash: string(adminHash),
		Name:         "Admin",
		Role:         domain.RoleAdmin,
		Status:       domain.UserActive,
	}))

	router := gin.New()
	router.Use(middleware.ErrorLogger())

	api := router.Group("/api/v1")
	auth.NewHandler(authService).RegisterRoutes(api)
	event.NewHandler(eventService).RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.Auth(jwtService))
	auth.NewHandler(authService).RegisterProtectedRoutes(protected)
	booking.NewHandler(bookingService).RegisterRoutes(protected)
	payment.NewHandler(paymentService).RegisterRoutes(protected)

	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.Auth(jwtService), middleware.AdminOnly())
	event.NewHandler(eventService).RegisterAdminRoutes(adminGroup)
	booking.NewHandler(bookingService).RegisterAdminRoutes(adminGroup)
	admin.NewHandler(adminService).RegisterRoutes(adminGroup)

	return router
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec.Code, env
}

func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func login(t *testing.T, router *gin.Engine, email, password string) string {
	code, env := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, code)
	var resp struct {
		Token string `json:"token"`
	}
	decodeData(t, env, &resp)
	return resp.Token
}

func register(t *testing.T, router *gin.Engine, name, email string) string {
	code, env := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, code)
	var resp struct {
		Token string `json:"token"`
	}
	decodeData(t, env, &resp)
	return resp.Token
}

func paymentSignature(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(paymentSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func verifiedPaymentID(t *testing.T, router *gin.Engine, token string, amount int64) string {
	code, env := doJSON(t, router, http.MethodPost, "/api/v1/payments/orders", token, gin.H{
		"amount": amount,
	})
	require.Equal(t, http.StatusCreated, code)
	var order struct {
		OrderID string `json:"order_id"`
	}
	decodeData(t, env, &order)

	paymentID := "pay_" + order.OrderID[len("order_"):]
	code, env = doJSON(t, router, http.MethodPost, "/api/v1/payments/verify", token, gin.H{
		"order_id":   order.OrderID,
		"payment_id": paymentID,
		"signature":  paymentSignature(order.OrderID, paymentID),
	})
	require.Equal(t, http.StatusOK, code, "verify failed: %+v", env.Error)
	return paymentID
}

func TestBookingLifecycle(t *testing.T) {
	router := newTestRouter(t)

	adminToken := login(t, router, "admin@example.com", "admin123")
	aliceToken := register(t, router, "Alice", "alice@example.com")
	bobToken := register(t, router, "Bob", "bob@example.com")

	// admin creates the event
	code, env := doJSON(t, router, http.MethodPost, "/api/v1/admin/events", adminToken, gin.H{
		"name":        "Arena Rock Night",
		"date":        "2026-09-12",
		"time":        "19:30",
		"venue":       "City Arena",
		"category":    "music",
		"price":       2500,
		"total_seats": 40,
	})
	require.Equal(t, http.StatusCreated, code, "create event failed: %+v", env.Error)
	var ev struct {
		ID             int64 `json:"id"`
		TotalSeats     int   `json:"total_seats"`
		AvailableSeats int   `json:"available_seats"`
	}
	decodeData(t, env, &ev)
	assert.Equal(t, 40, ev.AvailableSeats)

	// regular users cannot create events
	code, _ = doJSON(t, router, http.MethodPost, "/api/v1/admin/events", aliceToken, gin.H{})
	assert.Equal(t, http.StatusForbidden, code)

	// pay, then book seats 1-3
	paymentID := verifiedPaymentID(t, router, aliceToken, 750000)
	code, env = doJSON(t, router, http.MethodPost, "/api/v1/bookings", aliceToken, gin.H{
		"event_id":     ev.ID,
		"seat_numbers": []int{1, 2, 3},
		"payment_id":   paymentID,
	})
	require.Equal(t, http.StatusCreated, code, "booking failed: %+v", env.Error)
	var conf struct {
		Booking struct {
			ID          int64   `json:"id"`
			TotalAmount float64 `json:"total_amount"`
			Status      string  `json:"status"`
		} `json:"booking"`
		Ticket struct {
			Seats []int `json:"seats"`
		} `json:"ticket"`
	}
	decodeData(t, env, &conf)
	assert.Equal(t, 7500.0, conf.Booking.TotalAmount)
	assert.Equal(t, "confirmed", conf.Booking.Status)
	assert.Equal(t, []int{1, 2, 3}, conf.Ticket.Seats)

	// availability dropped
	code, env = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/events/%d", ev.ID), "", nil)
	require.Equal(t, http.StatusOK, code)
	var evView struct {
		AvailableSeats int `json:"available_seats"`
	}
	decodeData(t, env, &evView)
	assert.Equal(t, 37, evView.AvailableSeats)

	// bob collides on seat 2
	bobPayment := verifiedPaymentID(t, router, bobToken, 250000)
	code, env = doJSON(t, router, http.MethodPost, "/api/v1/bookings", bobToken, gin.H{
		"event_id":     ev.ID,
		"seat_numbers": []int{2},
		"payment_id":   bobPayment,
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SEAT_ALREADY_BOOKED", env.Error.Code)
	var details struct {
		SeatNumber int `json:"seat_number"`
	}
	require.NoError(t, json.Unmarshal(env.Error.Details, &details))
	assert.Equal(t, 2, details.SeatNumber)

	// seat 45 breaks the platform ceiling even on a 40-seat event
	code, env = doJSON(t, router, http.MethodPost, "/api/v1/bookings", bobToken, gin.H{
		"event_id":     ev.ID,
		"seat_numbers": []int{45},
		"payment_id":   bobPayment,
	})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "CAPACITY_EXCEEDED", env.Error.Code)

	// bob cannot cancel alice's booking
	cancelPath := fmt.Sprintf("/api/v1/bookings/%d/cancel", conf.Booking.ID)
	code, _ = doJSON(t, router, http.MethodPut, cancelPath, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// alice cancels: full refund, seats return
	code, env = doJSON(t, router, http.MethodPut, cancelPath, aliceToken, nil)
	require.Equal(t, http.StatusOK, code, "cancel failed: %+v", env.Error)
	var cancelResp struct {
		Status       string  `json:"status"`
		RefundAmount float64 `json:"refund_amount"`
	}
	decodeData(t, env, &cancelResp)
	assert.Equal(t, "cancelled", cancelResp.Status)
	assert.Equal(t, 7500.0, cancelResp.RefundAmount)

	code, env = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/events/%d", ev.ID), "", nil)
	require.Equal(t, http.StatusOK, code)
	decodeData(t, env, &evView)
	assert.Equal(t, 40, evView.AvailableSeats)

	// second cancel is rejected
	code, env = doJSON(t, router, http.MethodPut, cancelPath, aliceToken, nil)
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "ALREADY_CANCELLED", env.Error.Code)

	// seat 2 is bookable again after the release
	code, env = doJSON(t, router, http.MethodPost, "/api/v1/bookings", bobToken, gin.H{
		"event_id":     ev.ID,
		"seat_numbers": []int{2},
		"payment_id":   bobPayment,
	})
	require.Equal(t, http.StatusCreated, code, "rebooking failed: %+v", env.Error)

	// admin dashboards
	code, env = doJSON(t, router, http.MethodGet, "/api/v1/admin/analytics", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	var analytics struct {
		TotalUsers    int64   `json:"total_users"`
		TotalBookings int64   `json:"total_bookings"`
		TotalRevenue  float64 `json:"total_revenue"`
	}
	decodeData(t, env, &analytics)
	assert.EqualValues(t, 3, analytics.TotalUsers)
	assert.EqualValues(t, 1, analytics.TotalBookings) // alice's was cancelled
	assert.Equal(t, 2500.0, analytics.TotalRevenue)

	code, env = doJSON(t, router, http.MethodGet, "/api/v1/admin/bookings?limit=10", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	var pageResp struct {
		Total int64 `json:"total"`
		Count int   `json:"count"`
	}
	decodeData(t, env, &pageResp)
	assert.EqualValues(t, 2, pageResp.Total)
}

func TestPaymentVerificationRejectsBadSignature(t *testing.T) {
	router := newTestRouter(t)
	token := register(t, router, "Carol", "carol@example.com")

	code, env := doJSON(t, router, http.MethodPost, "/api/v1/payments/orders", token, gin.H{
		"amount": 100000,
	})
	require.Equal(t, http.StatusCreated, code)
	var order struct {
		OrderID string `json:"order_id"`
	}
	decodeData(t, env, &order)

	code, env = doJSON(t, router, http.MethodPost, "/api/v1/payments/verify", token, gin.H{
		"order_id":   order.OrderID,
		"payment_id": "pay_x",
		"signature":  "deadbeef",
	})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_SIGNATURE", env.Error.Code)
}

func TestEventSeatLimitFlow(t *testing.T) {
	router := newTestRouter(t)
	adminToken := login(t, router, "admin@example.com", "admin123")
	userToken := register(t, router, "Dave", "dave@example.com")

	code, env := doJSON(t, router, http.MethodPost, "/api/v1/admin/events", adminToken, gin.H{
		"name":        "Standup Special",
		"date":        "2026-10-01",
		"time":        "20:00",
		"venue":       "Comedy Cellar",
		"category":    "comedy",
		"price":       1200,
		"total_seats": 20,
	})
	require.Equal(t, http.StatusCreated, code)
	var ev struct {
		ID int64 `json:"id"`
	}
	decodeData(t, env, &ev)

	// events over the ceiling are rejected outright
	code, env = doJSON(t, router, http.MethodPost, "/api/v1/admin/events", adminToken, gin.H{
		"name":        "Oversized",
		"date":        "2026-10-01",
		"time":        "20:00",
		"venue":       "Nowhere",
		"category":    "misc",
		"price":       100,
		"total_seats": 41,
	})
	require.Equal(t, http.StatusBadRequest, code)

	// book the last seat, then try to shrink below it
	paymentID := verifiedPaymentID(t, router, userToken, 120000)
	code, env = doJSON(t, router, http.MethodPost, "/api/v1/bookings", userToken, gin.H{
		"event_id":     ev.ID,
		"seat_numbers": []int{20},
		"payment_id":   paymentID,
	})
	require.Equal(t, http.StatusCreated, code, "booking failed: %+v", env.Error)

	seatLimitPath := fmt.Sprintf("/api/v1/admin/events/%d/seat-limit", ev.ID)
	code, env = doJSON(t, router, http.MethodPut, seatLimitPath, adminToken, gin.H{"total_seats": 10})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "SEATS_BOOKED", env.Error.Code)

	// raising works and adds free slots
	code, env = doJSON(t, router, http.MethodPut, seatLimitPath, adminToken, gin.H{"total_seats": 30})
	require.Equal(t, http.StatusOK, code)
	var resized struct {
		TotalSeats     int `json:"total_seats"`
		AvailableSeats int `json:"available_seats"`
	}
	decodeData(t, env, &resized)
	assert.Equal(t, 30, resized.TotalSeats)
	assert.Equal(t, 29, resized.AvailableSeats)
}
