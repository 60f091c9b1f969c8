package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/homeservices/internal/auth"
	"github.com/BruksfildServices01/homeservices/internal/config"
	dbpkg "github.com/BruksfildServices01/homeservices/internal/db"
	domainPayment "github.com/BruksfildServices01/homeservices/internal/domain/payment"
	"github.com/BruksfildServices01/homeservices/internal/testutil"
	"github.com/BruksfildServices01/homeservices/internal/validators"
)

const (
	keySecret     = "test_key_secret"
	webhookSecret = "test_webhook_secret"
)

type fakeGateway struct{}

func (fakeGateway) CreateOrder(_ context.Context, req domainPayment.OrderRequest) (*domainPayment.Order, error) {
	return &domainPayment.Order{ID: "order_e2e_1", Amount: req.Amount, Currency: req.Currency}, nil
}

func (fakeGateway) KeyID() string { return "rzp_test_key" }

type body = map[string]any

func newServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validators.Register()

	db := testutil.NewDB(t)
	hasher := auth.NewPasswordHasher(4)
	ctx := context.Background()

	if err := dbpkg.SeedCatalog(ctx, db); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	if err := dbpkg.SeedAdmin(ctx, db, hasher, "admin@homeservices.com", "admin123", "Admin User"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	cfg := &config.Config{
		Razorpay: config.RazorpayConfig{
			KeySecret:     keySecret,
			WebhookSecret: webhookSecret,
			Currency:      "INR",
		},
	}

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:       db,
		Config:   cfg,
		Tokens:   auth.NewTokenManager("access", "refresh", 15*time.Minute, 7*24*time.Hour),
		Hasher:   hasher,
		Gateway:  fakeGateway{},
		Location: time.UTC,
	})
	return r
}

func call(t *testing.T, r *gin.Engine, method, path, token string, in any) (int, body) {
	t.Helper()

	var rd *bytes.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := body{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code, out
}

func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	code, out := call(t, r, http.MethodPost, "/api/auth/login", "", body{"email": email, "password": password})
	if code != http.StatusOK {
		t.Fatalf("login %s: %d %v", email, code, out)
	}
	return out["accessToken"].(string)
}

func obj(t *testing.T, v any, key string) body {
	t.Helper()
	m, ok := v.(body)
	if !ok {
		t.Fatalf("expected object, got %T", v)
	}
	o, ok := m[key].(body)
	if !ok {
		t.Fatalf("expected %q object in %v", key, m)
	}
	return o
}

// marketplace walks one booking from registration to review.
type marketplace struct {
	r             *gin.Engine
	customerToken string
	providerToken string
	providerID    string
	bookingID     string
}

func registerAndBook(t *testing.T) *marketplace {
	t.Helper()
	r := newServer(t)
	m := &marketplace{r: r}

	// provider registers and is blocked until approval
	code, out := call(t, r, http.MethodPost, "/api/auth/register", "", body{
		"email":          "pro@x.com",
		"password":       "secret1",
		"name":           "Pro Sparks",
		"role":           "PROVIDER",
		"specialization": "electrician",
		"hourlyRate":     200,
		"experience":     4,
		"city":           "pune",
	})
	if code != http.StatusCreated {
		t.Fatalf("register provider: %d %v", code, out)
	}
	m.providerID = obj(t, out, "user")["provider"].(body)["id"].(string)

	code, _ = call(t, r, http.MethodPost, "/api/auth/login", "", body{"email": "pro@x.com", "password": "secret1"})
	if code != http.StatusForbidden {
		t.Fatalf("pending provider login: expected 403, got %d", code)
	}

	adminToken := login(t, r, "admin@homeservices.com", "admin123")
	code, out = call(t, r, http.MethodPut, "/api/admin/providers/"+m.providerID+"/approve", adminToken, nil)
	if code != http.StatusOK {
		t.Fatalf("approve: %d %v", code, out)
	}
	m.providerToken = login(t, r, "pro@x.com", "secret1")

	// scenario A
	code, out = call(t, r, http.MethodPost, "/api/auth/register", "", body{
		"email":    "a@x.com",
		"password": "secret1",
		"name":     "Asha",
		"role":     "USER",
	})
	if code != http.StatusCreated {
		t.Fatalf("register customer: %d %v", code, out)
	}
	if role := obj(t, out, "user")["role"]; role != "CUSTOMER" {
		t.Fatalf("USER should register as CUSTOMER, got %v", role)
	}
	m.customerToken = login(t, r, "a@x.com", "secret1")

	code, out = call(t, r, http.MethodGet, "/api/services?category=electrician", "", nil)
	if code != http.StatusOK {
		t.Fatalf("services: %d %v", code, out)
	}
	services := out["services"].([]any)
	if len(services) != 1 {
		t.Fatalf("expected one electrician service, got %d", len(services))
	}
	serviceID := services[0].(body)["id"].(string)

	code, out = call(t, r, http.MethodPost, "/api/bookings", m.customerToken, body{
		"serviceId":   serviceID,
		"providerId":  m.providerID,
		"bookingDate": "2030-01-15",
		"startTime":   "10:00",
		"hours":       3,
		"address":     "12 MG Road",
	})
	if code != http.StatusCreated {
		t.Fatalf("create booking: %d %v", code, out)
	}
	booking := obj(t, out, "booking")
	if booking["totalPrice"].(float64) != 600 {
		t.Fatalf("expected totalPrice 600, got %v", booking["totalPrice"])
	}
	if booking["status"] != "PENDING" || booking["paymentStatus"] != "PENDING" {
		t.Fatalf("unexpected initial state %v/%v", booking["status"], booking["paymentStatus"])
	}
	m.bookingID = booking["id"].(string)

	return m
}

func (m *marketplace) bookingState(t *testing.T) body {
	t.Helper()
	code, out := call(t, m.r, http.MethodGet, "/api/bookings/"+m.bookingID, m.customerToken, nil)
	if code != http.StatusOK {
		t.Fatalf("get booking: %d %v", code, out)
	}
	return obj(t, out, "booking")
}

func TestBookingPaymentReviewFlow(t *testing.T) {
	m := registerAndBook(t)

	// scenario B
	code, out := call(t, m.r, http.MethodPost, "/api/payments/create-order", m.customerToken, body{"bookingId": m.bookingID})
	if code != http.StatusOK {
		t.Fatalf("create order: %d %v", code, out)
	}
	orderID := out["orderId"].(string)
	if out["amount"].(float64) != 60000 {
		t.Fatalf("expected 60000 paise, got %v", out["amount"])
	}

	code, _ = call(t, m.r, http.MethodPost, "/api/payments/verify", m.customerToken, body{
		"bookingId":         m.bookingID,
		"razorpayOrderId":   orderID,
		"razorpayPaymentId": "pay_1",
		"razorpaySignature": "forged",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("forged signature: expected 400, got %d", code)
	}
	if s := m.bookingState(t)["status"]; s != "PENDING" {
		t.Fatalf("booking moved on forged signature: %v", s)
	}

	// scenario C
	verify := body{
		"bookingId":         m.bookingID,
		"razorpayOrderId":   orderID,
		"razorpayPaymentId": "pay_1",
		"razorpaySignature": domainPayment.Sign(keySecret, orderID, "pay_1"),
	}
	for i := 0; i < 2; i++ {
		code, out = call(t, m.r, http.MethodPost, "/api/payments/verify", m.customerToken, verify)
		if code != http.StatusOK {
			t.Fatalf("verify %d: %d %v", i, code, out)
		}
		if s := obj(t, out, "payment")["status"]; s != "COMPLETED" {
			t.Fatalf("payment status %v", s)
		}
	}
	state := m.bookingState(t)
	if state["status"] != "CONFIRMED" || state["paymentStatus"] != "COMPLETED" {
		t.Fatalf("after verify: %v/%v", state["status"], state["paymentStatus"])
	}

	// scenario D
	code, out = call(t, m.r, http.MethodPost, "/api/reviews", m.customerToken, body{"bookingId": m.bookingID, "rating": 5})
	if code != http.StatusBadRequest {
		t.Fatalf("review before completion: expected 400, got %d %v", code, out)
	}

	for _, s := range []string{"IN_PROGRESS", "COMPLETED"} {
		code, out = call(t, m.r, http.MethodPut, "/api/bookings/"+m.bookingID+"/status", m.providerToken, body{"status": s})
		if code != http.StatusOK {
			t.Fatalf("status %s: %d %v", s, code, out)
		}
	}

	code, out = call(t, m.r, http.MethodPost, "/api/reviews", m.customerToken, body{
		"bookingId": m.bookingID,
		"rating":    5,
		"comment":   "Quick and tidy",
	})
	if code != http.StatusCreated {
		t.Fatalf("review: %d %v", code, out)
	}

	code, out = call(t, m.r, http.MethodGet, "/api/providers/"+m.providerID, "", nil)
	if code != http.StatusOK {
		t.Fatalf("provider detail: %d %v", code, out)
	}
	provider := obj(t, out, "provider")
	if provider["rating"].(float64) != 5 || provider["totalReviews"].(float64) != 1 {
		t.Fatalf("aggregate not updated: rating=%v total=%v", provider["rating"], provider["totalReviews"])
	}
	if reviews := provider["reviews"].([]any); len(reviews) != 1 {
		t.Fatalf("expected the review on the detail page, got %d", len(reviews))
	}

	code, _ = call(t, m.r, http.MethodPost, "/api/reviews", m.customerToken, body{"bookingId": m.bookingID, "rating": 3})
	if code != http.StatusConflict {
		t.Fatalf("second review: expected 409, got %d", code)
	}

	code, _ = call(t, m.r, http.MethodGet, "/api/reviews/booking/"+m.bookingID, "", nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("anonymous review by booking: expected 401, got %d", code)
	}
	code, out = call(t, m.r, http.MethodGet, "/api/reviews/booking/"+m.bookingID, m.customerToken, nil)
	if code != http.StatusOK || obj(t, out, "review")["rating"].(float64) != 5 {
		t.Fatalf("review by booking: %d %v", code, out)
	}

	// public listing shows the author and service, nothing private
	req := httptest.NewRequest(http.MethodGet, "/api/reviews/provider/"+m.providerID, nil)
	w := httptest.NewRecorder()
	m.r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("provider reviews: %d", w.Code)
	}
	raw := w.Body.String()
	for _, private := range []string{"a@x.com", "12 MG Road", "totalPrice"} {
		if strings.Contains(raw, private) {
			t.Fatalf("public review listing leaks %q: %s", private, raw)
		}
	}
	if !strings.Contains(raw, `"serviceName":"Electrician Service"`) || !strings.Contains(raw, `"name":"Asha"`) {
		t.Fatalf("public review listing lacks author or service: %s", raw)
	}

	// provider dashboard sees the completed, paid booking
	code, out = call(t, m.r, http.MethodGet, "/api/providers/dashboard/stats", m.providerToken, nil)
	if code != http.StatusOK {
		t.Fatalf("dashboard: %d %v", code, out)
	}
	stats := obj(t, out, "stats")
	if stats["completedBookings"].(float64) != 1 || stats["totalEarnings"].(float64) != 600 {
		t.Fatalf("dashboard stats %v", stats)
	}
}

func TestCancelTerminalBooking(t *testing.T) {
	m := registerAndBook(t)

	code, out := call(t, m.r, http.MethodPut, "/api/bookings/"+m.bookingID+"/cancel", m.customerToken, nil)
	if code != http.StatusOK {
		t.Fatalf("cancel: %d %v", code, out)
	}
	code, _ = call(t, m.r, http.MethodPut, "/api/bookings/"+m.bookingID+"/cancel", m.customerToken, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("second cancel: expected 400, got %d", code)
	}
	if s := m.bookingState(t)["status"]; s != "CANCELLED" {
		t.Fatalf("status %v", s)
	}
}

func TestBookingVisibility(t *testing.T) {
	m := registerAndBook(t)

	code, _ := call(t, m.r, http.MethodPost, "/api/auth/register", "", body{
		"email": "b@x.com", "password": "secret1", "name": "Bala",
	})
	if code != http.StatusCreated {
		t.Fatalf("register: %d", code)
	}
	other := login(t, m.r, "b@x.com", "secret1")

	code, _ = call(t, m.r, http.MethodGet, "/api/bookings/"+m.bookingID, other, nil)
	if code != http.StatusForbidden {
		t.Fatalf("stranger read: expected 403, got %d", code)
	}

	code, out := call(t, m.r, http.MethodGet, "/api/bookings", other, nil)
	if code != http.StatusOK || len(out["bookings"].([]any)) != 0 {
		t.Fatalf("stranger list: %d %v", code, out)
	}

	code, out = call(t, m.r, http.MethodGet, "/api/bookings", m.providerToken, nil)
	if code != http.StatusOK || len(out["bookings"].([]any)) != 1 {
		t.Fatalf("provider list: %d %v", code, out)
	}
}

func TestGuards(t *testing.T) {
	m := registerAndBook(t)

	code, _ := call(t, m.r, http.MethodGet, "/api/users/profile", "", nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", code)
	}
	code, _ = call(t, m.r, http.MethodGet, "/api/users/profile", "not-a-token", nil)
	if code != http.StatusForbidden {
		t.Fatalf("bad token: expected 403, got %d", code)
	}
	code, _ = call(t, m.r, http.MethodGet, "/api/admin/analytics", m.customerToken, nil)
	if code != http.StatusForbidden {
		t.Fatalf("customer on admin route: expected 403, got %d", code)
	}
	code, _ = call(t, m.r, http.MethodPut, "/api/providers/profile", m.customerToken, body{"bio": "x"})
	if code != http.StatusForbidden {
		t.Fatalf("customer on provider route: expected 403, got %d", code)
	}
}

func TestRefresh(t *testing.T) {
	r := newServer(t)

	code, out := call(t, r, http.MethodPost, "/api/auth/login", "", body{
		"email": "admin@homeservices.com", "password": "admin123",
	})
	if code != http.StatusOK {
		t.Fatalf("login: %d %v", code, out)
	}

	code, _ = call(t, r, http.MethodPost, "/api/auth/refresh", "", body{})
	if code != http.StatusBadRequest {
		t.Fatalf("missing refresh token: expected 400, got %d", code)
	}
	code, _ = call(t, r, http.MethodPost, "/api/auth/refresh", "", body{"refreshToken": out["accessToken"]})
	if code != http.StatusForbidden {
		t.Fatalf("access token used as refresh: expected 403, got %d", code)
	}
	code, fresh := call(t, r, http.MethodPost, "/api/auth/refresh", "", body{"refreshToken": out["refreshToken"]})
	if code != http.StatusOK || fresh["accessToken"] == "" {
		t.Fatalf("refresh: %d %v", code, fresh)
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	r := newServer(t)

	raw := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_x"}}}}`)

	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewReader(raw))
	req.Header.Set("X-Razorpay-Signature", "nope")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewReader(raw))
	req.Header.Set("X-Razorpay-Signature", domainPayment.SignWebhook(webhookSecret, raw))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("signed unknown order should be acknowledged, got %d %s", w.Code, w.Body.String())
	}
}
