package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"aeropark/internal/config"
	"aeropark/internal/mail"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type recordingMailer struct {
	sent []mail.Message
	err  error
}

func (m *recordingMailer) Send(msg mail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func testRouter(t *testing.T, mailer mail.Sender) (*gin.Engine, sqlmock.Sqlmock, config.Env) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	env := config.Env{
		JWTSecret: "router-test-secret",
		BonDir:    t.TempDir(),
	}
	return NewRouter(env, db, mailer), mock, env
}

func signToken(t *testing.T, secret, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   int64(1),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	raw, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func TestHealthEndpoint(t *testing.T) {
	r, _, _ := testRouter(t, &recordingMailer{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestDashboardRequiresToken(t *testing.T) {
	r, _, _ := testRouter(t, &recordingMailer{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/reservations", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "No token provided") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestDashboardRejectsNonAdmin(t *testing.T) {
	r, _, env := testRouter(t, &recordingMailer{})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/reservations", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, env.JWTSecret, "viewer"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Forbidden") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestDashboardListsReservationsForAdmin(t *testing.T) {
	r, mock, env := testRouter(t, &recordingMailer{})

	now := time.Now()
	aller := time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)
	retour := time.Date(2026, 6, 17, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM reservations r").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "reservation_number", "client_id",
			"date_aller", "flight_number_aller", "date_retour", "flight_number_retour",
			"parking_type", "cleaning_type", "with_fuel", "is_oversized",
			"car_immatriculation", "total_price", "status", "bon_path", "created_at",
			"c_id", "c_full_name", "c_email", "c_phone_number", "c_created_at",
		}).AddRow(
			10, "2026-06-14-AF1234", 1,
			aller, "AF1234", retour, "AF1235",
			"externe", "none", false, false,
			"00123-116-16", 1500, "pending", "", now,
			1, "Amine B", "amine@example.com", "0550000000", now,
		))

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/reservations", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, env.JWTSecret, "admin"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "2026-06-14-AF1234") {
		t.Fatalf("body = %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "amine@example.com") {
		t.Fatalf("client not embedded: %s", w.Body.String())
	}
}

func TestLoginEndpoint(t *testing.T) {
	r, mock, _ := testRouter(t, &recordingMailer{})

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt setup: %v", err)
	}
	mock.ExpectQuery("FROM users").
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role"}).
			AddRow(1, "admin", string(hash), "admin"))

	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" || resp.User.Role != "admin" {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	r, mock, _ := testRouter(t, &recordingMailer{})

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt setup: %v", err)
	}
	mock.ExpectQuery("FROM users").
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role"}).
			AddRow(1, "admin", string(hash), "admin"))

	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "nope"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Invalid credentials") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestVerifyEndpoint(t *testing.T) {
	r, _, env := testRouter(t, &recordingMailer{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, env.JWTSecret, "admin"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Token is valid") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func bookingPayload() map[string]any {
	return map[string]any{
		"dateAller":          "2026-06-14",
		"flightNumberAller":  "AF1234",
		"dateRetour":         "2026-06-17",
		"flightNumberRetour": "AF1235",
		"parkingType":        "externe",
		"cleaningType":       "none",
		"withFuel":           false,
		"isOversized":        false,
		"fullName":           "Amine B",
		"email":              "amine@example.com",
		"phoneNumber":        "0550000000",
		"carImmatriculation": "00123-116-16",
	}
}

func postBooking(r *gin.Engine, payload map[string]any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateReservationEndToEnd(t *testing.T) {
	mailer := &recordingMailer{}
	r, mock, env := testRouter(t, mailer)

	now := time.Now()
	aller := time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)
	retour := time.Date(2026, 6, 17, 0, 0, 0, 0, time.UTC)
	clientCols := []string{"id", "full_name", "email", "phone_number", "created_at"}

	// New client: no match by email or phone, then create and reload.
	mock.ExpectQuery("FROM clients WHERE email").
		WithArgs("amine@example.com").
		WillReturnRows(sqlmock.NewRows(clientCols))
	mock.ExpectQuery("FROM clients WHERE phone_number").
		WithArgs("0550000000").
		WillReturnRows(sqlmock.NewRows(clientCols))
	mock.ExpectExec("INSERT INTO clients").
		WithArgs("Amine B", "amine@example.com", "0550000000").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery("FROM clients WHERE id").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(clientCols).
			AddRow(5, "Amine B", "amine@example.com", "0550000000", now))

	// No overlapping stay, first reservation number candidate is free.
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(5), retour, aller).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery("SELECT 1 FROM reservations WHERE reservation_number").
		WithArgs("2026-06-14-AF1234").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	mock.ExpectExec("INSERT INTO reservations").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("UPDATE reservations SET bon_path=").
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Client confirmation through the outbox.
	mock.ExpectExec("INSERT INTO email_outbox").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE email_outbox SET status=").
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := postBooking(r, bookingPayload())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success     bool `json:"success"`
		Reservation struct {
			ReservationNumber string `json:"reservationNumber"`
			TotalPrice        int    `json:"totalPrice"`
			Status            string `json:"status"`
			BonPath           string `json:"bonPath"`
		} `json:"reservation"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatalf("success = false: %s", w.Body.String())
	}
	if resp.Reservation.ReservationNumber != "2026-06-14-AF1234" {
		t.Fatalf("number = %q", resp.Reservation.ReservationNumber)
	}
	if resp.Reservation.TotalPrice != 1500 {
		t.Fatalf("total = %d, want 1500", resp.Reservation.TotalPrice)
	}
	if resp.Reservation.Status != "pending" {
		t.Fatalf("status = %q, want pending", resp.Reservation.Status)
	}

	want := filepath.Join(env.BonDir, "bon-2026-06-14-AF1234.pdf")
	if resp.Reservation.BonPath != want {
		t.Fatalf("bonPath = %q, want %q", resp.Reservation.BonPath, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("order form not written: %v", err)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d mails, want 1", len(mailer.sent))
	}
	if mailer.sent[0].To != "amine@example.com" {
		t.Fatalf("mail to %q", mailer.sent[0].To)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateReservationInvalidDates(t *testing.T) {
	r, mock, _ := testRouter(t, &recordingMailer{})

	payload := bookingPayload()
	payload["dateRetour"] = "2026-06-10"
	w := postBooking(r, payload)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Invalid dates") {
		t.Fatalf("body = %s", w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("invalid dates must not reach the database: %v", err)
	}
}

func TestCreateReservationOverlapRejected(t *testing.T) {
	r, mock, _ := testRouter(t, &recordingMailer{})

	now := time.Now()
	aller := time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)
	retour := time.Date(2026, 6, 17, 0, 0, 0, 0, time.UTC)
	clientCols := []string{"id", "full_name", "email", "phone_number", "created_at"}

	mock.ExpectQuery("FROM clients WHERE email").
		WithArgs("amine@example.com").
		WillReturnRows(sqlmock.NewRows(clientCols).
			AddRow(5, "Amine B", "amine@example.com", "0550000000", now))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(5), retour, aller).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	w := postBooking(r, bookingPayload())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "You already have a reservation in this period") {
		t.Fatalf("body = %s", w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateReservationStatusEndpoint(t *testing.T) {
	mailer := &recordingMailer{}
	r, mock, env := testRouter(t, mailer)

	now := time.Now()
	aller := time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)
	retour := time.Date(2026, 6, 17, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE reservations SET status=").
		WithArgs("confirmed", int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM reservations WHERE id").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "reservation_number", "client_id",
			"date_aller", "flight_number_aller", "date_retour", "flight_number_retour",
			"parking_type", "cleaning_type", "with_fuel", "is_oversized",
			"car_immatriculation", "total_price", "status", "bon_path", "created_at",
		}).AddRow(
			10, "2026-06-14-AF1234", 1,
			aller, "AF1234", retour, "AF1235",
			"externe", "none", false, false,
			"00123-116-16", 1500, "confirmed", "", now,
		))
	mock.ExpectQuery("FROM clients WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "phone_number", "created_at"}).
			AddRow(1, "Amine B", "amine@example.com", "0550000000", now))
	mock.ExpectExec("INSERT INTO email_outbox").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("UPDATE email_outbox SET status=").
		WillReturnResult(sqlmock.NewResult(0, 1))

	body, _ := json.Marshal(map[string]string{"status": "confirmed"})
	req := httptest.NewRequest(http.MethodPut, "/api/dashboard/reservations/10/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signToken(t, env.JWTSecret, "admin"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"status":"confirmed"`) {
		t.Fatalf("body = %s", w.Body.String())
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d mails, want 1", len(mailer.sent))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
