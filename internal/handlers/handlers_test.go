package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mjkoder/Invoice-Application/internal/middleware"
	"github.com/mjkoder/Invoice-Application/internal/models"
	"github.com/mjkoder/Invoice-Application/internal/repository"
	"github.com/mjkoder/Invoice-Application/internal/services/automation"
	invoicesvc "github.com/mjkoder/Invoice-Application/internal/services/invoice"
	"github.com/mjkoder/Invoice-Application/internal/zapier"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testApp struct {
	router *gin.Engine
	owner  *models.User
	cookie string
}

// newTestApp wires the handlers the way routes.RegisterRoutes does, plus a
// test-only login route that stores a user id in the session.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Invoice{},
		&models.AutomatedRecipient{},
		&models.WebhookDelivery{},
	))

	userRepo := repository.NewUserRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	automationRepo := repository.NewAutomationRepository(db)

	invoiceService := invoicesvc.NewService(invoiceRepo, userRepo)
	automationService := automation.NewService(automationRepo, invoiceRepo, zapier.NewClient(""))

	invoiceHandler := NewInvoiceHandler(invoiceService)
	automationHandler := NewAutomationHandler(automationService)

	r := gin.New()
	r.Use(sessions.Sessions("invoice_session", cookie.NewStore([]byte("test-secret"))))

	r.POST("/test/login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(middleware.UserIDKey, c.Query("id"))
		require.NoError(t, session.Save())
		c.Status(http.StatusOK)
	})

	invoices := r.Group("/invoices", middleware.RequireAuth())
	{
		invoices.GET("", invoiceHandler.List)
		invoices.POST("", invoiceHandler.Create)
		invoices.PATCH("/:invoiceId", invoiceHandler.Update)
		invoices.PATCH("/:invoiceId/markPaid", invoiceHandler.MarkPaid)
	}

	automate := r.Group("/automate", middleware.RequireAuth())
	{
		automate.GET("", automationHandler.List)
		automate.POST("/trigger-zap", automationHandler.TriggerZap)
		automate.POST("/add", automationHandler.Add)
		automate.POST("/remove", automationHandler.Remove)
	}

	owner := &models.User{
		ID:       uuid.New(),
		GoogleID: "google-" + uuid.NewString(),
		Email:    "owner@example.com",
		Name:     "Owner",
	}
	require.NoError(t, userRepo.Create(owner))

	app := &testApp{router: r, owner: owner}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test/login?id="+owner.ID.String(), nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	app.cookie = w.Header().Get("Set-Cookie")
	require.NotEmpty(t, app.cookie)

	return app
}

func (a *testApp) do(t *testing.T, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Cookie", a.cookie)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	app := newTestApp(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/invoices"},
		{http.MethodPost, "/invoices"},
		{http.MethodGet, "/automate"},
		{http.MethodPost, "/automate/add"},
	} {
		w := app.do(t, route.method, route.path, `{}`, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestInvoiceCreateListMarkPaidFlow(t *testing.T) {
	app := newTestApp(t)

	yesterday := time.Now().Add(-24 * time.Hour).Format(time.RFC3339)
	body := `{
		"invoiceNumber": 1,
		"amount": 100,
		"dueDate": "` + yesterday + `",
		"recipientName": "Acme",
		"recipientPhone": "555-0100",
		"recipientEmail": "a@b.com",
		"recipientAddress": "1 Main St"
	}`

	w := app.do(t, http.MethodPost, "/invoices", body, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created models.Invoice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// duplicate number for the same user is a user-facing 400
	w = app.do(t, http.MethodPost, "/invoices", body, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invoice number already exists")

	// the list read promotes the past-due invoice to Overdue
	w = app.do(t, http.MethodGet, "/invoices", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.Invoice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, models.StatusOverdue, listed[0].Status)

	// wrong confirmation email
	w = app.do(t, http.MethodPatch, "/invoices/"+created.ID.String()+"/markPaid",
		`{"enteredEmail":"wrong@b.com"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Recipient email mismatch")

	// exact email marks the invoice paid
	w = app.do(t, http.MethodPatch, "/invoices/"+created.ID.String()+"/markPaid",
		`{"enteredEmail":"a@b.com"}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), models.StatusPaid)

	// a paid invoice rejects further mutation
	w = app.do(t, http.MethodPatch, "/invoices/"+created.ID.String(),
		`{"dueDate":"`+time.Now().Add(48*time.Hour).Format(time.RFC3339)+`"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already paid")
}

func TestInvoiceUpdateUnknownID(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPatch, "/invoices/"+uuid.NewString(), `{"markPaid":true}`, true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodPatch, "/invoices/not-a-uuid", `{"markPaid":true}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAutomationEndpoints(t *testing.T) {
	app := newTestApp(t)

	body := `{
		"invoiceNumber": 5,
		"amount": 250,
		"dueDate": "` + time.Now().Add(48*time.Hour).Format(time.RFC3339) + `",
		"recipientName": "Acme",
		"recipientPhone": "555-0100",
		"recipientEmail": "a@b.com",
		"recipientAddress": "1 Main St"
	}`
	w := app.do(t, http.MethodPost, "/invoices", body, true)
	require.Equal(t, http.StatusOK, w.Code)

	var created models.Invoice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	idBody := `{"invoiceId":"` + created.ID.String() + `"}`

	w = app.do(t, http.MethodPost, "/automate/add", idBody, true)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/automate/add", idBody, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already automated")

	w = app.do(t, http.MethodGet, "/automate", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	var recipients []models.AutomatedRecipient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipients))
	assert.Len(t, recipients, 1)

	// no webhook URL configured: the trigger reports configuration, not
	// a generic transport failure
	w = app.do(t, http.MethodPost, "/automate/trigger-zap", idBody, true)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "not configured")

	w = app.do(t, http.MethodPost, "/automate/remove", idBody, true)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/automate/remove", idBody, true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodPost, "/automate/add", `{}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invoice ID is required")
}
