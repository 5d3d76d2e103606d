package admin_controller

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func patchLocation(t *testing.T, id, body string) *httptest.ResponseRecorder {
	t.Helper()

	// nil pool: these requests must be rejected during validation, before
	// any query runs.
	ac := NewAdminController(nil)

	r := gin.New()
	r.PATCH("/admin/locations/:id", ac.UpdateLocation)

	req := httptest.NewRequest(http.MethodPatch, "/admin/locations/"+id, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateLocationRejectsBadID(t *testing.T) {
	w := patchLocation(t, "not-a-uuid", `{"name":"Hilltop Villa","images":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "location id")
}

func TestUpdateLocationRejectsMalformedBody(t *testing.T) {
	w := patchLocation(t, "0190a3a1-7b9d-7c3e-a111-223344556677", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRejectsMissingCredentials(t *testing.T) {
	ac := NewAdminController(nil)

	r := gin.New()
	r.POST("/admin/login", ac.Login)

	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader([]byte(`{"email":"ops@example.com"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
