package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"email-intake/internal/config"
	"email-intake/internal/storage"
	"email-intake/internal/submission"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *gin.Engine {
	t.Helper()
	cfg := &config.Config{
		Listen:    ":0",
		PublicDir: t.TempDir(),
		Metrics:   true,
		Storage:   config.Storage{Type: config.StorageMemory},
	}
	for _, m := range mutate {
		m(cfg)
	}
	return HTTPServer(cfg, submission.NewService(storage.NewMemoryProvider()))
}

func submit(r http.Handler, name, email string, accept string) *httptest.ResponseRecorder {
	form := url.Values{"name": {name}, "email": {email}}
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type dataResponse struct {
	StoredData []struct {
		Name          string          `json:"name"`
		Email         string          `json:"email"`
		ErrorMessages json.RawMessage `json:"errorMessages"`
	} `json:"storedData"`
	DataMessages []string `json:"dataMessages"`
}

func getData(t *testing.T, r http.Handler) dataResponse {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/data", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var data dataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	return data
}

func TestIndex(t *testing.T) {
	r := newTestServer(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/submit"`)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Empty(t, rec.Header().Get("X-XSS-Protection"))
}

func TestSubmitAndQuery(t *testing.T) {
	r := newTestServer(t)

	rec := submit(r, "Jane", "jane@example.com", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	data := getData(t, r)
	require.Len(t, data.StoredData, 1)
	assert.Equal(t, "Jane", data.StoredData[0].Name)
	assert.JSONEq(t, `"Valido"`, string(data.StoredData[0].ErrorMessages))
	assert.NotNil(t, data.DataMessages)
	assert.Empty(t, data.DataMessages)

	submit(r, "Bob", "bad email", "")

	data = getData(t, r)
	require.Len(t, data.StoredData, 2)
	assert.Equal(t, "Jane", data.StoredData[0].Name)
	assert.JSONEq(t, `"Valido"`, string(data.StoredData[0].ErrorMessages))

	var messages []string
	require.NoError(t, json.Unmarshal(data.StoredData[1].ErrorMessages, &messages))
	assert.Equal(t, "Bob", data.StoredData[1].Name)
	assert.Contains(t, messages, "El correo no puede contener espacios")
}

func TestSubmit_JSON(t *testing.T) {
	r := newTestServer(t)

	rec := submit(r, "John", "john@@example.com", "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"name": "John",
		"email": "john@@example.com",
		"errorMessages": ["Verifica que tu correo contenga una sola arroba"]
	}`, rec.Body.String())
}

func TestSubmit_AcceptVariants(t *testing.T) {
	r := newTestServer(t)

	for _, accept := range []string{"application/json; charset=utf-8", "application/json, */*;q=0.1"} {
		rec := submit(r, "Jane", "jane@example.com", accept)
		assert.Equal(t, http.StatusOK, rec.Code, accept)
		assert.Equal(t, gin.MIMEJSON+"; charset=utf-8", rec.Header().Get("Content-Type"), accept)
	}

	rec := submit(r, "Jane", "jane@example.com", "text/html,*/*;q=0.8")
	assert.Equal(t, http.StatusFound, rec.Code)

	assert.Len(t, getData(t, r).StoredData, 3)
}

func TestSubmit_EmptyFieldsAreStored(t *testing.T) {
	r := newTestServer(t)

	rec := submit(r, "", "", "")
	assert.Equal(t, http.StatusFound, rec.Code)

	data := getData(t, r)
	require.Len(t, data.StoredData, 1)
	assert.JSONEq(t, `["El correo debe contener una arroba", "La parte del dominio debe incluir al menos un punto"]`,
		string(data.StoredData[0].ErrorMessages))
}

func TestSubmit_MalformedForm(t *testing.T) {
	r := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("name=%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_FORM")
	assert.Empty(t, getData(t, r).StoredData)
}

func TestHealth(t *testing.T) {
	r := newTestServer(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"pong"`)
}

func TestMetrics(t *testing.T) {
	r := newTestServer(t)
	submit(r, "Jane", "jane@example.com", "")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "emailintake_submissions_total")

	r = newTestServer(t, func(cfg *config.Config) { cfg.Metrics = false })
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style.css"), []byte("body{}"), 0644))
	r := newTestServer(t, func(cfg *config.Config) { cfg.PublicDir = dir })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())
}

func TestIPAccessControl(t *testing.T) {
	r := newTestServer(t, func(cfg *config.Config) { cfg.AllowedNetworks = "10.0.0.0/8, bogus" })

	// httptest requests come from 192.0.2.1
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/data", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "IP_NOT_ALLOWED")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	req := httptest.NewRequest(http.MethodGet, "/data", nil)
	req.Header.Set("Accept", "application/json")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.JSONEq(t, `{"status": 403, "message": "Access denied", "codes": ["IP_NOT_ALLOWED"]}`, rec.Body.String())

	// Loopback passes outside release mode.
	req = httptest.NewRequest(http.MethodGet, "/data", nil)
	req.RemoteAddr = "127.0.0.1:4567"
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/data", nil)
	req.RemoteAddr = "10.1.2.3:4567"
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestParseNetworks(t *testing.T) {
	networks := parseNetworks(" 10.1.2.3/8, ,bogus,2001:db8::/32")
	require.Len(t, networks, 2)
	assert.Equal(t, "10.0.0.0/8", networks[0].String())
	assert.Equal(t, "2001:db8::/32", networks[1].String())
	assert.Empty(t, parseNetworks(""))
}

func TestStaticIsCacheable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style.css"), []byte("body{}"), 0644))
	r := newTestServer(t, func(cfg *config.Config) { cfg.PublicDir = dir })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	assert.Empty(t, rec.Header().Get("Cache-Control"))
}
