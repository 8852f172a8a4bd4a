package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/libraryhub/library/internal/audit"
	"github.com/libraryhub/library/internal/circulation"
	"github.com/libraryhub/library/internal/database"
	auditRepo "github.com/libraryhub/library/internal/database/audit"
	"github.com/libraryhub/library/internal/database/books"
	"github.com/libraryhub/library/internal/database/users"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	db     *database.Database
	audit  *audit.Service
}

func setupTestRouter(t *testing.T, configure ...func(*RouterConfig)) *testEnv {
	t.Helper()

	db, err := database.NewSQLiteDatabase(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)

	auditService := audit.NewService(auditRepo.NewRepository(db.DB))
	manager := circulation.NewManager(db.DB)
	manager.SetRecorder(auditService)

	t.Cleanup(func() {
		auditService.Wait()
		db.Close()
	})

	cfg := RouterConfig{
		Books:       books.NewRepository(db.DB),
		Users:       users.NewRepository(db.DB),
		Circulation: manager,
		Database:    db,
		Consistency: manager,
		Audit:       auditService,
		Version:     "test",
	}
	for _, fn := range configure {
		fn(&cfg)
	}

	return &testEnv{router: NewRouter(cfg), db: db, audit: auditService}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[ErrorResponse](t, w).Error
}

func mustCreate(t *testing.T, e *testEnv, path string, body any) map[string]any {
	t.Helper()
	w := e.do(t, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]any](t, w)
}

func idOf(t *testing.T, v map[string]any) uint {
	t.Helper()
	id, ok := v["id"].(float64)
	require.True(t, ok, "missing id in %v", v)
	return uint(id)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
