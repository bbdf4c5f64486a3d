// internal/handlers/handler_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/forma3d/catalog-backend/internal/config"
	"github.com/forma3d/catalog-backend/internal/media"
	"github.com/forma3d/catalog-backend/internal/models"
	"github.com/forma3d/catalog-backend/internal/router"
)

var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}

type fakeStore struct {
	mu      sync.Mutex
	failOn  map[string]bool
	deletes map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		failOn:  make(map[string]bool),
		deletes: make(map[string]int),
	}
}

func (s *fakeStore) Upload(_ context.Context, in media.UploadInput) (*media.UploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failOn[in.FileName] {
		return nil, errors.New("upstream rejected file")
	}
	return &media.UploadResult{
		URL:      "https://cdn.example.com/" + in.FileName,
		FileID:   "fid-" + in.FileName,
		Name:     in.FileName,
		FilePath: "/catalog/" + in.FileName,
	}, nil
}

func (s *fakeStore) Delete(_ context.Context, fileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes[fileID]++
	return nil
}

func (s *fakeStore) Provider() string { return "fake" }

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *fakeStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.OrphanAsset{},
		&models.AuditLog{},
	)
	require.NoError(t, err)

	cfg := &config.Config{
		Environment: "test",
		Media: config.MediaConfig{
			Provider:    "imagekit",
			MaxFileSize: 10 * 1024 * 1024,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}

	store := newFakeStore()
	r := router.Initialize(db, cfg, store)
	return r, db, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func doMultipart(t *testing.T, r *gin.Engine, path, field string, files map[string][]byte, fields map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, data := range files {
		part, err := writer.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func dataField(t *testing.T, decoded map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := decoded["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %v", decoded)
	return data
}

func createCategoryViaAPI(t *testing.T, r *gin.Engine, name string) string {
	t.Helper()

	w, decoded := doJSON(t, r, http.MethodPost, "/v1/categories", gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code)
	category := dataField(t, decoded)["category"].(map[string]interface{})
	return category["id"].(string)
}
