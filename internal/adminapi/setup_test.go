package adminapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dromorongit/Richtymluxe/config"
	"github.com/dromorongit/Richtymluxe/internal/app"
	"github.com/dromorongit/Richtymluxe/internal/domain"
	"github.com/dromorongit/Richtymluxe/internal/storage"
	"github.com/dromorongit/Richtymluxe/internal/webserver"
	"github.com/dromorongit/Richtymluxe/pkg/common"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var testDBSeq int

// newTestServer wires a fresh in-memory database, application and router.
func newTestServer(t *testing.T) (*echo.Echo, *app.Application) {
	t.Helper()

	testDBSeq++
	dsn := fmt.Sprintf("file:adminapi_test_%d?mode=memory&cache=shared&_foreign_keys=on", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.Migrator().AutoMigrate(domain.Tables...); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	cfg := config.LoadConfig("")
	cfg.Logger.FileEnable = false
	cfg.Storefront.UploadDir = t.TempDir()

	application := app.NewApplication(cfg)
	application.OverrideDB(db)

	store, err := storage.NewDiskStore(cfg.Storefront.UploadDir, cfg.Storefront.UploadPrefix)
	if err != nil {
		t.Fatalf("create disk store: %v", err)
	}

	ws := webserver.Init(application)
	RegisterRoutes(store)
	return ws.Echo(), application
}

// seedAdmin inserts an administrator with a bcrypt MinCost hash for speed.
func seedAdmin(t *testing.T, application *app.Application, username, password, role string, active bool) *domain.SysAdmin {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	admin := domain.SysAdmin{
		ID:       common.UUIDint64(),
		Username: username,
		Email:    username + "@richtymluxe.test",
		Password: string(hashed),
		Fullname: "Test Admin",
		Role:     role,
		IsActive: active,
	}
	if err := application.DB().Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return &admin
}

func seedProduct(t *testing.T, application *app.Application, p domain.Product) *domain.Product {
	t.Helper()
	if p.ID == 0 {
		p.ID = common.UUIDint64()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = p.CreatedAt
	if err := application.DB().Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return &p
}

// doJSON performs a JSON request and decodes the response body into out.
func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode response %s: %v", rec.Body.String(), err)
		}
	}
	return rec
}

// login returns a bearer token for the given credentials.
func login(t *testing.T, e *echo.Echo, username, password string) string {
	t.Helper()
	var resp map[string]interface{}
	rec := doJSON(t, e, http.MethodPost, "/api/admin/login", "",
		map[string]string{"username": username, "password": password}, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatalf("login response missing token: %v", resp)
	}
	return token
}
