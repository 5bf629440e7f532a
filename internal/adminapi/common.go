package adminapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dromorongit/Richtymluxe/internal/app"
	"github.com/dromorongit/Richtymluxe/internal/domain"
	"github.com/dromorongit/Richtymluxe/internal/storage"
	"github.com/dromorongit/Richtymluxe/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var uploadStore storage.Store

// RegisterRoutes wires every handler into the webserver. The upload backend
// is injected here so handlers never know which implementation is active.
func RegisterRoutes(store storage.Store) {
	uploadStore = store
	registerAdminRoutes()
	registerProductRoutes()
	registerUploadRoutes()
	registerCheckoutRoutes()
}

// GetAppContext returns the application context injected by the webserver.
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(webserver.AppContextKey).(app.AppContext)
}

// GetDB returns the application database handle.
func GetDB(c echo.Context) *gorm.DB {
	return GetAppContext(c).DB()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

// fail writes the error envelope. Detail is logged server-side only and never
// leaks into the response body.
func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	if detail != nil {
		zap.L().Error("request failed",
			zap.String("path", c.Request().URL.Path),
			zap.String("code", code),
			zap.Any("detail", detail))
	}
	return c.JSON(status, map[string]interface{}{
		"code":    code,
		"message": message,
	})
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.Errorf("invalid id parameter %q", c.Param(name))
	}
	return id, nil
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.QueryParam("limit"))
	if pageSize < 1 || pageSize > 500 {
		pageSize = 20
	}
	return page, pageSize
}

// addOprLog records an admin operation for audit.
func addOprLog(c echo.Context, oprName, action, desc string) {
	log := domain.SysOprLog{
		OprName:   oprName,
		OprIp:     c.RealIP(),
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	}
	if err := GetDB(c).Create(&log).Error; err != nil {
		zap.L().Warn("failed to write operation log", zap.Error(err))
	}
}

// currentAdmin loads the administrator record behind the request token.
func currentAdmin(c echo.Context) (*domain.SysAdmin, error) {
	id := webserver.CurrentAdminID(c)
	if id == 0 {
		return nil, errors.New("no administrator in context")
	}
	var admin domain.SysAdmin
	if err := GetDB(c).Where("id = ?", id).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
