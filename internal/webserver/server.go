package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dromorongit/Richtymluxe/internal/app"
	jwtv5 "github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// AppContextKey is the echo context key holding the application context.
const AppContextKey = "appctx"

type WebServer struct {
	appCtx app.AppContext
	root   *echo.Echo
	pub    *echo.Group
	api    *echo.Group
}

var server *WebServer

// Init builds the HTTP server: public routes under /api, bearer-protected
// routes under the same prefix guarded by the JWT middleware.
func Init(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("64M"))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, appCtx)
			start := time.Now()
			err := next(c)
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("elapsed", time.Since(start)))
			return err
		}
	})

	cfg := appCtx.Config()

	// Uploaded catalog images
	e.Static(cfg.Storefront.UploadPrefix, cfg.Storefront.UploadDir)

	pub := e.Group("/api")
	api := e.Group("/api")
	api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.Web.Secret),
		NewClaimsFunc: func(c echo.Context) jwtv5.Claims {
			return new(jwtv5.RegisteredClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"code":    "UNAUTHORIZED",
				"message": "Not authorized, token failed",
			})
		},
	}))

	server = &WebServer{appCtx: appCtx, root: e, pub: pub, api: api}
	return server
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully.
func (s *WebServer) Start(ctx context.Context) error {
	cfg := s.appCtx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("webserver listening", zap.String("addr", addr))
		errCh <- s.root.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.root.Shutdown(shutdownCtx)
	}
}

// Echo exposes the underlying router (used in tests).
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

// PubGET registers a public GET route
func PubGET(path string, h echo.HandlerFunc) {
	server.pub.GET(path, h)
}

// PubPOST registers a public POST route
func PubPOST(path string, h echo.HandlerFunc) {
	server.pub.POST(path, h)
}

// ApiGET registers a bearer-protected GET route
func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

// ApiPOST registers a bearer-protected POST route
func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

// ApiPUT registers a bearer-protected PUT route
func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

// ApiDELETE registers a bearer-protected DELETE route
func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}
