package adminapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dromorongit/Richtymluxe/internal/domain"
	"github.com/dromorongit/Richtymluxe/internal/webserver"
	"github.com/dromorongit/Richtymluxe/pkg/common"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// dummyHash keeps the bcrypt comparison cost constant when the username does
// not exist, so login timing does not reveal which usernames are registered.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("richtymluxe-dummy"), bcrypt.DefaultCost)

func registerAdminRoutes() {
	webserver.PubPOST("/admin/login", adminLogin)
	webserver.ApiGET("/admin/profile", getAdminProfile)
	webserver.ApiPUT("/admin/profile", updateAdminProfile)
	webserver.ApiPOST("/admin/register", registerAdmin)
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func adminLogin(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login request", err.Error())
	}
	if payload.Username == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "MISSING_FIELDS", "Please provide username and password", nil)
	}

	var admin domain.SysAdmin
	err := GetDB(c).Where("username = ?", payload.Username).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(payload.Password))
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Login failed", err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(payload.Password)); err != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials", nil)
	}

	if !admin.IsActive {
		return fail(c, http.StatusUnauthorized, "ACCOUNT_DISABLED", "Account is deactivated", nil)
	}

	// Persist the login timestamp before issuing the token
	now := time.Now()
	if err := GetDB(c).Model(&domain.SysAdmin{}).Where("id = ?", admin.ID).
		Updates(map[string]interface{}{"last_login": now, "updated_at": now}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Login failed", err.Error())
	}

	cfg := GetAppContext(c).Config().Web
	token, err := webserver.CreateToken(cfg.Secret, admin.ID, time.Duration(cfg.JwtExpire)*time.Hour)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Login failed", err.Error())
	}

	addOprLog(c, admin.Username, "login", "administrator login")
	zap.L().Info("administrator login", zap.String("username", admin.Username))

	return ok(c, map[string]interface{}{
		"id":       strconv.FormatInt(admin.ID, 10),
		"username": admin.Username,
		"email":    admin.Email,
		"fullName": admin.Fullname,
		"role":     admin.Role,
		"token":    token,
	})
}

func getAdminProfile(c echo.Context) error {
	admin, err := currentAdmin(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authorized", err.Error())
	}
	return ok(c, admin)
}

type profilePayload struct {
	Fullname *string `json:"fullName"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func updateAdminProfile(c echo.Context) error {
	admin, err := currentAdmin(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authorized", err.Error())
	}

	var payload profilePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse profile request", err.Error())
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if payload.Fullname != nil {
		updates["fullname"] = strings.TrimSpace(*payload.Fullname)
	}
	if payload.Email != nil {
		updates["email"] = strings.TrimSpace(*payload.Email)
	}
	if payload.Password != nil && *payload.Password != "" {
		hashed, herr := bcrypt.GenerateFromPassword([]byte(*payload.Password), bcrypt.DefaultCost)
		if herr != nil {
			return fail(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to update profile", herr.Error())
		}
		updates["password"] = string(hashed)
	}

	if err := GetDB(c).Model(&domain.SysAdmin{}).Where("id = ?", admin.ID).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fail(c, http.StatusBadRequest, "DUPLICATE_ADMIN", "Admin already exists", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update profile", err.Error())
	}

	if err := GetDB(c).Where("id = ?", admin.ID).First(admin).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update profile", err.Error())
	}
	addOprLog(c, admin.Username, "update_profile", "administrator profile update")
	return ok(c, admin)
}

type registerPayload struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Fullname string `json:"fullName"`
	Role     string `json:"role" validate:"omitempty,oneof=admin superadmin"`
}

func registerAdmin(c echo.Context) error {
	requester, err := currentAdmin(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authorized", err.Error())
	}
	if requester.Role != domain.RoleSuperadmin {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Only superadmin can create new admins", nil)
	}

	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse register request", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid admin fields", err.Error())
	}

	// Friendly duplicate check; the unique indexes remain the real guard.
	var count int64
	GetDB(c).Model(&domain.SysAdmin{}).
		Where("username = ? OR email = ?", payload.Username, payload.Email).
		Count(&count)
	if count > 0 {
		return fail(c, http.StatusBadRequest, "DUPLICATE_ADMIN", "Admin already exists", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to create admin", err.Error())
	}

	role := payload.Role
	if role == "" {
		role = domain.RoleAdmin
	}

	now := time.Now()
	admin := domain.SysAdmin{
		ID:        common.UUIDint64(),
		Username:  payload.Username,
		Email:     payload.Email,
		Password:  string(hashed),
		Fullname:  payload.Fullname,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(c).Create(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fail(c, http.StatusBadRequest, "DUPLICATE_ADMIN", "Admin already exists", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create admin", err.Error())
	}

	addOprLog(c, requester.Username, "register_admin", "created administrator "+admin.Username)
	return created(c, &admin)
}
