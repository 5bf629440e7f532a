package app

import (
	"errors"
	"strings"
	"time"

	"github.com/dromorongit/Richtymluxe/internal/domain"
	"github.com/dromorongit/Richtymluxe/pkg/common"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// checkSuper seeds the default superadmin account on first start and repairs
// its role/status when they have drifted.
func (a *Application) checkSuper() {
	boot := a.appConfig.Bootstrap
	if boot.Username == "" || boot.Password == "" {
		zap.L().Warn("bootstrap superadmin not configured, skipping seed")
		return
	}

	var admin domain.SysAdmin
	err := a.gormDB.Where("username = ?", boot.Username).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, herr := bcrypt.GenerateFromPassword([]byte(boot.Password), bcrypt.DefaultCost)
		if herr != nil {
			zap.L().Error("failed to hash bootstrap password", zap.Error(herr))
			return
		}
		now := time.Now()
		if err := a.gormDB.Create(&domain.SysAdmin{
			ID:        common.UUIDint64(),
			Username:  boot.Username,
			Email:     boot.Email,
			Password:  string(hashed),
			Fullname:  boot.Fullname,
			Role:      domain.RoleSuperadmin,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}).Error; err != nil {
			zap.L().Error("failed to create default superadmin", zap.Error(err))
		} else {
			zap.L().Info("initialized default superadmin account", zap.String("username", boot.Username))
		}
		return
	case err != nil:
		zap.L().Error("failed to query superadmin", zap.Error(err))
		return
	}

	resetRole := !strings.EqualFold(admin.Role, domain.RoleSuperadmin)
	resetStatus := !admin.IsActive
	if !resetRole && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetRole {
		updates["role"] = domain.RoleSuperadmin
	}
	if resetStatus {
		updates["is_active"] = true
	}

	if err := a.gormDB.Model(&domain.SysAdmin{}).Where("id = ?", admin.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair superadmin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default superadmin account",
		zap.String("username", boot.Username),
		zap.Bool("roleReset", resetRole),
		zap.Bool("statusEnabled", resetStatus))
}

type settingSchema struct {
	Key         string
	Default     string
	Description string
}

var defaultSettings = []settingSchema{
	{Key: "storefront.order_phone", Default: "", Description: "WhatsApp number that receives checkout orders (overrides config when set)"},
	{Key: "storefront.currency", Default: "GHS", Description: "Display currency code for order messages"},
	{Key: "system.oprlog_retention_days", Default: "365", Description: "Days to keep admin operation logs"},
	{Key: "upload.max_size_mb", Default: "5", Description: "Maximum upload size per image file in MB"},
}

// checkSettings initializes missing sys_config entries with their defaults.
func (a *Application) checkSettings() {
	for sortid, schema := range defaultSettings {
		parts := strings.SplitN(schema.Key, ".", 2)
		if len(parts) != 2 {
			zap.L().Warn("invalid setting key format", zap.String("key", schema.Key))
			continue
		}
		category := parts[0]
		name := parts[1]

		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				Sort:   sortid,
				Type:   category,
				Name:   name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized setting",
				zap.String("key", schema.Key),
				zap.String("default", schema.Default))
		}
	}
}
