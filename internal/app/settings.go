package app

import (
	"sync"
	"time"

	"github.com/dromorongit/Richtymluxe/internal/domain"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SettingsManager reads runtime settings from the sys_config table with a
// short-lived in-process cache.
type SettingsManager struct {
	db    *gorm.DB
	mu    sync.RWMutex
	cache map[string]string
	last  time.Time
	ttl   time.Duration
}

func NewSettingsManager(db *gorm.DB) *SettingsManager {
	return &SettingsManager{
		db:    db,
		cache: make(map[string]string),
		ttl:   30 * time.Second,
	}
}

func (m *SettingsManager) get(category, name string) string {
	key := category + "." + name

	m.mu.RLock()
	if time.Since(m.last) < m.ttl {
		if v, ok := m.cache[key]; ok {
			m.mu.RUnlock()
			return v
		}
	}
	m.mu.RUnlock()

	var cfg domain.SysConfig
	err := m.db.Where("type = ? and name = ?", category, name).First(&cfg).Error
	if err != nil {
		return ""
	}

	m.mu.Lock()
	if time.Since(m.last) >= m.ttl {
		m.cache = make(map[string]string)
		m.last = time.Now()
	}
	m.cache[key] = cfg.Value
	m.mu.Unlock()
	return cfg.Value
}

func (m *SettingsManager) GetString(category, name string) string {
	return m.get(category, name)
}

func (m *SettingsManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.get(category, name))
}

func (m *SettingsManager) GetBool(category, name string) bool {
	return cast.ToBool(m.get(category, name))
}

// Set updates a setting value, creating the row when missing.
func (m *SettingsManager) Set(category, name, value string) error {
	var count int64
	m.db.Model(&domain.SysConfig{}).Where("type = ? and name = ?", category, name).Count(&count)
	var err error
	if count == 0 {
		err = m.db.Create(&domain.SysConfig{Type: category, Name: name, Value: value}).Error
	} else {
		err = m.db.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).
			Update("value", value).Error
	}
	if err != nil {
		zap.L().Error("failed to save setting",
			zap.String("category", category), zap.String("name", name), zap.Error(err))
		return err
	}

	m.mu.Lock()
	m.cache[category+"."+name] = value
	m.mu.Unlock()
	return nil
}
