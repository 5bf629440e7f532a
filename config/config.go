package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	Secret    string `yaml:"secret" json:"secret"`
	JwtExpire int    `yaml:"jwt_expire" json:"jwt_expire"` // token lifetime in hours
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"` // postgres | sqlite
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"` // development | production
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

// StorefrontConfig carries the public storefront settings: where uploaded
// images land on disk, the URL prefix they are served from, and the WhatsApp
// number that receives checkout messages.
type StorefrontConfig struct {
	OrderPhone   string `yaml:"order_phone" json:"order_phone"`
	UploadDir    string `yaml:"upload_dir" json:"upload_dir"`
	UploadPrefix string `yaml:"upload_prefix" json:"upload_prefix"`
}

// BootstrapConfig holds the seed superadmin credentials created on first start.
type BootstrapConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	Email    string `yaml:"email" json:"email"`
	Fullname string `yaml:"fullname" json:"fullname"`
}

type AppConfig struct {
	System     SysConfig        `yaml:"system" json:"system"`
	Web        WebConfig        `yaml:"web" json:"web"`
	Database   DBConfig         `yaml:"database" json:"database"`
	Logger     LogConfig        `yaml:"logger" json:"logger"`
	Storefront StorefrontConfig `yaml:"storefront" json:"storefront"`
	Bootstrap  BootstrapConfig  `yaml:"bootstrap" json:"bootstrap"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "Richtymluxe",
		Location: "Africa/Accra",
		Workdir:  "/var/richtymluxe",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      5000,
		Secret:    "9b6de5cc-0001-0001-0001-0f568ac9da37",
		JwtExpire: 24,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "richtymluxe",
		User:     "postgres",
		Passwd:   "richtymluxe",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/richtymluxe/richtymluxe.log",
	},
	Storefront: StorefrontConfig{
		OrderPhone:   "233503390421",
		UploadDir:    "/var/richtymluxe/uploads",
		UploadPrefix: "/uploads",
	},
	Bootstrap: BootstrapConfig{
		Username: "AdminRichtymluxe",
		Password: "richtymluxe",
		Email:    "admin@richtymluxe.com",
		Fullname: "Richtymluxe Administrator",
	},
}

// LoadConfig reads the YAML configuration file and applies environment
// overrides. A missing file is not an error: defaults plus environment
// variables are used instead.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig

	if cfile != "" {
		data, err := os.ReadFile(cfile)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				panic(errors.Wrap(err, "parse config file"))
			}
		}
	}

	setEnvStrValue("RICHTYMLUXE_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvStrValue("RICHTYMLUXE_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("RICHTYMLUXE_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvStrValue("RICHTYMLUXE_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("RICHTYMLUXE_WEB_PORT", &cfg.Web.Port)
	setEnvStrValue("RICHTYMLUXE_WEB_SECRET", &cfg.Web.Secret)
	setEnvIntValue("RICHTYMLUXE_WEB_JWT_EXPIRE", &cfg.Web.JwtExpire)

	setEnvStrValue("RICHTYMLUXE_DB_TYPE", &cfg.Database.Type)
	setEnvStrValue("RICHTYMLUXE_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("RICHTYMLUXE_DB_PORT", &cfg.Database.Port)
	setEnvStrValue("RICHTYMLUXE_DB_NAME", &cfg.Database.Name)
	setEnvStrValue("RICHTYMLUXE_DB_USER", &cfg.Database.User)
	setEnvStrValue("RICHTYMLUXE_DB_PWD", &cfg.Database.Passwd)

	setEnvStrValue("RICHTYMLUXE_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("RICHTYMLUXE_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvStrValue("RICHTYMLUXE_LOGGER_FILENAME", &cfg.Logger.Filename)

	setEnvStrValue("RICHTYMLUXE_ORDER_PHONE", &cfg.Storefront.OrderPhone)
	setEnvStrValue("RICHTYMLUXE_UPLOAD_DIR", &cfg.Storefront.UploadDir)

	setEnvStrValue("RICHTYMLUXE_BOOTSTRAP_USERNAME", &cfg.Bootstrap.Username)
	setEnvStrValue("RICHTYMLUXE_BOOTSTRAP_PASSWORD", &cfg.Bootstrap.Password)
	setEnvStrValue("RICHTYMLUXE_BOOTSTRAP_EMAIL", &cfg.Bootstrap.Email)

	return cfg
}

func setEnvStrValue(name string, val *string) {
	if v := os.Getenv(name); v != "" {
		*val = v
	}
}

func setEnvIntValue(name string, val *int) {
	if v := os.Getenv(name); v != "" {
		if iv, err := strconv.Atoi(v); err == nil {
			*val = iv
		}
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v := os.Getenv(name); v != "" {
		*val = v == "true" || v == "1" || v == "on"
	}
}
