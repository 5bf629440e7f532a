package domain

import (
	"time"
)

type SysConfig struct {
	ID        int64     `json:"id,string" form:"id"`
	Sort      int       `json:"sort" form:"sort"`
	Type      string    `gorm:"index" json:"type" form:"type"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	Value     string    `json:"value" form:"value"`
	Remark    string    `json:"remark" form:"remark"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (SysConfig) TableName() string {
	return "sys_config"
}

// SysAdmin is a dashboard administrator account. The password column holds a
// bcrypt hash and is never serialized to clients.
type SysAdmin struct {
	ID        int64      `json:"id,string" form:"id"`
	Username  string     `gorm:"uniqueIndex;size:64" json:"username" form:"username"`
	Email     string     `gorm:"uniqueIndex;size:128" json:"email" form:"email"`
	Password  string     `gorm:"size:128" json:"-" form:"-"`
	Fullname  string     `json:"fullName" form:"fullName"`
	Role      string     `gorm:"size:32" json:"role" form:"role"` // admin | superadmin
	IsActive  bool       `json:"isActive" form:"isActive"`
	LastLogin *time.Time `json:"lastLogin"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName Specify table name
func (SysAdmin) TableName() string {
	return "sys_admin"
}

const (
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

type SysOprLog struct {
	ID        int64     `json:"id,string"`
	OprName   string    `json:"opr_name"`
	OprIp     string    `json:"opr_ip"`
	OptAction string    `json:"opt_action"`
	OptDesc   string    `json:"opt_desc"`
	OptTime   time.Time `json:"opt_time"`
}

// TableName Specify table name
func (SysOprLog) TableName() string {
	return "sys_opr_log"
}
