package app

import (
	"time"

	"github.com/dromorongit/Richtymluxe/internal/domain"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	_, err := a.sched.AddFunc("@daily", func() {
		a.SchedClearOprLogs()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedClearOprLogs purges admin operation logs past the retention window.
func (a *Application) SchedClearOprLogs() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	idays := a.GetSettingsInt64Value("system", "oprlog_retention_days")
	if idays == 0 {
		idays = 365
	}
	a.gormDB.
		Where("opt_time < ? ", time.Now().
			Add(-time.Hour*24*time.Duration(idays))).Delete(domain.SysOprLog{})
}
