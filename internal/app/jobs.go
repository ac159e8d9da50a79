package app

import (
	"context"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/shirou/gopsutil/process"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

var (
	systemGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "salesdash",
		Subsystem: "system",
		Name:      "usage",
		Help:      "Host cpu percent and used memory in MB.",
	}, []string{"resource"})
	processGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "salesdash",
		Subsystem: "process",
		Name:      "usage",
		Help:      "Process cpu percent and resident memory in MB.",
	}, []string{"resource"})
	reseedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "salesdash",
		Name:      "reseed_total",
		Help:      "Scheduled seed reloads by result.",
	}, []string{"result"})
)

// StartJobs starts the background scheduler: the optional seed reload
// (seed.schedule) and, when metrics are on, the resource monitor.
func (a *Application) StartJobs() error {
	a.sched = cron.New(cron.WithLocation(a.location), cron.WithParser(cronParser))

	if spec := a.appConfig.Seed.Schedule; spec != "" {
		if _, err := a.sched.AddFunc(spec, a.SchedReseedTask); err != nil {
			return err
		}
		zap.S().Infof("seed reload scheduled: %s", spec)
	}

	if a.appConfig.Web.Metrics {
		_, err := a.sched.AddFunc("@every 30s", func() {
			go a.SchedSystemMonitorTask()
			go a.SchedProcessMonitorTask()
		})
		if err != nil {
			return err
		}
	}

	a.sched.Start()
	return nil
}

// SchedReseedTask reloads the seed document into the store
func (a *Application) SchedReseedTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	n, err := a.InitializeDatabase(ctx)
	if err != nil {
		reseedCounter.WithLabelValues("error").Inc()
		zap.L().Error("scheduled seed reload failed", zap.Error(err))
		return
	}
	reseedCounter.WithLabelValues("ok").Inc()
	zap.L().Info("scheduled seed reload", zap.Int("count", n))
}

// SchedSystemMonitorTask system monitor
func (a *Application) SchedSystemMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	cpuuse, err := cpu.Percent(0, false)
	if err == nil && len(cpuuse) > 0 {
		systemGauge.WithLabelValues("cpu").Set(cpuuse[0])
	}

	meminfo, err := mem.VirtualMemory()
	if err == nil {
		systemGauge.WithLabelValues("mem").Set(float64(meminfo.Used / 1024 / 1024))
	}
}

// SchedProcessMonitorTask app process monitor
func (a *Application) SchedProcessMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	p, err := process.NewProcess(int32(os.Getpid())) //nolint:gosec // G115: PID is always within int32 range
	if err != nil {
		return
	}

	cpuuse, err := p.CPUPercent()
	if err == nil {
		processGauge.WithLabelValues("cpu").Set(cpuuse)
	}

	meminfo, err := p.MemoryInfo()
	if err == nil {
		processGauge.WithLabelValues("mem").Set(float64(meminfo.RSS / 1024 / 1024))
	}
}
