package metrics

import (
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registry = prometheus.NewRegistry()

	childRunning = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "avicbot",
		Name:      "child_running",
		Help:      "Whether the named bot process is currently running (1=running, 0=stopped).",
	}, []string{"bot"})

	childExits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "avicbot",
		Name:      "child_exits_total",
		Help:      "Total number of observed bot process exits, labelled by exit code.",
	}, []string{"bot", "code"})

	buildInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "avicbot",
		Name:      "build_info",
		Help:      "Build metadata for the running avicbot binary.",
	}, []string{"go_version", "vcs", "vcs_revision", "vcs_time", "vcs_modified"})

	buildInfoOnce sync.Once
)

func init() {
	registry.MustRegister(childRunning, childExits, buildInfo)
}

// Registry returns the Prometheus registry containing all avicbot metrics.
func Registry() *prometheus.Registry {
	return registry
}

// SetChildRunning records whether the named bot process is alive.
func SetChildRunning(bot string, running bool) {
	if bot == "" {
		return
	}
	value := 0.0
	if running {
		value = 1.0
	}
	childRunning.WithLabelValues(bot).Set(value)
}

// ObserveChildExit counts an observed bot exit under its exit code.
func ObserveChildExit(bot, code string) {
	if bot == "" {
		return
	}
	childExits.WithLabelValues(bot, code).Inc()
}

// EmitBuildInfo publishes build metadata about the running binary.
func EmitBuildInfo() {
	buildInfoOnce.Do(func() {
		labels := prometheus.Labels{
			"go_version":   runtime.Version(),
			"vcs":          "",
			"vcs_revision": "",
			"vcs_time":     "",
			"vcs_modified": "",
		}
		if info, ok := debug.ReadBuildInfo(); ok {
			if info.GoVersion != "" {
				labels["go_version"] = info.GoVersion
			}
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs":
					labels["vcs"] = setting.Value
				case "vcs.revision":
					labels["vcs_revision"] = setting.Value
				case "vcs.time":
					labels["vcs_time"] = setting.Value
				case "vcs.modified":
					labels["vcs_modified"] = setting.Value
				}
			}
		}
		buildInfo.With(labels).Set(1)
	})
}
