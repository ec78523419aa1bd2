package cliconfig

import (
	"fmt"

	"github.com/spf13/pflag"
)

// FlagPaths maps each settings flag to the Config property it sets.
var FlagPaths = map[string]string{
	"node-home":       "nodeHome",
	"node-id":         "nodeID",
	"chain-id":        "chainID",
	"wal-dir":         "walDir",
	"state-dir":       "stateDir",
	"service-url":     "service.url",
	"auth-key":        "service.authKey",
	"timeout":         "service.timeout",
	"poll":            "interval.poll",
	"send-interval":   "interval.send",
	"hard-interval":   "interval.hard",
	"max-batch-bytes": "batch.maxBytes",
	"gating":          "gating.enabled",
	"cpu-threshold":   "gating.cpuThreshold",
	"net-threshold":   "gating.netThreshold",
	"iface":           "gating.iface",
	"iface-speed":     "gating.ifaceSpeedMbps",
	"verify":          "verify",
	"meta":            "meta",
	"once":            "once",
}

// RegisterFlags adds a flag for every setting to fs. Defaults are shown for
// help only: a flag counts as a parameter once it is set on the command line.
func RegisterFlags(fs *pflag.FlagSet) {
	cfg := DefaultConfig()

	fs.String("node-home", "", "application home directory")
	fs.String("node-id", cfg.NodeID, "node ID (defaults to the one in node_key.json)")
	fs.String("chain-id", "", "chain ID (defaults to the one in genesis.json)")
	fs.String("wal-dir", "", "data directory (defaults to a path under node-home)")
	fs.String("state-dir", "", "state directory (defaults to wal-dir)")

	fs.String("service-url", cfg.Service.URL(), fmt.Sprintf("base service URL (defaults to %s)", DefaultServiceURL))
	fs.String("auth-key", "", "API key for authentication")
	fs.Duration("timeout", cfg.Service.Timeout, "service request timeout")

	fs.Duration("poll", cfg.Interval.Poll, "poll interval when idle")
	fs.Duration("send-interval", cfg.Interval.Send, "soft send interval")
	fs.Duration("hard-interval", cfg.Interval.Hard, "hard send interval (override gating)")
	fs.Int("max-batch-bytes", cfg.Batch.MaxBytes, "maximum bytes per batch")

	fs.Bool("gating", cfg.Gating.Enabled, "delay sends while the host is busy")
	fs.Float64("cpu-threshold", cfg.Gating.CPUThreshold, "max CPU usage fraction before delaying send")
	fs.Float64("net-threshold", cfg.Gating.NetThreshold, "max network usage fraction before delaying send")
	fs.String("iface", "", "network interface to monitor (optional)")
	fs.Int("iface-speed", cfg.Gating.IfaceSpeedMbps, "interface speed in Mbps (used for utilization)")

	fs.Bool("verify", false, "verify data while reading (debug)")
	fs.Bool("meta", false, "print metadata to stderr (debug)")
	fs.Bool("once", false, "run once and exit")
}
