package cmd

import (
	"os"

	hclog "github.com/hashicorp/go-hclog"
)

// traceLogger builds an hclog.Logger at Trace level writing to stderr, used
// by "run --trace" to surface the evaluator's Trace-level log lines.
func traceLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "emplode",
		Level:  hclog.Trace,
		Output: os.Stderr,
	})
}
