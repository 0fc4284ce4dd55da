package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/shopbot/sbp-runtime/sbp"
)

// stdoutDriver is a Driver that prints every submitted G-code segment to
// stdout and reports driver reads as zero, for running a program without a
// real machine attached.
type stdoutDriver struct {
	events chan sbp.StatusUpdate
}

func newStdoutDriver() *stdoutDriver {
	return &stdoutDriver{events: make(chan sbp.StatusUpdate)}
}

func (d *stdoutDriver) RunSegment(segment string) error {
	fmt.Println(segment)
	return nil
}

func (d *stdoutDriver) Get(ctx context.Context, key string) (float64, error) {
	return 0, nil
}

func (d *stdoutDriver) GetMany(ctx context.Context, keys []string) (map[string]float64, error) {
	out := make(map[string]float64, len(keys))
	for _, k := range keys {
		out[k] = 0
	}
	return out, nil
}

func (d *stdoutDriver) Set(ctx context.Context, key string, value float64) error {
	return nil
}

func (d *stdoutDriver) ExpectStateChange(ctx context.Context, states ...sbp.DriverState) (sbp.DriverState, error) {
	return sbp.StateStop, nil
}

func (d *stdoutDriver) Events() <-chan sbp.StatusUpdate {
	return d.events
}

func main() {
	if len(os.Args) <= 1 {
		log.Fatal("usage: sbprun <program.sbp> [...]")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	for _, path := range os.Args[1:] {
		prog, labels, err := sbp.LoadFile(path)
		if err != nil {
			logger.Error("load failed", "file", path, "err", err)
			continue
		}

		rt := sbp.NewRuntime(newStdoutDriver(), sbp.WithLogger(logger))
		if err := rt.Run(context.Background(), prog, labels); err != nil {
			logger.Error("run failed", "file", path, "err", err)
		}
	}
}
