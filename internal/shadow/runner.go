// internal/shadow/runner.go
package shadow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tamzrod/edal/internal/edal"
	"github.com/tamzrod/edal/internal/metrics"
	"github.com/tamzrod/edal/internal/status"
)

// ErrStopped is returned by Do once the runner has exited.
var ErrStopped = errors.New("shadow: runner stopped")

// Pusher delivers a status snapshot and chain image to the peer.
type Pusher interface {
	Push(s status.Snapshot, image []byte) error
}

type Config struct {
	Interval time.Duration
}

// Runner is the single owner of one chain. Every access goes through
// the Run goroutine; the chain itself does no locking.
type Runner struct {
	cfg     Config
	chain   *edal.Chain
	backup  *edal.Chain
	mirror  Pusher // nil when the mirror is disabled
	metrics *metrics.Metrics
	log     *slog.Logger

	reqs    chan request
	stopped chan struct{}

	snap  status.Snapshot
	image []byte // last image that passed the sweep
}

type request struct {
	fn   func(*edal.Chain) error
	done chan error
}

// New wires a runner. mirror and m may be nil.
func New(cfg Config, chain *edal.Chain, mirror Pusher, m *metrics.Metrics, log *slog.Logger) (*Runner, error) {
	if chain == nil {
		return nil, fmt.Errorf("shadow: %w", edal.ErrNullBlock)
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("shadow: interval must be > 0")
	}
	if log == nil {
		log = chain.Logger()
	}

	backup, err := chain.NewBackup()
	if err != nil {
		return nil, fmt.Errorf("shadow: backup: %w", err)
	}

	return &Runner{
		cfg:     cfg,
		chain:   chain,
		backup:  backup,
		mirror:  mirror,
		metrics: m,
		log:     log,
		reqs:    make(chan request),
		stopped: make(chan struct{}),
		snap:    status.Snapshot{Health: status.HealthUnknown},
	}, nil
}

// Do runs fn on the owner goroutine and returns its result.
// fn must not retain the chain.
func (r *Runner) Do(ctx context.Context, fn func(*edal.Chain) error) error {
	req := request{fn: fn, done: make(chan error, 1)}

	select {
	case r.reqs <- req:
	case <-r.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns the snapshot last delivered (or attempted) to the mirror.
func (r *Runner) Status(ctx context.Context) (status.Snapshot, error) {
	var s status.Snapshot
	err := r.Do(ctx, func(*edal.Chain) error {
		s = r.snap
		return nil
	})
	return s, err
}

// LastGood returns a copy of the most recent backup.
func (r *Runner) LastGood(ctx context.Context) (*edal.Chain, error) {
	var c *edal.Chain
	err := r.Do(ctx, func(*edal.Chain) error {
		c = r.backup.Clone()
		return nil
	})
	return c, err
}

// Run owns the chain until ctx is done.
// One tick per interval, one seconds tick while unhealthy. No overlap.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.stopped)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	// Full state on start.
	if err := r.tick(); err != nil {
		r.log.Warn("shadow tick failed on start", "err", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case req := <-r.reqs:
			req.done <- req.fn(r.chain)

		case <-ticker.C:
			if err := r.tick(); err != nil {
				r.log.Warn("shadow tick failed", "err", err)
			}

		case <-secTicker.C:
			if !r.unhealthy() {
				continue
			}
			if r.snap.SecondsInError < status.SecondsInErrorMax {
				r.snap.SecondsInError++
				if err := r.push(); err != nil {
					r.log.Warn("shadow seconds tick push failed", "err", err)
				}
			}
		}
	}
}

// ------------------------------------------------------------
// TICK
// ------------------------------------------------------------

// tick sweeps, backs up, and delivers one cycle.
func (r *Runner) tick() error {
	pending, sweepErr := r.sweep()
	r.metrics.SetWritePending(pending)

	switch {
	case sweepErr != nil:
		r.snap.Health = status.HealthError
		r.snap.LastErrorCode = errorCode(sweepErr)
	case pending:
		r.snap.Health = status.HealthWritePending
		r.snap.LastErrorCode = 0
		r.snap.SecondsInError = 0
	default:
		r.snap.Health = status.HealthOK
		r.snap.LastErrorCode = 0
		r.snap.SecondsInError = 0
	}

	if gen, err := r.chain.GenerationCount(); err == nil {
		r.snap.Generation = gen
	}
	if sc, err := r.chain.OverallStateChangeCount(); err == nil {
		r.snap.StateChanges = uint16(sc)
	}

	pushErr := r.push()

	var metricsErr error
	if sweepErr == nil {
		metricsErr = r.metrics.Update(r.chain)
	}

	return errors.Join(sweepErr, pushErr, metricsErr)
}

// sweep scans for write data, refreshes the backup and encodes the image.
// The cached image is only replaced when everything succeeded.
func (r *Runner) sweep() (bool, error) {
	pending, err := r.chain.CheckForWriteData()
	if err != nil {
		return pending, fmt.Errorf("write data scan: %w", err)
	}

	// the chain grew or shrank since the last tick
	if r.backup.Len() != r.chain.Len() {
		b, err := r.chain.NewBackup()
		if err != nil {
			return pending, fmt.Errorf("backup resize: %w", err)
		}
		r.backup = b
		r.log.Info("shadow backup resized", "blocks", r.chain.Len())
	}
	if err := r.chain.Backup(r.backup); err != nil {
		return pending, fmt.Errorf("backup: %w", err)
	}

	img, err := r.chain.Encode()
	if err != nil {
		return pending, fmt.Errorf("encode: %w", err)
	}
	r.image = img
	return pending, nil
}

func (r *Runner) push() error {
	if r.mirror == nil {
		return nil
	}
	err := r.mirror.Push(r.snap, r.image)
	r.metrics.ObservePush(err)
	if err != nil {
		// The peer keeps the older state; report it once the link is back.
		r.snap.Health = status.HealthStale
		return err
	}
	return nil
}

func (r *Runner) unhealthy() bool {
	return r.snap.Health != status.HealthOK && r.snap.Health != status.HealthWritePending
}

// errorCode extracts a best-effort uint16 code from an error without assuming concrete types.
// If the error does not expose a code, returns the generic EDAL code.
func errorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	type coder interface{ Code() uint16 }

	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return edal.StatusError.Code()
}
