package wall

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// ErrProfilerBusy is returned when a capture is running or on cooldown
var ErrProfilerBusy = errors.New("profiler busy")

// ErrProfilerStopped is returned by Capture after Stop
var ErrProfilerStopped = errors.New("profiler stopped")

// Profiler captures a CPU profile and an execution trace when the frame rate drops
type Profiler struct {
	mu          sync.Mutex
	wg          sync.WaitGroup
	isProfiling bool
	lastCapture time.Time
	started     time.Time
	stopped     bool
	stop        chan struct{}

	dir       string
	threshold float64
	cooldown  time.Duration
	duration  time.Duration
	warmup    time.Duration
	logger    *log.Logger
}

// NewProfiler creates a profiler writing to dir. It reports drops below threshold FPS.
func NewProfiler(dir string, threshold float64, logger *log.Logger) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profile dir: %w", err)
	}
	return &Profiler{
		started:   time.Now(),
		stop:      make(chan struct{}),
		dir:       dir,
		threshold: threshold,
		cooldown:  10 * time.Second,
		duration:  5 * time.Second,
		warmup:    3 * time.Second,
		logger:    logger,
	}, nil
}

// Observe is called once per tick with the current FPS
func (p *Profiler) Observe(fps float64) {
	if fps <= 0 || fps >= p.threshold || time.Since(p.started) < p.warmup {
		return
	}
	if err := p.Capture(fmt.Sprintf("fps%.0f", fps)); err == nil {
		p.logger.Warn("frame rate dropped, capturing profile", "fps", fps, "dir", p.dir)
	}
}

// Capture starts a background capture tagged with reason
func (p *Profiler) Capture(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return ErrProfilerStopped
	}
	if p.isProfiling || time.Since(p.lastCapture) < p.cooldown {
		return ErrProfilerBusy
	}
	p.isProfiling = true
	p.lastCapture = time.Now()

	base := fmt.Sprintf("fps-drop-%s-%s", p.lastCapture.Format("20060102-150405"), reason)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPU(base); err != nil {
				p.logger.Error("cpu profile failed", "err", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(base); err != nil {
				p.logger.Error("trace failed", "err", err)
			}
		}()
		wg.Wait()
	}()
	return nil
}

func (p *Profiler) captureCPU(base string) error {
	path := filepath.Join(p.dir, base+".cpu.prof")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer f.Close()

	if err := pprof.StartCPUProfile(f); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	p.sleep()
	pprof.StopCPUProfile()

	p.logger.Info("cpu profile saved", "path", path)
	return nil
}

func (p *Profiler) captureTrace(base string) error {
	path := filepath.Join(p.dir, base+".trace")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer f.Close()

	if err := trace.Start(f); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	p.sleep()
	trace.Stop()

	p.logger.Info("trace saved", "path", path)
	return nil
}

// sleep waits out the capture duration, or less if the profiler is stopped
func (p *Profiler) sleep() {
	timer := time.NewTimer(p.duration)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-p.stop:
	}
}

// IsProfiling reports whether a capture is in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

// Wait blocks until any running capture has been written
func (p *Profiler) Wait() {
	p.wg.Wait()
}

// Stop cuts a running capture short, waits for its files to be written and
// refuses further captures. Calling it again does nothing.
func (p *Profiler) Stop() {
	p.mu.Lock()
	if !p.stopped {
		p.stopped = true
		close(p.stop)
	}
	p.mu.Unlock()
	p.wg.Wait()
}
