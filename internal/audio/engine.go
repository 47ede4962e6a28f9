package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
)

const (
	bufferDuration = 20 * time.Millisecond
	bytesPerFrame  = 4 // stereo int16
)

// Engine streams a beep mixer into a system audio tool through its stdin.
// When no backend is available the engine runs in silent mode and every
// call is a no-op.
type Engine struct {
	config *Config
	logger *log.Logger
	rate   beep.SampleRate

	backend *BackendConfig
	cmd     *exec.Cmd
	stdin   io.WriteCloser

	mu    sync.Mutex // guards mixer and music
	mixer *beep.Mixer
	music *beep.Ctrl

	running atomic.Bool
	silent  atomic.Bool

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewEngine creates an engine. A nil config uses DefaultConfig.
func NewEngine(cfg *Config, logger *log.Logger) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		config: cfg,
		logger: logger,
		rate:   beep.SampleRate(cfg.SampleRate),
		mixer:  &beep.Mixer{},
		stop:   make(chan struct{}),
	}
}

// Start launches the audio backend and the pump goroutine.
// A missing or failing backend is not an error: the engine goes silent.
func (e *Engine) Start() error {
	if e.running.Load() {
		return fmt.Errorf("audio: engine already running")
	}

	if !e.config.Enabled {
		e.goSilent("disabled by config")
		return nil
	}

	backend, err := DetectBackend(e.config.SampleRate)
	if err != nil {
		e.goSilent(err.Error())
		return nil
	}

	cmd := exec.Command(backend.Path, backend.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		e.goSilent(err.Error())
		return nil
	}
	if err := cmd.Start(); err != nil {
		e.goSilent(err.Error())
		return nil
	}

	e.backend = backend
	e.cmd = cmd
	e.stdin = stdin
	e.running.Store(true)
	e.logger.Debug("audio backend started", "backend", backend.Name, "rate", e.config.SampleRate)

	e.wg.Add(2)
	go e.pump()
	go e.monitor()
	return nil
}

func (e *Engine) goSilent(reason string) {
	e.silent.Store(true)
	e.running.Store(true)
	e.logger.Debug("audio running silent", "reason", reason)
}

// pump pulls one buffer from the mixer per tick and writes it as s16le.
func (e *Engine) pump() {
	defer e.wg.Done()

	ticker := time.NewTicker(bufferDuration)
	defer ticker.Stop()

	samples := make([][2]float64, e.rate.N(bufferDuration))
	out := make([]byte, len(samples)*bytesPerFrame)

	for {
		select {
		case <-e.stop:
			return
		case <-ticker.C:
			e.fill(samples)
			encodePCM(samples, out)
			if _, err := e.stdin.Write(out); err != nil {
				e.logger.Debug("audio write failed", "err", fmt.Errorf("%w: %v", ErrPipeClosed, err))
				e.silent.Store(true)
				return
			}
		}
	}
}

// fill mixes the next len(samples) frames, padding with silence.
func (e *Engine) fill(samples [][2]float64) {
	for i := range samples {
		samples[i] = [2]float64{}
	}
	e.mu.Lock()
	n, _ := e.mixer.Stream(samples)
	e.mu.Unlock()
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
}

// monitor waits for the backend process and drops to silent mode if it exits early.
func (e *Engine) monitor() {
	defer e.wg.Done()
	err := e.cmd.Wait()
	if e.running.Load() && !e.silent.Load() {
		e.logger.Debug("audio backend exited", "backend", e.backend.Name, "err", err)
		e.silent.Store(true)
	}
}

// Close stops the pump and the backend process.
func (e *Engine) Close() error {
	if !e.running.CompareAndSwap(true, false) {
		return nil
	}
	close(e.stop)

	if e.stdin != nil {
		_ = e.stdin.Close()
	}
	if e.cmd != nil && e.cmd.Process != nil {
		_ = e.cmd.Process.Kill()
	}
	e.wg.Wait()

	e.mu.Lock()
	e.mixer.Clear()
	e.music = nil
	e.mu.Unlock()
	return nil
}

// Play queues a one-shot effect. It reports whether the sound was queued.
func (e *Engine) Play(s Sound) bool {
	if !e.Active() {
		return false
	}
	streamer := GetSoundEffect(s, e.config)
	if streamer == nil {
		return false
	}
	e.mu.Lock()
	e.mixer.Add(streamer)
	e.mu.Unlock()
	return true
}

// StartMusic starts the background loop, or resumes it if paused.
func (e *Engine) StartMusic() {
	if !e.Active() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.music != nil {
		e.music.Paused = false
		return
	}
	e.music = &beep.Ctrl{Streamer: CreateMusic(e.config)}
	e.mixer.Add(e.music)
}

// PauseMusic pauses or resumes the background loop in place.
func (e *Engine) PauseMusic(paused bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.music != nil {
		e.music.Paused = paused
	}
}

// StopMusic ends the background loop. The mixer drops it on the next pull.
func (e *Engine) StopMusic() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.music != nil {
		e.music.Streamer = nil
		e.music = nil
	}
}

// Active reports whether sounds are actually reaching a backend.
func (e *Engine) Active() bool {
	return e.running.Load() && !e.silent.Load()
}

// Silent reports whether the engine fell back to silent mode.
func (e *Engine) Silent() bool {
	return e.silent.Load()
}

// Backend returns the name of the backend in use, or "" in silent mode.
func (e *Engine) Backend() string {
	if e.backend == nil || e.silent.Load() {
		return ""
	}
	return e.backend.Name
}

// encodePCM converts float frames to interleaved int16 little-endian bytes.
// Values outside [-1, 1] are clipped.
func encodePCM(in [][2]float64, out []byte) {
	for i, frame := range in {
		for c := 0; c < 2; c++ {
			v := frame[c]
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			binary.LittleEndian.PutUint16(out[i*bytesPerFrame+c*2:], uint16(int16(v*32767)))
		}
	}
}
