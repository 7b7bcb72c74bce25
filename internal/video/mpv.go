package video

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var ErrPlayerClosed = errors.New("video: player closed")

type MPVOptions struct {
	Binary string
	Socket string
	// Launch starts mpv on first use; when false the player attaches to an mpv already
	// listening on Socket.
	Launch       bool
	StartTimeout time.Duration
}

// MPVPlayer drives mpv through its JSON IPC socket.
type MPVPlayer struct {
	opts MPVOptions
	log  zerolog.Logger

	mu      sync.Mutex
	cmd     *exec.Cmd
	conn    net.Conn
	reader  *bufio.Reader
	nextID  int64
	pending string
	// pendingPaused is the pause state the pending load was requested with.
	pendingPaused bool
	closed        bool
}

func NewMPVPlayer(opts MPVOptions, log zerolog.Logger) *MPVPlayer {
	if opts.Binary == "" {
		opts.Binary = "mpv"
	}
	if opts.StartTimeout <= 0 {
		opts.StartTimeout = 5 * time.Second
	}
	return &MPVPlayer{opts: opts, log: log.With().Str("component", "mpv").Logger()}
}

type ipcRequest struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

type ipcResponse struct {
	RequestID int64           `json:"request_id"`
	Error     string          `json:"error"`
	Data      json.RawMessage `json:"data"`
	Event     string          `json:"event"`
}

func (p *MPVPlayer) Load(ctx context.Context, id string) error {
	return p.load(ctx, id, false)
}

func (p *MPVPlayer) Cue(ctx context.Context, id string) error {
	return p.load(ctx, id, true)
}

func (p *MPVPlayer) load(ctx context.Context, id string, paused bool) error {
	if !IsValidID(id) {
		return ErrNoMatch
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending, p.pendingPaused = id, paused
	if err := p.ensureLocked(ctx); err != nil {
		return err
	}
	return p.flushPendingLocked(ctx)
}

// flushPendingLocked sends a load that could not reach mpv earlier. Called on every
// connected command so the last requested track is never lost.
func (p *MPVPlayer) flushPendingLocked(ctx context.Context) error {
	if p.pending == "" {
		return nil
	}
	if _, err := p.commandLocked(ctx, "set_property", "pause", p.pendingPaused); err != nil {
		return err
	}
	if _, err := p.commandLocked(ctx, "loadfile", WatchURL(p.pending), "replace"); err != nil {
		return err
	}
	p.log.Debug().Str("video_id", p.pending).Msg("track loaded")
	p.pending = ""
	return nil
}

func (p *MPVPlayer) Play(ctx context.Context) error {
	return p.run(ctx, "set_property", "pause", false)
}

func (p *MPVPlayer) Pause(ctx context.Context) error {
	return p.run(ctx, "set_property", "pause", true)
}

func (p *MPVPlayer) SeekTo(ctx context.Context, seconds float64) error {
	if seconds < 0 {
		seconds = 0
	}
	return p.run(ctx, "seek", seconds, "absolute")
}

func (p *MPVPlayer) SetVolume(ctx context.Context, volume int) error {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	return p.run(ctx, "set_property", "volume", volume)
}

func (p *MPVPlayer) SetLoop(ctx context.Context, loop bool) error {
	value := "no"
	if loop {
		value = "inf"
	}
	return p.run(ctx, "set_property", "loop-file", value)
}

// Pending is the id whose load has not yet reached mpv.
func (p *MPVPlayer) Pending() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

func (p *MPVPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	var errs []error
	if p.conn != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		if p.cmd != nil {
			_, _ = p.commandLocked(ctx, "quit")
		}
		cancel()
		errs = append(errs, p.conn.Close())
		p.conn = nil
	}
	if p.cmd != nil && p.cmd.Process != nil {
		done := make(chan error, 1)
		go func() { done <- p.cmd.Wait() }()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			errs = append(errs, p.cmd.Process.Kill())
		}
		if p.opts.Socket != "" {
			_ = os.Remove(p.opts.Socket)
		}
	}
	return errors.Join(errs...)
}

func (p *MPVPlayer) run(ctx context.Context, args ...any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureLocked(ctx); err != nil {
		return err
	}
	if err := p.flushPendingLocked(ctx); err != nil {
		return err
	}
	_, err := p.commandLocked(ctx, args...)
	return err
}

func (p *MPVPlayer) ensureLocked(ctx context.Context) error {
	if p.closed {
		return ErrPlayerClosed
	}
	if p.conn != nil {
		return nil
	}
	if p.opts.Socket == "" {
		return errors.New("video: mpv socket path not configured")
	}
	if p.opts.Launch && p.cmd == nil {
		_ = os.Remove(p.opts.Socket)
		cmd := exec.Command(p.opts.Binary,
			"--idle=yes",
			"--no-video",
			"--no-terminal",
			"--input-ipc-server="+p.opts.Socket,
		)
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("start %s: %w", p.opts.Binary, err)
		}
		p.cmd = cmd
		p.log.Info().Int("pid", cmd.Process.Pid).Str("socket", p.opts.Socket).Msg("mpv started")
	}

	deadline := time.Now().Add(p.opts.StartTimeout)
	var dialer net.Dialer
	for {
		conn, err := dialer.DialContext(ctx, "unix", p.opts.Socket)
		if err == nil {
			p.conn = conn
			p.reader = bufio.NewReader(conn)
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("connect to mpv at %s: %w", p.opts.Socket, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func (p *MPVPlayer) commandLocked(ctx context.Context, args ...any) (json.RawMessage, error) {
	p.nextID++
	req := ipcRequest{Command: args, RequestID: p.nextID}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = p.conn.SetDeadline(deadline)
	} else {
		_ = p.conn.SetDeadline(time.Now().Add(3 * time.Second))
	}
	if _, err := p.conn.Write(append(payload, '\n')); err != nil {
		p.dropConnLocked()
		return nil, fmt.Errorf("mpv write: %w", err)
	}
	for {
		line, err := p.reader.ReadBytes('\n')
		if err != nil {
			p.dropConnLocked()
			return nil, fmt.Errorf("mpv read: %w", err)
		}
		var resp ipcResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			p.log.Debug().Err(err).Bytes("line", line).Msg("skipping unparseable mpv line")
			continue
		}
		if resp.Event != "" || resp.RequestID != req.RequestID {
			continue
		}
		if resp.Error != "" && resp.Error != "success" {
			return nil, fmt.Errorf("mpv %v: %s", args[0], resp.Error)
		}
		return resp.Data, nil
	}
}

func (p *MPVPlayer) dropConnLocked() {
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn = nil
	p.reader = nil
}
