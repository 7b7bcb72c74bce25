package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

type Message struct {
	Title string
	Body  string
}

//go:generate mockgen -destination=../mocks/notify.go -package=mocks github.com/sandeepkv93/pomobubby/internal/notify Notifier,Signaler

type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

type NoopNotifier struct{}

func (NoopNotifier) Send(context.Context, Message) error { return nil }

type runFunc func(ctx context.Context, name string, args ...string) error

// ExecNotifier shells out to notify-send on linux and osascript on darwin.
type ExecNotifier struct {
	goos string
	run  runFunc
}

func NewExecNotifier() *ExecNotifier {
	return &ExecNotifier{goos: runtime.GOOS, run: runCommand}
}

func (n *ExecNotifier) Send(ctx context.Context, msg Message) error {
	switch n.goos {
	case "linux":
		return n.run(ctx, "notify-send", msg.Title, msg.Body)
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(msg.Body), escapeAppleScript(msg.Title))
		return n.run(ctx, "osascript", "-e", script)
	default:
		return nil
	}
}

// Deliver sends msg only when permission has been granted. sent is false when the
// message was suppressed.
func Deliver(ctx context.Context, n Notifier, perm Permission, msg Message) (sent bool, err error) {
	if n == nil || perm != PermissionGranted {
		return false, nil
	}
	if err := n.Send(ctx, msg); err != nil {
		return false, err
	}
	return true, nil
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
