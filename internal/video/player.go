package video

import "context"

//go:generate mockgen -destination=../mocks/player.go -package=mocks github.com/sandeepkv93/pomobubby/internal/video Player

// Player is the external music player. Load starts playback; Cue prepares the video
// paused.
type Player interface {
	Load(ctx context.Context, id string) error
	Cue(ctx context.Context, id string) error
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	SeekTo(ctx context.Context, seconds float64) error
	SetVolume(ctx context.Context, volume int) error
	SetLoop(ctx context.Context, loop bool) error
	Close() error
}

// NoopPlayer accepts every call and plays nothing.
type NoopPlayer struct{}

func (NoopPlayer) Load(context.Context, string) error    { return nil }
func (NoopPlayer) Cue(context.Context, string) error     { return nil }
func (NoopPlayer) Play(context.Context) error            { return nil }
func (NoopPlayer) Pause(context.Context) error           { return nil }
func (NoopPlayer) SeekTo(context.Context, float64) error { return nil }
func (NoopPlayer) SetVolume(context.Context, int) error  { return nil }
func (NoopPlayer) SetLoop(context.Context, bool) error   { return nil }
func (NoopPlayer) Close() error                          { return nil }
