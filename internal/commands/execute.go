package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add     func(AddArgs) (Result, error)
	Move    func(MoveArgs) (Result, error)
	Delete  func(DeleteArgs) (Result, error)
	Music   func(MusicArgs) (Result, error)
	Theme   func(ThemeArgs) (Result, error)
	Profile func(ProfileArgs) (Result, error)
	Volume  func(VolumeArgs) (Result, error)
	Reset   func() (Result, error)
	Skip    func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeMove:
		if handlers.Move == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Move(*cmd.Move)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Delete(*cmd.Delete)
	case TypeMusic:
		if handlers.Music == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Music(*cmd.Music)
	case TypeTheme:
		if handlers.Theme == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Theme(*cmd.Theme)
	case TypeProfile:
		if handlers.Profile == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Profile(*cmd.Profile)
	case TypeVolume:
		if handlers.Volume == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Volume(*cmd.Volume)
	case TypeReset:
		if handlers.Reset == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Reset()
	case TypeSkip:
		if handlers.Skip == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Skip()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
