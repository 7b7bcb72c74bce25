package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeMove    Type = "move"
	TypeDelete  Type = "delete"
	TypeMusic   Type = "music"
	TypeTheme   Type = "theme"
	TypeProfile Type = "profile"
	TypeReset   Type = "reset"
	TypeSkip    Type = "skip"
	TypeVolume  Type = "volume"
)

// Names lists the palette commands in the order they are suggested.
var Names = []Type{TypeAdd, TypeMove, TypeDelete, TypeMusic, TypeVolume, TypeTheme, TypeProfile, TypeReset, TypeSkip}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AddArgs carries the title and optional description, separated by "|".
type AddArgs struct {
	Title       string
	Description string
}

type MoveArgs struct {
	Target string
	Status string
}

type DeleteArgs struct {
	Target string
}

type MusicArgs struct {
	URL string
}

type ThemeArgs struct {
	Theme string
}

type ProfileArgs struct {
	Profile string
}

type VolumeArgs struct {
	Level int
}

type Command struct {
	Type    Type
	Raw     string
	Add     *AddArgs
	Move    *MoveArgs
	Delete  *DeleteArgs
	Music   *MusicArgs
	Theme   *ThemeArgs
	Profile *ProfileArgs
	Volume  *VolumeArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(raw, parts[0]))

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, rest)
	case TypeMove:
		return parseMove(input, args)
	case TypeDelete, "rm":
		return parseDelete(input, rest)
	case TypeMusic:
		return parseMusic(input, args)
	case TypeTheme:
		return parseTheme(input, args)
	case TypeProfile, "dev":
		if head == "dev" {
			return Command{Type: TypeProfile, Raw: input, Profile: &ProfileArgs{Profile: "toggle"}}, nil
		}
		return parseProfile(input, args)
	case TypeVolume, "vol":
		return parseVolume(input, args)
	case TypeReset:
		return Command{Type: TypeReset, Raw: input}, nil
	case TypeSkip, "next":
		return Command{Type: TypeSkip, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw, rest string) (Command, error) {
	title, desc, _ := strings.Cut(rest, "|")
	title = strings.TrimSpace(title)
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title, Description: strings.TrimSpace(desc)}}, nil
}

func parseMove(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "move requires a task and a column"}
	}
	status := strings.ToLower(args[len(args)-1])
	switch status {
	case "todo", "doing", "done":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown column: %s", status)}
	}
	target := strings.Join(args[:len(args)-1], " ")
	return Command{Type: TypeMove, Raw: raw, Move: &MoveArgs{Target: target, Status: status}}, nil
}

func parseDelete(raw, rest string) (Command, error) {
	if rest == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "delete requires a task"}
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &DeleteArgs{Target: rest}}, nil
}

func parseMusic(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "music requires a single url"}
	}
	return Command{Type: TypeMusic, Raw: raw, Music: &MusicArgs{URL: args[0]}}, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	theme := "toggle"
	if len(args) > 0 {
		theme = strings.ToLower(args[0])
	}
	switch theme {
	case "dark", "light", "toggle":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "theme must be dark, light or toggle"}
	}
	return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Theme: theme}}, nil
}

func parseProfile(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{Type: TypeProfile, Raw: raw, Profile: &ProfileArgs{Profile: "toggle"}}, nil
	}
	return Command{Type: TypeProfile, Raw: raw, Profile: &ProfileArgs{Profile: strings.ToLower(args[0])}}, nil
}

func parseVolume(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "volume requires a level"}
	}
	level, err := strconv.Atoi(strings.TrimSuffix(args[0], "%"))
	if err != nil || level < 0 || level > 100 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "volume must be 0-100"}
	}
	return Command{Type: TypeVolume, Raw: raw, Volume: &VolumeArgs{Level: level}}, nil
}
