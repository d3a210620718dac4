package services

import (
	"fmt"
	"strconv"
	"strings"

	"workshop-lab/domain"
	apperrors "workshop-lab/errors"
)

// ParseCommand turns one REPL line into a typed command. It never
// touches session state; phase checks happen in the engine.
func ParseCommand(line string) (domain.Command, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return nil, fmt.Errorf("%w: commands start with '/'", apperrors.ErrUnknownCommand)
	}

	parts := strings.Fields(line[1:])
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: empty command", apperrors.ErrUnknownCommand)
	}
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "new":
		if len(args) == 0 {
			return nil, usage("/new <name>")
		}
		return domain.NewSessionCommand{SessionName: strings.Join(args, " ")}, nil
	case "load":
		if len(args) != 1 {
			return nil, usage("/load <file>")
		}
		return domain.LoadConfigCommand{File: args[0]}, nil
	case "list":
		return domain.ListConfigsCommand{}, nil
	case "remove":
		if len(args) != 1 {
			return nil, usage("/remove <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, usage("/remove <n>")
		}
		return domain.RemoveConfigCommand{Index: n}, nil
	case "show":
		return domain.ShowCommand{}, nil
	case "start":
		return domain.StartCommand{}, nil
	case "say":
		if len(args) == 0 {
			return nil, usage("/say <text>")
		}
		return domain.SayCommand{Content: strings.Join(args, " ")}, nil
	case "next":
		return parseNext(args)
	case "endsession":
		return domain.EndSessionCommand{}, nil
	case "view_transcript":
		return domain.ViewTranscriptCommand{}, nil
	case "util":
		return parseUtil(args)
	default:
		return nil, fmt.Errorf("%w: /%s", apperrors.ErrUnknownCommand, cmd)
	}
}

// parseNext accepts "/next", "/next 3" (multiple turns) and
// "/next ali" (nomination by name prefix).
func parseNext(args []string) (domain.Command, error) {
	next := domain.NextCommand{Turns: 1}
	if len(args) == 0 {
		return next, nil
	}
	if n, err := strconv.Atoi(args[0]); err == nil {
		if n < 1 {
			return nil, usage("/next [n|name]")
		}
		next.Turns = n
		return next, nil
	}
	next.Nominee = args[0]
	return next, nil
}

func parseUtil(args []string) (domain.Command, error) {
	if len(args) == 0 {
		return nil, usage("/util <summarize|search|deactivate> [parameters]")
	}
	action, params := args[0], args[1:]
	switch action {
	case "summarize":
		return domain.SummarizeCommand{}, nil
	case "search":
		if len(params) == 0 {
			return nil, usage("/util search <terms>")
		}
		return domain.SearchCommand{Terms: strings.Join(params, " ")}, nil
	case "deactivate":
		if len(params) != 1 {
			return nil, usage("/util deactivate <name>")
		}
		return domain.DeactivateCommand{Participant: params[0]}, nil
	default:
		return nil, fmt.Errorf("%w: util action %q", apperrors.ErrUnknownCommand, action)
	}
}

func usage(text string) error {
	return fmt.Errorf("%w: usage: %s", apperrors.ErrUnknownCommand, text)
}
