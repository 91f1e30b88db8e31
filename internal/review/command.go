package review

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CommandKind is the kind of a review Command.
type CommandKind int

const (
	CommandAccept CommandKind = iota + 1
	CommandReject
	CommandUndo
	CommandAcceptAll
	CommandRejectAll
)

// Command is one user-issued review action. SegmentID is only meaningful for CommandAccept and CommandReject.
type Command struct {
	Kind      CommandKind
	SegmentID int
}

// String returns c in the short script form accepted by ParseCommands (ex: "a3", "u").
func (c Command) String() string {
	switch c.Kind {
	case CommandAccept:
		return "a" + strconv.Itoa(c.SegmentID)
	case CommandReject:
		return "r" + strconv.Itoa(c.SegmentID)
	case CommandUndo:
		return "u"
	case CommandAcceptAll:
		return "A"
	case CommandRejectAll:
		return "R"
	default:
		return fmt.Sprintf("Command(%d)", int(c.Kind))
	}
}

// ParseCommands parses a command script. Commands are separated by whitespace and/or commas. Each command is one of:
//   - "a3", "accept:3": accept segment 3
//   - "r3", "reject:3": reject segment 3
//   - "u", "undo": undo the last decision
//   - "A", "accept-all": accept every pending segment
//   - "R", "reject-all": reject every pending segment
//
// Single-letter forms are case-sensitive; long forms are not.
func ParseCommands(script string) ([]Command, error) {
	fields := strings.FieldsFunc(script, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	cmds := make([]Command, 0, len(fields))
	for i, f := range fields {
		c, err := ParseCommand(f)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i+1, err)
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}

// ParseCommand parses a single command token. See ParseCommands for the syntax.
func ParseCommand(tok string) (Command, error) {
	switch tok {
	case "u":
		return Command{Kind: CommandUndo}, nil
	case "A":
		return Command{Kind: CommandAcceptAll}, nil
	case "R":
		return Command{Kind: CommandRejectAll}, nil
	}

	lower := strings.ToLower(tok)
	switch lower {
	case "undo":
		return Command{Kind: CommandUndo}, nil
	case "accept-all":
		return Command{Kind: CommandAcceptAll}, nil
	case "reject-all":
		return Command{Kind: CommandRejectAll}, nil
	}

	var kind CommandKind
	var num string
	switch {
	case strings.HasPrefix(lower, "accept:"):
		kind, num = CommandAccept, lower[len("accept:"):]
	case strings.HasPrefix(lower, "reject:"):
		kind, num = CommandReject, lower[len("reject:"):]
	case strings.HasPrefix(tok, "a"):
		kind, num = CommandAccept, tok[1:]
	case strings.HasPrefix(tok, "r"):
		kind, num = CommandReject, tok[1:]
	default:
		return Command{}, fmt.Errorf("%q: %w", tok, ErrInvalidCommand)
	}

	id, err := strconv.Atoi(num)
	if err != nil || id < 1 {
		return Command{}, fmt.Errorf("%q: segment id must be a positive integer: %w", tok, ErrInvalidCommand)
	}
	return Command{Kind: kind, SegmentID: id}, nil
}

// Do applies c on behalf of a UI. Commands that have no effect in the current state (deciding an already decided segment, undoing with an empty history, or
// bulk-deciding with nothing pending) are absorbed: Do returns changed=false and a nil error. Unknown segment IDs and a missing Document are still errors.
func (s *Session) Do(c Command) (changed bool, err error) {
	switch c.Kind {
	case CommandAccept, CommandReject:
		if c.Kind == CommandAccept {
			err = s.Accept(c.SegmentID)
		} else {
			err = s.Reject(c.SegmentID)
		}
		if errors.Is(err, ErrInvalidTransition) {
			return false, nil
		}
		return err == nil, err
	case CommandUndo:
		_, ok := s.Undo()
		return ok, nil
	case CommandAcceptAll:
		if s.doc == nil {
			return false, ErrNoDocument
		}
		return s.AcceptAll() > 0, nil
	case CommandRejectAll:
		if s.doc == nil {
			return false, ErrNoDocument
		}
		return s.RejectAll() > 0, nil
	default:
		return false, fmt.Errorf("%s: %w", c, ErrInvalidCommand)
	}
}

// DoAll applies cmds in order via Do, stopping at the first error. It returns how many commands changed the session.
func (s *Session) DoAll(cmds []Command) (int, error) {
	n := 0
	for _, c := range cmds {
		changed, err := s.Do(c)
		if err != nil {
			return n, fmt.Errorf("%s: %w", c, err)
		}
		if changed {
			n++
		}
	}
	return n, nil
}
