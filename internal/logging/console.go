package logging

import (
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// ConsoleTitle is the title attached to every workflow command.
const ConsoleTitle = "ChkTeX Action"

// CommandLevel is a workflow command that creates an annotation.
type CommandLevel string

const (
	CommandNotice  CommandLevel = "notice"
	CommandWarning CommandLevel = "warning"
	CommandError   CommandLevel = "error"
)

// Location pins an annotation to a file line.
type Location struct {
	File string
	Line int
}

// Console writes GitHub Actions workflow commands. Outside Actions it
// falls back to the structured logger so local runs stay readable.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	logger  *log.Logger
	actions bool
	debug   bool
}

// NewConsole creates a Console. When actions is false every command is
// written through logger instead.
func NewConsole(out io.Writer, logger *log.Logger, actions, debug bool) *Console {
	if logger == nil {
		logger = Default()
	}
	return &Console{out: out, logger: logger, actions: actions, debug: debug}
}

// Notice emits a notice annotation.
func (c *Console) Notice(msg string) {
	c.Annotate(CommandNotice, nil, msg)
}

// Warning emits a warning annotation.
func (c *Console) Warning(msg string) {
	c.Annotate(CommandWarning, nil, msg)
}

// Error emits an error annotation.
func (c *Console) Error(msg string) {
	c.Annotate(CommandError, nil, msg)
}

// Debug emits a debug message. It is dropped unless debug is on.
func (c *Console) Debug(msg string) {
	if !c.debug {
		return
	}
	if !c.actions {
		c.logger.Debug(msg)
		return
	}
	c.write("debug", nil, msg)
}

// Annotate emits an annotation of the given level, optionally pinned to a file line.
func (c *Console) Annotate(level CommandLevel, loc *Location, msg string) {
	if !c.actions {
		c.logFallback(level, loc, msg)
		return
	}

	props := map[string]string{"title": ConsoleTitle}
	if loc != nil && loc.File != "" {
		props["file"] = loc.File
		if loc.Line > 0 {
			props["line"] = strconv.Itoa(loc.Line)
		}
	}
	c.write(string(level), props, msg)
}

func (c *Console) logFallback(level CommandLevel, loc *Location, msg string) {
	var keyvals []any
	if loc != nil && loc.File != "" {
		keyvals = append(keyvals, FieldPath, loc.File)
		if loc.Line > 0 {
			keyvals = append(keyvals, FieldLine, loc.Line)
		}
	}

	switch level {
	case CommandError:
		c.logger.Error(msg, keyvals...)
	case CommandWarning:
		c.logger.Warn(msg, keyvals...)
	default:
		c.logger.Info(msg, keyvals...)
	}
}

func (c *Console) write(command string, props map[string]string, msg string) {
	var builder strings.Builder
	builder.WriteString("::" + command)

	if len(props) > 0 {
		keys := make([]string, 0, len(props))
		for key := range props {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool { return propertyRank(keys[i]) < propertyRank(keys[j]) })

		builder.WriteString(" ")
		for i, key := range keys {
			if i > 0 {
				builder.WriteString(",")
			}
			builder.WriteString(key + "=" + EscapeProperty(props[key]))
		}
	}

	builder.WriteString("::" + EscapeData(msg) + "\n")

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := io.WriteString(c.out, builder.String()); err != nil {
		c.logger.Error("write workflow command", FieldError, err)
	}
}

func propertyRank(key string) int {
	switch key {
	case "file":
		return 0
	case "line":
		return 1
	default:
		return 2
	}
}

// EscapeData escapes a workflow command message.
func EscapeData(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}

// EscapeProperty escapes a workflow command property value.
func EscapeProperty(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C").Replace(s)
}
