package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/roach88/lexibot/internal/lexfile"
)

// Request is one inbound chat command.
type Request struct {
	ID      string   // invocation ID, assigned by Dispatch
	Command string   // command name or alias, lowercased by Dispatch
	Args    []string // remaining words of the message
	Author  string   // who issued the command
	Channel string   // where it was issued
}

// Status classifies a response for journaling and JSON output.
type Status string

const (
	StatusOK       Status = "ok"
	StatusNotFound Status = "not_found"
	StatusExists   Status = "exists"
	StatusHelp     Status = "help"
	StatusError    Status = "error"
)

// Response is the reply to one request.
//
// Flush, when non-nil, is the future for the persistence write the
// handler triggered. Callers that need durability before replying (the
// one-shot CLI commands) wait on it; the serve loop lets it complete in
// the background.
type Response struct {
	Status  Status
	Message string
	Flush   *lexfile.FlushResult
}

// HandlerFunc processes one request.
type HandlerFunc func(ctx context.Context, req Request) Response

// Command is a registered bot command.
type Command struct {
	Name    string
	Aliases []string
	Help    string
	Handler HandlerFunc
}

// Recorder journals dispatched invocations and their outcomes.
// Implemented by the journal package; nil disables journaling.
type Recorder interface {
	RecordInvocation(ctx context.Context, id, command string, args []string, author string, seq int64) error
	RecordOutcome(ctx context.Context, invocationID string, status, message string, seq int64) error
}

// Registry maps command names to handlers and dispatches requests.
//
// Registration happens once at startup; Dispatch may then be called from
// any goroutine. Handler serialization is the store's concern, not the
// registry's.
type Registry struct {
	commands map[string]*Command // name and every alias
	order    []string            // declaration order, for help output
	idgen    IDGenerator
	recorder Recorder
	logger   *slog.Logger
	seq      atomic.Int64 // logical clock for journal ordering
}

// NewRegistry creates an empty registry. A nil idgen defaults to UUIDv7;
// a nil recorder disables journaling; a nil logger defaults to
// slog.Default().
func NewRegistry(idgen IDGenerator, recorder Recorder, logger *slog.Logger) *Registry {
	if idgen == nil {
		idgen = UUIDv7Generator{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		commands: make(map[string]*Command),
		idgen:    idgen,
		recorder: recorder,
		logger:   logger,
	}
}

// Register adds a command. Duplicate names or aliases are a programming
// error and return one rather than silently shadowing a handler.
func (r *Registry) Register(cmd Command) error {
	if cmd.Name == "" {
		return fmt.Errorf("register: command name is required")
	}
	if cmd.Handler == nil {
		return fmt.Errorf("register %q: handler is required", cmd.Name)
	}

	names := append([]string{cmd.Name}, cmd.Aliases...)
	for _, n := range names {
		key := strings.ToLower(n)
		if _, exists := r.commands[key]; exists {
			return fmt.Errorf("register %q: name %q already registered", cmd.Name, n)
		}
	}
	for _, n := range names {
		r.commands[strings.ToLower(n)] = &cmd
	}
	r.order = append(r.order, cmd.Name)
	return nil
}

// Dispatch routes a request to its handler.
//
// The request is stamped with an invocation ID and journaled before the
// handler runs; the outcome is journaled after. Journal failures are
// logged and do not affect the reply: the journal is an audit trail, not
// a dependency of the answer.
//
// An unknown command is answered with the help text, not an error.
func (r *Registry) Dispatch(ctx context.Context, req Request) Response {
	req.ID = r.idgen.Generate()
	req.Command = strings.ToLower(req.Command)

	r.logger.Debug("dispatching command",
		"id", req.ID,
		"command", req.Command,
		"author", req.Author,
		"channel", req.Channel,
	)

	if r.recorder != nil {
		if err := r.recorder.RecordInvocation(ctx, req.ID, req.Command, req.Args, req.Author, r.seq.Add(1)); err != nil {
			r.logger.Warn("journal invocation failed", "id", req.ID, "error", err)
		}
	}

	cmd, ok := r.commands[req.Command]
	var resp Response
	if !ok {
		resp = Response{Status: StatusHelp, Message: r.helpText()}
	} else {
		resp = cmd.Handler(ctx, req)
	}

	if r.recorder != nil {
		if err := r.recorder.RecordOutcome(ctx, req.ID, string(resp.Status), resp.Message, r.seq.Add(1)); err != nil {
			r.logger.Warn("journal outcome failed", "id", req.ID, "error", err)
		}
	}

	return resp
}

// helpText lists registered commands in declaration order.
func (r *Registry) helpText() string {
	var b strings.Builder
	b.WriteString("Commands:\n")

	for _, name := range r.order {
		cmd := r.commands[strings.ToLower(name)]
		fmt.Fprintf(&b, "  %s", cmd.Name)
		if len(cmd.Aliases) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(cmd.Aliases, ", "))
		}
		if cmd.Help != "" {
			fmt.Fprintf(&b, " - %s", cmd.Help)
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
