package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/lexibot/internal/dict"
	"github.com/roach88/lexibot/internal/lexfile"
)

// Handlers binds the command set to a store, a flusher, and the reboot
// notifier. RegisterAll wires them into a registry.
type Handlers struct {
	Store    *dict.Store
	Flusher  *lexfile.Flusher
	Notifier *Notifier
}

// RegisterAll registers the bot's command set.
func (h *Handlers) RegisterAll(r *Registry) error {
	commands := []Command{
		{
			Name:    "lookup",
			Aliases: []string{"whatis"},
			Help:    "lookup <name>: show an entry's definition and author",
			Handler: h.Lookup,
		},
		{
			Name:    "define",
			Aliases: []string{"add"},
			Help:    "define <name> <definition...>: add a new entry",
			Handler: h.Define,
		},
		{
			Name:    "search",
			Help:    "search <text>: list entries whose definition mentions text",
			Handler: h.Search,
		},
		{
			Name:    "reboot",
			Help:    "reboot: announce the next restart in this channel",
			Handler: h.Reboot,
		},
	}
	for _, cmd := range commands {
		if err := r.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Lookup answers "what does <name> mean".
func (h *Handlers) Lookup(_ context.Context, req Request) Response {
	if len(req.Args) == 0 {
		return Response{Status: StatusError, Message: "Usage: lookup <name>"}
	}
	name := strings.Join(req.Args, " ")

	e, ok := h.Store.Find(name)
	if !ok {
		return Response{
			Status:  StatusNotFound,
			Message: fmt.Sprintf("No entry found for %q.", name),
		}
	}
	return Response{
		Status:  StatusOK,
		Message: fmt.Sprintf("%s: %s (added by %s)", e.Name, e.Definition, e.Author),
	}
}

// Define adds a new entry. A duplicate is a normal outcome: the existing
// definition and author are reported so the requester sees what is
// already there.
func (h *Handlers) Define(_ context.Context, req Request) Response {
	if len(req.Args) < 2 {
		return Response{Status: StatusError, Message: "Usage: define <name> <definition...>"}
	}
	name := req.Args[0]
	definition := strings.Join(req.Args[1:], " ")

	existing, inserted := h.Store.Insert(name, definition, req.Author)
	if !inserted {
		return Response{
			Status: StatusExists,
			Message: fmt.Sprintf("%q already exists: %s (added by %s)",
				existing.Name, existing.Definition, existing.Author),
		}
	}

	var flush *lexfile.FlushResult
	if h.Flusher != nil {
		flush = h.Flusher.Enqueue(h.Store.Snapshot())
	}
	return Response{
		Status:  StatusOK,
		Message: fmt.Sprintf("Added %q.", name),
		Flush:   flush,
	}
}

// Search lists the names of entries whose definition mentions the text.
func (h *Handlers) Search(_ context.Context, req Request) Response {
	if len(req.Args) == 0 {
		return Response{Status: StatusError, Message: "Usage: search <text>"}
	}
	text := strings.Join(req.Args, " ")

	matches := h.Store.Search(text)
	if len(matches) == 0 {
		return Response{
			Status:  StatusNotFound,
			Message: fmt.Sprintf("No entries mention %q.", text),
		}
	}

	names := make([]string, len(matches))
	for i, e := range matches {
		names[i] = e.Name
	}
	return Response{
		Status:  StatusOK,
		Message: fmt.Sprintf("Entries mentioning %q: %s", text, strings.Join(names, ", ")),
	}
}

// Reboot subscribes the requesting channel to the next restart
// announcement.
func (h *Handlers) Reboot(_ context.Context, req Request) Response {
	if req.Channel == "" {
		return Response{Status: StatusError, Message: "I don't know which channel to announce in."}
	}

	added, err := h.Notifier.Subscribe(req.Channel)
	if err != nil {
		return Response{Status: StatusError, Message: "Couldn't save the restart notification."}
	}
	if !added {
		return Response{Status: StatusOK, Message: "This channel is already on the restart list."}
	}
	return Response{Status: StatusOK, Message: "Okay, I'll announce the next restart in this channel."}
}
