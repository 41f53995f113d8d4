package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/roach88/lexibot/internal/lexfile"
)

// Notifier keeps the reboot-notification bookkeeping: the set of channels
// that asked to be told when the bot comes back up.
//
// The set is persisted to a JSON sidecar (an array of channel names) on
// every change, with the same atomic-write discipline as the dictionary.
// On startup, Drain empties the set and returns the channels that should
// receive the "I'm back" announcement.
type Notifier struct {
	mu       sync.Mutex
	path     string
	channels map[string]struct{}
}

// NewNotifier returns an empty notifier persisting to path.
func NewNotifier(path string) *Notifier {
	return &Notifier{path: path, channels: make(map[string]struct{})}
}

// LoadNotifier reads the sidecar at path. A missing file is an empty set,
// not an error; any other read or parse failure is returned.
func LoadNotifier(path string) (*Notifier, error) {
	n := &Notifier{path: path, channels: make(map[string]struct{})}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return n, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read notify sidecar %s: %w", path, err)
	}

	var channels []string
	if err := json.Unmarshal(data, &channels); err != nil {
		return nil, fmt.Errorf("parse notify sidecar %s: %w", path, err)
	}
	for _, ch := range channels {
		n.channels[ch] = struct{}{}
	}
	return n, nil
}

// Subscribe adds a channel to the pending set and persists. Returns false
// if the channel was already subscribed (nothing is written in that case).
func (n *Notifier) Subscribe(channel string) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.channels[channel]; ok {
		return false, nil
	}
	n.channels[channel] = struct{}{}
	if err := n.saveLocked(); err != nil {
		delete(n.channels, channel)
		return false, err
	}
	return true, nil
}

// Pending returns the subscribed channels in sorted order.
func (n *Notifier) Pending() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sortedLocked()
}

// Drain empties the pending set, persists the now-empty sidecar, and
// returns the channels that were waiting. Called once at startup.
func (n *Notifier) Drain() ([]string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	channels := n.sortedLocked()
	if len(channels) == 0 {
		return channels, nil
	}

	n.channels = make(map[string]struct{})
	if err := n.saveLocked(); err != nil {
		return nil, err
	}
	return channels, nil
}

func (n *Notifier) sortedLocked() []string {
	channels := make([]string, 0, len(n.channels))
	for ch := range n.channels {
		channels = append(channels, ch)
	}
	sort.Strings(channels)
	return channels
}

func (n *Notifier) saveLocked() error {
	data, err := json.MarshalIndent(n.sortedLocked(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal notify sidecar: %w", err)
	}
	data = append(data, '\n')
	return lexfile.WriteAtomic(n.path, data)
}
