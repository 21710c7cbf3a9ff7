package store

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// LogNotifier writes notifications as JSON lines, one object per line,
// matching the request logger's output format.
type LogNotifier struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewLogNotifier returns a notifier writing to stdout.
func NewLogNotifier() *LogNotifier {
	return NewLogNotifierWithWriter(os.Stdout)
}

// NewLogNotifierWithWriter returns a notifier writing to w; used by tests.
func NewLogNotifierWithWriter(w io.Writer) *LogNotifier {
	return &LogNotifier{enc: json.NewEncoder(w)}
}

func (n *LogNotifier) Info(msg string) {
	n.emit(map[string]any{
		"ts":        time.Now().UTC().Format(time.RFC3339Nano),
		"level":     "info",
		"component": "store",
		"msg":       msg,
	})
}

func (n *LogNotifier) Error(msg string, err error) {
	entry := map[string]any{
		"ts":        time.Now().UTC().Format(time.RFC3339Nano),
		"level":     "error",
		"component": "store",
		"msg":       msg,
	}
	if err != nil {
		entry["error"] = err.Error()
	}
	n.emit(entry)
}

func (n *LogNotifier) emit(entry map[string]any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_ = n.enc.Encode(entry)
}
