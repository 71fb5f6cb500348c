// Package obs carries the client's observability: one JSON line per log
// entry on stderr, plus Prometheus metrics for outbound calls.
package obs

import (
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"
)

var (
	sinkOnce sync.Once
	sink     *log.Logger
)

// Logger returns the shared line sink used across the client.
func Logger() *log.Logger {
	sinkOnce.Do(func() {
		sink = log.New(os.Stderr, "", 0)
	})
	return sink
}

// LogRequest emits a structured line describing one outbound API call.
func LogRequest(entry map[string]any) {
	emit(entry)
}

// LogEvent writes a structured event line (sign-in, record created, and so on).
func LogEvent(event string, fields map[string]any) {
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"type":  "event",
		"event": event,
	}
	if len(fields) > 0 {
		entry["fields"] = fields
	}
	emit(entry)
}

func emit(entry map[string]any) {
	data, err := json.Marshal(entry)
	if err != nil {
		Logger().Printf(`{"level":"error","msg":"dropped unloggable entry","error":%q}`, err.Error())
		return
	}
	Logger().Println(string(data))
}
