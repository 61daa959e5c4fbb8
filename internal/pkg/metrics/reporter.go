package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Reporter buffers metric entries per category and appends them as JSON
// to its sink on Flush.
type Reporter struct {
	mu      sync.Mutex
	sink    io.WriteCloser
	metrics map[string][]interface{}
}

func NewReporter(logPath string) (*Reporter, error) {
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening metrics log: %w", err)
	}
	return NewReporterTo(file), nil
}

func NewReporterTo(sink io.WriteCloser) *Reporter {
	return &Reporter{
		sink:    sink,
		metrics: make(map[string][]interface{}),
	}
}

func (r *Reporter) Record(category string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := map[string]interface{}{
		"timestamp": time.Now(),
		"data":      data,
	}

	r.metrics[category] = append(r.metrics[category], entry)
}

func (r *Reporter) Pending(category string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.metrics[category])
}

func (r *Reporter) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.metrics) == 0 {
		return nil
	}

	data, err := json.Marshal(r.metrics)
	if err != nil {
		return fmt.Errorf("encoding metrics: %w", err)
	}

	if _, err := r.sink.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}

	r.metrics = make(map[string][]interface{})
	return nil
}

func (r *Reporter) Close() error {
	if err := r.Flush(); err != nil {
		return fmt.Errorf("failed to flush metrics: %w", err)
	}
	return r.sink.Close()
}
