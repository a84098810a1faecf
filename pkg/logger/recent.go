package logger

import (
	"bytes"
	"sync"
)

// Recent is an io.Writer that keeps the last few lines written to it.
type Recent struct {
	mu    sync.Mutex
	max   int
	lines []string
	part  []byte
}

func NewRecent(max int) *Recent {
	return &Recent{max: max}
}

func (r *Recent) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := append(r.part, p...)
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		r.lines = append(r.lines, string(data[:i]))
		data = data[i+1:]
	}
	r.part = append([]byte(nil), data...)
	if over := len(r.lines) - r.max; over > 0 {
		r.lines = append([]string(nil), r.lines[over:]...)
	}
	return len(p), nil
}

// Lines returns the retained complete lines, oldest first.
func (r *Recent) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}
