package hunt

import (
	"bufio"
	"fmt"
	"os"
	"sync"
)

// TitanSink receives qualifying candidates. The file-backed sink is the
// production implementation; tests substitute an in-memory one.
type TitanSink interface {
	Append(a, b int64, score float64, glide int) error
	Close() error
}

// fileSink appends one line per titan to a text file. The file is opened
// append-only and existing content is never touched. Each line is flushed
// immediately: titans are rare and must survive an interrupt.
type fileSink struct {
	mu sync.Mutex
	f  *os.File
	bw *bufio.Writer
}

func NewFileSink(path string) (TitanSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open titan file %s: %w", path, err)
	}
	return &fileSink{f: f, bw: bufio.NewWriter(f)}, nil
}

func (s *fileSink) Append(a, b int64, score float64, glide int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintf(s.bw, "A=%d, B=%d, BSD=%.4f, Glide=%d\n", a, b, score, glide); err != nil {
		return err
	}
	return s.bw.Flush()
}

func (s *fileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.bw.Flush(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}
