package transcript

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// FileSink appends human-readable transcript lines to one file per
// game under the logs directory.
type FileSink struct {
	f *os.File
}

// NewFileSink opens (creating as needed) logs/<gameID>.log under dir.
func NewFileSink(dir, gameID string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create transcript dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("game_%s.log", gameID))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open transcript file: %w", err)
	}
	return &FileSink{f: f}, nil
}

// Record appends one line. Write failures are logged and swallowed.
func (s *FileSink) Record(ev Event) {
	seat := ev.Seat
	if seat == "" {
		seat = "game_master"
	}
	line := fmt.Sprintf("%s [day %d/%s] %s %s: %s\n",
		ev.At.Format(time.RFC3339), ev.Day, ev.Phase, ev.Kind, seat, ev.Text)
	if _, err := s.f.WriteString(line); err != nil {
		log.Printf("[TRANSCRIPT] file write failed: %v", err)
	}
}

func (s *FileSink) Close() error {
	return s.f.Close()
}
