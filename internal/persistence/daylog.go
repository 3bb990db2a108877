/*
Package persistence
File: daylog.go
Description:
    Compressed JSONL day log. Every day report is appended as one JSON
    line to a zstd-compressed file, giving a cheap replayable history of
    a long run. Implements the game.DayLogger interface.
*/

package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/everforgeworks/streets-heat-index/internal/game"
)

// DayLog writes day reports as zstd-compressed JSON lines.
type DayLog struct {
	mu   sync.Mutex
	file *os.File
	enc  *zstd.Encoder
}

// NewDayLog opens a fresh log file in dir, named by start time.
func NewDayLog(dir string) (*DayLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	name := fmt.Sprintf("days-%s.jsonl.zst", time.Now().UTC().Format("20060102-150405"))
	file, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("create day log: %w", err)
	}
	enc, err := zstd.NewWriter(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("init zstd writer: %w", err)
	}
	return &DayLog{file: file, enc: enc}, nil
}

// LogDay appends one day report as a JSON line.
func (d *DayLog) LogDay(report *game.DayReport) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	line, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode day report: %w", err)
	}
	line = append(line, '\n')
	if _, err := d.enc.Write(line); err != nil {
		return fmt.Errorf("write day report: %w", err)
	}
	return nil
}

// Close flushes the compressor and closes the file.
func (d *DayLog) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.enc.Close(); err != nil {
		d.file.Close()
		return err
	}
	return d.file.Close()
}

// ReadDayLog decompresses a day log and returns its reports, oldest
// first. Used by tests and tooling; the server never reads logs back.
func ReadDayLog(path string) ([]game.DayReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open day log: %w", err)
	}
	defer file.Close()

	dec, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("init zstd reader: %w", err)
	}
	defer dec.Close()

	var reports []game.DayReport
	lines := json.NewDecoder(dec)
	for {
		var report game.DayReport
		if err := lines.Decode(&report); err != nil {
			break
		}
		reports = append(reports, report)
	}
	return reports, nil
}
