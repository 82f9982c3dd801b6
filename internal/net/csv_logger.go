package net

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// CSVLogger logs training progress to a CSV file.
type CSVLogger struct {
	file   *os.File
	writer *csv.Writer
	start  time.Time
}

// OpenCSVLogger opens filename and writes the header unless appending to a
// non-empty file.
func OpenCSVLogger(filename string, append bool) (*CSVLogger, error) {
	mode := os.O_CREATE | os.O_WRONLY
	if append {
		mode |= os.O_APPEND
	} else {
		mode |= os.O_TRUNC
	}

	file, err := os.OpenFile(filename, mode, 0644)
	if err != nil {
		return nil, fmt.Errorf("csv logger: %w", err)
	}

	c := &CSVLogger{
		file:   file,
		writer: csv.NewWriter(file),
		start:  time.Now(),
	}

	info, err := file.Stat()
	if err == nil && (info.Size() == 0 || !append) {
		if err := c.writer.Write([]string{"epoch", "loss", "time_seconds"}); err != nil {
			file.Close()
			return nil, fmt.Errorf("csv logger: %w", err)
		}
		c.writer.Flush()
	}
	return c, nil
}

// Update writes one record. It matches event.Listener.
func (c *CSVLogger) Update(loss float64, epoch int) {
	if c.writer == nil {
		return
	}

	record := []string{
		strconv.Itoa(epoch),
		fmt.Sprintf("%.6f", loss),
		fmt.Sprintf("%.2f", time.Since(c.start).Seconds()),
	}
	if err := c.writer.Write(record); err != nil {
		log.Printf("csv logger: failed to write record: %v", err)
	}
	c.writer.Flush()
}

// Close flushes and closes the file.
func (c *CSVLogger) Close() error {
	if c.file == nil {
		return nil
	}
	c.writer.Flush()
	err := c.writer.Error()
	if cerr := c.file.Close(); err == nil {
		err = cerr
	}
	c.file = nil
	c.writer = nil
	return err
}
