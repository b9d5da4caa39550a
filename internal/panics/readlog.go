package panics

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var headerPattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}) - Neovide panicked with the message '(.*)'\. \(File: (.*); Line: (\d+), Column: (\d+)\)$`)

// ReadLog parses a backtraces file into records, oldest first. A missing file
// yields no records.
func ReadLog(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open backtraces: %w", err)
	}
	defer file.Close()

	var (
		records []Record
		current *Record
		body    []string
	)
	flush := func() {
		if current == nil {
			return
		}
		current.Backtrace = strings.TrimRight(strings.Join(body, "\n"), "\n")
		records = append(records, *current)
		current, body = nil, nil
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if m := headerPattern.FindStringSubmatch(line); m != nil {
			flush()
			rec, err := parseHeader(m)
			if err != nil {
				return nil, err
			}
			current = &rec
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read backtraces: %w", err)
	}
	flush()
	return records, nil
}

func parseHeader(m []string) (Record, error) {
	ts, err := time.ParseInLocation(timestampLayout, m[1], time.Local)
	if err != nil {
		return Record{}, fmt.Errorf("parse timestamp %q: %w", m[1], err)
	}
	line, _ := strconv.Atoi(m[4])
	col, _ := strconv.Atoi(m[5])
	return Record{
		Timestamp: ts,
		Message:   messageUnescaper.Replace(m[2]),
		Location:  Location{File: m[3], Line: line, Column: col},
	}, nil
}
