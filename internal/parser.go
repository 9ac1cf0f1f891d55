package internal

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Parser turns a raw search log into ordered sessions.
// A limit of 0 means all sessions are loaded.
type Parser interface {
	Parse(path string, limit int) ([]*SearchSession, error)
}

// YandexParser reads logs in the Yandex relevance prediction challenge format:
//
//	SessionID TimePassed Q QueryID RegionID URL1 ... URLn   (query)
//	SessionID TimePassed C URLID                           (click)
//
// Lines of any other shape are skipped.
type YandexParser struct{}

// NewYandexParser creates a new YandexParser
func NewYandexParser() *YandexParser {
	return &YandexParser{}
}

const maxLogLine = 1 << 20

// Parse implements Parser
func (p *YandexParser) Parse(path string, limit int) ([]*SearchSession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	var (
		sessions []*SearchSession
		current  *SearchSession
		lineNo   int
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLogLine)
scan:
	for scanner.Scan() {
		lineNo++

		fields := strings.Split(strings.TrimSpace(scanner.Text()), "\t")
		switch {
		case len(fields) >= 6 && fields[2] == "Q":
			// clicks of the last admitted session are still read
			if limit > 0 && len(sessions) >= limit {
				break scan
			}
			current = NewSearchSession(fields[0], fields[3], fields[5:]...)
			sessions = append(sessions, current)

		case len(fields) == 4 && fields[2] == "C":
			if current == nil || current.ID != fields[0] {
				continue
			}
			for i := range current.WebResults {
				if current.WebResults[i].ID == fields[3] {
					current.WebResults[i].Click = true
					break
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Path: path, Line: lineNo + 1, Err: fmt.Errorf("failed to read log: %w", err)}
	}

	LogDebug("Parsed %d session(s) from %s", len(sessions), path)
	return sessions, nil
}

// ParseYandexLog parses a Yandex relevance prediction log with a YandexParser
func ParseYandexLog(path string, limit int) ([]*SearchSession, error) {
	return NewYandexParser().Parse(path, limit)
}
