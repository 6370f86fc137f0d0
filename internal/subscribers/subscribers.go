// Package subscribers loads the flat-file mailing list.
package subscribers

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"stromvarsel/internal/model"
)

// MalformedListError reports a mailing-list line that does not hold exactly
// one email,area pair. The list cannot be trusted, so the whole run aborts.
type MalformedListError struct {
	Path string
	Line int
}

func (e *MalformedListError) Error() string {
	return fmt.Sprintf("%s: line %d is malformed, want email,area", e.Path, e.Line)
}

// Load reads the mailing list, one "email,area" pair per line. Duplicate
// entries are kept as-is.
func Load(path string) ([]model.Subscriber, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mailing list: %w", err)
	}
	defer f.Close()

	var subs []model.Subscriber
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Split(scanner.Text(), ",")
		if len(fields) != 2 {
			return nil, &MalformedListError{Path: path, Line: line}
		}
		email := strings.TrimSpace(fields[0])
		area := strings.TrimSpace(fields[1])
		if email == "" {
			return nil, &MalformedListError{Path: path, Line: line}
		}
		subs = append(subs, model.Subscriber{Email: email, Area: area})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read mailing list: %w", err)
	}
	return subs, nil
}
