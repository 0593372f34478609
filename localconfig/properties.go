package localconfig

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// parseProperties reads key=value lines (also key: value), skipping blanks
// and # or ! comments. Later keys override earlier ones, matching plain
// properties-file semantics.
func parseProperties(data []byte) (map[string]string, error) {
	props := map[string]string{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") || strings.HasPrefix(text, "!") {
			continue
		}
		sep := strings.IndexAny(text, "=:")
		if sep < 0 {
			return nil, fmt.Errorf("localconfig: malformed property at line %d: %q", line, text)
		}
		key := strings.TrimSpace(text[:sep])
		if key == "" {
			return nil, fmt.Errorf("localconfig: empty property key at line %d", line)
		}
		props[key] = strings.TrimSpace(text[sep+1:])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("localconfig: read properties: %w", err)
	}
	return props, nil
}
