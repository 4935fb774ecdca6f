package input

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single request line.
const maxLineSize = 1024 * 1024

// JSONLinesAdapter reads one alert request per line. Lines starting with
// '{' are decoded as a JSON Request; any other non-empty line is the text
// of an alert with default options.
type JSONLinesAdapter struct {
	reader io.Reader
}

// NewJSONLinesAdapter creates a new JSONLinesAdapter reading from r.
func NewJSONLinesAdapter(r io.Reader) *JSONLinesAdapter {
	return &JSONLinesAdapter{reader: r}
}

// Name returns the adapter identifier.
func (a *JSONLinesAdapter) Name() string {
	return "stdin"
}

// Read decodes requests line by line and passes them to fn.
func (a *JSONLinesAdapter) Read(ctx context.Context, fn func(Request) error) error {
	scanner := bufio.NewScanner(a.reader)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		req, err := parseLine(line)
		if err != nil {
			return &AdapterError{
				Source:  a.Name(),
				Message: fmt.Sprintf("invalid request on line %d", lineNo),
				Err:     err,
			}
		}

		if err := fn(req); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return &AdapterError{
			Source:  a.Name(),
			Message: "failed to read input",
			Err:     err,
		}
	}
	return nil
}

func parseLine(line string) (Request, error) {
	if !strings.HasPrefix(line, "{") {
		return Request{Text: sanitizeString(line)}, nil
	}

	var req Request
	dec := json.NewDecoder(strings.NewReader(line))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return Request{}, err
	}

	req.Text = sanitizeString(req.Text)
	if req.Dismiss {
		if req.Key == "" {
			return Request{}, fmt.Errorf("dismiss requires a key")
		}
		return req, nil
	}
	if req.Text == "" {
		return Request{}, fmt.Errorf("text must not be empty")
	}
	return req, nil
}

// sanitizeString flattens an alert text onto one line, replacing control
// characters with spaces.
func sanitizeString(s string) string {
	var result strings.Builder
	for _, r := range s {
		if r < 32 || r == 127 {
			result.WriteRune(' ')
		} else {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}
