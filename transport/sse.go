package transport

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// maxSSELine bounds a single SSE line; fragments are JSON objects that can
// carry inline media.
const maxSSELine = 1 << 20

// doneMarker terminates some SSE streams; it is not a JSON fragment.
var doneMarker = []byte("[DONE]")

// readSSE scans server-sent events from r and calls emit with each data
// payload. Multi-line data fields within one event are joined with \n per
// the SSE format. Comment and event-name lines are skipped; [DONE] ends
// the stream cleanly.
func readSSE(r io.Reader, emit func(data []byte) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxSSELine)

	var data bytes.Buffer
	flush := func() error {
		if data.Len() == 0 {
			return nil
		}
		payload := bytes.TrimSuffix(data.Bytes(), []byte("\n"))
		data.Reset()
		if bytes.Equal(payload, doneMarker) {
			return nil
		}
		// emit borrows the buffer; copy so the next event cannot clobber it.
		out := make([]byte, len(payload))
		copy(out, payload)
		return emit(out)
	}

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		switch {
		case line == "":
			if err := flush(); err != nil {
				return err
			}
		case strings.HasPrefix(line, ":"):
			// comment/keepalive
		case strings.HasPrefix(line, "data:"):
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
			data.WriteString("\n")
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return flush()
}
