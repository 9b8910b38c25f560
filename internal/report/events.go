package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Event mirrors one line of `go test -json` output.
type Event struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"`
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`
}

const maxEventLine = 4 << 20

type recordKey struct {
	pkg  string
	test string
}

// Collector accumulates events into records. The zero value is ready to use.
type Collector struct {
	order   []recordKey
	records map[recordKey]*recordState
}

type recordState struct {
	outcome  Outcome
	done     bool
	elapsed  time.Duration
	output   strings.Builder
	startAt  time.Time
	lastSeen time.Time
}

// Add folds one event into the collector. Package-level events are ignored.
func (c *Collector) Add(ev Event) {
	if ev.Test == "" {
		return
	}
	if c.records == nil {
		c.records = make(map[recordKey]*recordState)
	}

	key := recordKey{pkg: ev.Package, test: ev.Test}
	st, ok := c.records[key]
	if !ok {
		st = &recordState{startAt: ev.Time}
		c.records[key] = st
		c.order = append(c.order, key)
	}
	if !ev.Time.IsZero() {
		st.lastSeen = ev.Time
	}

	switch ev.Action {
	case "output":
		st.output.WriteString(ev.Output)
	case "pass":
		st.finish(Passed, ev.Elapsed)
	case "fail":
		st.finish(Failed, ev.Elapsed)
	case "skip":
		st.finish(Skipped, ev.Elapsed)
	}
}

func (st *recordState) finish(outcome Outcome, elapsed float64) {
	st.outcome = outcome
	st.done = true
	st.elapsed = time.Duration(elapsed * float64(time.Second))
}

// Records returns one record per test in first-seen order. A test that never
// reported a result (a panic or a binary timeout) counts as failed.
func (c *Collector) Records() []Record {
	out := make([]Record, 0, len(c.order))
	for _, key := range c.order {
		st := c.records[key]
		rec := Record{
			Package:  key.pkg,
			Test:     key.test,
			Outcome:  st.outcome,
			Duration: st.elapsed,
			Output:   st.output.String(),
		}
		if !st.done {
			rec.Outcome = Failed
			if !st.startAt.IsZero() && st.lastSeen.After(st.startAt) {
				rec.Duration = st.lastSeen.Sub(st.startAt)
			}
		}
		out = append(out, rec)
	}
	return out
}

// ParseEvent decodes a single line. Lines that are not JSON objects, such as
// build errors printed before the stream starts, return ok=false.
func ParseEvent(line []byte) (Event, bool, error) {
	trimmed := strings.TrimSpace(string(line))
	if !strings.HasPrefix(trimmed, "{") {
		return Event{}, false, nil
	}
	var ev Event
	if err := json.Unmarshal([]byte(trimmed), &ev); err != nil {
		return Event{}, false, fmt.Errorf("decode test event: %w", err)
	}
	return ev, true, nil
}

// Consume reads an event stream into c until EOF. When echo is non-nil,
// test output and any non-JSON lines are copied to it as they arrive.
func (c *Collector) Consume(r io.Reader, echo io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventLine)
	for scanner.Scan() {
		ev, ok, err := ParseEvent(scanner.Bytes())
		if err != nil {
			return err
		}
		if !ok {
			if echo != nil {
				fmt.Fprintln(echo, scanner.Text())
			}
			continue
		}
		c.Add(ev)
		if echo != nil && ev.Action == "output" {
			io.WriteString(echo, ev.Output)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read test events: %w", err)
	}
	return nil
}

// ParseEvents reads a complete event stream.
func ParseEvents(r io.Reader) ([]Record, error) {
	var c Collector
	if err := c.Consume(r, nil); err != nil {
		return nil, err
	}
	return c.Records(), nil
}
