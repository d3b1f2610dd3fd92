//go:build profile

// Package profiler records scoped spans into a lock-free ring and dumps them
// as a speedscope evented profile. Compiled out unless the "profile" build
// tag is set; the stubs in profiler_disabled.go cost nothing.
package profiler

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Init must be called once with a span capacity before any Start.
// Example: profiler.Init(1 << 20)
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 20
	}
	ring.init(capacity)
}

// Start begins a scope and returns the end func to be deferred.
func Start(name string) func() {
	if !ring.ready.Load() {
		return func() {}
	}
	fid := intern(name)
	now := time.Now().UnixNano()
	ring.push(span{AtNS: now, Frame: fid, Open: true})
	return func() {
		end := time.Now().UnixNano()
		if end < now {
			end = now
		}
		ring.push(span{AtNS: end, Frame: fid, Open: false})
	}
}

// Dump writes the recorded spans as a speedscope file.
func Dump(path string) error {
	evs := ring.snapshot()
	if len(evs) == 0 {
		return fmt.Errorf("profiler: no events to dump")
	}
	return writeSpeedscope(evs, path)
}

func MemoryUsage() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func NumGoroutine() int { return runtime.NumGoroutine() }

// ---------- span ring ----------

type span struct {
	AtNS  int64
	Frame int
	Open  bool
}

type spanRing struct {
	ready atomic.Bool
	cap   uint64
	write atomic.Uint64
	evs   []span
}

func (r *spanRing) init(capacity int) {
	r.cap = uint64(capacity)
	r.evs = make([]span, r.cap)
	r.write.Store(0)
	r.ready.Store(true)
}

func (r *spanRing) push(e span) {
	i := r.write.Add(1) - 1
	r.evs[i%r.cap] = e
}

// snapshot preserves write order so no sort is needed later.
func (r *spanRing) snapshot() []span {
	n := r.write.Load()
	if n == 0 {
		return nil
	}
	start := uint64(0)
	if n > r.cap {
		start = n - r.cap
	}
	out := make([]span, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.evs[k%r.cap])
	}
	return out
}

var ring spanRing

// ---------- string interner ----------

var (
	muNames sync.Mutex
	names   []string
	nameIdx = map[string]int{}
)

func intern(name string) int {
	muNames.Lock()
	defer muNames.Unlock()
	if id, ok := nameIdx[name]; ok {
		return id
	}
	id := len(names)
	nameIdx[name] = id
	names = append(names, name)
	return id
}

// ---------- speedscope writer ----------

type ssFile struct {
	Schema             string      `json:"$schema"`
	Shared             ssShared    `json:"shared"`
	Profiles           []ssProfile `json:"profiles"`
	ActiveProfileIndex int         `json:"activeProfileIndex,omitempty"`
	Exporter           string      `json:"exporter,omitempty"`
	Name               string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`   // µs since first event
	Frame int    `json:"frame"`
}

func writeSpeedscope(evs []span, path string) error {
	muNames.Lock()
	fs := make([]ssFrame, len(names))
	for i, name := range names {
		fs[i] = ssFrame{Name: name}
	}
	muNames.Unlock()

	base := evs[0].AtNS
	endUS := int64(0)

	out := make([]ssEvent, 0, len(evs)+16)
	stack := make([]int, 0, 64)
	lastUS := int64(-1)

	for _, e := range evs {
		atUS := (e.AtNS - base) / 1000
		if atUS < lastUS {
			atUS = lastUS // keep µs monotonic
		}

		if e.Open {
			out = append(out, ssEvent{Type: "O", At: atUS, Frame: e.Frame})
			stack = append(stack, e.Frame)
		} else {
			// unmatched close from a truncated ring? skip
			if len(stack) == 0 || stack[len(stack)-1] != e.Frame {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: atUS, Frame: e.Frame})
		}

		lastUS = atUS
		if atUS > endUS {
			endUS = atUS
		}
	}

	// speedscope expects balanced events; close whatever is still open
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: lastUS, Frame: stack[i]})
	}

	if len(out) == 0 {
		return fmt.Errorf("no usable events after filtering")
	}

	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: fs},
		Profiles: []ssProfile{{
			Type:       "evented",
			Name:       "ember capture",
			Unit:       "microseconds",
			StartValue: 0,
			EndValue:   endUS,
			Events:     out,
		}},
		Exporter: "ember-profiler",
		Name:     "ember capture",
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
