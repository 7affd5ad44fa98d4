package progress

import (
	"sync"
	"time"
)

// Stage is one labeled phase of the canned progress sequence. Delay is
// cumulative from Start; stages must be ordered ascending with the
// first at zero.
type Stage struct {
	Label string
	Delay time.Duration
}

// DefaultStages mirrors the remote pipeline's real phase order. The
// timings are cosmetic guesses; the narrator has no visibility into the
// actual request.
var DefaultStages = []Stage{
	{Label: "Submitting payload to BioCore", Delay: 0},
	{Label: "Profiling compound via PubChem", Delay: 2 * time.Second},
	{Label: "Fetching target structure from RCSB PDB", Delay: 5 * time.Second},
	{Label: "Analyzing docking poses", Delay: 9 * time.Second},
	{Label: "Synthesizing report", Delay: 14 * time.Second},
}

// Sink receives stage transitions. Calls arrive from timer goroutines
// but are serialized by the narrator.
type Sink interface {
	StageDone(index int, label string)
	StageActive(index int, label string)
}

// Narrator advances a fixed stage schedule on wall-clock timers. It is
// pure presentation: it never learns whether the request finished, so
// the orchestrator must call Stop when the request settles.
type Narrator struct {
	stages []Stage
	sink   Sink

	mu      sync.Mutex
	running bool
	active  int
	timers  []*time.Timer
}

func New(stages []Stage, sink Sink) *Narrator {
	return &Narrator{stages: stages, sink: sink, active: -1}
}

// Start schedules every stage transition. The sequence always restarts
// from the first stage.
func (n *Narrator) Start() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stopTimersLocked()
	n.running = true
	n.active = -1
	n.timers = make([]*time.Timer, 0, len(n.stages))
	for i, st := range n.stages {
		i := i
		n.timers = append(n.timers, time.AfterFunc(st.Delay, func() {
			n.advance(i)
		}))
	}
}

// Stop halts all pending transitions immediately. Remaining stages are
// left undone, never force-completed.
func (n *Narrator) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.running = false
	n.stopTimersLocked()
}

func (n *Narrator) stopTimersLocked() {
	for _, t := range n.timers {
		t.Stop()
	}
	n.timers = nil
}

func (n *Narrator) advance(i int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	// Stages only ever move forward. A timer that fires ahead of its
	// predecessors walks the skipped stages through done so the
	// sequence can never stall.
	if !n.running || i <= n.active {
		return
	}
	for j := n.active + 1; j <= i; j++ {
		if j > 0 {
			n.sink.StageDone(j-1, n.stages[j-1].Label)
		}
		n.sink.StageActive(j, n.stages[j].Label)
	}
	n.active = i
}
