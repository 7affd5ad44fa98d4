package runner

import (
	"sync"

	"github.com/google/uuid"

	"github.com/biocore/biocore-cli/pkg/form"
	"github.com/biocore/biocore-cli/pkg/webhook"
)

// State is the run lifecycle. Exactly one state is active at a time.
type State int

const (
	Idle State = iota
	Running
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Transport issues the single outbound request of a run.
type Transport interface {
	Submit(url string, payload form.Payload) (*webhook.Result, error)
}

// Narrator is the staged progress display driven alongside the request.
type Narrator interface {
	Start()
	Stop()
}

// UI is the explicit binding the controller locks and reports through,
// instead of reaching into ambient globals.
type UI interface {
	// SetBusy disables (true) or re-enables (false) the submit surface.
	SetBusy(busy bool)
	// ShowValidationErrors presents all collected violations at once.
	ShowValidationErrors(errs []string)
}

// Controller sequences one analysis run: validate, build payload, lock,
// submit, route the outcome, unlock. At most one run is ever in flight.
type Controller struct {
	transport Transport
	narrator  Narrator
	ui        UI

	mu         sync.Mutex
	state      State
	runID      string
	errMessage string
	lastResult *webhook.Result
	lastName   string
}

func New(t Transport, n Narrator, ui UI) *Controller {
	return &Controller{transport: t, narrator: n, ui: ui, state: Idle}
}

// Run drives one attempt end to end and returns the settled state.
// Invalid input is reported through the UI binding without locking
// anything or touching the network. Calling Run while a run is already
// outstanding is a no-op returning Running; the disabled submit surface
// makes that unreachable in practice.
func (c *Controller) Run(f form.FormState) State {
	if errs := form.Validate(f); len(errs) > 0 {
		c.ui.ShowValidationErrors(errs)
		return c.State()
	}

	payload, err := form.BuildPayload(f)
	if err != nil {
		// Validate guarantees BuildPayload succeeds; reaching here is a
		// programming error, surfaced the same way as a failed run.
		return c.settle(nil, "", err)
	}

	c.mu.Lock()
	if c.state == Running {
		c.mu.Unlock()
		return Running
	}
	c.state = Running
	c.runID = uuid.NewString()
	c.mu.Unlock()

	c.ui.SetBusy(true)
	c.narrator.Start()
	defer func() {
		c.narrator.Stop()
		c.ui.SetBusy(false)
	}()

	res, err := c.transport.Submit(f.WebhookURL, payload)
	return c.settle(res, payload.AnalysisName, err)
}

func (c *Controller) settle(res *webhook.Result, name string, err error) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = Failed
		c.errMessage = err.Error()
		return c.state
	}
	c.state = Succeeded
	c.errMessage = ""
	c.lastResult = res
	c.lastName = name
	return c.state
}

// State reports the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// RunID identifies the most recent attempt.
func (c *Controller) RunID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runID
}

// ErrorMessage is the failure message of the last attempt, empty unless
// the state is Failed.
func (c *Controller) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMessage
}

// LastResult returns the most recent successful result, surviving later
// failed attempts so copy/download keep working.
func (c *Controller) LastResult() (*webhook.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastResult == nil {
		return nil, false
	}
	return c.lastResult, true
}

// LastReport returns the raw report text of the last success together
// with the analysis name it ran under.
func (c *Controller) LastReport() (name, report string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastResult == nil {
		return "", "", false
	}
	return c.lastName, c.lastResult.Report, true
}
