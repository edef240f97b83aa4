// Package poller projects the progress of a running download job onto a
// status line from the foreground, rescheduling itself until the worker has
// finished.
package poller

import (
	"fmt"
	"sync"
	"time"

	"github.com/ytget/tubefx/internal/model"
)

// PollInterval is the status refresh cadence while a job runs
const PollInterval = 300 * time.Millisecond

// SpinnerFrames cycle once per tick
var SpinnerFrames = []string{"|", "/", "-", `\`}

// State of the poll loop
type State int

const (
	StateIdle State = iota
	StatePolling
	StateDone
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePolling:
		return "polling"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Scheduler runs fn on the foreground after delay
type Scheduler interface {
	ScheduleAfter(delay time.Duration, fn func())
}

// Messages are the status texts. Downloading takes the percentage and the
// spinner frame.
type Messages struct {
	Downloading string
	Completed   string
}

// DefaultMessages are the English status texts
var DefaultMessages = Messages{
	Downloading: "Downloading %.1f%% [%s]",
	Completed:   "Download completed.",
}

// Poller is the IDLE -> POLLING -> DONE loop of one job at a time. All
// methods are expected to run on the foreground.
type Poller struct {
	scheduler Scheduler
	setStatus func(string)
	onDone    func(*model.DownloadJob)
	messages  Messages

	mu         sync.Mutex
	state      State
	job        *model.DownloadJob
	frame      int
	generation int
}

// New creates an idle poller. setStatus receives the projected status and
// onDone is scheduled with zero delay once the job is observed finished.
func New(scheduler Scheduler, setStatus func(string), onDone func(*model.DownloadJob)) *Poller {
	return &Poller{
		scheduler: scheduler,
		setStatus: setStatus,
		onDone:    onDone,
		messages:  DefaultMessages,
	}
}

// SetMessages replaces the status texts
func (p *Poller) SetMessages(messages Messages) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = messages
}

// State returns the current state
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Start begins polling job and ticks immediately. A previous loop, if still
// scheduled, stops at its next tick.
func (p *Poller) Start(job *model.DownloadJob) {
	p.mu.Lock()
	p.generation++
	p.state = StatePolling
	p.job = job
	p.frame = 0
	gen := p.generation
	p.mu.Unlock()

	p.tick(gen)
}

func (p *Poller) tick(gen int) {
	p.mu.Lock()
	if gen != p.generation || p.state != StatePolling {
		p.mu.Unlock()
		return
	}
	job := p.job
	messages := p.messages

	if job.Finished() {
		p.state = StateDone
		p.mu.Unlock()

		p.setStatus(messages.Completed)
		p.scheduler.ScheduleAfter(0, func() { p.onDone(job) })
		return
	}

	frame := SpinnerFrames[p.frame%len(SpinnerFrames)]
	p.frame++
	p.mu.Unlock()

	p.setStatus(fmt.Sprintf(messages.Downloading, job.Percentage(), frame))
	p.scheduler.ScheduleAfter(PollInterval, func() { p.tick(gen) })
}
