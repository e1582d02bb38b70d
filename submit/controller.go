// Package submit drives one signing request per user action and applies the
// action's cache invalidation on success.
package submit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync"

	"tokentrip-marketplace/apperr"
	"tokentrip-marketplace/cache"
	c "tokentrip-marketplace/context"
	"tokentrip-marketplace/journal"
	"tokentrip-marketplace/logger"
	"tokentrip-marketplace/signer"
	"tokentrip-marketplace/txbuilder"
)

type State int

const (
	Idle State = iota
	Pending
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Action is a built transaction plus what to do when it lands.
type Action struct {
	Name        string
	Control     string
	Wallet      string
	Tx          *txbuilder.Transaction
	Invalidates []cache.Key
	Notice      string
	Redirect    string
}

type Outcome struct {
	Digest        string                `json:"digest"`
	ObjectChanges []signer.ObjectChange `json:"object_changes,omitempty"`
	Notice        string                `json:"notice"`
	Redirect      string                `json:"redirect,omitempty"`
}

// Created returns the id of the first object created with a type ending in
// suffix.
func (o *Outcome) Created(suffix string) (string, bool) {
	return (&signer.Result{Digest: o.Digest, ObjectChanges: o.ObjectChanges}).Created(suffix)
}

type control struct {
	mu    sync.Mutex
	state State
}

type Controller struct {
	signer   signer.Signer
	cache    *cache.Cache
	journal  journal.Journal
	controls *xsync.MapOf[string, *control]
}

func NewController(s signer.Signer, ch *cache.Cache, j journal.Journal) *Controller {
	if j == nil {
		j = journal.Nop()
	}
	return &Controller{signer: s, cache: ch, journal: j, controls: xsync.NewMapOf[*control]()}
}

// State reports the last known state of a control.
func (ct *Controller) State(name string) State {
	ctl, ok := ct.controls.Load(name)
	if !ok {
		return Idle
	}
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.state
}

func (ct *Controller) begin(name string) (*control, bool) {
	ctl, _ := ct.controls.LoadOrStore(name, &control{})
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	if ctl.state == Pending {
		return nil, false
	}
	ctl.state = Pending
	return ctl, true
}

func (ctl *control) finish(s State) {
	ctl.mu.Lock()
	ctl.state = s
	ctl.mu.Unlock()
}

// Submit signs and executes a.Tx exactly once. While the same control is
// pending further submissions fail with ErrPending. Failures are returned
// verbatim as SubmissionError and never retried.
func (ct *Controller) Submit(ctx context.Context, a Action) (*Outcome, error) {
	if a.Tx == nil {
		return nil, apperr.Invalid("action", "nothing to submit")
	}
	ctl, ok := ct.begin(a.Control)
	if !ok {
		return nil, apperr.ErrPending
	}
	final := Failed
	defer func() { ctl.finish(final) }()
	defer logger.LogExecutionTime(ctx, time.Now(), "submit: "+a.Name)

	res, err := ct.signer.SignAndExecute(ctx, a.Tx)
	if err == nil && res == nil {
		err = errors.New("signer returned no result")
	}
	if err != nil {
		var se *apperr.SubmissionError
		if !errors.As(err, &se) {
			se = &apperr.SubmissionError{Message: err.Error()}
		}
		ct.record(ctx, a, journal.StatusFailed, "", se.Message)
		logger.Warnf(ctx, "submit: %s on %s failed: %s", a.Name, a.Control, se.Message)
		return nil, se
	}
	final = Success

	if err := ct.cache.Invalidate(ctx, a.Invalidates...); err != nil {
		logger.Errorf(ctx, "submit: %s succeeded but invalidation failed: %+v", a.Name, err)
	}
	ct.record(ctx, a, journal.StatusSuccess, res.Digest, a.Notice)
	logger.Infof(ctx, "submit: %s on %s executed in %s", a.Name, a.Control, res.Digest)

	return &Outcome{Digest: res.Digest, ObjectChanges: res.ObjectChanges, Notice: a.Notice, Redirect: a.Redirect}, nil
}

func (ct *Controller) record(ctx context.Context, a Action, status, digest, message string) {
	err := ct.journal.Record(ctx, journal.Entry{
		CorrelationID: c.GetContextValue(ctx, c.ContextKeyCorrelationID),
		Wallet:        a.Wallet,
		Action:        a.Name,
		Control:       a.Control,
		Status:        status,
		Digest:        digest,
		Message:       message,
	})
	if err != nil {
		logger.Errorf(ctx, "record: unable to journal %s: %+v", a.Name, err)
	}
}
