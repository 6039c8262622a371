// Package orchestrator runs the recurring bill generation exactly once
// per session and persists its output.
package orchestrator

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nzbill/backend/internal/generator"
	"github.com/nzbill/backend/internal/identifier"
	"github.com/nzbill/backend/internal/models"
	"github.com/nzbill/backend/internal/types"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// State of a Runner. Done is terminal: templates created after a run
// completed generate their first bill in the next session.
type State string

const (
	StateIdle       State = "idle"
	StateWaiting    State = "waiting"
	StateGenerating State = "generating"
	StateDone       State = "done"
)

// ErrGenerationInProgress is returned for triggers that arrive while a
// run is in flight. Concurrent triggers are rejected, not queued.
var ErrGenerationInProgress = errors.New("a generation run is already in progress")

// generationKey identifies one materialization of a template for one
// month. At most one bill may ever be persisted per key.
type generationKey struct {
	Template uuid.UUID
	Month    types.Month
}

// Runner holds the per-session generation state. Create one Runner per
// session so that tests and restarts get a clean gate.
type Runner struct {
	mu        sync.Mutex
	state     State
	inFlight  bool
	processed map[generationKey]struct{}
}

// Result describes the outcome of a trigger.
type Result struct {
	RunID   string        // Identifier of the run, empty if no run happened
	State   State         // Runner state after the trigger
	Created []models.Bill // Bills that were persisted by this run
	Err     error         // Joined per-bill persistence errors, if any
}

func New() *Runner {
	return &Runner{
		state:     StateIdle,
		processed: make(map[generationKey]struct{}),
	}
}

// State returns the current state of the runner.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Run triggers a generation pass against the database.
//
// While no template exists yet, the runner stays in Waiting and can be
// triggered again. Once a pass has completed, the runner is Done and
// every further trigger is a no-op. A single failed create is logged
// and does not stop the remaining bills from being persisted.
func (r *Runner) Run(db *gorm.DB, now time.Time) (Result, error) {
	r.mu.Lock()
	if r.state == StateDone {
		r.mu.Unlock()
		return Result{State: StateDone}, nil
	}

	if r.inFlight {
		r.mu.Unlock()
		return Result{}, ErrGenerationInProgress
	}

	// The flag is set before any database work starts so that a
	// concurrent trigger during the run is rejected.
	r.inFlight = true
	r.state = StateWaiting
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.inFlight = false
		r.mu.Unlock()
	}()

	var templates []models.RecurringExpense
	err := db.Find(&templates).Error
	if err != nil {
		return Result{State: StateWaiting}, err
	}

	if len(templates) == 0 {
		return Result{State: StateWaiting}, nil
	}

	var bills []models.Bill
	err = db.Find(&bills).Error
	if err != nil {
		return Result{State: StateWaiting}, err
	}

	r.setState(StateGenerating)

	runID := identifier.New("run")
	month := types.MonthOf(now)

	// Seed the idempotence set with the bills that already exist in
	// the store for the current month. This protects against
	// re-emitting for templates whose bill was persisted by an
	// earlier, partially observed run.
	for _, bill := range bills {
		if bill.RecurringExpenseID != nil && month.Contains(bill.DueDate) {
			r.processed[generationKey{Template: *bill.RecurringExpenseID, Month: month}] = struct{}{}
		}
	}

	var created []models.Bill
	var errs []error

	// Bills are persisted one at a time. The backend has no compound
	// uniqueness constraint on (template, month), sequential writes
	// keep a duplicate-key race from happening.
	for _, bill := range generator.Generate(templates, bills, now) {
		key := generationKey{Template: *bill.RecurringExpenseID, Month: month}
		if _, ok := r.processed[key]; ok {
			continue
		}
		r.processed[key] = struct{}{}

		err := db.Create(&bill).Error
		if err != nil {
			log.Error().Str("run", runID).Str("bill", bill.Name).Err(err).Msg("bill generation: create failed")
			errs = append(errs, err)
			continue
		}

		created = append(created, bill)
	}

	r.setState(StateDone)
	log.Info().Str("run", runID).Int("created", len(created)).Msg("bill generation: run complete")

	return Result{
		RunID:   runID,
		State:   StateDone,
		Created: created,
		Err:     errors.Join(errs...),
	}, nil
}

func (r *Runner) setState(state State) {
	r.mu.Lock()
	r.state = state
	r.mu.Unlock()
}
