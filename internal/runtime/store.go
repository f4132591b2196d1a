// Package runtime holds the interpreter's live data: one scalar map per
// primitive type and one instance map per function-block kind, all keyed
// case-insensitively via internal/canon, plus the scan engine's control
// state.
package runtime

import (
	"github.com/stladder/stladder/internal/ast"
	"github.com/stladder/stladder/internal/canon"
	"github.com/stladder/stladder/internal/ladder"
)

// Store is the complete runtime state for one loaded program.
type Store struct {
	Bools *canon.Map[bool]
	Ints  *canon.Map[int32]
	Reals *canon.Map[float64]
	Times *canon.Map[int64] // ms

	Timers    *canon.Map[*TimerState]
	Counters  *canon.Map[*CounterState]
	Edges     *canon.Map[*EdgeState]
	Bistables *canon.Map[*BistableState]

	Control Control

	// fbKinds remembers each declared instance's function-block type so
	// the driver-write operations in driver.go (SetTimerInput,
	// ResetCounter, ...) know which state machine to run without needing
	// the ladder.Program handy at call time.
	fbKinds *canon.Map[ast.DataTypeKind]
}

// DefaultScanTimeMs is the scan period assumed when a program does not
// configure one explicitly.
const DefaultScanTimeMs = 100

// NewStore returns an empty Store with DefaultScanTimeMs and STOPPED status.
func NewStore() *Store {
	return &Store{
		Bools:     canon.NewMap[bool](),
		Ints:      canon.NewMap[int32](),
		Reals:     canon.NewMap[float64](),
		Times:     canon.NewMap[int64](),
		Timers:    canon.NewMap[*TimerState](),
		Counters:  canon.NewMap[*CounterState](),
		Edges:     canon.NewMap[*EdgeState](),
		Bistables: canon.NewMap[*BistableState](),
		Control:   Control{Status: Stopped, ScanTimeMs: DefaultScanTimeMs},
		fbKinds:   canon.NewMap[ast.DataTypeKind](),
	}
}

// Load populates the store's maps from prog's declarations, giving every
// scalar its zero value and every function-block instance a fresh state
// struct. It leaves Control untouched beyond the zero value NewStore set.
func (s *Store) Load(prog *ladder.Program) {
	for _, info := range prog.Variables {
		switch info.Type {
		case ast.TypeBool:
			s.Bools.Set(info.Name, false)
		case ast.TypeInt, ast.TypeDint, ast.TypeUint:
			s.Ints.Set(info.Name, 0)
		case ast.TypeReal:
			s.Reals.Set(info.Name, 0)
		case ast.TypeTime:
			s.Times.Set(info.Name, 0)
		}
	}

	for _, info := range prog.FunctionBlocks {
		s.fbKinds.Set(info.Name, info.Type)
		switch info.Type {
		case ast.TypeTON, ast.TypeTOF, ast.TypeTP:
			s.Timers.Set(info.Name, &TimerState{})
		case ast.TypeCTU, ast.TypeCTD, ast.TypeCTUD:
			s.Counters.Set(info.Name, &CounterState{})
		case ast.TypeRTrig, ast.TypeFTrig:
			s.Edges.Set(info.Name, &EdgeState{})
		case ast.TypeSR, ast.TypeRS:
			s.Bistables.Set(info.Name, &BistableState{})
		}
	}
}

// Reset clears every scalar and instance back to its zero value and zeroes
// the scan counters, without touching ScanTimeMs. Used on the
// RUNNING/PAUSED -> STOPPED transition.
func (s *Store) Reset(prog *ladder.Program) {
	scanTime := s.Control.ScanTimeMs
	*s = *NewStore()
	s.Control.ScanTimeMs = scanTime
	s.Load(prog)
}

// Run transitions STOPPED or PAUSED into RUNNING. Values already in the
// maps (from a prior PAUSED state) are preserved; a fresh Load must be
// called first when starting from STOPPED.
func (s *Store) Run() { s.Control.Status = Running }

// Pause transitions RUNNING into PAUSED, preserving every value.
func (s *Store) Pause() { s.Control.Status = Paused }

// Stop transitions RUNNING or PAUSED into STOPPED and resets all state.
func (s *Store) Stop(prog *ladder.Program) {
	s.Reset(prog)
	s.Control.Status = Stopped
}
