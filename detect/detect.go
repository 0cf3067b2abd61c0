// Package detect is the disease detection placeholder: the camera permission flow and a scan
// that reports no analysis is available.
package detect

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPermissionDenied = errors.New("camera permission not granted")
	ErrRequestPending   = errors.New("camera permission request already pending")
)

// PermissionState is where the camera permission flow stands.
type PermissionState int

const (
	// StateUnknown means permission has not been asked for yet.
	StateUnknown PermissionState = iota
	StateRequesting
	StateGranted
	StateDenied
)

func (s PermissionState) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateRequesting:
		return "requesting"
	case StateGranted:
		return "granted"
	case StateDenied:
		return "denied"
	default:
		return "invalid"
	}
}

// PermissionProvider asks the platform for camera access.
type PermissionProvider interface {
	RequestCamera(ctx context.Context) (bool, error)
}

// PermissionFunc adapts a function to PermissionProvider.
type PermissionFunc func(ctx context.Context) (bool, error)

func (f PermissionFunc) RequestCamera(ctx context.Context) (bool, error) {
	return f(ctx)
}

// StaticPermission always answers with the same decision.
func StaticPermission(granted bool) PermissionProvider {
	return PermissionFunc(func(context.Context) (bool, error) { return granted, nil })
}

// PlaceholderLabel is the label of every scan result.
const PlaceholderLabel = "analysis unavailable in demo"

// Result is the outcome of one scan.
type Result struct {
	ID         string
	Label      string
	Confidence float32
	Time       time.Time
}

// Detector owns the permission state and runs scans.
type Detector interface {
	// State returns the current permission state.
	//
	// Returns:
	//   - PermissionState: the state
	State() PermissionState

	// Request asks for camera permission. Valid from Unknown and Denied (a retry).
	// The state is Requesting while the provider runs, then Granted or Denied.
	// A provider error leaves the state Denied.
	//
	// Parameters:
	//   - ctx: cancels the provider call
	//
	// Returns:
	//   - PermissionState: the resulting state
	//   - error: ErrRequestPending while another request runs, or the provider's error
	Request(ctx context.Context) (PermissionState, error)

	// Scan analyzes the current camera view.
	//
	// Returns:
	//   - Result: a placeholder result
	//   - error: ErrPermissionDenied unless the state is Granted
	Scan() (Result, error)

	// LastResult returns the latest scan result.
	//
	// Returns:
	//   - Result: the result, zero if none
	//   - bool: true if a scan has run
	LastResult() (Result, bool)

	// OnChange registers a listener called after every state change, outside the lock.
	//
	// Parameters:
	//   - fn: the listener
	OnChange(fn func(PermissionState))
}

// detectorImpl implements Detector.
type detectorImpl struct {
	mu        *sync.Mutex
	state     PermissionState
	provider  PermissionProvider
	last      *Result
	now       func() time.Time
	listeners []func(PermissionState)
}

// Compile-time interface compliance check
var _ Detector = &detectorImpl{}

// NewDetector creates a detector in StateUnknown. Without WithProvider every request is granted.
//
// Parameters:
//   - options: functional options to configure the detector
//
// Returns:
//   - Detector: the newly created detector
func NewDetector(options ...DetectorOption) Detector {
	d := &detectorImpl{
		mu:       &sync.Mutex{},
		provider: StaticPermission(true),
		now:      time.Now,
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

func (d *detectorImpl) State() PermissionState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *detectorImpl) Request(ctx context.Context) (PermissionState, error) {
	d.mu.Lock()
	switch d.state {
	case StateRequesting:
		d.mu.Unlock()
		return StateRequesting, ErrRequestPending
	case StateGranted:
		d.mu.Unlock()
		return StateGranted, nil
	}
	notify := d.transition(StateRequesting)
	d.mu.Unlock()
	notify()

	granted, err := d.provider.RequestCamera(ctx)
	result := StateGranted
	if err != nil || !granted {
		result = StateDenied
	}

	d.mu.Lock()
	notify = d.transition(result)
	d.mu.Unlock()
	notify()

	if err != nil {
		return result, fmt.Errorf("request camera permission: %w", err)
	}
	return result, nil
}

func (d *detectorImpl) Scan() (Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateGranted {
		return Result{}, ErrPermissionDenied
	}
	r := Result{ID: uuid.NewString(), Label: PlaceholderLabel, Time: d.now()}
	d.last = &r
	return r, nil
}

func (d *detectorImpl) LastResult() (Result, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.last == nil {
		return Result{}, false
	}
	return *d.last, true
}

func (d *detectorImpl) OnChange(fn func(PermissionState)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, fn)
}

// transition must be called with mu held. The returned func runs the listeners and must be
// called after unlocking.
func (d *detectorImpl) transition(s PermissionState) func() {
	if d.state == s {
		return func() {}
	}
	d.state = s
	listeners := append([]func(PermissionState){}, d.listeners...)
	return func() {
		for _, l := range listeners {
			l(s)
		}
	}
}
