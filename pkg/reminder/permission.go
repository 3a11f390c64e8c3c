package reminder

import (
	"context"
	"sync"

	"github.com/daybook/daybook/pkg/store"
	log "github.com/sirupsen/logrus"
)

// PermissionState is the tri-state notification permission.
type PermissionState string

const (
	PermissionUnknown PermissionState = "unknown"
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
)

const permissionKey = "notification.permission"

// PermissionPrompter asks the user whether notifications may be shown. It
// is only invoked while the state is unknown.
type PermissionPrompter interface {
	Prompt(ctx context.Context) (bool, error)
}

// StaticPrompter resolves the prompt from configuration. A headless service
// has no interactive surface, so the config flag stands in for the user's
// answer.
type StaticPrompter struct {
	Allow bool
}

func (p StaticPrompter) Prompt(ctx context.Context) (bool, error) {
	return p.Allow, nil
}

// Permissions owns the persisted permission state. A denied answer is a
// policy outcome, not an error: it disables scheduling and is never
// re-prompted automatically.
type Permissions struct {
	medium   store.Medium
	prompter PermissionPrompter

	mu     sync.Mutex
	loaded bool
	state  PermissionState
}

func NewPermissions(medium store.Medium, prompter PermissionPrompter) *Permissions {
	return &Permissions{medium: medium, prompter: prompter, state: PermissionUnknown}
}

// Request resolves the permission. Already granted returns true without a
// prompt; previously denied returns false without prompting again; unknown
// prompts once and persists whatever the user answered.
func (p *Permissions) Request(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loadLocked(ctx)

	switch p.state {
	case PermissionGranted:
		return true
	case PermissionDenied:
		return false
	}

	granted, err := p.prompter.Prompt(ctx)
	if err != nil {
		log.Errorf("notification permission prompt failed: %v", err)
		return false
	}

	if granted {
		p.state = PermissionGranted
	} else {
		p.state = PermissionDenied
	}
	if err := p.medium.Write(ctx, permissionKey, string(p.state)); err != nil {
		// The in-memory state still holds for this session.
		log.Errorf("failed to persist notification permission: %v", err)
	}
	return granted
}

// State returns the current permission state without prompting.
func (p *Permissions) State(ctx context.Context) PermissionState {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loadLocked(ctx)
	return p.state
}

// Denied reports whether notifications were refused for this profile.
func (p *Permissions) Denied() bool {
	return p.State(context.Background()) == PermissionDenied
}

func (p *Permissions) loadLocked(ctx context.Context) {
	if p.loaded {
		return
	}
	p.loaded = true

	raw, ok, err := p.medium.Read(ctx, permissionKey)
	if err != nil {
		log.Errorf("failed to load notification permission: %v", err)
		return
	}
	if !ok {
		return
	}
	switch PermissionState(raw) {
	case PermissionGranted, PermissionDenied:
		p.state = PermissionState(raw)
	default:
		log.Warnf("ignoring unknown notification permission value %q", raw)
	}
}
