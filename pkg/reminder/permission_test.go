package reminder

import (
	"context"
	"testing"

	"github.com/daybook/daybook/pkg/store"
	"github.com/stretchr/testify/assert"
)

type recordingPrompter struct {
	allow   bool
	prompts int
}

func (p *recordingPrompter) Prompt(ctx context.Context) (bool, error) {
	p.prompts++
	return p.allow, nil
}

func TestPermissions_PromptsOnceWhenGranted(t *testing.T) {
	prompter := &recordingPrompter{allow: true}
	permissions := NewPermissions(store.NewStubMedium(), prompter)

	assert.True(t, permissions.Request(t.Context()))
	assert.True(t, permissions.Request(t.Context()))
	assert.Equal(t, 1, prompter.prompts)
	assert.Equal(t, PermissionGranted, permissions.State(t.Context()))
}

func TestPermissions_DeniedIsNotRePrompted(t *testing.T) {
	prompter := &recordingPrompter{allow: false}
	permissions := NewPermissions(store.NewStubMedium(), prompter)

	assert.False(t, permissions.Request(t.Context()))
	assert.False(t, permissions.Request(t.Context()))
	assert.Equal(t, 1, prompter.prompts)
	assert.True(t, permissions.Denied())
}

func TestPermissions_StatePersistsAcrossInstances(t *testing.T) {
	medium := store.NewStubMedium()

	first := NewPermissions(medium, &recordingPrompter{allow: true})
	assert.True(t, first.Request(t.Context()))

	// A fresh instance over the same medium sees the stored grant and
	// never prompts.
	prompter := &recordingPrompter{allow: false}
	second := NewPermissions(medium, prompter)
	assert.True(t, second.Request(t.Context()))
	assert.Equal(t, 0, prompter.prompts)
}

func TestPermissions_UnknownStateBeforeAnyRequest(t *testing.T) {
	permissions := NewPermissions(store.NewStubMedium(), &recordingPrompter{allow: true})
	assert.Equal(t, PermissionUnknown, permissions.State(t.Context()))
	assert.False(t, permissions.Denied())
}
