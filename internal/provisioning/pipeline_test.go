package provisioning

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/zncdeploy/internal/config"
	"github.com/imamik/zncdeploy/internal/platform/gcp"
)

type fakePhase struct {
	name string
	err  error
	runs *[]string
}

func (p *fakePhase) Name() string { return p.name }

func (p *fakePhase) Provision(_ *Context) error {
	*p.runs = append(*p.runs, p.name)
	return p.err
}

func newTestContext() (*Context, *RecordingObserver) {
	cfg := config.NewDefault()
	cfg.ProjectID = "test-project"
	ctx := NewContext(context.Background(), cfg, &gcp.MockClient{})
	obs := &RecordingObserver{}
	ctx.Observer = obs
	return ctx, obs
}

func TestRunPhases_AllSucceed(t *testing.T) {
	t.Parallel()
	ctx, obs := newTestContext()
	var runs []string

	phases := []Phase{
		&fakePhase{name: "address", runs: &runs},
		&fakePhase{name: "instance", runs: &runs},
		&fakePhase{name: "firewall", runs: &runs},
	}

	err := RunPhases(ctx, phases)
	require.NoError(t, err)
	assert.Equal(t, []string{"address", "instance", "firewall"}, runs)
	assert.Len(t, obs.EventsOfType(EventPhaseCompleted), 3)
	assert.Empty(t, obs.EventsOfType(EventPhaseFailed))
}

func TestRunPhases_HaltsOnFailure(t *testing.T) {
	t.Parallel()
	ctx, obs := newTestContext()
	var runs []string

	phases := []Phase{
		&fakePhase{name: "address", runs: &runs},
		&fakePhase{name: "instance", runs: &runs, err: errors.New("quota exceeded")},
		&fakePhase{name: "firewall", runs: &runs},
	}

	err := RunPhases(ctx, phases)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instance phase failed")
	assert.Equal(t, []string{"address", "instance"}, runs, "later phases must not run")

	failed := obs.EventsOfType(EventPhaseFailed)
	require.Len(t, failed, 1)
	assert.Equal(t, "instance", failed[0].Phase)
}

func TestConsoleObserver_FormatEvent(t *testing.T) {
	t.Parallel()
	msg := formatEvent(Event{
		Type:     EventResourceExists,
		Phase:    "firewall",
		Resource: "allow-znc-access",
		Message:  "already present",
	})

	assert.Contains(t, msg, "resource.exists")
	assert.Contains(t, msg, "[firewall]")
	assert.Contains(t, msg, "resource=allow-znc-access")
	assert.Contains(t, msg, "already present")
}
