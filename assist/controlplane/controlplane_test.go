package controlplane

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cursorassist/cursorassist/assist"
	"github.com/cursorassist/cursorassist/assist/engine"
)

type fakeEngine struct {
	enabled     bool
	disabled    bool
	stopped     bool
	running     bool
	counters    engine.Counters
	lastConfig  assist.AssistiveConfig
	configCalls int
}

func (f *fakeEngine) Enable()        { f.enabled = true; f.running = true }
func (f *fakeEngine) Disable()       { f.disabled = true; f.running = false }
func (f *fakeEngine) EmergencyStop() { f.stopped = true; f.running = false }
func (f *fakeEngine) UpdateConfig(cfg assist.AssistiveConfig) {
	f.lastConfig = cfg
	f.configCalls++
}
func (f *fakeEngine) Running() bool            { return f.running }
func (f *fakeEngine) Counters() engine.Counters { return f.counters }

func newTestServer(fe *fakeEngine) *Server {
	return NewServer(":0", fe, nil)
}

func TestHandle_Enable(t *testing.T) {
	fe := &fakeEngine{}
	s := newTestServer(fe)
	resp := s.handle(request{Kind: "enable"})
	assert.True(t, resp.OK)
	assert.True(t, fe.enabled)
	assert.True(t, resp.Running)
}

func TestHandle_Disable(t *testing.T) {
	fe := &fakeEngine{running: true}
	s := newTestServer(fe)
	resp := s.handle(request{Kind: "disable"})
	assert.True(t, resp.OK)
	assert.True(t, fe.disabled)
	assert.False(t, resp.Running)
}

func TestHandle_EmergencyStop(t *testing.T) {
	fe := &fakeEngine{running: true}
	s := newTestServer(fe)
	resp := s.handle(request{Kind: "emergency_stop"})
	assert.True(t, resp.OK)
	assert.True(t, fe.stopped)
}

func TestHandle_Counters(t *testing.T) {
	fe := &fakeEngine{counters: engine.Counters{StepCount: 42}}
	s := newTestServer(fe)
	resp := s.handle(request{Kind: "counters"})
	assert.True(t, resp.OK)
	assert.Equal(t, uint64(42), resp.Counters.StepCount)
}

func TestHandle_UpdateConfigValid(t *testing.T) {
	fe := &fakeEngine{}
	s := newTestServer(fe)
	resp := s.handle(request{Kind: "update_config", Config: map[string]any{
		"source_profile_id": "user-1",
	}})
	assert.True(t, resp.OK)
	assert.Equal(t, 1, fe.configCalls)
	assert.Equal(t, "user-1", fe.lastConfig.SourceProfileID)
}

func TestHandle_UpdateConfigInvalidReportsDiagnostics(t *testing.T) {
	fe := &fakeEngine{}
	s := newTestServer(fe)
	resp := s.handle(request{Kind: "update_config", Config: map[string]any{
		"smoothing_strength": 5.0,
	}})
	assert.False(t, resp.OK)
	assert.NotEmpty(t, resp.Error)
	assert.Equal(t, 0, fe.configCalls)
}

func TestHandle_UnknownKind(t *testing.T) {
	fe := &fakeEngine{}
	s := newTestServer(fe)
	resp := s.handle(request{Kind: "bogus"})
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "bogus")
}

func TestJoinDiags(t *testing.T) {
	assert.Equal(t, "", joinDiags(nil))
	assert.Equal(t, "a", joinDiags([]string{"a"}))
	assert.Equal(t, "a; b", joinDiags([]string{"a", "b"}))
}
