package wizardapp

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/scottierieh/statistica-frontend-sub010/analyses"
	"github.com/scottierieh/statistica-frontend-sub010/utils/dataset"
	"github.com/scottierieh/statistica-frontend-sub010/utils/statsapi"
	"github.com/scottierieh/statistica-frontend-sub010/wizard"
)

func TestNewRequiresAnalysisAndDataset(t *testing.T) {
	t.Parallel()

	_, err := New()
	require.ErrorIs(t, err, ErrNoAnalysis)

	_, err = New(WithAnalysis(newStubAnalysis()))
	require.ErrorIs(t, err, ErrNoDataset)
}

func TestAppStartStopHeadless(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, newStubAnalysis())

	errCh := runAppAsync(app, context.Background())
	time.Sleep(50 * time.Millisecond)

	require.ErrorIs(t, app.Start(context.Background()), ErrProgramRunning)

	require.NoError(t, app.Stop())
	assertExited(t, errCh)
}

func TestModelVariableSelectionKeys(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, newStubAnalysis())

	press(m, tea.KeyMsg{Type: tea.KeySpace})
	press(m, tea.KeyMsg{Type: tea.KeyDown})
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, tea.KeyMsg{Type: tea.KeyDown})
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})

	in := m.store.Snapshot()
	require.Equal(t, []string{"x1", "x2"}, in.Selected)
	require.Equal(t, "group", in.Target)

	// Toggling an already-selected column removes it.
	press(m, tea.KeyMsg{Type: tea.KeyUp})
	press(m, tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, []string{"x1"}, m.store.Snapshot().Selected)
}

func TestModelParamPromptCommits(t *testing.T) {
	t.Parallel()

	stub := newStubAnalysis()
	stub.params = []analyses.ParamDefinition{
		{ID: "alpha", Label: "Alpha", Kind: analyses.ParamKindNumber, Default: "0.05"},
		{ID: "mode", Label: "Mode", Kind: analyses.ParamKindSelect, Options: []analyses.ParamOption{
			{Value: "fast", Label: "Fast"},
			{Value: "exact", Label: "Exact"},
		}, Default: "fast"},
	}
	m := newTestModel(t, stub)

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, analyses.StepParameters, m.snapshot.Current)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.prompting)
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("0.01")})
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.prompting)
	require.Equal(t, "0.01", m.store.Snapshot().Params["alpha"])

	press(m, tea.KeyMsg{Type: tea.KeyDown})
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.isSelectPrompt())
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "exact", m.store.Snapshot().Params["mode"])

	// Escape leaves the parameter untouched.
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, "exact", m.store.Snapshot().Params["mode"])
}

func TestModelSubmitAdvancesToSummary(t *testing.T) {
	t.Parallel()

	stub := newStubAnalysis()
	m := newTestModel(t, stub)

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, analyses.StepValidation, m.snapshot.Current)

	cmd := pressCmd(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m.Update(cmd())

	require.Equal(t, analyses.StepSummary, m.snapshot.Current)
	require.True(t, m.snapshot.HasResult)
	require.NotNil(t, m.result)
	require.Equal(t, "stub", m.result.Analysis)
	require.Equal(t, 1, stub.runCount())
}

func TestModelFailedChecksBlockRun(t *testing.T) {
	t.Parallel()

	stub := newStubAnalysis()
	stub.checks = []wizard.ValidationCheck{{Label: "at least 3 columns selected", Passed: false}}
	m := newTestModel(t, stub)

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	press(m, tea.KeyMsg{Type: tea.KeyRight})

	cmd := pressCmd(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m.Update(cmd())

	require.Equal(t, analyses.StepValidation, m.snapshot.Current)
	require.False(t, m.snapshot.HasResult)
	require.Zero(t, stub.runCount())
	require.Contains(t, m.statusMsg, "at least 3 columns selected")
}

func TestModelJumpKeysRespectGating(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, newStubAnalysis())

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'6'}})
	require.Equal(t, analyses.StepVariables, m.snapshot.Current)

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	cmd := pressCmd(m, tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(cmd())

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'6'}})
	require.Equal(t, analyses.StepStatistics, m.snapshot.Current)

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	require.Equal(t, analyses.StepVariables, m.snapshot.Current)
	require.True(t, m.snapshot.HasResult)
}

func TestModelResetDiscardsResult(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, newStubAnalysis())

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	cmd := pressCmd(m, tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(cmd())
	require.True(t, m.snapshot.HasResult)

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.Equal(t, analyses.StepVariables, m.snapshot.Current)
	require.False(t, m.snapshot.HasResult)
	require.Nil(t, m.result)
}

func TestModelViewRendersEveryStep(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, newStubAnalysis())
	m.width = 100
	m.height = 40

	require.Contains(t, m.View(), "Variables")

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	require.Contains(t, m.View(), "run the analysis")

	cmd := pressCmd(m, tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(cmd())
	require.Contains(t, m.View(), "Analysis: stub")

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'6'}})
	require.Contains(t, m.View(), "score = 0.9")
}

// --- helpers ---

func sampleDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Parse("sample", []byte("x1,x2,group\n1,2,a\n3,4,b\n5,6,a\n"))
	require.NoError(t, err)
	return ds
}

func newTestApp(t *testing.T, stub *stubAnalysis) *App {
	t.Helper()
	app, err := New(
		WithAnalysis(stub),
		WithDataset(sampleDataset(t)),
		WithProgramOptions(
			tea.WithoutRenderer(),
			tea.WithInput(bytes.NewBuffer(nil)),
			tea.WithOutput(io.Discard),
		),
	)
	require.NoError(t, err)
	return app
}

func newTestModel(t *testing.T, stub *stubAnalysis) *model {
	t.Helper()
	m, err := newModel(Config{Analysis: stub, Dataset: sampleDataset(t)}, context.Background())
	require.NoError(t, err)
	return m
}

func press(m *model, msg tea.KeyMsg) {
	_, _ = m.Update(msg)
}

func pressCmd(m *model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func runAppAsync(app *App, ctx context.Context) chan error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Start(ctx)
	}()
	return errCh
}

func assertExited(t *testing.T, errCh <-chan error) {
	t.Helper()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("app did not exit")
	}
}

type stubAnalysis struct {
	params []analyses.ParamDefinition
	checks []wizard.ValidationCheck
	result *statsapi.Result
	err    error

	mu   sync.Mutex
	runs int
}

func newStubAnalysis() *stubAnalysis {
	return &stubAnalysis{
		checks: []wizard.ValidationCheck{{Label: "dataset loaded", Passed: true}},
		result: &statsapi.Result{
			Analysis:       "stub",
			Metrics:        map[string]float64{"score": 0.9},
			Interpretation: "Looks fine.",
		},
	}
}

func (s *stubAnalysis) Metadata() analyses.Metadata {
	return analyses.Metadata{ID: "stub", Title: "Stub Method", Description: "test double"}
}

func (s *stubAnalysis) WizardConfig() wizard.Config {
	return analyses.StandardSteps()
}

func (s *stubAnalysis) Params() []analyses.ParamDefinition {
	return s.params
}

func (s *stubAnalysis) Checks(analyses.Inputs) []wizard.ValidationCheck {
	return s.checks
}

func (s *stubAnalysis) Run(context.Context, analyses.Inputs) (*statsapi.Result, error) {
	s.mu.Lock()
	s.runs++
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubAnalysis) runCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}
