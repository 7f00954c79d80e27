package wizardapp

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/scottierieh/statistica-frontend-sub010/analyses"
	"github.com/scottierieh/statistica-frontend-sub010/utils/dataset"
	"github.com/scottierieh/statistica-frontend-sub010/utils/report"
	"github.com/scottierieh/statistica-frontend-sub010/utils/runlog"
	"github.com/scottierieh/statistica-frontend-sub010/utils/statsapi"
	"github.com/scottierieh/statistica-frontend-sub010/wizard"
)

const defaultExportPath = "analysis-results.csv"

// inputStore holds the wizard's configuration inputs behind a mutex so the
// submit goroutine and the UI loop can both read consistent snapshots.
type inputStore struct {
	mu sync.Mutex
	in analyses.Inputs
}

func newInputStore(ds *dataset.Dataset) *inputStore {
	return &inputStore{in: analyses.Inputs{
		Dataset: ds,
		Params:  make(map[string]string),
	}}
}

// Snapshot returns a deep copy of the current inputs.
func (s *inputStore) Snapshot() analyses.Inputs {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.in
	out.Selected = append([]string(nil), s.in.Selected...)
	out.Params = make(map[string]string, len(s.in.Params))
	for k, v := range s.in.Params {
		out.Params[k] = v
	}
	return out
}

// Update applies fn to the inputs under the lock.
func (s *inputStore) Update(fn func(in *analyses.Inputs)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.in)
}

type model struct {
	analysis   analyses.Analysis
	meta       analyses.Metadata
	wizardCfg  wizard.Config
	controller *wizard.Controller
	observer   *wizardObserver
	store      *inputStore
	runCtx     context.Context

	watcher     *dataset.Watcher
	datasetPath string
	exportPath  string

	params []analyses.ParamDefinition

	snapshot wizard.State
	result   *statsapi.Result

	spinner spinner.Model
	prompt  textinput.Model

	cursor      int
	prompting   bool
	activeParam *analyses.ParamDefinition
	selectIndex int

	helpVisible bool
	statusMsg   string

	width  int
	height int
}

func newModel(cfg Config, runCtx context.Context) (*model, error) {
	if cfg.Analysis == nil {
		return nil, ErrNoAnalysis
	}
	if cfg.Dataset == nil {
		return nil, ErrNoDataset
	}
	if runCtx == nil {
		runCtx = context.Background()
	}

	store := newInputStore(cfg.Dataset)
	observer := newWizardObserver()

	submit := func(ctx context.Context) (any, error) {
		return cfg.Analysis.Run(ctx, store.Snapshot())
	}
	checks := func() []wizard.ValidationCheck {
		return cfg.Analysis.Checks(store.Snapshot())
	}

	ctrlOpts := append([]wizard.Option{}, cfg.ControllerOptions...)
	ctrlOpts = append(ctrlOpts,
		wizard.WithObserver(observer),
		wizard.WithChecks(checks),
	)
	if cfg.RunLog != nil {
		recorder := runlog.NewRecorder(cfg.RunLog, cfg.Analysis.Metadata().ID, func() string {
			return store.Snapshot().Dataset.Fingerprint
		})
		ctrlOpts = append(ctrlOpts, wizard.WithObserver(recorder))
	}

	controller, err := wizard.New(cfg.Analysis.WizardConfig(), submit, ctrlOpts...)
	if err != nil {
		return nil, err
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.Placeholder = "enter value"
	ti.Blur()

	exportPath := cfg.ExportPath
	if exportPath == "" {
		exportPath = defaultExportPath
	}

	return &model{
		analysis:    cfg.Analysis,
		meta:        cfg.Analysis.Metadata(),
		wizardCfg:   cfg.Analysis.WizardConfig(),
		controller:  controller,
		observer:    observer,
		store:       store,
		runCtx:      runCtx,
		watcher:     cfg.Watcher,
		datasetPath: cfg.DatasetPath,
		exportPath:  exportPath,
		params:      cfg.Analysis.Params(),
		snapshot:    controller.Snapshot(),
		spinner:     sp,
		prompt:      ti,
		statusMsg:   "Configure the analysis, then run it from the Validation step",
	}, nil
}

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		waitWizardEventCmd(m.observer),
		m.spinner.Tick,
	}
	if m.watcher != nil {
		cmds = append(cmds, waitDatasetChangeCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		prevWidth := m.width
		prevHeight := m.height
		m.width = msg.Width
		m.height = msg.Height
		if (prevWidth > 0 && msg.Width < prevWidth) || (prevHeight > 0 && msg.Height < prevHeight) {
			return m, tea.ClearScreen
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stepChangedMsg:
		m.refresh()
		m.clampCursor()
		return m, waitWizardEventCmd(m.observer)

	case submissionStartedMsg:
		m.refresh()
		m.setStatus("Running " + m.meta.Title + "…")
		return m, tea.Batch(waitWizardEventCmd(m.observer), m.spinner.Tick)

	case submissionSettledMsg:
		m.refresh()
		if msg.err != nil {
			m.setStatus("Run failed: " + msg.err.Error())
		} else {
			m.setStatus("Run complete")
		}
		return m, waitWizardEventCmd(m.observer)

	case submitFinishedMsg:
		m.refresh()
		var checksErr wizard.ChecksFailedError
		switch {
		case msg.err == nil:
		case errors.As(msg.err, &checksErr):
			m.setStatus(checksFailedStatus(checksErr))
		case errors.Is(msg.err, wizard.ErrSuperseded):
			// The wizard was reset mid-flight; the outcome no longer applies.
		default:
			m.setStatus("Run failed: " + msg.err.Error())
		}
		return m, nil

	case datasetChangedMsg:
		return m, m.handleDatasetChange()
	}

	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.prompting {
		return m.handlePromptKey(msg)
	}

	if m.helpVisible {
		switch {
		case msg.Type == tea.KeyEsc,
			msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] == '?':
			m.helpVisible = false
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyLeft:
		m.controller.Prev()
		m.refresh()
		return m, nil
	case tea.KeyRight:
		return m, m.advance()
	case tea.KeyUp:
		m.moveCursor(-1)
		return m, nil
	case tea.KeyDown:
		m.moveCursor(1)
		return m, nil
	case tea.KeyEnter:
		return m, m.handleEnter()
	case tea.KeySpace:
		if m.snapshot.Current == analyses.StepVariables {
			m.toggleColumn()
		}
		return m, nil
	case tea.KeyEsc:
		return m, nil
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return m, nil
	}
	switch msg.Runes[0] {
	case ' ':
		if m.snapshot.Current == analyses.StepVariables {
			m.toggleColumn()
		}
	case 'q':
		return m, tea.Quit
	case '?':
		m.helpVisible = true
	case 'h', 'p':
		m.controller.Prev()
		m.refresh()
	case 'l', 'n':
		return m, m.advance()
	case 'k':
		m.moveCursor(-1)
	case 'j':
		m.moveCursor(1)
	case 't':
		if m.snapshot.Current == analyses.StepVariables {
			m.toggleTarget()
		}
	case 'r':
		m.resetWizard()
	case 'e':
		m.exportResult()
	case 'c':
		m.copySummary()
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		m.jumpToStep(wizard.Step(msg.Runes[0] - '0'))
	}
	return m, nil
}

func (m *model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.isSelectPrompt() {
		switch msg.Type {
		case tea.KeyUp:
			m.moveSelection(-1)
			return m, nil
		case tea.KeyDown:
			m.moveSelection(1)
			return m, nil
		case tea.KeyEnter:
			m.commitPrompt()
			return m, nil
		case tea.KeyEsc:
			m.closePrompt("Parameter unchanged")
			return m, nil
		}
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
			switch msg.Runes[0] {
			case 'k':
				m.moveSelection(-1)
			case 'j':
				m.moveSelection(1)
			case '1', '2', '3', '4', '5', '6', '7', '8', '9':
				idx := int(msg.Runes[0] - '1')
				if idx < len(m.activeParam.Options) {
					m.selectIndex = idx
				}
			}
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		m.commitPrompt()
		return m, nil
	case tea.KeyEsc:
		m.closePrompt("Parameter unchanged")
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// advance moves one step forward; at the submit step the transition is the
// asynchronous submission, run off the UI loop.
func (m *model) advance() tea.Cmd {
	if m.snapshot.Current == m.wizardCfg.SubmitStep {
		if m.snapshot.Submitting {
			m.setStatus("A run is already in flight")
			return nil
		}
		return submitCmd(m.runCtx, m.controller)
	}
	_ = m.controller.Next(m.runCtx)
	m.refresh()
	m.clampCursor()
	return nil
}

func (m *model) handleEnter() tea.Cmd {
	switch m.snapshot.Current {
	case analyses.StepVariables:
		m.toggleColumn()
	case analyses.StepParameters:
		m.openParamPrompt()
	case analyses.StepValidation:
		return m.advance()
	}
	return nil
}

func (m *model) jumpToStep(s wizard.Step) {
	if !m.controller.Accessible(s) {
		m.setStatus("Step not reachable yet")
		return
	}
	if err := m.controller.GoToStep(s); err != nil {
		m.setStatus(err.Error())
		return
	}
	m.refresh()
	m.clampCursor()
}

func (m *model) resetWizard() {
	if m.snapshot.Submitting {
		m.setStatus("Run in flight discarded")
	} else {
		m.setStatus("Wizard reset")
	}
	m.controller.Reset()
	m.refresh()
	m.cursor = 0
}

func (m *model) moveCursor(delta int) {
	count := m.cursorCount()
	if count == 0 {
		return
	}
	m.cursor = (m.cursor + delta) % count
	if m.cursor < 0 {
		m.cursor += count
	}
}

func (m *model) cursorCount() int {
	switch m.snapshot.Current {
	case analyses.StepVariables:
		return len(m.columns())
	case analyses.StepParameters:
		return len(m.params)
	default:
		return 0
	}
}

func (m *model) clampCursor() {
	count := m.cursorCount()
	if count == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= count {
		m.cursor = count - 1
	}
}

func (m *model) columns() []string {
	return m.store.Snapshot().Dataset.ColumnNames()
}

func (m *model) toggleColumn() {
	cols := m.columns()
	if m.cursor >= len(cols) {
		return
	}
	name := cols[m.cursor]
	m.store.Update(func(in *analyses.Inputs) {
		for i, sel := range in.Selected {
			if sel == name {
				in.Selected = append(in.Selected[:i], in.Selected[i+1:]...)
				return
			}
		}
		in.Selected = append(in.Selected, name)
	})
}

func (m *model) toggleTarget() {
	cols := m.columns()
	if m.cursor >= len(cols) {
		return
	}
	name := cols[m.cursor]
	m.store.Update(func(in *analyses.Inputs) {
		if in.Target == name {
			in.Target = ""
			return
		}
		in.Target = name
	})
}

func (m *model) openParamPrompt() {
	if m.cursor >= len(m.params) {
		return
	}
	def := m.params[m.cursor]
	m.activeParam = &def
	m.prompting = true
	m.selectIndex = 0

	in := m.store.Snapshot()
	if def.Kind == analyses.ParamKindSelect {
		current := in.Param(def.ID, def.Default)
		for idx, opt := range def.Options {
			if opt.Value == current {
				m.selectIndex = idx
			}
		}
		m.prompt.Blur()
		m.setStatus("Choose " + def.Label + " (arrows, j/k, numbers)")
		return
	}

	// Only an explicitly set value is prefilled; the default stays in the
	// placeholder so typing replaces rather than appends.
	m.prompt.Placeholder = def.Default
	m.prompt.SetValue(strings.TrimSpace(in.Params[def.ID]))
	m.prompt.CursorEnd()
	m.prompt.Focus()
	m.setStatus("Enter " + def.Label)
}

func (m *model) commitPrompt() {
	if m.activeParam == nil {
		return
	}
	def := *m.activeParam

	var value string
	if def.Kind == analyses.ParamKindSelect {
		if len(def.Options) == 0 {
			m.closePrompt("No options available")
			return
		}
		value = def.Options[m.selectIndex].Value
	} else {
		value = strings.TrimSpace(m.prompt.Value())
	}

	m.store.Update(func(in *analyses.Inputs) {
		if in.Params == nil {
			in.Params = make(map[string]string)
		}
		if value == "" {
			delete(in.Params, def.ID)
			return
		}
		in.Params[def.ID] = value
	})
	m.closePrompt(def.Label + " updated")
}

func (m *model) closePrompt(status string) {
	m.prompting = false
	m.activeParam = nil
	m.prompt.SetValue("")
	m.prompt.Blur()
	m.setStatus(status)
}

func (m *model) isSelectPrompt() bool {
	return m.prompting && m.activeParam != nil && m.activeParam.Kind == analyses.ParamKindSelect
}

func (m *model) moveSelection(delta int) {
	options := m.activeParam.Options
	if len(options) == 0 {
		return
	}
	count := len(options)
	m.selectIndex = (m.selectIndex + delta) % count
	if m.selectIndex < 0 {
		m.selectIndex += count
	}
}

func (m *model) exportResult() {
	if m.result == nil {
		m.setStatus("No result to export")
		return
	}
	if err := report.SaveCSV(m.exportPath, m.result); err != nil {
		m.setStatus("Export failed: " + err.Error())
		return
	}
	m.setStatus("Results written to " + m.exportPath)
}

func (m *model) copySummary() {
	if m.result == nil {
		m.setStatus("No result to copy")
		return
	}
	if err := report.CopySummary(m.result); err != nil {
		m.setStatus("Failed to copy summary")
		return
	}
	m.setStatus("Summary copied to clipboard")
}

func (m *model) handleDatasetChange() tea.Cmd {
	rearm := waitDatasetChangeCmd(m.watcher)

	ds, err := dataset.Load(m.datasetPath)
	if err != nil {
		m.setStatus("Dataset reload failed: " + err.Error())
		return rearm
	}
	if ds.Fingerprint == m.store.Snapshot().Dataset.Fingerprint {
		return rearm
	}

	m.store.Update(func(in *analyses.Inputs) {
		in.Dataset = ds
		in.Selected = retainKnownColumns(in.Selected, ds)
		if in.Target != "" {
			if _, ok := ds.Column(in.Target); !ok {
				in.Target = ""
			}
		}
	})
	m.controller.Reset()
	m.refresh()
	m.cursor = 0
	m.setStatus("Dataset changed; wizard reset")
	return rearm
}

func retainKnownColumns(selected []string, ds *dataset.Dataset) []string {
	kept := selected[:0]
	for _, name := range selected {
		if _, ok := ds.Column(name); ok {
			kept = append(kept, name)
		}
	}
	return kept
}

// refresh re-reads controller state; observer messages carry snapshots too,
// but re-reading keeps the UI correct even when bridge events are dropped.
func (m *model) refresh() {
	m.snapshot = m.controller.Snapshot()
	if res, ok := m.controller.Result().(*statsapi.Result); ok {
		m.result = res
	} else {
		m.result = nil
	}
}

func (m *model) setStatus(msg string) {
	m.statusMsg = msg
}

func checksFailedStatus(err wizard.ChecksFailedError) string {
	if len(err.Failed) == 1 {
		return "Cannot run: " + err.Failed[0].Label
	}
	return err.Error()
}

// ---- Wizard lifecycle events ----

type stepChangedMsg struct {
	state wizard.State
}

type submissionStartedMsg struct {
	state wizard.State
}

type submissionSettledMsg struct {
	state wizard.State
	err   error
}

type submitFinishedMsg struct {
	err error
}

type datasetChangedMsg struct{}

// wizardObserver bridges controller callbacks into the Bubble Tea message
// loop. Sends never block: callbacks can fire from the UI goroutine itself,
// and handlers re-read controller state, so dropping a burst is safe.
type wizardObserver struct {
	events chan tea.Msg
}

func newWizardObserver() *wizardObserver {
	return &wizardObserver{
		events: make(chan tea.Msg, 32),
	}
}

func (o *wizardObserver) StepChanged(state wizard.State) {
	o.send(stepChangedMsg{state: state})
}

func (o *wizardObserver) SubmissionStarted(state wizard.State) {
	o.send(submissionStartedMsg{state: state})
}

func (o *wizardObserver) SubmissionSettled(state wizard.State, err error) {
	o.send(submissionSettledMsg{state: state, err: err})
}

func (o *wizardObserver) send(msg tea.Msg) {
	select {
	case o.events <- msg:
	default:
	}
}

func waitWizardEventCmd(observer *wizardObserver) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-observer.events
		if !ok {
			return nil
		}
		return msg
	}
}

func waitDatasetChangeCmd(watcher *dataset.Watcher) tea.Cmd {
	return func() tea.Msg {
		_, ok := <-watcher.Changes()
		if !ok {
			return nil
		}
		return datasetChangedMsg{}
	}
}

func submitCmd(runCtx context.Context, controller *wizard.Controller) tea.Cmd {
	return func() tea.Msg {
		if runCtx == nil {
			runCtx = context.Background()
		}
		err := controller.Submit(runCtx)
		return submitFinishedMsg{err: err}
	}
}
