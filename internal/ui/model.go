package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"desearch/internal/config"
	"desearch/internal/domain"
	"desearch/internal/search"
	"desearch/internal/ui/input"
	inputtypes "desearch/internal/ui/input/types"
	"desearch/internal/ui/logic"
	"desearch/internal/ui/views"
)

// ErrNilOrchestrator is returned when the model is wired without a search orchestrator
var ErrNilOrchestrator = errors.New("ui: search orchestrator is required")

// Option configures a Model
type Option func(*Model)

// WithContext sets the parent context for searches started from the UI
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger.Named("ui")
		}
	}
}

// WithOpener replaces the URL opener
func WithOpener(o *Opener) Option {
	return func(m *Model) {
		if o != nil {
			m.opener = o
		}
	}
}

// WithInitialQuery runs a search as soon as the program starts
func WithInitialQuery(q string) Option {
	return func(m *Model) {
		m.initialQuery = q
	}
}

// Model represents the UI state
type Model struct {
	orch   *search.Orchestrator
	config *config.Config
	ctx    context.Context
	logger *zap.Logger

	state        domain.State // last applied orchestrator snapshot
	initialQuery string

	width         int
	height        int
	help          help.Model
	keys          keyMap
	spinner       spinner.Model
	statusMessage string
	inPagerMode   bool

	navigator    *logic.Navigator
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	inputHandler *input.Handler
	pager        *PagerOps
	opener       *Opener

	program *tea.Program
}

// NewModel creates a new UI model on top of an orchestrator
func NewModel(orch *search.Orchestrator, cfg *config.Config, opts ...Option) (*Model, error) {
	if orch == nil {
		return nil, ErrNilOrchestrator
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := &Model{
		orch:         orch,
		config:       cfg,
		ctx:          context.Background(),
		logger:       zap.NewNop(),
		state:        orch.Snapshot(),
		help:         help.New(),
		keys:         newKeyMap(),
		spinner:      sp,
		navigator:    logic.NewNavigator(),
		renderer:     views.NewRenderer(cfg.UI.ShowDescriptions),
		helpRenderer: NewHelpRenderer(),
		inputHandler: input.New(),
		pager:        NewPagerOps(nil),
		opener:       NewOpener(cfg.UI.OpenCommand),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.navigator.SetTotal(len(m.state.Results))
	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// State returns the last snapshot the model applied
func (m *Model) State() domain.State {
	return m.state
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	if m.initialQuery != "" {
		return m.searchCmd(m.initialQuery)
	}
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		actions, cmd := m.inputHandler.HandleKey(msg, m)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		var cmds []tea.Cmd
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		_, cmd := m.handleNonKeyboardMsg(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	vs := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Search:         m.state,
		Topics:         m.config.Topics,
		SelectedIndex:  m.navigator.SelectedIndex(),
		ViewportOffset: m.navigator.ViewportOffset(),
		ViewportHeight: m.navigator.ViewportHeight(),
		Spinner:        m.spinner.View(),
		StatusMessage:  m.statusMessage,
		HelpView:       m.help.View(m.keys),
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.InputMode = "query"
		vs.Prompt = m.inputHandler.Prompt()
		vs.TextInput = ti.View()
	}
	return m.renderer.Render(vs)
}

// input context implementation

func (m *Model) CurrentIndex() int { return m.navigator.SelectedIndex() }
func (m *Model) TotalItems() int   { return len(m.state.Results) }
func (m *Model) TopicCount() int   { return len(m.config.Topics) }
func (m *Model) Query() string     { return m.state.Query }

func (m *Model) HasSelectedResult() bool {
	_, ok := m.selectedResult()
	return ok
}

func (m *Model) selectedResult() (domain.Result, bool) {
	i := m.navigator.SelectedIndex()
	if i < 0 || i >= len(m.state.Results) {
		return domain.Result{}, false
	}
	return m.state.Results[i], true
}

// apply installs a snapshot unless a newer one was already applied.
// Bus delivery is asynchronous, so snapshots may arrive out of order.
func (m *Model) apply(st domain.State) tea.Cmd {
	if st.Version < m.state.Version {
		return nil
	}
	wasLoading := m.state.IsLoading()
	if st.RequestID != m.state.RequestID {
		m.navigator.Reset()
	}
	m.state = st
	m.navigator.SetTotal(len(st.Results))

	if st.IsLoading() && !wasLoading {
		return m.spinner.Tick
	}
	return nil
}

func (m *Model) searchCmd(query string) tea.Cmd {
	orch, ctx := m.orch, m.ctx
	return func() tea.Msg {
		return stateMsg{State: orch.Search(ctx, query)}
	}
}

func (m *Model) refreshCmd() tea.Cmd {
	if m.orch.Query() == "" {
		return nil
	}
	orch, ctx := m.orch, m.ctx
	return func() tea.Msg {
		return stateMsg{State: orch.Refresh(ctx)}
	}
}

// filtersChanged shows the new filter selection and re-runs the current search
func (m *Model) filtersChanged() tea.Cmd {
	return tea.Batch(m.apply(m.orch.Snapshot()), m.refreshCmd())
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigator.Navigate(a.Direction)

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeQuery {
			return m.searchCmd(a.Text)
		}

	case inputtypes.CancelTextAction, inputtypes.UpdateTextAction:
		// the text input owns its value

	case inputtypes.SetDifficultyAction:
		m.orch.SetDifficulty(a.Difficulty)
		return m.filtersChanged()

	case inputtypes.ToggleTopicAction:
		if a.Index < 0 || a.Index >= len(m.config.Topics) {
			return nil
		}
		m.orch.ToggleTag(m.config.Topics[a.Index])
		return m.filtersChanged()

	case inputtypes.ClearFiltersAction:
		m.orch.ClearFilters()
		return m.filtersChanged()

	case inputtypes.RefreshAction:
		return m.refreshCmd()

	case inputtypes.OpenResultAction:
		res, ok := m.selectedResult()
		if !ok {
			return nil
		}
		if res.URL == "" {
			return m.setStatus("This result has no link")
		}
		m.logger.Debug("opening result", zap.String("url", res.URL))
		return m.opener.Open(res.URL)

	case inputtypes.ViewResultAction:
		res, ok := m.selectedResult()
		if !ok {
			return nil
		}
		return m.pagerCmd(m.renderer.Results().RenderDetail(res), false)

	case inputtypes.ToggleHelpAction:
		return m.pagerCmd(m.helpRenderer.RenderHelpContent(m.config.Topics), true)

	case inputtypes.QuitAction:
		return tea.Quit
	}

	return nil
}

// pagerCmd returns a command that shows content in the ov pager
func (m *Model) pagerCmd(content string, isHelp bool) tea.Cmd {
	if m.program == nil {
		return func() tea.Msg {
			return pagerMsg{help: isHelp, err: fmt.Errorf("program not set")}
		}
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.ShowInPager(content)
		m.program.Send(resumeRenderingMsg{})
		return pagerMsg{help: isHelp, err: err}
	}
}

func (m *Model) setStatus(s string) tea.Cmd {
	m.statusMessage = s
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		if sc, ok := msg.Event.(domain.StateChangedEvent); ok {
			return m, m.apply(sc.Snapshot())
		}
		return m, nil

	case stateMsg:
		return m, m.apply(msg.State)

	case spinner.TickMsg:
		if !m.state.IsLoading() || m.inPagerMode {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerMsg:
		if msg.err != nil {
			m.logger.Warn("pager failed", zap.Error(msg.err))
			if msg.help {
				// fall back to the inline full help
				m.help.ShowAll = !m.help.ShowAll
				m.updateViewportHeight()
			}
		}
		return m, nil

	case openedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to open url", zap.String("url", msg.url), zap.Error(msg.err))
			return m, m.setStatus(fmt.Sprintf("Failed to open link: %v", msg.err))
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		if m.state.IsLoading() {
			return m, m.spinner.Tick
		}
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	default:
		return m, nil
	}
}

// updateViewportHeight recomputes how many results fit on screen
func (m *Model) updateViewportHeight() {
	chrome := views.ChromeLines
	if m.help.ShowAll {
		chrome += 3
	}
	lines := m.height - chrome
	per := m.renderer.Results().LinesPerResult()
	m.navigator.SetViewportHeight(lines / per)
}
