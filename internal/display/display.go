// Package display provides the terminal form using Bubble Tea.
//
// The [UI] type draws the form fields, notifications and an input prompt
// at the bottom of the terminal. Generated recipes and command output are
// printed above the rendered area, so the scrollback keeps them after the
// form is reset.
package display

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/recipegen/internal/console"
	"github.com/hammamikhairi/recipegen/internal/domain"
	"github.com/hammamikhairi/recipegen/internal/form"
	"github.com/hammamikhairi/recipegen/internal/logger"
)

// ── Styles ───────────────────────────────────────────────────────

// The form uses a zinc/slate palette; colour is reserved for state
// (chips, loading, toasts, errors).
var (
	slate = lipgloss.Color("#94a3b8")
	zinc  = lipgloss.Color("#a1a1aa")
	dim   = lipgloss.Color("#52525b")

	slateStyle     = lipgloss.NewStyle().Foreground(slate)
	labelStyle     = lipgloss.NewStyle().Foreground(zinc)
	mutedStyle     = lipgloss.NewStyle().Foreground(dim)
	disabledStyle  = mutedStyle.Italic(true)
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#d4d4d8"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#71717a"))
	headingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#bbf7d0"))
	chipStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#93c5fd"))
	errorTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fca5a5"))
	overlayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#bae6fd")).Bold(true)

	errorToastStyle   = lipgloss.NewStyle().Background(lipgloss.Color("#b91c1c")).Foreground(lipgloss.Color("#fafafa"))
	successToastStyle = lipgloss.NewStyle().Background(lipgloss.Color("#15803d")).Foreground(lipgloss.Color("#fafafa"))
)

// ── UI ───────────────────────────────────────────────────────────

// UIOption configures the UI.
type UIOption func(*UI)

// WithMarkdownStyle sets the glamour style used for recipe cards.
func WithMarkdownStyle(style string) UIOption {
	return func(u *UI) { u.mdStyle = style }
}

// UI hosts the form in a Bubble Tea program.
//
// Create it with [NewUI], hand [UI.Notifier] to the form controller, then
// call [UI.Run] (blocking).
type UI struct {
	service  domain.RecipeService
	parser   *console.Parser
	log      *logger.Logger
	notifier *toastNotifier
	mdStyle  string
}

// NewUI creates the display. The service is used for the history listing;
// generation always goes through the controller.
func NewUI(service domain.RecipeService, parser *console.Parser, log *logger.Logger, opts ...UIOption) *UI {
	u := &UI{
		service:  service,
		parser:   parser,
		log:      log,
		notifier: newToastNotifier(log),
		mdStyle:  "auto",
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Notifier returns the notifier that raises toasts in this UI.
func (u *UI) Notifier() domain.Notifier { return u.notifier }

// Run starts the Bubble Tea event loop. Blocks until the user quits or
// ctx is cancelled.
func (u *UI) Run(ctx context.Context, ctrl *form.Controller) error {
	m := newModel(ctx, ctrl, u.service, u.parser, u.notifier.ch, u.log)

	// Resolve the style before Bubble Tea owns the terminal; auto-detection
	// queries the terminal and must not race the program's input reader.
	m.mdStyle = u.mdStyle
	if m.mdStyle == "" || m.mdStyle == "auto" {
		m.mdStyle = "light"
		if lipgloss.HasDarkBackground() {
			m.mdStyle = "dark"
		}
	}
	if r, err := NewRecipeRenderer(m.mdStyle, 80); err == nil {
		m.renderer = r
	} else {
		u.log.Warn("display: markdown renderer unavailable: %v", err)
	}

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// ── Toasts ───────────────────────────────────────────────────────

var _ domain.Notifier = (*toastNotifier)(nil)

// toastNotifier queues toasts for the model. It never blocks: the
// controller may call it from any goroutine, including during Update.
type toastNotifier struct {
	ch  chan toast
	now func() time.Time
	log *logger.Logger
}

func newToastNotifier(log *logger.Logger) *toastNotifier {
	return &toastNotifier{
		ch:  make(chan toast, 8),
		now: time.Now,
		log: log,
	}
}

// Notify raises a success toast.
func (n *toastNotifier) Notify(ctx context.Context, message string) error {
	n.push(toast{text: message, expires: n.now().Add(SuccessToastDuration)})
	return nil
}

// NotifyUrgent raises an error toast.
func (n *toastNotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.push(toast{text: message, urgent: true, expires: n.now().Add(ErrorToastDuration)})
	return nil
}

func (n *toastNotifier) push(t toast) {
	select {
	case n.ch <- t:
	default:
		n.log.Warn("display: toast queue full, dropping %q", t.text)
	}
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	ctx      context.Context
	ctrl     *form.Controller
	service  domain.RecipeService
	parser   *console.Parser
	log      *logger.Logger
	input    textinput.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	mdStyle  string
	toasts   <-chan toast
	toast    *toast
	shown    *domain.GenerateResponse // last result printed to the scrollback
	width    int
	now      func() time.Time
}

// Messages.
type (
	tickMsg       time.Time
	toastMsg      toast
	submitDoneMsg struct {
		resp *domain.GenerateResponse
		err  error
	}
	listDoneMsg struct {
		recipes []domain.Recipe
		err     error
	}
)

func newModel(ctx context.Context, ctrl *form.Controller, service domain.RecipeService,
	parser *console.Parser, toasts <-chan toast, log *logger.Logger) model {
	ti := textinput.New()
	// Plain-text prompt so the textinput width math stays correct.
	ti.Prompt = "recette> "
	ti.Placeholder = LinePromptHint
	ti.PromptStyle = slateStyle
	ti.TextStyle = labelStyle
	ti.Cursor.Style = slateStyle
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60 // updated on first WindowSizeMsg

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(overlayStyle))

	return model{
		ctx:     ctx,
		ctrl:    ctrl,
		service: service,
		parser:  parser,
		log:     log,
		input:   ti,
		spinner: sp,
		mdStyle: "notty",
		toasts:  toasts,
		width:   80,
		now:     time.Now,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		tickCmd(),
		waitForToast(m.toasts),
		tea.SetWindowTitle(LineTitle),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForToast(ch <-chan toast) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		return toastMsg(<-ch)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		// Every control is disabled while a request is in flight.
		if m.ctrl.Snapshot().Busy() {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyEsc:
			m.toast = nil
			return m, nil
		case tea.KeyEnter:
			v := m.input.Value()
			m.input.Reset()
			return m, m.handleLine(v)
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); !strings.HasPrefix(v, "/") {
			m.ctrl.SetPending(v)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		const promptLen = len("recette> ")
		if msg.Width > promptLen {
			m.input.Width = msg.Width - promptLen
		}
		if r, err := NewRecipeRenderer(m.mdStyle, msg.Width-4); err == nil {
			m.renderer = r
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		if m.toast.expired(m.now()) {
			m.toast = nil
		}
		return m, tickCmd()

	case toastMsg:
		t := toast(msg)
		m.toast = &t
		return m, waitForToast(m.toasts)

	case submitDoneMsg:
		return m, m.printResult()

	case listDoneMsg:
		if msg.err != nil {
			m.log.Error("display: listing recipes: %v", msg.err)
			return m, tea.Println(errorTextStyle.Render("  " + msg.err.Error()))
		}
		return m, tea.Println(RenderHistory(msg.recipes))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleLine dispatches one prompt line.
func (m *model) handleLine(line string) tea.Cmd {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	echo := tea.Println(slateStyle.Render("recette") + hintStyle.Render("> ") + labelStyle.Render(line))

	cmd := m.parser.Parse(line)
	m.log.Debug("display: command %s (payload=%q)", cmd.Type, cmd.Payload)

	switch cmd.Type {
	case domain.CommandAddIngredient:
		m.ctrl.SetPending(cmd.Payload)
		if !m.ctrl.AddIngredient() {
			return tea.Sequence(echo, hint(LineEmptyIngredient))
		}
		return echo

	case domain.CommandRemoveIngredient:
		n, err := strconv.Atoi(cmd.Payload)
		if err != nil || !m.ctrl.RemoveIngredient(n-1) {
			return tea.Sequence(echo, hint(LineBadIndex(cmd.Payload)))
		}
		return echo

	case domain.CommandSetCuisine:
		if err := m.ctrl.SetCuisine(strings.ToLower(cmd.Payload)); err != nil {
			return tea.Sequence(echo, hint(LineUnknownCuisine(cmd.Payload)))
		}
		return echo

	case domain.CommandSetLanguage:
		if err := m.ctrl.SetLanguage(strings.ToLower(cmd.Payload)); err != nil {
			return tea.Sequence(echo, hint(LineUnknownLanguage(cmd.Payload)))
		}
		return echo

	case domain.CommandSetDuration:
		// Out-of-range values are dropped silently; the form keeps showing
		// the current duration.
		m.ctrl.SetDurationText(cmd.Payload)
		return echo

	case domain.CommandGenerate:
		m.toast = nil
		return tea.Batch(echo, m.submit())

	case domain.CommandReset:
		if err := m.ctrl.Reset(); err != nil {
			m.log.Warn("display: reset refused: %v", err)
		}
		m.toast = nil
		return echo

	case domain.CommandList:
		return tea.Batch(echo, m.list())

	case domain.CommandHelp:
		cmds := []tea.Cmd{echo}
		for _, l := range HelpLines() {
			cmds = append(cmds, hint(l))
		}
		return tea.Sequence(cmds...)

	case domain.CommandQuit:
		return tea.Sequence(echo, tea.Quit)
	}

	return tea.Sequence(echo, hint(LineUnknownCommand(cmd.Payload)))
}

// submit runs the controller's blocking Submit off the event loop.
func (m model) submit() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		resp, err := ctrl.Submit(ctx)
		return submitDoneMsg{resp: resp, err: err}
	}
}

func (m model) list() tea.Cmd {
	ctx, svc := m.ctx, m.service
	return func() tea.Msg {
		recipes, err := svc.ListRecipes(ctx)
		return listDoneMsg{recipes: recipes, err: err}
	}
}

// printResult prints the recipe card the first time a result appears.
func (m *model) printResult() tea.Cmd {
	s := m.ctrl.Snapshot()
	if s.Status != domain.StatusSucceeded || s.Result == nil || s.Result == m.shown {
		return nil
	}
	m.shown = s.Result
	return tea.Println(RenderResult(s, m.renderer))
}

func hint(text string) tea.Cmd {
	return tea.Println(hintStyle.Render("  " + text))
}

func (m model) View() string {
	s := m.ctrl.Snapshot()

	var b strings.Builder
	if t := RenderToast(m.toast, m.now()); t != "" {
		b.WriteString("  " + t)
		b.WriteString("\n\n")
	}

	if s.Busy() {
		b.WriteString(RenderOverlay(s, m.spinner.View()))
		b.WriteByte('\n')
		return b.String()
	}

	b.WriteString(RenderForm(s, m.width))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	return b.String()
}
