package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hydroboard/internal/config"
	"hydroboard/internal/domain"
	"hydroboard/internal/services"
	"hydroboard/internal/state"
)

type focusArea int

const (
	focusRawFiles focusArea = iota
	focusProcessedFiles
	focusChanges
)

type Model struct {
	workflow *state.Workflow
	fetcher  services.Fetcher
	trigger  services.Trigger
	changes  services.ChangeProvider
	cache    *services.SnapshotCache

	keys     KeyMap
	theme    string
	status   string
	showHelp bool
	focus    focusArea

	viewport viewport.Model
	spinner  spinner.Model

	width  int
	height int

	requestTimeout time.Duration
	successDisplay time.Duration
}

func NewModel(workflow *state.Workflow, fetcher services.Fetcher, trigger services.Trigger, changeProvider services.ChangeProvider, cache *services.SnapshotCache, cfg config.Config) Model {
	loading := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)
	if cache != nil {
		if raw, processed, ok := cache.Load(); ok {
			workflow.Preload(domain.TargetRaw, raw)
			workflow.Preload(domain.TargetProcessed, processed)
		}
	}
	model := Model{
		workflow:       workflow,
		fetcher:        fetcher,
		trigger:        trigger,
		changes:        changeProvider,
		cache:          cache,
		keys:           DefaultKeyMap(),
		theme:          cfg.Theme,
		status:         "Loading datasets...",
		viewport:       viewport.New(40, 20),
		spinner:        loading,
		width:          100,
		height:         30,
		requestTimeout: cfg.Timeout(),
		successDisplay: cfg.SuccessDisplay(),
	}
	model.syncViewport()
	return model
}

func (model Model) WithStatus(message string) Model {
	if message != "" {
		model.status = message
	}
	return model
}

func (model Model) Init() tea.Cmd {
	return tea.Batch(model.spinner.Tick, func() tea.Msg { return refreshRequestMsg{} })
}

func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return model.handleKey(typed)
	case tea.WindowSizeMsg:
		model.width = typed.Width
		model.height = typed.Height
		model.resizeViewport()
		return model, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		model.spinner, cmd = model.spinner.Update(typed)
		return model, cmd
	case refreshRequestMsg:
		return model.beginRefresh("Loading datasets...")
	case snapshotMsg:
		return model.applySnapshot(typed)
	case triggerDoneMsg:
		if typed.err != nil {
			model.workflow.FailRun(state.StepTrigger, typed.err)
			model.status = fmt.Sprintf("Update error: %v", typed.err)
			return model, nil
		}
		model.workflow.AdvanceRun(state.StepCompare, 60)
		model.status = "Update finished - comparing datasets..."
		before, _ := model.workflow.Snapshot(domain.TargetProcessed)
		return model, model.changesCmd(before)
	case changesMsg:
		if typed.err != nil {
			model.workflow.FailRun(state.StepCompare, typed.err)
			model.status = fmt.Sprintf("Compare error: %v", typed.err)
			return model, nil
		}
		gen := model.workflow.CompleteRun(typed.changes)
		model.focus = focusChanges
		model.syncViewport()
		model.saveCache()
		model.status = changesStatus(typed.changes)
		return model, tea.Batch(
			clearResultCmd(model.successDisplay, gen),
			model.refreshRawCmd(),
		)
	case clearResultMsg:
		if model.workflow.ClearResult(typed.gen) {
			model.status = "Ready - press u to update sensor data"
		}
		return model, nil
	default:
		return model, nil
	}
}

func (model Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(msg, model.keys.Help):
		model.showHelp = !model.showHelp
		return model, nil
	case key.Matches(msg, model.keys.Refresh):
		return model.beginRefresh("Refreshing datasets...")
	case key.Matches(msg, model.keys.Run):
		if !model.workflow.BeginRun() {
			model.status = "Update already running"
			return model, nil
		}
		model.status = "Updating sensor data..."
		return model, tea.Batch(model.triggerCmd(), model.spinner.Tick)
	case key.Matches(msg, model.keys.Focus):
		model.focus = (model.focus + 1) % 3
		model.syncViewport()
		return model, nil
	case key.Matches(msg, model.keys.Up), key.Matches(msg, model.keys.Down):
		var cmd tea.Cmd
		model.viewport, cmd = model.viewport.Update(msg)
		return model, cmd
	default:
		var cmd tea.Cmd
		model.viewport, cmd = model.viewport.Update(msg)
		return model, cmd
	}
}

// beginRefresh starts fetches for both dataset directories. Refreshes are
// reentrant; the sequence numbers handed out here make sure only the newest
// response per target is applied.
func (model Model) beginRefresh(message string) (Model, tea.Cmd) {
	rawSeq := model.workflow.BeginRefresh(domain.TargetRaw)
	processedSeq := model.workflow.BeginRefresh(domain.TargetProcessed)
	model.status = message
	return model, tea.Batch(
		model.refreshCmd(domain.TargetRaw, rawSeq),
		model.refreshCmd(domain.TargetProcessed, processedSeq),
		model.spinner.Tick,
	)
}

func (model Model) applySnapshot(msg snapshotMsg) (Model, tea.Cmd) {
	if !model.workflow.FinishRefresh(msg.target, msg.seq, msg.snapshot, msg.err) {
		return model, nil
	}
	if msg.err != nil {
		model.status = fmt.Sprintf("Refresh error (%s): %v", msg.target, msg.err)
		return model, nil
	}
	model.syncViewport()
	model.saveCache()
	if model.workflow.Phase == state.PhaseIdle {
		model.status = "Ready - press u to update sensor data"
	}
	return model, nil
}

func (model Model) refreshCmd(target domain.Target, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), model.requestTimeout)
		defer cancel()
		snapshot, err := model.fetcher.FetchSnapshot(ctx, target)
		return snapshotMsg{target: target, seq: seq, snapshot: snapshot, err: err}
	}
}

// refreshRawCmd re-reads the raw dataset after a successful run without
// flipping the phase away from Succeeded.
func (model Model) refreshRawCmd() tea.Cmd {
	seq := model.workflow.BeginRefresh(domain.TargetRaw)
	return model.refreshCmd(domain.TargetRaw, seq)
}

func (model Model) triggerCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), model.requestTimeout)
		defer cancel()
		return triggerDoneMsg{err: model.trigger.TriggerUpdate(ctx)}
	}
}

func (model Model) changesCmd(before domain.DatasetSnapshot) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), model.requestTimeout)
		defer cancel()
		changes, err := model.changes.FetchChanges(ctx, before)
		return changesMsg{changes: changes, err: err}
	}
}

func clearResultCmd(after time.Duration, gen int) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearResultMsg{gen: gen}
	})
}

func (model *Model) saveCache() {
	if model.cache == nil {
		return
	}
	raw, hasRaw := model.workflow.Snapshot(domain.TargetRaw)
	processed, hasProcessed := model.workflow.Snapshot(domain.TargetProcessed)
	if !hasRaw && !hasProcessed {
		return
	}
	model.cache.Save(raw, processed)
}

func (model *Model) resizeViewport() {
	_, listWidth, showList := splitPanels(model.width)
	if !showList {
		listWidth = model.width
	}
	height := model.height - 7
	if height < 3 {
		height = 3
	}
	model.viewport.Width = maxInt(listWidth-4, 20)
	model.viewport.Height = height
	model.syncViewport()
}

func (model *Model) syncViewport() {
	model.viewport.SetContent(focusContent(*model))
}

func changesStatus(changes domain.DatasetChangeSet) string {
	if changes.IsEmpty() {
		return "Update complete - no dataset changes"
	}
	return fmt.Sprintf("Update complete - %d added, %d modified", len(changes.AddedFiles), len(changes.ModifiedFiles))
}
