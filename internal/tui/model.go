// Package tui implements the interactive toast playground.
package tui

import (
	"fmt"
	"strings"
	"sync"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/toast/internal/core/notify"
	"github.com/colonyops/toast/internal/core/styles"
	"github.com/colonyops/toast/internal/toast"
)

// Deps are the collaborators the model renders and drives.
type Deps struct {
	Store    *toast.Store
	Registry *notify.Registry
	Logger   zerolog.Logger
	// Width is the toast width in cells.
	Width int
}

// storeChangedMsg signals that the live sequence changed outside Update,
// typically because a timer expired a message.
type storeChangedMsg struct{}

// subscription bridges store changes into the Bubble Tea loop. changes holds
// at most one pending signal; the view re-reads the store on render.
type subscription struct {
	changes     chan struct{}
	done        chan struct{}
	unsubscribe func()
	once        sync.Once
}

func (s *subscription) notify(toast.Change) {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

func (s *subscription) close() {
	s.once.Do(func() {
		s.unsubscribe()
		close(s.done)
	})
}

func waitForChange(sub *subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-sub.changes:
			return storeChangedMsg{}
		case <-sub.done:
			return nil
		}
	}
}

// Model is the Bubble Tea model for the toast playground.
type Model struct {
	store    *toast.Store
	registry *notify.Registry
	log      zerolog.Logger
	keys     keyMap
	toasts   *ToastView
	sub      *subscription

	width    int
	height   int
	raised   int
	quitting bool
}

// New registers a store-backed notifier with the registry and subscribes to
// store changes.
func New(deps Deps) Model {
	deps.Registry.Register(toast.NewNotifier(deps.Store))

	sub := &subscription{
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	sub.unsubscribe = deps.Store.Subscribe(sub.notify)

	return Model{
		store:    deps.Store,
		registry: deps.Registry,
		log:      deps.Logger,
		keys:     defaultKeyMap(),
		toasts:   NewToastView(deps.Store, deps.Width),
		sub:      sub,
	}
}

// Init starts listening for store changes.
func (m Model) Init() tea.Cmd {
	return waitForChange(m.sub)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case storeChangedMsg:
		return m, waitForChange(m.sub)
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Success):
		m.raised++
		m.registry.Success(fmt.Sprintf("Saved item #%d", m.raised))
	case key.Matches(msg, m.keys.Error):
		m.raised++
		m.registry.Error(fmt.Sprintf("Operation #%d failed", m.raised))
	case key.Matches(msg, m.keys.Warning):
		m.raised++
		m.registry.Warning(fmt.Sprintf("Disk usage high (#%d)", m.raised))
	case key.Matches(msg, m.keys.Info):
		m.raised++
		m.registry.Info(fmt.Sprintf("Heads up #%d", m.raised))
	case key.Matches(msg, m.keys.Pin):
		m.raised++
		m.registry.Info(fmt.Sprintf("Pinned note #%d", m.raised), 0)
	case key.Matches(msg, m.keys.DismissNewest):
		if msgs := m.store.Messages(); len(msgs) > 0 {
			m.store.Dismiss(msgs[len(msgs)-1].ID)
		}
	case key.Matches(msg, m.keys.DismissOldest):
		if msgs := m.store.Messages(); len(msgs) > 0 {
			m.store.Dismiss(msgs[0].ID)
		}
	case key.Matches(msg, m.keys.Clear):
		m.store.Clear()
	}
	return m, nil
}

// quit unsubscribes from the store and empties the registry slot.
func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	m.sub.close()
	m.registry.Register(nil)
	m.log.Debug().Int("raised", m.raised).Msg("tui stopped")
	return m, tea.Quit
}

// View renders the model.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	background := lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, m.renderMain())

	v := tea.NewView(m.toasts.Overlay(background, w, h))
	v.AltScreen = true
	return v
}

func (m Model) renderMain() string {
	status := fmt.Sprintf("%d live  default timeout %s", m.store.Len(), m.store.DefaultTimeout())

	var help []string
	for _, b := range m.keys.help() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		styles.HeaderStyle.Render("toast"),
		styles.MutedStyle.Render(status),
		styles.HelpStyle.Render(strings.Join(help, " • ")),
	)
}
