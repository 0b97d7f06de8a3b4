package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunes/internal/favorites"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/search"
	"github.com/desertthunder/tunes/internal/shared"
)

// Focus identifies the component receiving key presses.
type Focus int

const (
	InputFocus Focus = iota
	ListFocus
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// ModelOpts configures [NewModel].
type ModelOpts struct {
	Controller   *search.Controller
	Favorites    *favorites.Manager
	ShareBase    string             // Base URL for share links; empty hides the link
	InitialQuery string             // Query typed into the input at startup
	OpenURL      func(string) error // Defaults to [shared.OpenBrowser]
	Logger       *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	controller *search.Controller
	favorites  *favorites.Manager
	openURL    func(string) error
	logger     *log.Logger
	shareBase  string
	shareLink  string
	focus      Focus
	width      int
	height     int
	input      textinput.Model
	tracks     list.Model
	spinner    spinner.Model
	state      search.State
	status     string
	statusErr  bool
	favErr     error
	help       help.Model
	keys       keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts ModelOpts) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	openURL := opts.OpenURL
	if openURL == nil {
		openURL = shared.OpenBrowser
	}

	input := textinput.New()
	input.Placeholder = "Search songs, artists or albums"
	input.Prompt = "♫ "
	input.CharLimit = 200
	input.Focus()

	tracks := list.New(nil, list.NewDefaultDelegate(), defaultWidth-4, defaultHeight-10)
	tracks.SetFilteringEnabled(false)
	tracks.SetShowHelp(false)
	tracks.DisableQuitKeybindings()
	tracks.SetStatusBarItemName("track", "tracks")

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.warn

	m := &Model{
		ctx:        ctx,
		controller: opts.Controller,
		favorites:  opts.Favorites,
		openURL:    openURL,
		logger:     shared.WithLogger(logger, "component", "ui"),
		shareBase:  opts.ShareBase,
		focus:      InputFocus,
		width:      defaultWidth,
		height:     defaultHeight,
		input:      input,
		tracks:     tracks,
		spinner:    sp,
		state:      search.State{Tracks: []models.Track{}},
		help:       help.New(),
		keys:       newKeyMap(),
	}

	if q := opts.InitialQuery; q != "" {
		m.input.SetValue(q)
		m.input.CursorEnd()
		m.queryChanged(q)
	} else {
		m.updateShareLink("")
	}
	m.refreshList()

	return m
}

// Init starts the cursor blink and spinner, loads the favorites and begins reading search updates.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.loadFavorites(), m.waitForState())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-6, 10)
		m.tracks.SetSize(msg.Width-4, max(msg.Height-10, 3))
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.forceQ) {
			return m, tea.Quit
		}
		if m.focus == ListFocus {
			return m.handleListKeys(msg)
		}
		return m.handleInputKeys(msg)

	case stateMsg:
		m.state = search.State(msg)
		return m, tea.Batch(m.refreshList(), m.waitForState())

	case updatesClosedMsg:
		return m, nil

	case favoritesLoadedMsg:
		m.favErr = msg.err
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Could not load favorites: %v", msg.err), true)
		}
		return m, m.refreshList()

	case favoriteToggledMsg:
		switch {
		case msg.err != nil:
			m.setStatus(fmt.Sprintf("Could not save favorites: %v", msg.err), true)
		case msg.added:
			m.setStatus(fmt.Sprintf("Added %s to favorites", msg.track.TrackName), false)
		default:
			m.setStatus(fmt.Sprintf("Removed %s from favorites", msg.track.TrackName), false)
		}
		return m, m.refreshList()

	case previewOpenedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Could not open preview: %v", msg.err), true)
		} else {
			m.setStatus(fmt.Sprintf("Opened preview for %s", msg.track.TrackName), false)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

// View renders the query input, status line, track list and footer.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("tunes"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if line := m.statusLine(); line != "" {
		b.WriteString(line)
		b.WriteString("\n\n")
	}

	b.WriteString(m.tracks.View())
	b.WriteString("\n\n")

	if m.shareLink != "" {
		b.WriteString(styles.help.Render("Share: " + m.shareLink))
		b.WriteString("\n")
	}

	helpKeys := m.keys.inputKeys()
	if m.focus == ListFocus {
		helpKeys = m.keys.listKeys()
	}
	b.WriteString(m.help.ShortHelpView(helpKeys))

	return b.String()
}

// Query returns the text in the query input
func (m *Model) Query() string {
	return m.input.Value()
}

// ShareLink returns the link reopening the current query
func (m *Model) ShareLink() string {
	return m.shareLink
}

// Focus returns the component receiving key presses
func (m *Model) Focus() Focus {
	return m.focus
}

// VisibleTracks returns the tracks currently listed
func (m *Model) VisibleTracks() []models.Track {
	items := m.tracks.Items()
	tracks := make([]models.Track, 0, len(items))
	for _, it := range items {
		if ti, ok := it.(trackItem); ok {
			tracks = append(tracks, ti.track)
		}
	}
	return tracks
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.focus) || msg.Type == tea.KeyEnter || msg.Type == tea.KeyDown {
		m.setFocus(ListFocus)
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.queryChanged(after)
		return m, tea.Batch(cmd, m.refreshList())
	}
	return m, cmd
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.focus), key.Matches(msg, m.keys.back):
		m.setFocus(InputFocus)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.favorite):
		if t, ok := m.selectedTrack(); ok {
			return m, m.toggleFavorite(t)
		}
		return m, nil
	case key.Matches(msg, m.keys.open):
		if t, ok := m.selectedTrack(); ok {
			if t.PreviewURL == "" {
				m.setStatus(fmt.Sprintf("No preview available for %s", t.TrackName), true)
				return m, nil
			}
			return m, m.openPreview(t)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.tracks, cmd = m.tracks.Update(msg)
	return m, cmd
}

func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case InputFocus:
		m.input, cmd = m.input.Update(msg)
	case ListFocus:
		m.tracks, cmd = m.tracks.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	if f == InputFocus {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
	if isErr {
		m.logger.Warn(s)
	}
}

// queryChanged forwards q to the controller and keeps the share link in sync.
func (m *Model) queryChanged(q string) {
	m.status = ""
	if m.controller != nil {
		m.controller.SetQuery(q)
	}
	m.updateShareLink(q)
}

func (m *Model) updateShareLink(q string) {
	if m.shareBase == "" {
		return
	}
	link, err := shared.LocationWithQuery(m.shareBase, strings.TrimSpace(q))
	if err != nil {
		m.logger.Warn("failed to build share link", "err", err)
		return
	}
	m.shareLink = link
}

func (m *Model) showingFavorites() bool {
	return strings.TrimSpace(m.input.Value()) == ""
}

// refreshList rebuilds the list from favorites when the query is blank and from the search results otherwise.
func (m *Model) refreshList() tea.Cmd {
	isFavorite := func(int64) bool { return false }
	if m.favorites != nil {
		isFavorite = m.favorites.Contains
	}

	var tracks []models.Track
	if m.showingFavorites() {
		m.tracks.Title = "Favorites"
		if m.favorites != nil {
			tracks = m.favorites.Tracks()
		}
	} else {
		m.tracks.Title = fmt.Sprintf("Results for %q", strings.TrimSpace(m.input.Value()))
		tracks = m.state.Tracks
	}

	return m.tracks.SetItems(trackItems(tracks, isFavorite))
}

func (m *Model) statusLine() string {
	switch {
	case !m.showingFavorites() && m.state.Loading:
		return m.spinner.View() + " Searching..."
	case !m.showingFavorites() && m.state.Err != nil:
		return styles.err.Render(fmt.Sprintf("Search failed: %v", m.state.Err))
	case m.status != "" && m.statusErr:
		return styles.err.Render(m.status)
	case m.status != "":
		return styles.ok.Render(m.status)
	case m.showingFavorites() && m.favorites != nil && !m.favorites.Loaded() && m.favErr == nil:
		return m.spinner.View() + " Loading favorites..."
	case m.showingFavorites() && len(m.tracks.Items()) == 0:
		return styles.help.Render("No favorites yet. Search for a song and press f to save it.")
	case !m.showingFavorites() && m.state.Query == m.input.Value() && len(m.state.Tracks) == 0:
		return styles.warn.Render("No songs found")
	}
	return ""
}

func (m *Model) selectedTrack() (models.Track, bool) {
	it, ok := m.tracks.SelectedItem().(trackItem)
	if !ok {
		return models.Track{}, false
	}
	return it.track, true
}

func (m *Model) loadFavorites() tea.Cmd {
	return func() tea.Msg {
		if m.favorites == nil {
			return favoritesLoadedMsg{}
		}
		return favoritesLoadedMsg{err: m.favorites.Load(m.ctx)}
	}
}

func (m *Model) toggleFavorite(t models.Track) tea.Cmd {
	return func() tea.Msg {
		if m.favorites == nil {
			return favoriteToggledMsg{track: t, err: shared.ErrNotImplemented}
		}
		added, err := m.favorites.Toggle(m.ctx, t)
		return favoriteToggledMsg{track: t, added: added, err: err}
	}
}

func (m *Model) openPreview(t models.Track) tea.Cmd {
	return func() tea.Msg {
		return previewOpenedMsg{track: t, err: m.openURL(t.PreviewURL)}
	}
}

// waitForState blocks until the controller publishes a new state.
func (m *Model) waitForState() tea.Cmd {
	return func() tea.Msg {
		if m.controller == nil {
			return updatesClosedMsg{}
		}
		state, ok := <-m.controller.Updates()
		if !ok {
			return updatesClosedMsg{}
		}
		return stateMsg(state)
	}
}
