// ttv is a terminal viewer for a live table of train records.
//
// It watches a SQLite train database for feed deliveries and displays the
// trains with sortable columns, a late-only filter, and a per-train detail
// view. Punctuality codes are normalized for display ("5MI LATE" renders
// as "5 min. late") and trains whose code ends in LATE are highlighted.
//
// Usage:
//
//	ttv                          # Auto-discover .traintracker/trains.db
//	ttv --db <path>              # Use a specific database path
//	ttv --import feed.json       # Load a JSON feed delivery and exit
//	ttv --json                   # Dump the current table as JSON and exit
//	ttv --sort status --late     # Start sorted by status, late trains only
//	ttv --refresh 5s             # Set polling fallback interval
//	ttv --version                # Print version and exit
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/njohns-tmpl/TrainTracker/internal/config"
	"github.com/njohns-tmpl/TrainTracker/internal/datasource"
	"github.com/njohns-tmpl/TrainTracker/internal/snapshot"
	"github.com/njohns-tmpl/TrainTracker/internal/store"
	"github.com/njohns-tmpl/TrainTracker/internal/trains"
)

// Version is set via ldflags at build time (e.g. -X main.Version=v0.1.0).
var Version = "dev"

// jsonOutput is the structure for --json mode: the derived table plus
// feed-level counts.
type jsonOutput struct {
	Trains []jsonTrain `json:"trains"`
	Stats  jsonStats   `json:"stats"`
}

type jsonTrain struct {
	Number             string `json:"number"`
	RouteName          string `json:"route_name"`
	From               string `json:"from"`
	To                 string `json:"to"`
	Status             string `json:"status"`
	Punctuality        string `json:"punctuality"`
	Late               bool   `json:"late"`
	Heading            string `json:"heading"`
	LastVisitedStation string `json:"last_visited_station"`
}

type jsonStats struct {
	Total   int    `json:"total"`
	Late    int    `json:"late"`
	Visible int    `json:"visible"`
	Sort    string `json:"sort"`
	Dir     string `json:"dir"`
}

func main() {
	dbPath := flag.String("db", "", "path to trains.db (default: auto-discover)")
	configPath := flag.String("config", "", "path to config file (default: ~/.config/ttv.toml)")
	refreshDur := flag.Duration("refresh", 0, "polling fallback interval (default 2s, or config)")
	sortFlag := flag.String("sort", "", "initial sort column (number|route|from|to|status)")
	lateFlag := flag.Bool("late", false, "start with only late trains shown")
	importPath := flag.String("import", "", "load a JSON feed file into the database and exit")
	jsonMode := flag.Bool("json", false, "dump the current table as JSON and exit (no TUI)")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("ttv %s\n", Version)
		os.Exit(0)
	}

	cfgPath := *configPath
	explicit := cfgPath != ""
	if !explicit {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath, explicit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ttv: %v\n", err)
		os.Exit(1)
	}

	// Flags override the config file.
	if *dbPath != "" {
		cfg.DB = *dbPath
	}
	if *refreshDur > 0 {
		cfg.Refresh = *refreshDur
	}
	if *sortFlag != "" {
		cfg.Sort = *sortFlag
	}
	if *lateFlag {
		cfg.LateOnly = true
	}

	// Initial table state.
	view := trains.View{LateOnly: cfg.LateOnly}
	if cfg.Sort != "" {
		k, err := trains.ParseSortKey(cfg.Sort)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ttv: %v\n", err)
			os.Exit(1)
		}
		view.Key = k
	}

	// --import mode: load a feed delivery, report, exit.
	if *importPath != "" {
		n, path, err := runImport(*importPath, cfg.DB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ttv: import: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("imported %d trains into %s\n", n, path)
		os.Exit(0)
	}

	if cfg.DB != "" {
		os.Setenv("TRAINTRACKER_DB", cfg.DB)
	}

	s, path, err := datasource.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ttv: %v\n", err)
		os.Exit(1)
	}

	// --json mode: build snapshot, print the derived table, exit.
	if *jsonMode {
		snap, err := snapshot.Build(s)
		if err != nil {
			s.Close()
			fmt.Fprintf(os.Stderr, "ttv: snapshot: %v\n", err)
			os.Exit(1)
		}
		s.Close()
		out := buildJSONOutput(snap, view)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "ttv: json: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	w, err := datasource.NewWatcher(path)
	if err != nil {
		s.Close()
		fmt.Fprintf(os.Stderr, "ttv: watch: %v\n", err)
		os.Exit(1)
	}

	snap, err := snapshot.Build(s)
	if err != nil {
		w.Close()
		s.Close()
		fmt.Fprintf(os.Stderr, "ttv: snapshot: %v\n", err)
		os.Exit(1)
	}

	m := newModel(s, w, snap, path, view)
	m.refreshInterval = cfg.Refresh

	p := tea.NewProgram(m, tea.WithAltScreen())

	// Feed DB change events into the TUI.
	go func() {
		for range w.Changes() {
			p.Send(dbChangedMsg{})
		}
	}()

	// Polling fallback: refresh at the configured interval even if
	// fsnotify misses events.
	go func() {
		ticker := time.NewTicker(cfg.Refresh)
		defer ticker.Stop()
		for range ticker.C {
			p.Send(dbChangedMsg{})
		}
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "ttv: %v\n", err)
		os.Exit(1)
	}
}

// runImport reads a JSON feed file and replaces the stored train set.
func runImport(feedPath, dbPath string) (int, string, error) {
	data, err := os.ReadFile(feedPath)
	if err != nil {
		return 0, "", err
	}
	var records []trains.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, "", fmt.Errorf("parse %s: %w", feedPath, err)
	}

	s, path, err := datasource.Create(dbPath)
	if err != nil {
		return 0, "", err
	}
	defer s.Close()

	if err := s.ReplaceAll(records); err != nil {
		return 0, "", err
	}
	return len(records), path, nil
}

// buildJSONOutput renders a snapshot through the given table state.
func buildJSONOutput(snap *snapshot.TrainSnapshot, view trains.View) jsonOutput {
	rows := trains.Derive(snap.Records, view)
	out := make([]jsonTrain, len(rows))
	for i, r := range rows {
		out[i] = jsonTrain{
			Number:             r.Number,
			RouteName:          r.RouteName,
			From:               r.From,
			To:                 r.To,
			Status:             r.Status(),
			Punctuality:        r.Punctuality,
			Late:               r.Late(),
			Heading:            r.Heading,
			LastVisitedStation: r.LastVisitedStation,
		}
	}
	return jsonOutput{
		Trains: out,
		Stats: jsonStats{
			Total:   snap.Total,
			Late:    snap.Late,
			Visible: len(rows),
			Sort:    strings.ToLower(view.Key.String()),
			Dir:     view.Dir.String(),
		},
	}
}

// --- Messages ---

type dbChangedMsg struct{}

type snapshotReadyMsg struct {
	snap *snapshot.TrainSnapshot
	err  error
}

type tickMsg struct{}

// --- Key bindings ---

type keyMap struct {
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Esc      key.Binding
	LateOnly key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Tab      key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/up", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/down", "down")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open train")),
	Esc:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	LateOnly: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "late only")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "back to table")),
}

// columnKeys maps the number row to table columns; pressing one acts as a
// header click on that column.
var columnKeys = map[string]trains.SortKey{
	"1": trains.SortByNumber,
	"2": trains.SortByRoute,
	"3": trains.SortByFrom,
	"4": trains.SortByTo,
	"5": trains.SortByStatus,
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.LateOnly, k.Refresh, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Esc},
		{k.LateOnly, k.Refresh, k.Help, k.Quit},
	}
}

// contextHelp returns help text appropriate for the current view.
func contextHelp(v viewID) string {
	switch v {
	case viewTrainDetail:
		return "j/k: scroll | esc: back to table | ?: help | q: quit"
	default:
		return "j/k: select | enter: open | 1-5: sort column | o: late only | r: refresh | ?: help | q: quit"
	}
}

// --- Views ---

type viewID int

const (
	viewTrains viewID = iota
	viewCount  // sentinel; views below are not part of the tab bar
	viewTrainDetail
)

func (v viewID) String() string {
	switch v {
	case viewTrains:
		return "Trains"
	case viewTrainDetail:
		return "Train Detail"
	}
	return "?"
}

// --- Model ---

type uiModel struct {
	store   *store.Store
	watcher *datasource.Watcher
	snap    *snapshot.TrainSnapshot
	dbPath  string

	view trains.View     // sort + filter state; survives feed deliveries
	rows []trains.Record // derived visible rows for snap under view

	activeView      viewID
	width           int
	height          int
	scrollPos       int
	selected        int    // cursor index into rows
	detailTrainID   string // train identity for the detail view
	refreshInterval time.Duration

	help     help.Model
	showHelp bool

	lastRefresh time.Time
}

func newModel(s *store.Store, w *datasource.Watcher, snap *snapshot.TrainSnapshot, dbPath string, view trains.View) uiModel {
	h := help.New()
	return uiModel{
		store:       s,
		watcher:     w,
		snap:        snap,
		dbPath:      dbPath,
		view:        view,
		rows:        trains.Derive(snap.Records, view),
		help:        h,
		lastRefresh: time.Now(),
	}
}

func (m uiModel) Init() tea.Cmd {
	return tea.Batch(
		tickEvery(),
	)
}

func tickEvery() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{}
	})
}

// rederive recomputes the visible rows after a sort/filter change or a new
// snapshot, keeping the cursor on the same train where possible.
func (m *uiModel) rederive() {
	var prevID string
	if m.selected >= 0 && m.selected < len(m.rows) {
		prevID = m.rows[m.selected].Identity()
	}

	m.rows = trains.Derive(m.snap.Records, m.view)

	if prevID != "" {
		for i, r := range m.rows {
			if r.Identity() == prevID {
				m.selected = i
				return
			}
		}
	}
	// The previous train is gone; clamp the cursor.
	if len(m.rows) == 0 {
		m.selected = 0
	} else if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Column select keys act as header clicks in the table view.
		if m.activeView == viewTrains {
			if k, ok := columnKeys[msg.String()]; ok {
				m.view.Select(k)
				m.rederive()
				return m, nil
			}
		}

		switch {
		case key.Matches(msg, keys.Quit):
			m.watcher.Close()
			m.store.Close()
			return m, tea.Quit

		case key.Matches(msg, keys.Esc):
			// Back navigation from train detail.
			if m.activeView == viewTrainDetail {
				m.activeView = viewTrains
				m.detailTrainID = ""
				m.scrollPos = 0
			}

		case key.Matches(msg, keys.Tab):
			if m.activeView == viewTrainDetail {
				m.activeView = viewTrains
				m.detailTrainID = ""
				m.scrollPos = 0
			}

		case key.Matches(msg, keys.Enter):
			// Open the selected train.
			if m.activeView == viewTrains && len(m.rows) > 0 {
				if m.selected >= 0 && m.selected < len(m.rows) {
					m.detailTrainID = m.rows[m.selected].Identity()
					m.activeView = viewTrainDetail
					m.scrollPos = 0
				}
			}

		case key.Matches(msg, keys.LateOnly):
			if m.activeView == viewTrains {
				m.view.ToggleLateOnly()
				m.rederive()
			}

		case key.Matches(msg, keys.Refresh):
			return m, m.refreshSnapshot()

		case key.Matches(msg, keys.Up):
			if m.activeView == viewTrains {
				if m.selected > 0 {
					m.selected--
				}
			} else {
				if m.scrollPos > 0 {
					m.scrollPos--
				}
			}

		case key.Matches(msg, keys.Down):
			if m.activeView == viewTrains {
				if m.selected < len(m.rows)-1 {
					m.selected++
				}
			} else {
				// Detail content is short; View() clamps if we overshoot.
				if m.scrollPos < 40 {
					m.scrollPos++
				}
			}

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case dbChangedMsg:
		return m, m.refreshSnapshot()

	case snapshotReadyMsg:
		if msg.err == nil && msg.snap != nil {
			m.snap = msg.snap
			m.lastRefresh = time.Now()
			// Sort and filter state are untouched by a feed delivery; only
			// the rows are recomputed, with the cursor following the train.
			m.rederive()
		}

	case tickMsg:
		return m, tickEvery()
	}

	return m, nil
}

func (m uiModel) refreshSnapshot() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		snap, err := snapshot.Build(s)
		return snapshotReadyMsg{snap: snap, err: err}
	}
}

// --- Styles ---

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Background(lipgloss.Color("#1E1E2E")).
			Padding(0, 1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#CDD6F4")).
			Background(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6C7086")).
				Background(lipgloss.Color("#313244")).
				Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#89B4FA"))

	onTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6E3A1"))

	lateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F38BA8"))

	onTimeBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#A6E3A1")).
				Bold(true)

	lateBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F38BA8")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CDD6F4")).
			Background(lipgloss.Color("#1E1E2E"))

	detailHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#CBA6F7"))

	detailSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#89B4FA")).
				MarginTop(1)
)

// --- View rendering ---

func (m uiModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	// Title bar.
	b.WriteString(m.renderTitleBar())
	b.WriteRune('\n')

	// Tab bar.
	b.WriteString(m.renderTabBar())
	b.WriteRune('\n')
	b.WriteRune('\n')

	// Content area.
	contentHeight := m.height - 5 // title + tabs + status + padding
	if m.showHelp {
		contentHeight -= 3
	}

	var content string

	// Split-pane: table + selected train side by side on wide terminals.
	if m.activeView == viewTrains && m.width >= 120 &&
		len(m.rows) > 0 && m.selected < len(m.rows) {
		leftWidth := m.width/2 - 1
		rightWidth := m.width - leftWidth - 3 // 3 for separator

		left := m.renderTrains()
		right := m.renderTrainDetailFor(m.rows[m.selected].Identity())

		content = renderSplitPane(left, right, leftWidth, rightWidth, contentHeight)
	} else {
		switch m.activeView {
		case viewTrains:
			content = m.renderTrains()
		case viewTrainDetail:
			content = m.renderTrainDetailFor(m.detailTrainID)
		}

		// Apply scroll using a local variable. View() is a value receiver
		// so mutating m.scrollPos here would be dead code.
		lines := strings.Split(content, "\n")
		scrollPos := m.scrollPos
		if scrollPos >= len(lines) {
			scrollPos = max(0, len(lines)-1)
		}
		if scrollPos > 0 && scrollPos < len(lines) {
			lines = lines[scrollPos:]
		}
		if len(lines) > contentHeight {
			lines = lines[:contentHeight]
		}
		content = strings.Join(lines, "\n")
	}

	// Truncate each line to terminal width so content doesn't wrap
	// on resize. Uses ANSI-aware width measurement.
	content = truncateLines(content, m.width)

	b.WriteString(content)

	// Pad to fill screen.
	rendered := strings.Count(b.String(), "\n")
	for rendered < m.height-2 {
		b.WriteRune('\n')
		rendered++
	}

	// Help / status bar.
	if m.showHelp {
		b.WriteString(m.help.View(keys))
	} else {
		b.WriteString(m.renderStatusBar())
	}

	return b.String()
}

func (m uiModel) renderTitleBar() string {
	title := titleStyle.Render("traintracker")
	stats := dimStyle.Render(fmt.Sprintf(
		"%d/%d trains | %d late",
		len(m.rows),
		m.snap.Total,
		m.snap.Late,
	))
	if m.view.LateOnly {
		stats += " " + lateBadgeStyle.Render("[late only]")
	}
	gap := strings.Repeat(" ", max(0, m.width-lipgloss.Width(title)-lipgloss.Width(stats)-2))
	return title + gap + stats
}

func (m uiModel) renderTabBar() string {
	var tabs []string
	for i := viewID(0); i < viewCount; i++ {
		if i == m.activeView {
			tabs = append(tabs, tabActiveStyle.Render(i.String()))
		} else {
			tabs = append(tabs, tabInactiveStyle.Render(i.String()))
		}
	}
	// Show the opened train as its own tab when drilled in.
	if m.activeView == viewTrainDetail {
		label := "Train"
		if r := m.findTrain(m.detailTrainID); r != nil {
			label = "Train " + r.Number
		}
		tabs = append(tabs, tabActiveStyle.Render(label))
	}
	return strings.Join(tabs, " ")
}

func (m uiModel) renderStatusBar() string {
	ago := time.Since(m.lastRefresh).Truncate(time.Second)
	left := fmt.Sprintf(" %s", contextHelp(m.activeView))
	right := fmt.Sprintf("refreshed %s ago ", ago)
	if m.refreshInterval > 0 {
		right = fmt.Sprintf("poll %s | ", m.refreshInterval) + right
	}
	gap := strings.Repeat(" ", max(0, m.width-len(left)-len(right)))
	return statusBarStyle.Render(left + gap + right)
}

// findTrain returns the record with the given identity, or nil when it has
// left the feed.
func (m uiModel) findTrain(id string) *trains.Record {
	for i := range m.snap.Records {
		if m.snap.Records[i].Identity() == id {
			return &m.snap.Records[i]
		}
	}
	return nil
}

// --- Trains table view ---

// tableColumns fixes the column layout. Widths leave room for the header
// titles with their sort indicator; the last column runs free.
var tableColumns = []struct {
	key   trains.SortKey
	width int
}{
	{trains.SortByNumber, 10},
	{trains.SortByRoute, 22},
	{trains.SortByFrom, 16},
	{trains.SortByTo, 16},
	{trains.SortByStatus, 0},
}

// columnValue returns a record's display text for one column.
func columnValue(r trains.Record, k trains.SortKey) string {
	switch k {
	case trains.SortByRoute:
		return r.RouteName
	case trains.SortByFrom:
		return r.From
	case trains.SortByTo:
		return r.To
	case trains.SortByStatus:
		return r.Status()
	default:
		return r.Number
	}
}

// renderHeaderRow renders the column titles with their 1-5 select keys and
// the sort indicator on the active column.
func (m uiModel) renderHeaderRow() string {
	var b strings.Builder
	for i, c := range tableColumns {
		title := fmt.Sprintf("%d:%s", i+1, c.key)
		if m.view.Key == c.key {
			title += " " + m.view.Dir.Indicator()
		}
		if c.width == 0 {
			b.WriteString(title)
		} else {
			b.WriteString(cell(title, c.width))
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// renderRow renders one record as a fixed-width table row.
func renderRow(r trains.Record) string {
	var b strings.Builder
	for _, c := range tableColumns {
		v := columnValue(r, c.key)
		if c.width == 0 {
			b.WriteString(v)
		} else {
			b.WriteString(cell(v, c.width))
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func (m uiModel) renderTrains() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Trains"))
	if m.view.LateOnly {
		b.WriteString(" ")
		b.WriteString(lateBadgeStyle.Render("[late only]"))
	}
	b.WriteRune('\n')

	b.WriteString(dimStyle.Render("  " + m.renderHeaderRow()))
	b.WriteRune('\n')

	for i, r := range m.rows {
		style := onTimeStyle
		if r.Late() {
			style = lateStyle
		}

		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		line := cursor + renderRow(r)
		if i == m.selected {
			b.WriteString(style.Bold(true).Render(line))
		} else {
			b.WriteString(style.Render(line))
		}
		b.WriteRune('\n')
	}

	if len(m.rows) == 0 {
		b.WriteString(dimStyle.Render("  (no trains found)"))
		b.WriteRune('\n')
		if m.view.LateOnly && m.snap.Total > 0 {
			b.WriteString(dimStyle.Render("  the late-only filter hides every train; press o to show all"))
		} else {
			b.WriteString(dimStyle.Render("  waiting for a feed; load one with ttv --import <file>"))
			b.WriteRune('\n')
			b.WriteString(dimStyle.Render("  watching " + m.dbPath))
		}
		b.WriteRune('\n')
	}

	return b.String()
}

// --- Train detail view ---

func (m uiModel) renderTrainDetailFor(id string) string {
	var b strings.Builder

	rec := m.findTrain(id)
	if rec == nil {
		b.WriteString(dimStyle.Render("  (train no longer in the feed)"))
		b.WriteRune('\n')
		b.WriteString(dimStyle.Render("  press esc to return to the table"))
		b.WriteRune('\n')
		return b.String()
	}

	b.WriteString(detailHeaderStyle.Render("Train " + rec.Number))
	if status := rec.Status(); status != "" {
		b.WriteString("  ")
		if rec.Late() {
			b.WriteString(lateBadgeStyle.Render(status))
		} else {
			b.WriteString(onTimeBadgeStyle.Render(status))
		}
	}
	b.WriteRune('\n')
	b.WriteString(dimStyle.Render("  " + rec.RouteName))
	b.WriteRune('\n')

	b.WriteString(detailSectionStyle.Render("Journey"))
	b.WriteRune('\n')
	b.WriteString(fmt.Sprintf("  From:          %s\n", rec.From))
	b.WriteString(fmt.Sprintf("  To:            %s\n", rec.To))
	b.WriteString(fmt.Sprintf("  Heading:       %s\n", rec.Heading))
	b.WriteString(fmt.Sprintf("  Last visited:  %s\n", rec.LastVisitedStation))

	b.WriteString(detailSectionStyle.Render("Punctuality"))
	b.WriteRune('\n')
	if rec.Punctuality == "" {
		b.WriteString(dimStyle.Render("  (not reported)"))
		b.WriteRune('\n')
	} else {
		b.WriteString(fmt.Sprintf("  %s\n", rec.Status()))
		b.WriteString(dimStyle.Render("  raw code: " + rec.Punctuality))
		b.WriteRune('\n')
	}

	return b.String()
}

// --- Split-pane rendering ---

// renderSplitPane renders two content panes side by side with a vertical separator.
func renderSplitPane(left, right string, leftWidth, rightWidth, maxHeight int) string {
	leftLines := strings.Split(left, "\n")
	rightLines := strings.Split(right, "\n")

	// Pad to equal height.
	maxLines := max(len(leftLines), len(rightLines))
	if maxLines > maxHeight {
		maxLines = maxHeight
	}
	for len(leftLines) < maxLines {
		leftLines = append(leftLines, "")
	}
	for len(rightLines) < maxLines {
		rightLines = append(rightLines, "")
	}

	sep := dimStyle.Render("│")
	var b strings.Builder
	for i := 0; i < maxLines; i++ {
		l := padOrTruncate(stripAnsi(leftLines[i]), leftLines[i], leftWidth)
		r := rightLines[i]
		b.WriteString(l)
		b.WriteString(" ")
		b.WriteString(sep)
		b.WriteString(" ")
		b.WriteString(r)
		b.WriteRune('\n')
	}
	return b.String()
}

// padOrTruncate pads or truncates a line to the target visible width.
// raw is the string without ANSI codes (for width calculation),
// styled is the actual string with ANSI codes.
func padOrTruncate(raw, styled string, width int) string {
	visWidth := len(raw)
	if visWidth >= width {
		// Truncate: just use raw truncated (lose styling on overflow).
		if len(raw) > width {
			return raw[:width]
		}
		return styled
	}
	// Pad with spaces.
	return styled + strings.Repeat(" ", width-visWidth)
}

// stripAnsi removes ANSI escape sequences for width calculations.
func stripAnsi(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEsc = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// --- Helpers ---

// cell pads or trims a value to a fixed column width.
func cell(s string, width int) string {
	if utf8.RuneCountInString(s) > width {
		rs := []rune(s)
		s = string(rs[:width-1]) + "…"
	}
	return fmt.Sprintf("%-*s", width, s)
}

// truncateLines truncates each line in content to at most width visible
// characters, preserving ANSI escape codes. This prevents terminal line
// wrapping when the window is resized narrower.
func truncateLines(content string, width int) string {
	if width <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	return strings.Join(lines, "\n")
}
