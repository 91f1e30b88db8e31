package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/codalotl/diffreview/internal/render"
	"github.com/codalotl/diffreview/internal/review"
	"github.com/codalotl/diffreview/internal/simplelogger"
	"github.com/mattn/go-runewidth"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	countsStyle = lipgloss.NewStyle().Faint(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

type model struct {
	sess *review.Session
	opts Options

	keys     keyMap
	help     help.Model
	viewport viewport.Model
	watcher  *watcher

	// selected is the ID of the selected pending segment, or 0 if nothing is pending.
	selected int

	status    string
	statusErr bool

	ready    bool
	width    int
	height   int
	quitting bool
	err      error

	copyText func(string) error
}

func newModel(sess *review.Session, opts Options) *model {
	m := &model{
		sess:     sess,
		opts:     opts,
		keys:     newKeyMap(),
		help:     help.New(),
		copyText: clipboard.WriteAll,
	}
	m.selectFrom(0)
	m.syncKeys()
	return m
}

func (m *model) Init() tea.Cmd {
	return m.watchNext()
}

func (m *model) watchNext() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.next()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(0, 0)
			m.viewport.KeyMap = viewportKeys()
			m.ready = true
		}
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		m.syncKeys()
		m.refresh()
		return m, cmd

	case filesChangedMsg:
		m.reload(msg.path)
		m.syncKeys()
		m.refresh()
		return m, m.watchNext()

	case watchErrMsg:
		m.setError(fmt.Errorf("watch: %w", msg.err))
		return m, m.watchNext()
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	case key.Matches(msg, m.keys.Next):
		m.move(1)
	case key.Matches(msg, m.keys.Prev):
		m.move(-1)
	case key.Matches(msg, m.keys.Accept):
		m.do(review.Command{Kind: review.CommandAccept, SegmentID: m.selected})
	case key.Matches(msg, m.keys.Reject):
		m.do(review.Command{Kind: review.CommandReject, SegmentID: m.selected})
	case key.Matches(msg, m.keys.Undo):
		m.do(review.Command{Kind: review.CommandUndo})
	case key.Matches(msg, m.keys.AcceptAll):
		m.do(review.Command{Kind: review.CommandAcceptAll})
	case key.Matches(msg, m.keys.RejectAll):
		m.do(review.Command{Kind: review.CommandRejectAll})
	case key.Matches(msg, m.keys.Copy):
		if err := m.copyText(m.sess.Text()); err != nil {
			m.setError(fmt.Errorf("copy: %w", err))
		} else {
			m.setStatus("copied result to clipboard")
		}
	default:
		if m.ready {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return cmd
		}
	}
	return nil
}

// do applies c and fixes up the selection. After an undo the restored segment is selected; after a decision the selection moves to the next pending segment.
func (m *model) do(c review.Command) {
	var undone review.HistoryEntry
	var hadUndo bool
	if c.Kind == review.CommandUndo {
		undone, hadUndo = m.sess.History().Peek()
	}

	changed, err := m.sess.Do(c)
	if err != nil {
		m.setError(err)
		return
	}
	if !changed {
		m.setStatus("nothing to do")
		return
	}

	switch c.Kind {
	case review.CommandUndo:
		if hadUndo {
			m.selected = undone.SegmentID
			m.setStatus(fmt.Sprintf("undid #%d", undone.SegmentID))
		}
	case review.CommandAccept, review.CommandReject:
		m.setStatus(fmt.Sprintf("%s #%d", pastTense(c.Kind), c.SegmentID))
		m.selectFrom(c.SegmentID)
	default:
		m.setStatus(pastTense(c.Kind) + " all pending")
		m.selectFrom(0)
	}
}

func pastTense(k review.CommandKind) string {
	switch k {
	case review.CommandAccept, review.CommandAcceptAll:
		return "accepted"
	case review.CommandReject, review.CommandRejectAll:
		return "rejected"
	default:
		return "undid"
	}
}

// selectFrom selects the first pending segment with an ID greater than id, wrapping to the first pending segment.
func (m *model) selectFrom(id int) {
	pending := m.sess.Pending()
	m.selected = 0
	if len(pending) == 0 {
		return
	}
	m.selected = pending[0].ID
	for _, seg := range pending {
		if seg.ID > id {
			m.selected = seg.ID
			return
		}
	}
}

// move moves the selection delta pending segments, clamping at the ends.
func (m *model) move(delta int) {
	pending := m.sess.Pending()
	if len(pending) == 0 {
		m.selected = 0
		return
	}
	idx := 0
	for i, seg := range pending {
		if seg.ID == m.selected {
			idx = i
			break
		}
	}
	idx = max(0, min(len(pending)-1, idx+delta))
	m.selected = pending[idx].ID
}

func (m *model) reload(path string) {
	original, revised, err := m.opts.Reload()
	if err != nil {
		m.setError(fmt.Errorf("reload: %w", err))
		return
	}
	if original == m.sess.Original() && revised == m.sess.Revised() {
		return
	}
	doc, err := m.sess.Compare(original, revised)
	if err != nil {
		m.setError(err)
		return
	}
	simplelogger.Log("tui: %s changed, re-compared", path)
	m.setStatus(fmt.Sprintf("%s changed: new review with %d segments", path, len(doc.Segments())))
	m.selectFrom(0)
}

// syncKeys enables exactly the commands that can change the session right now.
func (m *model) syncKeys() {
	seg, ok := m.selectedSegment()
	canDecide := ok && seg.Actionable()
	pending := len(m.sess.Pending()) > 0

	m.keys.Accept.SetEnabled(canDecide)
	m.keys.Reject.SetEnabled(canDecide)
	m.keys.AcceptAll.SetEnabled(pending)
	m.keys.RejectAll.SetEnabled(pending)
	m.keys.Next.SetEnabled(pending)
	m.keys.Prev.SetEnabled(pending)
	m.keys.Undo.SetEnabled(m.sess.History().Len() > 0)
}

func (m *model) selectedSegment() (*review.Segment, bool) {
	doc := m.sess.Document()
	if doc == nil || m.selected == 0 {
		return nil, false
	}
	return doc.Segment(m.selected)
}

func (m *model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *model) setError(err error) {
	simplelogger.Log("tui: %v", err)
	m.status = err.Error()
	m.statusErr = true
}

// layout sizes the viewport to the space left by the header, status, and help lines.
func (m *model) layout() {
	if !m.ready {
		return
	}
	helpHeight := lipgloss.Height(m.help.View(m.keys))
	m.viewport.Width = m.width
	m.viewport.Height = max(1, m.height-2-helpHeight)
	m.refresh()
}

// refresh re-renders the document into the viewport and scrolls the selected segment into view.
func (m *model) refresh() {
	if !m.ready {
		return
	}
	layout := render.ANSILayout(m.sess.Document(), render.ANSIOptions{Color: m.opts.Color, Selected: m.selected})
	m.viewport.SetContent(layout.Text)

	line, ok := layout.LabelLines[m.selected]
	if !ok {
		return
	}
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height/2)
	}
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "initializing"
	}

	counts := m.sess.Document().Counts()
	header := headerStyle.Render(fitWidth(m.opts.Title, m.width/2)) + "  " +
		countsStyle.Render(fmt.Sprintf("%d pending, %d accepted, %d rejected", counts.Pending, counts.Accepted, counts.Rejected))

	status := fitWidth(m.status, m.width)
	if m.statusErr {
		status = errorStyle.Render(status)
	} else {
		status = statusStyle.Render(status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), status, m.help.View(m.keys))
}

// fitWidth truncates s to w display columns.
func fitWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}
