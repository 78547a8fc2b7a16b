package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lectern-app/lectern/internal/curation"
	"github.com/lectern-app/lectern/internal/formatter"
	"github.com/lectern-app/lectern/internal/models"
	"github.com/lectern-app/lectern/internal/publish"
	"github.com/lectern-app/lectern/internal/services"
	"github.com/lectern-app/lectern/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	TopicListView ViewState = iota
	VideoListView
)

type topicsFetchedMsg struct {
	blocks []models.TopicBlock
	err    error
}

type publishUpdateMsg publish.Update

type snapshotSavedMsg struct {
	path string
	err  error
}

// Opts wires a Model to its collaborators. Updates must be the same channel
// passed to the publish machine so state changes reach the footer.
type Opts struct {
	Session      *curation.Session
	Machine      *publish.Machine
	Publisher    publish.Publisher
	Ingestor     services.Ingestor
	DocumentPath string
	PlaylistName string
	ExportDir    string
	ExportFormat formatter.Format
	Updates      <-chan publish.Update
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	session *curation.Session

	machine   *publish.Machine
	publisher publish.Publisher
	updates   <-chan publish.Update
	status    publish.Update

	ingestor     services.Ingestor
	documentPath string
	playlistName string

	exportDir    string
	exportFormat formatter.Format

	width  int
	height int

	topicList list.Model
	videoList list.Model
	topic     string // selected topic name, valid in VideoListView

	notice string
	err    error
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Opts) *Model {
	m := &Model{
		ctx:          ctx,
		view:         TopicListView,
		session:      opts.Session,
		machine:      opts.Machine,
		publisher:    opts.Publisher,
		updates:      opts.Updates,
		ingestor:     opts.Ingestor,
		documentPath: opts.DocumentPath,
		playlistName: opts.PlaylistName,
		exportDir:    opts.ExportDir,
		exportFormat: opts.ExportFormat,
		help:         help.New(),
		keys:         newKeyMap(),
	}
	m.rebuildTopicList()
	m.rebuildVideoList()
	return m
}

// Init starts listening for publish updates and, when the session is empty,
// kicks off document ingestion.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForPublish()}
	if m.session.TopicCount() == 0 && m.ingestor != nil {
		cmds = append(cmds, m.ingestTopics())
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.topicList.SetSize(msg.Width-4, msg.Height-8)
		m.videoList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case TopicListView:
			return m.handleTopicListKeys(msg)
		case VideoListView:
			return m.handleVideoListKeys(msg)
		}

	case topicsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.session.SetTopicBlocks(msg.blocks)
		m.rebuildTopicList()
		return m, nil

	case publishUpdateMsg:
		m.status = publish.Update(msg)
		return m, m.waitForPublish()

	case snapshotSavedMsg:
		if msg.err != nil {
			m.notice = styles.err.Render(fmt.Sprintf("save failed: %v", msg.err))
		} else {
			m.notice = fmt.Sprintf("saved %s", msg.path)
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	var body string
	switch m.view {
	case TopicListView:
		body = m.renderTopicList()
	case VideoListView:
		body = m.renderVideoList()
	}

	return fmt.Sprintf("%s%s", body, m.renderFooter())
}

func (m *Model) handleTopicListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.topicList.SelectedItem().(topicItem); ok {
			m.topic = item.block.Topic
			m.view = VideoListView
			m.rebuildVideoList()
		}
		return m, nil
	case key.Matches(msg, m.keys.sort):
		m.cycleSort()
		return m, nil
	case key.Matches(msg, m.keys.publish):
		return m, m.startPublish()
	case key.Matches(msg, m.keys.download):
		return m, m.saveSnapshot()
	case key.Matches(msg, m.keys.dismiss):
		m.machine.Dismiss()
		m.notice = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.topicList, cmd = m.topicList.Update(msg)
	return m, cmd
}

func (m *Model) handleVideoListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = TopicListView
		m.rebuildTopicList()
		return m, nil
	case key.Matches(msg, m.keys.mark):
		if item, ok := m.videoList.SelectedItem().(videoItem); ok {
			if m.session.ToggleMark(item.video.ID) {
				index := m.videoList.Index()
				m.rebuildVideoList()
				m.videoList.Select(index)
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.sort):
		m.cycleSort()
		m.rebuildVideoList()
		return m, nil
	case key.Matches(msg, m.keys.publish):
		return m, m.startPublish()
	case key.Matches(msg, m.keys.download):
		return m, m.saveSnapshot()
	case key.Matches(msg, m.keys.dismiss):
		m.machine.Dismiss()
		m.notice = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.videoList, cmd = m.videoList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case TopicListView:
		m.topicList, cmd = m.topicList.Update(msg)
	case VideoListView:
		m.videoList, cmd = m.videoList.Update(msg)
	}
	return m, cmd
}

// cycleSort advances to the next sort criterion. Re-sorting resets the marked
// set to the fresh auto-selection, same as any other parameter change.
func (m *Model) cycleSort() {
	m.session.SetSortCriterion(m.session.Criterion().Next())
	m.rebuildTopicList()
	m.notice = fmt.Sprintf("sorted by %s", m.session.Criterion())
}

func (m *Model) rebuildTopicList() {
	marked := m.session.Marked()
	blocks := m.session.Curated()

	items := make([]list.Item, len(blocks))
	for i, block := range blocks {
		count := 0
		for _, video := range block.Videos {
			if marked.Contains(video.ID) {
				count++
			}
		}
		items[i] = topicItem{block: block, marked: count}
	}

	m.topicList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.topicList.Title = "Syllabus Topics"
	m.topicList.SetSize(m.width-4, m.height-8)
}

func (m *Model) rebuildVideoList() {
	marked := m.session.Marked()

	var items []list.Item
	for _, block := range m.session.Curated() {
		if block.Topic != m.topic {
			continue
		}
		items = make([]list.Item, len(block.Videos))
		for i, video := range block.Videos {
			items[i] = videoItem{video: video, marked: marked.Contains(video.ID)}
		}
		break
	}

	m.videoList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.videoList.Title = fmt.Sprintf("%s • sorted by %s", m.topic, m.session.Criterion())
	m.videoList.SetSize(m.width-4, m.height-8)
}

func (m *Model) ingestTopics() tea.Cmd {
	return func() tea.Msg {
		blocks, err := m.ingestor.IngestDocument(m.ctx, m.documentPath)
		return topicsFetchedMsg{blocks: blocks, err: err}
	}
}

// startPublish sends the marked set to the publisher. When no authenticated
// publisher is available it opens the YouTube watch queue in a browser
// instead; that path has no state transition.
func (m *Model) startPublish() tea.Cmd {
	ids := m.session.PublishIDs()
	if len(ids) == 0 {
		m.notice = styles.warn.Render("nothing marked to publish")
		return nil
	}

	if m.publisher == nil || !m.publisher.Available() {
		url := publish.WatchURL(ids)
		if err := shared.OpenBrowser(url); err != nil {
			m.notice = styles.err.Render(fmt.Sprintf("failed to open browser: %v", err))
			return nil
		}
		m.notice = fmt.Sprintf("opened watch queue with %d videos", len(ids))
		return nil
	}

	req := publish.Request{
		Name:   m.playlistName,
		IDs:    ids,
		Groups: m.session.Projection(),
	}
	go m.machine.Trigger(m.ctx, req)
	return nil
}

func (m *Model) saveSnapshot() tea.Cmd {
	snapshot := m.session.Snapshot(m.playlistName, time.Now().UTC())
	if snapshot.VideoCount() == 0 {
		m.notice = styles.warn.Render("nothing marked to save")
		return nil
	}

	format := m.exportFormat
	dir := m.exportDir
	return func() tea.Msg {
		path, err := formatter.WriteExport(snapshot, format, dir, "")
		return snapshotSavedMsg{path: path, err: err}
	}
}

func (m *Model) waitForPublish() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	return func() tea.Msg {
		return publishUpdateMsg(<-m.updates)
	}
}

func (m *Model) renderTopicList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.sort, m.keys.publish, m.keys.download, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.topicList.View(), helpView)
}

func (m *Model) renderVideoList() string {
	helpKeys := []key.Binding{m.keys.mark, m.keys.sort, m.keys.publish, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.videoList.View(), helpView)
}

// renderFooter shows the publish state banner and any transient notice.
func (m *Model) renderFooter() string {
	var footer string

	switch m.status.State {
	case publish.StateRequesting:
		footer = styles.warn.Render(m.status.Message)
	case publish.StateSuccess:
		footer = styles.ok.Render(fmt.Sprintf("✓ %s", m.status.Message))
	case publish.StateError:
		footer = styles.err.Render(fmt.Sprintf("✗ %s (x to dismiss)", m.status.Message))
	}

	if m.notice != "" {
		if footer != "" {
			footer += "\n"
		}
		footer += styles.help.Render(m.notice)
	}

	if footer == "" {
		return ""
	}
	return "\n" + footer
}
