package main

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"salient/pkg/attention"
)

// feedChangedMsg is sent when the watched feed file changes on disk.
type feedChangedMsg struct{}

// rankedMsg carries a completed ranking pass over the feed.
type rankedMsg struct {
	posts  int
	ranked []attention.RankedPost
}

// rankFailedMsg carries a feed read or ranking error.
type rankFailedMsg struct{ err error }

// watchModel is the Bubble Tea model for "salient watch": it re-ranks the
// feed file whenever it changes and shows the ranked posts with attention
// heat in a scrollable viewport.
type watchModel struct {
	path      string
	threshold float64
	ranker    *attention.Ranker
	theme     Theme

	vp     viewport.Model
	ready  bool
	ranked []attention.RankedPost
	posts  int
	err    error
}

func newWatchModel(path string, threshold float64, ranker *attention.Ranker) watchModel {
	return watchModel{
		path:      path,
		threshold: threshold,
		ranker:    ranker,
		theme:     DefaultTheme(),
	}
}

// Init implements tea.Model.
func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.rankCmd(), watchFeedFile(m.path))
}

// rankCmd returns a tea.Cmd that reads the feed and ranks it.
func (m watchModel) rankCmd() tea.Cmd {
	return func() tea.Msg {
		posts, err := readPostsFile(m.path)
		if err != nil {
			return rankFailedMsg{err}
		}
		ranked, err := m.ranker.RankPosts(posts, m.threshold)
		if err != nil {
			return rankFailedMsg{err}
		}
		return rankedMsg{posts: len(posts), ranked: ranked}
	}
}

// Update implements tea.Model.
func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.rankCmd()
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := 1
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - headerHeight - footerHeight
		}
		m.vp.SetContent(m.content())

	case feedChangedMsg:
		// Re-rank, then re-arm the watcher for the next change.
		return m, tea.Batch(m.rankCmd(), watchFeedFile(m.path))

	case rankedMsg:
		m.ranked = msg.ranked
		m.posts = msg.posts
		m.err = nil
		m.vp.SetContent(m.content())

	case rankFailedMsg:
		m.err = msg.err
	}

	return m, nil
}

// content renders the ranked posts for the viewport.
func (m watchModel) content() string {
	return formatRanked(m.ranked, m.theme, true)
}

// View implements tea.Model.
func (m watchModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("salient watch · %s", m.path))
	status := fmt.Sprintf("%d/%d posts ≥ %+.2f", len(m.ranked), m.posts, m.threshold)
	if m.err != nil {
		status = m.theme.Hot.Render(fmt.Sprintf("error: %v", m.err))
	}
	header := title + "\n" + m.theme.Muted.Render(status) + "\n"

	body := m.vp.View()
	if !m.ready {
		body = "loading..."
	}

	footer := m.theme.Muted.Render("j/k scroll · r re-rank · q quit")
	return header + body + "\n" + footer
}

// watchFeedFile returns a tea.Cmd that waits for the feed file to change.
// It watches the parent directory (editors replace files rather than write
// in place) and debounces bursts of events before reporting one change.
func watchFeedFile(path string) tea.Cmd {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("fsnotify: failed to create watcher: %v", err)
		return nil
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		log.Printf("fsnotify: failed to watch %s: %v", filepath.Dir(path), err)
		return nil
	}

	base := filepath.Base(path)
	return func() tea.Msg {
		defer func() { _ = watcher.Close() }()

		debounce := newDebounceTimer()
		defer debounce.Stop()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Base(event.Name) == base {
					resetDebounceTimer(debounce)
				}

			case <-debounce.C:
				return feedChangedMsg{}

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				log.Printf("fsnotify: watcher error: %v", err)
				return nil
			}
		}
	}
}

// newDebounceTimer creates a stopped timer for debouncing file system events.
func newDebounceTimer() *time.Timer {
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	return timer
}

// resetDebounceTimer resets the debounce timer to coalesce rapid-fire events.
func resetDebounceTimer(timer *time.Timer) {
	const debounceDuration = 100 * time.Millisecond
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(debounceDuration)
}
