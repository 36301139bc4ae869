package controller

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	m "github.com/mouse-blink/snapscope/internal/model"
)

const (
	// ANSI color codes for de-emphasized entries (dark gray, faint).
	grayColor  = "\033[2;90m" // Faint + dark gray
	resetColor = "\033[0m"    // Reset
)

// ErrReviewAborted is returned when the reviewer quits without
// confirming a selection.
var ErrReviewAborted = errors.New("review aborted")

// ReviewTUI presents the classified snapshots for interactive approval
// before they are fed to the baseline updater.
type ReviewTUI struct {
	output io.Writer
}

// NewReviewTUI creates a new ReviewTUI.
func NewReviewTUI(output io.Writer) *ReviewTUI {
	return &ReviewTUI{output: output}
}

// Review runs the interactive approval loop. In-scope snapshots start
// approved, out-of-scope ones start rejected; the reviewer can toggle
// any entry. Returns the approved list, or ErrReviewAborted when the
// reviewer quits without confirming.
func (t *ReviewTUI) Review(result m.ScopeAnalysisResult) ([]m.FailedSnapshot, error) {
	model := newReviewModel(result)

	// Get initial terminal size
	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.height = height
			model.width = width
		}
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())

	final, err := program.Run()
	if err != nil {
		return nil, err
	}

	finished, ok := final.(reviewModel)
	if !ok || finished.aborted {
		return nil, ErrReviewAborted
	}

	return finished.approvedSnapshots(), nil
}

// reviewEntry is one snapshot row in the approval list.
type reviewEntry struct {
	snapshot m.FailedSnapshot
	inScope  bool
	approved bool
}

// reviewModel represents the Bubble Tea model for the approval list.
type reviewModel struct {
	entries  []reviewEntry
	cursor   int
	offset   int // Current scroll offset
	height   int
	width    int
	aborted  bool
	quitting bool
}

func newReviewModel(result m.ScopeAnalysisResult) reviewModel {
	entries := make([]reviewEntry, 0, result.Metadata.TotalFailures)

	for _, snapshot := range result.InScope {
		entries = append(entries, reviewEntry{snapshot: snapshot, inScope: true, approved: true})
	}

	for _, snapshot := range result.OutOfScope {
		entries = append(entries, reviewEntry{snapshot: snapshot, inScope: false, approved: false})
	}

	return reviewModel{entries: entries}
}

func (rm reviewModel) approvedSnapshots() []m.FailedSnapshot {
	approved := []m.FailedSnapshot{}

	for _, entry := range rm.entries {
		if entry.approved {
			approved = append(approved, entry.snapshot)
		}
	}

	return approved
}

func (rm reviewModel) Init() tea.Cmd {
	return nil
}

func (rm reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.height = msg.Height
		rm.width = msg.Width

		return rm, nil

	case tea.KeyMsg:
		return rm.handleKeyPress(msg)
	}

	return rm, nil
}

func (rm reviewModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		rm.aborted = true
		rm.quitting = true

		return rm, tea.Quit
	case tea.KeyEnter:
		rm.quitting = true
		return rm, tea.Quit
	case tea.KeySpace:
		return rm.toggleCurrent(), nil
	default:
		// Handle the remaining keys in the string switch below.
	}

	switch msg.String() {
	case "q":
		rm.aborted = true
		rm.quitting = true

		return rm, tea.Quit

	case "down", "j":
		if rm.cursor < len(rm.entries)-1 {
			rm.cursor++
		}

		rm.offset = clampOffset(rm.offset, rm.cursor, rm.itemsPerPage())

		return rm, nil

	case "up", "k":
		if rm.cursor > 0 {
			rm.cursor--
		}

		rm.offset = clampOffset(rm.offset, rm.cursor, rm.itemsPerPage())

		return rm, nil

	case "g", "home":
		rm.cursor = 0
		rm.offset = 0

		return rm, nil

	case "G", "end":
		rm.cursor = len(rm.entries) - 1
		rm.offset = clampOffset(rm.offset, rm.cursor, rm.itemsPerPage())

		return rm, nil

	case "x":
		return rm.toggleCurrent(), nil
	}

	return rm, nil
}

func (rm reviewModel) toggleCurrent() reviewModel {
	if rm.cursor >= 0 && rm.cursor < len(rm.entries) {
		rm.entries[rm.cursor].approved = !rm.entries[rm.cursor].approved
	}

	return rm
}

// clampOffset keeps the cursor visible inside the current page.
func clampOffset(offset, cursor, perPage int) int {
	if perPage <= 0 {
		return offset
	}

	if cursor < offset {
		return cursor
	}

	if cursor >= offset+perPage {
		return cursor - perPage + 1
	}

	return offset
}

// itemsPerPage calculates how many entries fit on screen.
func (rm reviewModel) itemsPerPage() int {
	if rm.height == 0 {
		return 10 // Default
	}

	// Reserve space for header, summary, footer and help lines.
	reserved := 10

	available := rm.height - reserved
	if available < 1 {
		return 1
	}

	return available
}

func (rm reviewModel) View() string {
	var b strings.Builder

	b.WriteString("╔════════════════════════════════════════════════════════════════╗\n")
	b.WriteString("║              Snapscope - Baseline Update Review                ║\n")
	b.WriteString("╚════════════════════════════════════════════════════════════════╝\n\n")

	if len(rm.entries) == 0 {
		b.WriteString("  No failing snapshots to review.\n")
		return b.String()
	}

	approved := len(rm.approvedSnapshots())
	fmt.Fprintf(&b, "  %d snapshot(s), %d approved for baseline update\n\n", len(rm.entries), approved)

	perPage := rm.itemsPerPage()

	start := rm.offset

	end := start + perPage
	if end > len(rm.entries) {
		end = len(rm.entries)
	}

	for i := start; i < end; i++ {
		entry := rm.entries[i]

		cursor := "  "
		if i == rm.cursor {
			cursor = "> "
		}

		check := "[ ]"
		if entry.approved {
			check = "[x]"
		}

		scope := "in-scope"
		if !entry.inScope {
			scope = "OUT-OF-SCOPE"
		}

		line := fmt.Sprintf("  %s%s %s  (%s)\n", cursor, check, entry.snapshot, scope)
		if !entry.inScope && !entry.approved {
			line = grayColor + line + resetColor
		}

		b.WriteString(line)
	}

	b.WriteString("\n")

	if len(rm.entries) > perPage {
		fmt.Fprintf(&b, "  Showing %d-%d of %d\n", start+1, end, len(rm.entries))
	}

	b.WriteString("  ↑/k: up | ↓/j: down | space/x: toggle | enter: confirm | q: abort\n")

	return b.String()
}
