package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/ontograph/pkg/tree"
)

// Browser styles
var (
	browserCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	browserDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	browserPanelStyle  = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// =============================================================================
// TreeModel - Interactive hierarchy browser
// =============================================================================

// treeRow is one visible line of the browser.
type treeRow struct {
	node   *tree.Node
	depth  int
	parent int // row index of the parent, -1 for roots
}

// TreeModel is the bubbletea model for browsing a forest. Ordinary roots
// start expanded and orphan buckets start collapsed.
type TreeModel struct {
	roots    []*tree.Node
	expanded map[*tree.Node]bool
	rows     []treeRow

	Cursor int
	Offset int
	Height int
}

// newTreeModel creates a browser over res.
func newTreeModel(res *tree.Result) TreeModel {
	m := TreeModel{
		roots:    res.Roots,
		expanded: make(map[*tree.Node]bool),
		Height:   20,
	}
	for _, r := range res.Roots {
		if !r.IsOrphanBucket {
			m.expanded[r] = true
		}
	}
	m.refresh()
	return m
}

// Selected returns the node under the cursor.
func (m TreeModel) Selected() *tree.Node {
	if len(m.rows) == 0 {
		return nil
	}
	return m.rows[m.Cursor].node
}

func (m TreeModel) Init() tea.Cmd {
	return nil
}

func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "home", "g":
			m.move(-len(m.rows))
		case "end", "G":
			m.move(len(m.rows))
		case "enter", " ":
			if n := m.Selected(); n != nil && !n.IsLeaf() {
				m.expanded[n] = !m.expanded[n]
				m.refresh()
			}
		case "right", "l":
			if n := m.Selected(); n != nil && !n.IsLeaf() && !m.expanded[n] {
				m.expanded[n] = true
				m.refresh()
			}
		case "left", "h":
			m.collapseOrParent()
		case "E":
			m.setAll(true)
		case "C":
			m.setAll(false)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
		m.move(0)
	}
	return m, nil
}

func (m TreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Ontology"))
	b.WriteString("\n")
	b.WriteString(browserDimStyle.Render("↑/↓ navigate  ⏎ toggle  ←/→ collapse/expand  E/C all  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.rows))
	for i := m.Offset; i < end; i++ {
		row := m.rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = browserCursorStyle.Render("▸ ")
		}
		marker := "  "
		if !row.node.IsLeaf() {
			marker = "▸ "
			if m.expanded[row.node] {
				marker = "▾ "
			}
		}
		b.WriteString(cursor + strings.Repeat("  ", row.depth) + browserDimStyle.Render(marker) + nodeLabel(row.node))
		b.WriteString("\n")
	}

	if n := m.Selected(); n != nil {
		b.WriteString("\n")
		b.WriteString(browserPanelStyle.Render(detailPanel(n)))
		b.WriteString("\n")
	}
	b.WriteString(browserDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))
	return b.String()
}

// detailPanel describes the selected node.
func detailPanel(n *tree.Node) string {
	lines := []string{kindStyle(n.Kind()).Render(n.Label())}
	if n.IsOrphanBucket {
		lines = append(lines, browserDimStyle.Render(fmt.Sprintf("%d unplaced %s records", len(n.Children), n.Kind())))
		return strings.Join(lines, "\n")
	}
	lines = append(lines, browserDimStyle.Render(fmt.Sprintf("%s · %s", n.Kind(), n.Code())))
	if n.Node.Description != "" {
		lines = append(lines, n.Node.Description)
	}
	if n.DescendantMetricCount > 0 {
		lines = append(lines, fmt.Sprintf("%d KPIs below", n.DescendantMetricCount))
	}
	if len(n.Uses) > 0 {
		lines = append(lines, "uses "+strings.Join(n.Uses, ", "))
	}
	return strings.Join(lines, "\n")
}

// move shifts the cursor by delta, clamped, and scrolls to keep it visible.
func (m *TreeModel) move(delta int) {
	if len(m.rows) == 0 {
		m.Cursor, m.Offset = 0, 0
		return
	}
	m.Cursor = max(0, min(m.Cursor+delta, len(m.rows)-1))
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// collapseOrParent collapses an expanded node, otherwise jumps to its parent.
func (m *TreeModel) collapseOrParent() {
	n := m.Selected()
	if n == nil {
		return
	}
	if m.expanded[n] {
		m.expanded[n] = false
		m.refresh()
		return
	}
	if p := m.rows[m.Cursor].parent; p >= 0 {
		m.move(p - m.Cursor)
	}
}

func (m *TreeModel) setAll(open bool) {
	var walk func(n *tree.Node)
	walk = func(n *tree.Node) {
		if n.IsLeaf() {
			return
		}
		m.expanded[n] = open
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range m.roots {
		walk(r)
	}
	m.refresh()
}

// refresh recomputes the visible rows, keeping the cursor on the same node
// when it is still visible and moving it to the top otherwise.
func (m *TreeModel) refresh() {
	current := m.Selected()

	m.rows = nil
	var visit func(n *tree.Node, depth, parent int)
	visit = func(n *tree.Node, depth, parent int) {
		idx := len(m.rows)
		m.rows = append(m.rows, treeRow{node: n, depth: depth, parent: parent})
		if !m.expanded[n] {
			return
		}
		for _, c := range n.Children {
			visit(c, depth+1, idx)
		}
	}
	for _, r := range m.roots {
		visit(r, 0, -1)
	}

	m.Cursor = 0
	for i, row := range m.rows {
		if row.node == current {
			m.Cursor = i
			break
		}
	}
	m.move(0)
}
