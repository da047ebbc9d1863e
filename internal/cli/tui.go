package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/seqdiag/pkg/seq"
	"github.com/matzehuels/seqdiag/pkg/seq/parser"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// DiagramFile is a diagram source found by the picker.
type DiagramFile struct {
	Path         string
	Title        string
	Participants int
	Messages     int
	ModTime      time.Time
	// Problem is the first parse error, or "" when the file parses.
	Problem string
}

// findDiagrams lists the diagram files directly inside dir, sorted by name.
// Each file is parsed so the picker can show what it contains.
func findDiagrams(dir string) ([]DiagramFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []DiagramFile
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != diagramExt {
			continue
		}
		path := filepath.Join(dir, e.Name())
		f := DiagramFile{Path: path}
		if info, err := e.Info(); err == nil {
			f.ModTime = info.ModTime()
		}
		src, err := os.ReadFile(path)
		if err != nil {
			f.Problem = err.Error()
			files = append(files, f)
			continue
		}
		d, err := parser.Parse(string(src))
		if err != nil {
			if line, ok := seq.ErrorLine(err); ok {
				f.Problem = fmt.Sprintf("error on line %d", line)
			} else {
				f.Problem = err.Error()
			}
		} else {
			f.Title = d.Title()
			f.Participants = d.Participants.Len()
			f.Messages = d.MessageCount()
		}
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// FileListModel is the bubbletea model for interactive diagram selection.
type FileListModel struct {
	Files    []DiagramFile
	Cursor   int
	Selected *DiagramFile
	Height   int
	Offset   int
}

// NewFileListModel creates a new file list model.
func NewFileListModel(files []DiagramFile) FileListModel {
	return FileListModel{
		Files:  files,
		Height: 15,
	}
}

func (m FileListModel) Init() tea.Cmd {
	return nil
}

func (m FileListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveTo(m.Cursor - 1)
		case "down", "j":
			m.moveTo(m.Cursor + 1)
		case "home", "g":
			m.moveTo(0)
		case "end", "G":
			m.moveTo(len(m.Files) - 1)
		case "enter":
			if f, ok := m.current(); ok && f.Problem == "" {
				m.Selected = &f
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		m.moveTo(m.Cursor)
	}
	return m, nil
}

// moveTo puts the cursor on row i, clamped to the list, and scrolls the
// window so the cursor stays visible.
func (m *FileListModel) moveTo(i int) {
	m.Cursor = max(0, min(i, len(m.Files)-1))
	switch {
	case m.Cursor < m.Offset:
		m.Offset = m.Cursor
	case m.Cursor >= m.Offset+m.Height:
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m FileListModel) current() (DiagramFile, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Files) {
		return DiagramFile{}, false
	}
	return m.Files[m.Cursor], true
}

// cells returns the table row for f.
func (f DiagramFile) cells(selected bool) []string {
	cursor := "  "
	if selected {
		cursor = "▸ "
	}
	title := f.Title
	if title == "" {
		title = "—"
	}
	contents := fmt.Sprintf("%s, %s", plural(f.Participants, "lane"), plural(f.Messages, "message"))
	if f.Problem != "" {
		contents = f.Problem
	}
	return []string{cursor, filepath.Base(f.Path), title, contents, formatRelativeTime(f.ModTime)}
}

func (m FileListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Diagram"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  ⏎ render  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Files))

	var rows [][]string
	for i := m.Offset; i < end; i++ {
		rows = append(rows, m.Files[i].cells(i == m.Cursor))
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "File", "Title", "Contents", "Modified").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Files) {
				return lipgloss.NewStyle()
			}
			f := m.Files[idx]
			switch {
			case f.Problem != "" && col == 3:
				return lipgloss.NewStyle().Foreground(colorRed)
			case f.Problem != "":
				return listDimStyle
			case idx == m.Cursor:
				return listSelectedStyle
			case col == 4:
				return listDimStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Files))))

	return b.String()
}

// pickDiagram runs the picker over the diagram files in dir and returns
// the chosen path, or "" if the user quit.
func pickDiagram(dir string) (string, error) {
	files, err := findDiagrams(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no %s files in %s", diagramExt, dir)
	}

	final, err := tea.NewProgram(NewFileListModel(files)).Run()
	if err != nil {
		return "", fmt.Errorf("picker: %w", err)
	}
	m := final.(FileListModel)
	if m.Selected == nil {
		return "", nil
	}
	return m.Selected.Path, nil
}

func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
