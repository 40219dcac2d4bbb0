// Package tui implements the interactive terminal grid editor: a
// Bubbletea model that renders the table, moves a cell cursor, edits
// expressions in-place and recalculates after every edit.
package tui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkovalenko-dev/gridcalc"
	"github.com/dkovalenko-dev/gridcalc/store"
)

const cellWidth = 12

// inputMode selects what the input line is editing.
type inputMode int

const (
	modeNavigate inputMode = iota
	modeEditCell
	modeResize
)

// Config holds the editor configuration.
type Config struct {
	Rows     int
	Columns  int
	FilePath string
	Logger   *slog.Logger
}

// DefaultConfig returns the default editor configuration.
func DefaultConfig() Config {
	return Config{
		Rows:    10,
		Columns: 8,
	}
}

// Model is the Bubbletea model for the grid editor.
type Model struct {
	service *gridcalc.TableService
	files   *store.FileStore

	cursorRow int
	cursorCol int
	mode      inputMode
	input     textinput.Model

	filePath    string
	status      string
	statusIsErr bool

	width  int
	height int
}

// New creates an editor model. When cfg.FilePath names an existing
// snapshot it is loaded, otherwise an empty table of the configured
// dimensions is created.
func New(cfg Config) (Model, error) {
	service, err := gridcalc.NewTableService(cfg.Rows, cfg.Columns, cfg.Logger)
	if err != nil {
		return Model{}, err
	}

	files := store.NewFileStore(cfg.Logger)

	m := Model{
		service:  service,
		files:    files,
		filePath: cfg.FilePath,
		status:   "ready",
	}

	if cfg.FilePath != "" {
		if snap, err := files.Load(cfg.FilePath); err == nil {
			if err := service.Load(snap); err != nil {
				return Model{}, err
			}
			m.status = fmt.Sprintf("loaded %s", cfg.FilePath)
		}
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 256
	m.input = ti
	return m, nil
}

// Run starts the editor and blocks until it exits.
func Run(cfg Config) error {
	m, err := New(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != modeNavigate {
			return m.handleInputKey(msg)
		}
		return m.handleNavKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m Model) handleNavKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	table := m.service.Table()

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursorRow > 0 {
			m.cursorRow--
		}
	case "down", "j":
		if m.cursorRow < table.Rows()-1 {
			m.cursorRow++
		}
	case "left", "h":
		if m.cursorCol > 0 {
			m.cursorCol--
		}
	case "right", "l":
		if m.cursorCol < table.Columns()-1 {
			m.cursorCol++
		}

	case "enter", "i":
		return m.startEditing()

	case "delete", "backspace", "d":
		if err := m.service.SetCellExpression(m.cursorRow, m.cursorCol, ""); err == nil {
			m.service.CalculateAll()
			m.setStatus("cell cleared", false)
		}

	case "r":
		m.service.CalculateAll()
		m.setStatus("recalculated", false)

	case "R":
		return m.startResizing()

	case "ctrl+s":
		return m.save()
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNavigate
		m.input.Blur()
		m.setStatus("cancelled", false)
		return m, nil

	case "enter":
		return m.commitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) startEditing() (tea.Model, tea.Cmd) {
	cell, err := m.service.Table().Cell(m.cursorRow, m.cursorCol)
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}

	m.mode = modeEditCell
	m.input.SetValue(cell.Expression())
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) startResizing() (tea.Model, tea.Cmd) {
	table := m.service.Table()
	m.mode = modeResize
	m.input.SetValue(fmt.Sprintf("%dx%d", table.Rows(), table.Columns()))
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) commitInput() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	mode := m.mode
	m.mode = modeNavigate
	m.input.Blur()

	switch mode {
	case modeEditCell:
		if err := m.service.SetCellExpression(m.cursorRow, m.cursorCol, text); err != nil {
			m.setStatus(err.Error(), true)
		} else {
			m.setStatus("ok", false)
		}
	case modeResize:
		rows, columns, err := parseDimensions(text)
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		if err := m.service.ResizeTable(rows, columns); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		if m.cursorRow >= rows {
			m.cursorRow = rows - 1
		}
		if m.cursorCol >= columns {
			m.cursorCol = columns - 1
		}
		m.setStatus(fmt.Sprintf("resized to %dx%d", rows, columns), false)
	}

	m.service.CalculateAll()
	return m, nil
}

// parseDimensions parses "ROWSxCOLS" input, e.g. "10x8".
func parseDimensions(text string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(strings.ToLower(text)), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected ROWSxCOLS, e.g. 10x8")
	}

	rows, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("bad row count %q", parts[0])
	}
	columns, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("bad column count %q", parts[1])
	}
	return rows, columns, nil
}

func (m Model) save() (tea.Model, tea.Cmd) {
	if m.filePath == "" {
		m.setStatus("no file path configured", true)
		return m, nil
	}

	if err := m.files.Save(m.filePath, m.service.Export()); err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	m.setStatus(fmt.Sprintf("saved %s", m.filePath), false)
	return m, nil
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusIsErr = isErr
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("gridcalc"))
	b.WriteString("\n\n")
	b.WriteString(GridStyle.Render(m.renderGrid()))
	b.WriteString("\n")
	b.WriteString(m.renderExpressionLine())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderGrid() string {
	table := m.service.Table()
	var rows []string

	// column header row
	header := []string{HeaderCellStyle.Width(5).Render("")}
	for col := 0; col < table.Columns(); col++ {
		ref := gridcalc.ReferenceFromIndices(0, col)
		header = append(header, HeaderCellStyle.Width(cellWidth).Render(ref.Column))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for row := 0; row < table.Rows(); row++ {
		line := []string{HeaderCellStyle.Width(5).Render(fmt.Sprintf("%d", row+1))}
		for col := 0; col < table.Columns(); col++ {
			line = append(line, m.renderCell(row, col))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCell(row, col int) string {
	cell, err := m.service.Table().Cell(row, col)
	if err != nil {
		return CellStyle.Width(cellWidth).Render("")
	}

	text := cell.DisplayValue()
	if len(text) > cellWidth-1 {
		text = text[:cellWidth-2] + "…"
	}

	style := CellStyle
	switch {
	case row == m.cursorRow && col == m.cursorCol:
		style = CursorCellStyle
	case cell.HasError():
		style = ErrorCellStyle
	}
	return style.Width(cellWidth).Render(text)
}

func (m Model) renderExpressionLine() string {
	if m.mode != modeNavigate {
		return m.input.View()
	}

	ref := gridcalc.ReferenceFromIndices(m.cursorRow, m.cursorCol)
	cell, err := m.service.Table().Cell(m.cursorRow, m.cursorCol)
	if err != nil {
		return ExpressionStyle.Render(ref.String())
	}

	line := fmt.Sprintf("%s: %s", ref, cell.Expression())
	if cell.HasError() {
		line += "  [" + cell.Err() + "]"
	}
	return ExpressionStyle.Render(line)
}

func (m Model) renderStatusBar() string {
	if m.statusIsErr {
		return StatusErrorStyle.Render(m.status)
	}
	return StatusBarStyle.Render(m.status)
}

func (m Model) renderHelp() string {
	if m.mode != modeNavigate {
		return HelpStyle.Render("\n" + strings.Join([]string{
			RenderKeyHint("Enter", "commit"),
			RenderKeyHint("Esc", "cancel"),
		}, "  "))
	}

	return HelpStyle.Render("\n" + strings.Join([]string{
		RenderKeyHint("↑↓←→", "move"),
		RenderKeyHint("Enter", "edit"),
		RenderKeyHint("d", "clear"),
		RenderKeyHint("r", "recalc"),
		RenderKeyHint("R", "resize"),
		RenderKeyHint("Ctrl+S", "save"),
		RenderKeyHint("q", "quit"),
	}, "  "))
}
