package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/pomobubby/internal/model"
)

func (m Model) handleBoardKey(msg tea.KeyMsg) (Model, bool) {
	switch msg.String() {
	case "h", "left":
		if m.Board.Column > 0 {
			m.Board.Column--
		}
	case "l", "right":
		if m.Board.Column < len(model.Columns)-1 {
			m.Board.Column++
		}
	case "j", "down":
		if m.Board.Cursor[m.Board.Column] < len(m.currentColumn())-1 {
			m.Board.Cursor[m.Board.Column]++
		}
	case "k", "up":
		if m.Board.Cursor[m.Board.Column] > 0 {
			m.Board.Cursor[m.Board.Column]--
		}
	case "a":
		m = m.openAddTask()
	case "H":
		m = m.moveSelected(-1)
	case "L":
		m = m.moveSelected(1)
	case "J":
		m = m.reorderSelected(1)
	case "K":
		m = m.reorderSelected(-1)
	case "x", "delete":
		m = m.deleteSelected()
	default:
		return m, false
	}
	return m, true
}

func (m Model) currentColumn() []model.Task {
	return m.board.Column(model.Columns[m.Board.Column])
}

func (m Model) selectedTask() (model.Task, bool) {
	col := m.currentColumn()
	i := m.Board.Cursor[m.Board.Column]
	if i < 0 || i >= len(col) {
		return model.Task{}, false
	}
	return col[i], true
}

func (m *Model) clampBoardCursor() {
	for i, status := range model.Columns {
		n := len(m.board.Column(status))
		if m.Board.Cursor[i] >= n {
			m.Board.Cursor[i] = n - 1
		}
		if m.Board.Cursor[i] < 0 {
			m.Board.Cursor[i] = 0
		}
	}
}

// selectTask points the cursor at id, switching column if needed.
func (m *Model) selectTask(id string) {
	t, ok := m.board.Get(id)
	if !ok {
		return
	}
	col := model.ColumnIndex(t.Status)
	m.Board.Column = col
	for i, c := range m.board.Column(t.Status) {
		if c.ID == id {
			m.Board.Cursor[col] = i
			return
		}
	}
}

func (m Model) moveSelected(delta int) Model {
	t, ok := m.selectedTask()
	if !ok {
		return m
	}
	target := m.Board.Column + delta
	if target < 0 || target >= len(model.Columns) {
		return m
	}
	return m.moveTask(t, model.Columns[target])
}

func (m Model) moveTask(t model.Task, to model.Status) Model {
	entered, err := m.board.Move(t.ID, to)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	before := m.failures
	m.saveBoard()
	m.clampBoardCursor()
	m.selectTask(t.ID)
	if entered {
		m.info(before, fmt.Sprintf("🎉 %q is done!", t.Title))
	} else {
		m.info(before, fmt.Sprintf("moved %q to %s", t.Title, to.Label()))
	}
	return m
}

func (m Model) reorderSelected(delta int) Model {
	t, ok := m.selectedTask()
	if !ok {
		return m
	}
	if !m.board.Reorder(t.ID, delta) {
		return m
	}
	m.saveBoard()
	m.selectTask(t.ID)
	return m
}

func (m Model) deleteSelected() Model {
	t, ok := m.selectedTask()
	if !ok {
		return m
	}
	return m.deleteTask(t)
}

func (m Model) deleteTask(t model.Task) Model {
	if !m.board.Delete(t.ID) {
		return m
	}
	before := m.failures
	m.saveBoard()
	m.clampBoardCursor()
	m.info(before, fmt.Sprintf("deleted %q", t.Title))
	return m
}

func (m Model) addTask(title, description string) (Model, error) {
	t, err := m.board.Add(title, description)
	if err != nil {
		return m, err
	}
	before := m.failures
	m.saveBoard()
	m.selectTask(t.ID)
	m.info(before, fmt.Sprintf("added %q", t.Title))
	return m, nil
}

func (m Model) openAddTask() Model {
	m.AddTask = AddTaskState{Active: true}
	m.titleInput.SetValue("")
	m.descArea.SetValue("")
	m.titleInput.Focus()
	m.descArea.Blur()
	return m
}

func (m Model) closeAddTask() Model {
	m.AddTask = AddTaskState{}
	m.titleInput.Blur()
	m.descArea.Blur()
	return m
}

func (m Model) handleAddTaskKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closeAddTask(), nil
	case "tab", "shift+tab":
		if m.AddTask.Field == 0 {
			m.AddTask.Field = 1
			m.titleInput.Blur()
			return m, m.descArea.Focus()
		}
		m.AddTask.Field = 0
		m.descArea.Blur()
		return m, m.titleInput.Focus()
	case "ctrl+s":
		return m.submitAddTask(), nil
	case "enter":
		if m.AddTask.Field == 0 {
			return m.submitAddTask(), nil
		}
	}

	var cmd tea.Cmd
	if m.AddTask.Field == 0 {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.descArea, cmd = m.descArea.Update(msg)
	}
	return m, cmd
}

func (m Model) submitAddTask() Model {
	title := strings.TrimSpace(m.titleInput.Value())
	next, err := m.addTask(title, strings.TrimSpace(m.descArea.Value()))
	if err != nil {
		m.AddTask.Err = "A title is required."
		return m
	}
	return next.closeAddTask()
}
