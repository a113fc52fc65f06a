package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/roomplan/internal/core"
	"github.com/vovakirdan/roomplan/internal/layout"
	"github.com/vovakirdan/roomplan/internal/metrics"
	"github.com/vovakirdan/roomplan/internal/storage"
)

// New blocks are this size, in meters.
const (
	newBlockW = 1.0
	newBlockH = 1.0
)

const defaultStatusTTL = 2500 * time.Millisecond

// EditorOptions carries the editor's collaborators. Every field is optional.
type EditorOptions struct {
	Metrics     *metrics.Metrics
	Logger      *log.Logger // never the terminal the editor draws on
	StatusTTL   time.Duration
	SnapshotDir string // default ~/.roomplan/snapshots
	User        string
}

// EditorModel is the Bubble Tea model for editing one room.
// Moves and resizes are gestures: they run through the resolver on every key
// press and reach the store only on commit.
type EditorModel struct {
	store     *storage.Store
	roomID    string
	name      string
	version   int64
	plan      layout.Plan
	screen    *core.Screen
	config    core.RuntimeConfig
	opts      EditorOptions
	logger    *log.Logger
	keyMapper *KeyMapper

	selected   int // index into plan.Placements, -1 for none
	gesture    *layout.Gesture
	doorMode   bool
	doorOrigin *layout.Door // door as stored when door editing began
	doorDirty  bool

	status      string
	statusColor core.Color
	statusUntil time.Time

	quitting bool
	back     bool
}

// NewEditorModel creates an editor for rec. store may be nil, in which case
// edits stay in memory.
func NewEditorModel(store *storage.Store, rec *storage.RoomRecord, cfg core.RuntimeConfig, opts EditorOptions) EditorModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.StatusTTL <= 0 {
		opts.StatusTTL = defaultStatusTTL
	}
	m := EditorModel{
		store:     store,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		opts:      opts,
		logger:    opts.Logger,
		keyMapper: NewKeyMapper(),
		selected:  -1,
	}
	m.setRoom(rec)
	return m
}

// setRoom replaces the editor state with a freshly loaded room. The selection
// follows the placement id when it still exists.
func (m *EditorModel) setRoom(rec *storage.RoomRecord) {
	selectedID := m.selectedID()

	m.roomID = rec.ID
	m.name = rec.Name
	m.version = rec.Version
	m.plan = layout.Plan{
		Shape:      rec.Plan.Shape,
		Placements: append([]layout.Placement(nil), rec.Plan.Placements...),
	}
	if rec.Plan.Door != nil {
		d := *rec.Plan.Door
		m.plan.Door = &d
	}
	m.gesture = nil
	m.doorMode = false
	m.doorDirty = false
	m.doorOrigin = nil

	m.selected = m.plan.Index(selectedID)
	if m.selected < 0 && len(m.plan.Placements) > 0 {
		m.selected = 0
	}
}

func (m EditorModel) selectedID() string {
	if m.selected < 0 || m.selected >= len(m.plan.Placements) {
		return ""
	}
	return m.plan.Placements[m.selected].ID
}

// Init starts the status tick loop.
func (m EditorModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if m.status != "" && time.Time(msg).After(m.statusUntil) {
			m.status = ""
		}
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action.IsMove():
		if m.doorMode {
			m.slideDoor(action.Direction())
		} else {
			m.drag(action.Direction())
		}
		return m, nil
	case action.IsResize():
		if !m.doorMode {
			m.resize(action.Direction())
		}
		return m, nil
	}

	switch action {
	case core.ActionNext:
		m.cycle(1)
	case core.ActionPrev:
		m.cycle(-1)
	case core.ActionDoorMode:
		m.toggleDoorMode()
	case core.ActionNextWall:
		if m.doorMode {
			m.nextWall()
		}
	case core.ActionAddBlock:
		m.addBlock()
	case core.ActionCommit:
		m.commit()
	case core.ActionCancel:
		m.cancel()
	case core.ActionSnapshot:
		m.saveSnapshot()
	case core.ActionBack:
		m.back = true
	}

	return m, nil
}

func (m *EditorModel) setStatus(text string, c core.Color) {
	m.status = text
	m.statusColor = c
	m.statusUntil = time.Now().Add(m.opts.StatusTTL)
}

// activeGesture returns the running gesture or begins one on the selection.
func (m *EditorModel) activeGesture() (layout.Gesture, bool) {
	if m.selected < 0 {
		m.setStatus("nothing selected (tab selects, n adds a block)", core.ColorYellow)
		return layout.Gesture{}, false
	}
	if m.gesture != nil {
		return *m.gesture, true
	}
	return layout.BeginGesture(m.plan.Placements[m.selected]), true
}

func (m *EditorModel) drag(dir core.Point) {
	g, ok := m.activeGesture()
	if !ok {
		return
	}
	delta := core.Pt(dir.X*m.config.NudgeStep, dir.Y*m.config.NudgeStep)
	next, res := g.Drag(delta, m.plan.Placements, m.plan.Shape)
	m.gesture = &next
	m.plan.Placements[m.selected] = next.Placement()

	switch res.Outcome {
	case layout.Blocked:
		probe := g.Placement()
		probe.Rect = probe.Rect.MoveTo(probe.Rect.Origin().Add(delta))
		v := layout.Check(probe, m.plan.Placements, m.plan.Shape)
		m.opts.Metrics.IncRejection(v.Reason.String())
		m.setStatus("blocked: "+v.String(), core.ColorYellow)
	case layout.SlidX, layout.SlidY:
		m.setStatus(res.Outcome.String(), core.ColorGray)
	}
}

func (m *EditorModel) resize(dir core.Point) {
	g, ok := m.activeGesture()
	if !ok {
		return
	}
	delta := core.Pt(dir.X*m.config.ResizeStep, dir.Y*m.config.ResizeStep)
	next, res := g.Resize(delta, m.plan.Placements, m.plan.Shape)
	m.gesture = &next
	m.plan.Placements[m.selected] = next.Placement()
	if !res.Accepted {
		m.opts.Metrics.IncRejection("resize")
		m.setStatus("cannot resize there", core.ColorYellow)
	}
}

func (m *EditorModel) cycle(step int) {
	n := len(m.plan.Placements)
	if n == 0 {
		m.setStatus("room is empty (n adds a block)", core.ColorYellow)
		return
	}
	m.commitGesture()
	if m.selected < 0 {
		m.selected = 0
		if step < 0 {
			m.selected = n - 1
		}
		return
	}
	m.selected = ((m.selected+step)%n + n) % n
}

func (m *EditorModel) toggleDoorMode() {
	if m.doorMode {
		m.commitDoor()
		m.doorMode = false
		m.doorOrigin = nil
		return
	}

	m.commitGesture()
	if m.plan.Door != nil {
		d := *m.plan.Door
		m.doorOrigin = &d
	} else {
		m.doorOrigin = nil
		for _, w := range m.plan.Shape.Walls() {
			if d, ok := layout.PlaceDoor(m.plan.Shape, w.ID, 0.5, m.config.DoorWidth); ok {
				m.plan.Door = &d
				m.doorDirty = true
				break
			}
		}
		if m.plan.Door == nil {
			m.setStatus("no wall is long enough for a door", core.ColorYellow)
			return
		}
	}
	m.doorMode = true
	m.setStatus("door: arrows slide, w next wall, enter saves", core.ColorMagenta)
}

func (m *EditorModel) slideDoor(dir core.Point) {
	if m.plan.Door == nil {
		return
	}
	d := *m.plan.Door
	w, ok := m.plan.Shape.Wall(d.Wall)
	if !ok {
		return
	}
	along := dir.X
	if w.Orientation == core.Vertical {
		along = dir.Y
	}
	if along == 0 {
		m.setStatus(fmt.Sprintf("the %s wall runs the other way", d.Wall), core.ColorYellow)
		return
	}
	if moved, ok := layout.PlaceDoor(m.plan.Shape, d.Wall, d.Position+along*m.config.DoorStep, d.Width); ok {
		m.plan.Door = &moved
		m.doorDirty = true
	}
}

func (m *EditorModel) nextWall() {
	if m.plan.Door == nil {
		return
	}
	d := *m.plan.Door
	walls := m.plan.Shape.Walls()
	start := 0
	for i, w := range walls {
		if w.ID == d.Wall {
			start = i
		}
	}
	for k := 1; k < len(walls); k++ {
		w := walls[(start+k)%len(walls)]
		if moved, ok := layout.PlaceDoor(m.plan.Shape, w.ID, d.Position, d.Width); ok {
			m.plan.Door = &moved
			m.doorDirty = true
			m.setStatus("door on "+w.ID.String(), core.ColorMagenta)
			return
		}
	}
	m.setStatus("no other wall fits the door", core.ColorYellow)
}

func (m *EditorModel) addBlock() {
	m.commitGesture()
	shape := m.plan.Shape
	pos := layout.SuggestInitialPosition(newBlockW, newBlockH, shape)
	p := layout.Placement{
		ID:   storage.NewID(),
		Kind: layout.KindBlock,
		Rect: core.NewRect(pos.X, pos.Y, newBlockW, newBlockH),
	}
	if v := layout.Check(p, m.plan.Placements, shape); !v.OK() {
		m.opts.Metrics.IncRejection(v.Reason.String())
		m.setStatus("no free corner for a new block: "+v.String(), core.ColorYellow)
		return
	}
	if m.write(metrics.ActionPlacement, func() (int64, error) {
		return m.store.CommitPlacement(m.roomID, m.version, p)
	}) != metrics.OutcomeOK {
		return
	}
	m.plan.Placements = append(m.plan.Placements, p)
	m.selected = len(m.plan.Placements) - 1
	m.setStatus("block added", core.ColorGreen)
}

func (m *EditorModel) commit() {
	if m.doorMode {
		if !m.doorDirty {
			m.setStatus("door unchanged", core.ColorGray)
			return
		}
		m.commitDoor()
		return
	}
	if m.gesture == nil || !m.gesture.Changed() {
		m.gesture = nil
		m.setStatus("nothing to save", core.ColorGray)
		return
	}
	m.commitGesture()
}

// commitGesture ends the running gesture and writes it through.
func (m *EditorModel) commitGesture() {
	if m.gesture == nil {
		return
	}
	g := *m.gesture
	m.gesture = nil
	p, changed := g.Commit()
	if !changed {
		return
	}

	switch m.write(metrics.ActionPlacement, func() (int64, error) {
		return m.store.CommitPlacement(m.roomID, m.version, p)
	}) {
	case metrics.OutcomeOK:
		m.opts.Metrics.ObserveGesture(g.Ticks)
		m.setStatus("saved "+describe(p), core.ColorGreen)
	case metrics.OutcomeConflict:
		// reloaded from the store
	default:
		if i := m.plan.Index(p.ID); i >= 0 {
			m.plan.Placements[i] = g.Cancel()
		}
	}
}

func (m *EditorModel) commitDoor() {
	if !m.doorDirty {
		return
	}
	door := m.plan.Door
	switch m.write(metrics.ActionDoor, func() (int64, error) {
		return m.store.CommitDoor(m.roomID, m.version, door)
	}) {
	case metrics.OutcomeOK:
		d := *door
		m.doorOrigin = &d
		m.doorDirty = false
		m.setStatus(fmt.Sprintf("door saved on %s", door.Wall), core.ColorGreen)
	case metrics.OutcomeConflict:
	default:
		m.plan.Door = m.doorOrigin
		m.doorDirty = false
		m.doorMode = m.doorOrigin != nil
	}
}

func (m *EditorModel) cancel() {
	switch {
	case m.gesture != nil:
		m.plan.Placements[m.selected] = m.gesture.Cancel()
		m.gesture = nil
		m.setStatus("cancelled", core.ColorGray)
	case m.doorMode && m.doorDirty:
		if m.doorOrigin != nil {
			d := *m.doorOrigin
			m.plan.Door = &d
		} else {
			m.plan.Door = nil
			m.doorMode = false
		}
		m.doorDirty = false
		m.setStatus("door change discarded", core.ColorGray)
	case m.doorMode:
		m.doorMode = false
		m.doorOrigin = nil
	}
}

// write runs one store write and reports its metrics outcome. A version
// conflict reloads the room.
func (m *EditorModel) write(action string, fn func() (int64, error)) string {
	if m.store == nil {
		return metrics.OutcomeOK
	}
	version, err := fn()
	switch {
	case err == nil:
		m.version = version
		m.opts.Metrics.IncCommit(action, metrics.OutcomeOK)
		m.logger.Info("commit", "room", m.roomID, "action", action, "version", version, "user", m.opts.User)
		return metrics.OutcomeOK

	case errors.Is(err, storage.ErrVersionConflict):
		m.opts.Metrics.IncCommit(action, metrics.OutcomeConflict)
		m.logger.Warn("version conflict", "room", m.roomID, "action", action, "user", m.opts.User)
		m.reload()
		m.setStatus("room changed elsewhere; reloaded", core.ColorBrightRed)
		return metrics.OutcomeConflict

	case errors.Is(err, storage.ErrInvalidPlacement):
		m.opts.Metrics.IncCommit(action, metrics.OutcomeInvalid)
		m.logger.Warn("commit rejected", "room", m.roomID, "action", action, "error", err)
		m.setStatus(strings.TrimPrefix(err.Error(), "storage: "), core.ColorBrightRed)
		return metrics.OutcomeInvalid

	default:
		m.opts.Metrics.IncCommit(action, metrics.OutcomeError)
		m.logger.Error("commit failed", "room", m.roomID, "action", action, "error", err)
		m.setStatus("save failed: "+err.Error(), core.ColorBrightRed)
		return metrics.OutcomeError
	}
}

func (m *EditorModel) reload() {
	rec, err := m.store.Room(m.roomID)
	if err != nil {
		m.logger.Error("reload failed", "room", m.roomID, "error", err)
		return
	}
	if rec == nil {
		m.setStatus("room was deleted", core.ColorBrightRed)
		m.back = true
		return
	}
	m.setRoom(rec)
}

// saveSnapshot writes the current canvas as plain text.
func (m *EditorModel) saveSnapshot() {
	m.draw()

	dir := m.opts.SnapshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.setStatus("snapshot failed: "+err.Error(), core.ColorBrightRed)
			return
		}
		dir = filepath.Join(home, ".roomplan", "snapshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.setStatus("snapshot failed: "+err.Error(), core.ColorBrightRed)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.roomID, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.setStatus("snapshot failed: "+err.Error(), core.ColorBrightRed)
		return
	}
	m.setStatus("snapshot saved to "+path, core.ColorGreen)
}

func (m EditorModel) canvas() Canvas {
	return NewCanvas(m.plan.Shape, m.screen.Width()-canvasLeft-1, m.screen.Height()-canvasTop-4, m.config.CellsPerMeter)
}

// draw renders the editor into the screen buffer.
func (m EditorModel) draw() {
	s := m.screen
	s.Clear()
	h := s.Height()

	s.DrawTextColored(1, 0, fmt.Sprintf("%s  v%d  %s", m.name, m.version, m.plan.Shape), core.ColorBrightWhite)
	mode := "EDIT"
	if m.doorMode {
		mode = "DOOR"
	}
	if m.gesture != nil || m.doorDirty {
		mode += "*"
	}
	s.DrawTextColored(s.Width()-len(mode)-1, 0, mode, core.ColorBrightCyan)

	c := m.canvas()
	c.DrawPlan(s, m.plan, CanvasState{
		Selected: m.selectedID(),
		Dragging: m.gesture != nil,
		DoorEdit: m.doorMode,
	})

	info := c.scaleLabel()
	switch {
	case m.doorMode && m.plan.Door != nil:
		d := m.plan.Door
		info = fmt.Sprintf("door on %s at %.2f, width %gm", d.Wall, d.Position, d.Width)
	case m.selected >= 0:
		info = describe(m.plan.Placements[m.selected])
	}
	s.DrawText(1, h-3, info)
	s.DrawTextColored(1, h-2, "arrows move  S-arrows resize  tab select  n block  d door  enter save  esc cancel  q quit", core.ColorGray)
	if m.status != "" {
		s.DrawTextColored(1, h-1, m.status, m.statusColor)
	}
}

// View renders the current state to a string for display.
func (m EditorModel) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m EditorModel) IsQuitting() bool {
	return m.quitting
}

// BackToPicker returns true if user asked to return to the room list.
func (m EditorModel) BackToPicker() bool {
	return m.back
}

// Plan returns the plan as currently shown, including uncommitted gestures.
func (m EditorModel) Plan() layout.Plan {
	return m.plan
}

// Version returns the room version the editor last saw.
func (m EditorModel) Version() int64 {
	return m.version
}

// Status returns the current status line.
func (m EditorModel) Status() string {
	return m.status
}

func describe(p layout.Placement) string {
	name := p.Label
	if name == "" {
		name = p.Kind.String()
	}
	return fmt.Sprintf("%s at %.2f,%.2f size %.2fx%.2f", name, p.Rect.X, p.Rect.Y, p.Rect.W, p.Rect.H)
}

// RunEditor opens the editor for one room in the current terminal.
func RunEditor(store *storage.Store, rec *storage.RoomRecord, cfg core.RuntimeConfig, opts EditorOptions) error {
	p := tea.NewProgram(
		NewEditorModel(store, rec, cfg, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
