package tui

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/sadopc/studytrackr/internal/daily"
	"github.com/sadopc/studytrackr/internal/store"
)

const (
	testTasks = `{"2024-01-01":[{"task":"Read","done":true},{"task":"Run","done":false}]}`
	testStudy = `{"2024-01-01":6,"2024-01-03":8,"2024-01-02":7}`
	testSleep = `{"2024-01-01":7.5,"2024-01-02":8}`
)

// countingSource records how many files were fetched.
type countingSource struct {
	store.Source
	calls atomic.Int32
}

func (c *countingSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	c.calls.Add(1)
	return c.Source.Fetch(ctx, name)
}

func writeDataDir(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "data"), 0o755); err != nil {
		t.Fatal(err)
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func newTestStore(t *testing.T, files map[string]string) (*store.Store, *countingSource) {
	t.Helper()
	src := &countingSource{Source: store.NewDirSource(writeDataDir(t, files))}
	return store.New(src, zerolog.Nop()), src
}

func allFiles() map[string]string {
	return map[string]string{
		store.TasksFile:          testTasks,
		store.MetricStudy.File(): testStudy,
		store.MetricSleep.File(): testSleep,
	}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loadedDashboard returns a dashboard that has finished its first load.
func loadedDashboard(t *testing.T, s *store.Store) dashboardModel {
	t.Helper()
	d := newDashboardModel(context.Background(), s)
	d.setSize(100, 80)
	d.selectedDate = "2024-01-01"
	d, _ = d.update(d.loadData()())
	if d.loading {
		t.Fatal("loading should be cleared after data arrives")
	}
	return d
}

// ============================================================
// Task list
// ============================================================

func TestTaskListReadRun(t *testing.T) {
	s := daily.Summarize([]store.TaskEntry{{Task: "Read", Done: true}, {Task: "Run", Done: false}})
	out := ansi.Strip(taskListBody("2024-01-01", s, 60))

	if !strings.Contains(out, "Tasks for 2024-01-01") {
		t.Fatalf("missing header in %q", out)
	}
	if !strings.Contains(out, "1/2 completed") {
		t.Fatalf("missing completion count in %q", out)
	}
	read, run := strings.Index(out, "Read"), strings.Index(out, "Run")
	if read < 0 || run < 0 || read > run {
		t.Fatalf("tasks out of order: Read at %d, Run at %d", read, run)
	}
	if !strings.Contains(out, "✓ Read") || !strings.Contains(out, "○ Run") {
		t.Fatalf("wrong markers in %q", out)
	}
}

func TestTaskRowStyle(t *testing.T) {
	if !taskRowStyle(true).GetStrikethrough() {
		t.Fatal("done rows should be struck through")
	}
	if taskRowStyle(false).GetStrikethrough() {
		t.Fatal("open rows should not be struck through")
	}
}

// sgrStrike matches an SGR sequence that turns on strikethrough.
var sgrStrike = regexp.MustCompile(`\x1b\[(?:[0-9]+;)*9(?:;[0-9]+)*m`)

func TestTaskRowsRenderStrikethrough(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI256)
	defer lipgloss.SetColorProfile(termenv.Ascii)

	if !sgrStrike.MatchString(renderTaskRow(store.TaskEntry{Task: "Read", Done: true})) {
		t.Fatal("done row should be rendered struck through")
	}
	if sgrStrike.MatchString(renderTaskRow(store.TaskEntry{Task: "Run"})) {
		t.Fatal("open row should not be struck through")
	}
}

func TestTaskListEmpty(t *testing.T) {
	for _, tasks := range [][]store.TaskEntry{nil, {}} {
		out := ansi.Strip(taskListBody("2024-01-01", daily.Summarize(tasks), 60))
		if got := strings.TrimSpace(out); got != emptyTasksText {
			t.Fatalf("empty list rendered %q, want %q", got, emptyTasksText)
		}
		if strings.ContainsAny(out, "█░") {
			t.Fatal("empty list should not render a progress bar")
		}
	}
}

func TestTaskBarColors(t *testing.T) {
	bar := newTaskBar(30)
	if bar.FullColor != string(colorPrimary) {
		t.Errorf("expected fill %s, got %s", colorPrimary, bar.FullColor)
	}
	if bar.EmptyColor != string(colorTrack) {
		t.Errorf("expected track %s, got %s", colorTrack, bar.EmptyColor)
	}
	if bar.Width != 30 {
		t.Errorf("expected width 30, got %d", bar.Width)
	}
}

func TestTaskListPanelFitsWidth(t *testing.T) {
	s := daily.Summarize([]store.TaskEntry{{Task: "Read", Done: true}})
	out := renderTaskList("2024-01-01", s, 50)
	for _, line := range strings.Split(ansi.Strip(out), "\n") {
		if w := ansi.StringWidth(line); w > 52 {
			t.Fatalf("line width %d exceeds panel: %q", w, line)
		}
	}
}

// ============================================================
// Dashboard model
// ============================================================

func TestDashboardDefaults(t *testing.T) {
	s, _ := newTestStore(t, allFiles())
	d := newDashboardModel(context.Background(), s)

	if d.selectedDate != today() {
		t.Fatalf("selectedDate = %q, want today %q", d.selectedDate, today())
	}
	if !d.loading {
		t.Fatal("dashboard should start loading")
	}
	if d.focus != store.MetricStudy {
		t.Fatalf("focus = %q, want study", d.focus)
	}
}

func TestDashboardShowsLoading(t *testing.T) {
	s, _ := newTestStore(t, allFiles())
	d := newDashboardModel(context.Background(), s)
	d.setSize(100, 40)

	if !strings.Contains(d.view(), "Loading...") {
		t.Fatal("view should show Loading... before data arrives")
	}
}

func TestDashboardLoadSuccess(t *testing.T) {
	s, src := newTestStore(t, allFiles())
	d := newDashboardModel(context.Background(), s)
	d.setSize(100, 80)

	d, cmd := d.update(d.loadData()())
	if cmd != nil {
		t.Fatal("successful load should not emit a notification")
	}
	if got := src.calls.Load(); got != 3 {
		t.Fatalf("expected 3 fetches, got %d", got)
	}
	if len(d.snapshot.Study) != 3 || len(d.snapshot.Sleep) != 2 {
		t.Fatalf("unexpected snapshot %+v", d.snapshot)
	}
}

func TestDashboardPartialFailure(t *testing.T) {
	files := allFiles()
	delete(files, store.MetricSleep.File())
	s, _ := newTestStore(t, files)

	d := newDashboardModel(context.Background(), s)
	d.setSize(100, 80)
	d.selectedDate = "2024-01-01"

	msg := d.loadData()()
	d, cmd := d.update(msg)
	if d.loading {
		t.Fatal("loading should be cleared after a failed load")
	}
	if cmd == nil {
		t.Fatal("failed load should emit a notification")
	}
	status, ok := cmd().(statusMsg)
	if !ok {
		t.Fatal("notification should be a single statusMsg")
	}
	if !status.isError || !strings.HasPrefix(status.text, "Error Loading Data") {
		t.Fatalf("unexpected notification %+v", status)
	}

	// Data that did load still renders.
	out := ansi.Strip(d.view())
	if !strings.Contains(out, "Read") || !strings.Contains(out, "1/2 completed") {
		t.Fatal("tasks should render after a partial failure")
	}
	if len(d.snapshot.Study) != 3 {
		t.Fatalf("study should be kept, got %d days", len(d.snapshot.Study))
	}

	// Redrawing does not notify again.
	if _, cmd := d.update(tea.WindowSizeMsg{}); cmd != nil {
		t.Fatal("no further notifications expected")
	}
}

func TestDashboardDateChangeDoesNotFetch(t *testing.T) {
	s, src := newTestStore(t, allFiles())
	d := loadedDashboard(t, s)
	before := src.calls.Load()

	d, cmd := d.update(keyPress("right"))
	if cmd != nil {
		t.Fatal("date change should not issue a command")
	}
	if d.selectedDate != "2024-01-02" {
		t.Fatalf("selectedDate = %q, want 2024-01-02", d.selectedDate)
	}
	if src.calls.Load() != before {
		t.Fatal("date change should not fetch")
	}
	if !strings.Contains(ansi.Strip(d.view()), emptyTasksText) {
		t.Fatal("day without tasks should show the empty message")
	}

	d, _ = d.update(keyPress("left"))
	if d.selectedDate != "2024-01-01" {
		t.Fatalf("selectedDate = %q, want 2024-01-01", d.selectedDate)
	}
	d, _ = d.update(keyPress("t"))
	if d.selectedDate != today() {
		t.Fatalf("t should jump to today, got %q", d.selectedDate)
	}
}

func TestDashboardReload(t *testing.T) {
	s, src := newTestStore(t, allFiles())
	d := loadedDashboard(t, s)

	d, cmd := d.update(keyPress("r"))
	if !d.loading || cmd == nil {
		t.Fatal("r should start a reload")
	}
	d, _ = d.update(d.loadData()())
	if d.loading {
		t.Fatal("reload should finish")
	}
	if got := src.calls.Load(); got != 6 {
		t.Fatalf("expected 6 fetches after reload, got %d", got)
	}
}

func TestDashboardReloadWhileLoadingIsIgnored(t *testing.T) {
	s, _ := newTestStore(t, allFiles())
	d := newDashboardModel(context.Background(), s)

	if _, cmd := d.update(keyPress("r")); cmd != nil {
		t.Fatal("reload during a load should be ignored")
	}
}

func TestDashboardExpandFocusedChart(t *testing.T) {
	s, _ := newTestStore(t, allFiles())
	d := loadedDashboard(t, s)

	_, cmd := d.update(keyPress("f"))
	if msg, ok := cmd().(expandMsg); !ok || msg.metric != store.MetricStudy {
		t.Fatalf("f should expand study, got %#v", msg)
	}

	d, _ = d.update(keyPress("c"))
	if d.focus != store.MetricSleep {
		t.Fatal("c should move focus to sleep")
	}
	_, cmd = d.update(keyPress("f"))
	if msg, ok := cmd().(expandMsg); !ok || msg.metric != store.MetricSleep {
		t.Fatalf("f should expand sleep, got %#v", msg)
	}
}

func TestDashboardDatePickerCancel(t *testing.T) {
	s, _ := newTestStore(t, allFiles())
	d := loadedDashboard(t, s)

	d, _ = d.update(keyPress("d"))
	if !d.date.active() {
		t.Fatal("d should open the date picker")
	}
	d, _ = d.update(keyPress("esc"))
	if d.date.active() {
		t.Fatal("esc should close the date picker")
	}
	if d.selectedDate != "2024-01-01" {
		t.Fatal("cancel should keep the selected date")
	}
}

func TestDashboardViewSmall(t *testing.T) {
	s, _ := newTestStore(t, allFiles())
	d := newDashboardModel(context.Background(), s)
	d.setSize(10, 10)
	if d.view() != "Terminal too small" {
		t.Fatal("expected size warning")
	}
}

// ============================================================
// Expanded view
// ============================================================

func TestExpandedLoadsOwnCopy(t *testing.T) {
	s, src := newTestStore(t, allFiles())
	e := newExpandedModel(context.Background(), s, store.MetricSleep)
	e.setSize(100, 30)

	e, cmd := e.open()
	if !e.loading || cmd == nil {
		t.Fatal("open should start a load")
	}
	e, _ = e.update(e.loadData()())
	if e.loading {
		t.Fatal("loading should be cleared")
	}
	if len(e.record) != 2 {
		t.Fatalf("expected 2 sleep days, got %d", len(e.record))
	}
	if got := src.calls.Load(); got != 1 {
		t.Fatalf("expanded view should fetch one file, got %d", got)
	}

	out := ansi.Strip(e.view())
	if !strings.Contains(out, "Sleep Time (Hours) - Expanded View") {
		t.Fatal("missing expanded title")
	}
	if !strings.Contains(out, "Sleep Hours") {
		t.Fatal("expanded chart should show its legend")
	}
}

func TestExpandedIgnoresOtherMetric(t *testing.T) {
	s, _ := newTestStore(t, allFiles())
	e := newExpandedModel(context.Background(), s, store.MetricStudy)
	e, _ = e.open()

	e, _ = e.update(metricDataMsg{metric: store.MetricSleep, record: store.DateValueRecord{"2024-01-01": 1}})
	if !e.loading || len(e.record) != 0 {
		t.Fatal("study view should ignore sleep data")
	}
}

func TestExpandedLoadFailure(t *testing.T) {
	files := allFiles()
	delete(files, store.MetricStudy.File())
	s, _ := newTestStore(t, files)

	e := newExpandedModel(context.Background(), s, store.MetricStudy)
	e.setSize(100, 30)
	e, _ = e.open()
	e, cmd := e.update(e.loadData()())
	if e.err == nil {
		t.Fatal("expected load error")
	}
	if msg, ok := cmd().(statusMsg); !ok || !msg.isError {
		t.Fatal("failure should be reported")
	}
	if !strings.Contains(ansi.Strip(e.view()), "press r to retry") {
		t.Fatal("view should offer a retry")
	}
}

// ============================================================
// App
// ============================================================

func TestAppExpandOpensView(t *testing.T) {
	s, _ := newTestStore(t, allFiles())
	a := NewApp(context.Background(), s, t.TempDir())

	m, cmd := a.Update(expandMsg{metric: store.MetricSleep})
	a = m.(App)
	if a.activeView != viewSleep {
		t.Fatalf("activeView = %d, want sleep", a.activeView)
	}
	if !a.sleep.loading || cmd == nil {
		t.Fatal("expanded view should start its own load")
	}

	m, _ = a.Update(a.sleep.loadData()())
	a = m.(App)
	if a.sleep.loading || len(a.sleep.record) != 2 {
		t.Fatal("sleep data should reach the sleep view")
	}
	if len(a.study.record) != 0 {
		t.Fatal("study view should be untouched")
	}

	m, _ = a.Update(keyPress("esc"))
	if m.(App).activeView != viewDashboard {
		t.Fatal("esc should return to the dashboard")
	}
}

func TestAppTabs(t *testing.T) {
	s, _ := newTestStore(t, allFiles())
	a := NewApp(context.Background(), s, t.TempDir())

	m, _ := a.Update(keyPress("2"))
	if m.(App).activeView != viewStudy {
		t.Fatal("2 should open study")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.(App).activeView != viewSleep {
		t.Fatal("tab should move to sleep")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.(App).activeView != viewDashboard {
		t.Fatal("tab should wrap to the dashboard")
	}
}

func TestGraphAppIsStandalone(t *testing.T) {
	s, _ := newTestStore(t, allFiles())
	a := NewGraphApp(context.Background(), s, t.TempDir(), store.MetricSleep)

	if a.activeView != viewSleep || !a.sleep.loading {
		t.Fatal("graph app should open the sleep view loading")
	}
	if a.Init() == nil {
		t.Fatal("graph app should load on init")
	}

	m, _ := a.Update(keyPress("1"))
	if m.(App).activeView != viewSleep {
		t.Fatal("tabs should be disabled in the standalone view")
	}

	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	out := ansi.Strip(m.View())
	if !strings.Contains(out, "/graph/sleep") {
		t.Fatal("standalone header should show the route")
	}
}

func TestAppStatusExpires(t *testing.T) {
	s, _ := newTestStore(t, allFiles())
	a := NewApp(context.Background(), s, t.TempDir())

	m, cmd := a.Update(statusMsg{text: "first"})
	if cmd == nil {
		t.Fatal("status should schedule its expiry")
	}
	m, _ = m.Update(statusMsg{text: "second", isError: true})
	a = m.(App)

	// The first expiry must not clear the newer status.
	m, _ = a.Update(clearStatusMsg{id: a.statusID - 1})
	if m.(App).status != "second" {
		t.Fatal("stale expiry cleared a newer status")
	}
	m, _ = m.Update(clearStatusMsg{id: a.statusID})
	if m.(App).status != "" {
		t.Fatal("status should clear")
	}
}

func TestAppExportCSV(t *testing.T) {
	s, _ := newTestStore(t, allFiles())
	dir := t.TempDir()
	a := NewApp(context.Background(), s, dir)

	m, _ := a.Update(a.dashboard.loadData()())
	m, _ = m.Update(keyPress("e"))
	if !m.(App).exportPicking {
		t.Fatal("e should open the export picker")
	}
	m, cmd := m.Update(keyPress("enter"))
	if m.(App).exportPicking || cmd == nil {
		t.Fatal("enter should close the picker and export")
	}

	done, ok := cmd().(exportDoneMsg)
	if !ok {
		t.Fatal("expected exportDoneMsg")
	}
	if filepath.Dir(done.path) != dir || !strings.HasSuffix(done.path, ".csv") {
		t.Fatalf("unexpected export path %q", done.path)
	}
	data, err := os.ReadFile(done.path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "2024-01-03,3,8") {
		t.Fatalf("export missing study row:\n%s", data)
	}
}

func TestAppExportPickerNavigation(t *testing.T) {
	s, _ := newTestStore(t, allFiles())
	a := NewApp(context.Background(), s, t.TempDir())
	a.exportPicking = true

	var m tea.Model = a
	for i := 0; i < 10; i++ {
		m, _ = m.Update(keyPress("down"))
	}
	if got := m.(App).exportCursor; got != 5 {
		t.Fatalf("cursor = %d, want last format", got)
	}
	m, _ = m.Update(keyPress("esc"))
	if m.(App).exportPicking {
		t.Fatal("esc should close the picker")
	}
}

func TestAppView(t *testing.T) {
	s, _ := newTestStore(t, allFiles())
	a := NewApp(context.Background(), s, t.TempDir())

	if a.View() != "Loading..." {
		t.Fatal("view before sizing should be Loading...")
	}

	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	m, _ = m.Update(m.(App).dashboard.loadData()())
	out := ansi.Strip(m.View())
	for _, want := range []string{"My study tracker", "Dashboard", "Study", "Sleep", "Select Date:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

// ============================================================
// Helper functions
// ============================================================

func TestShiftDate(t *testing.T) {
	tests := []struct {
		date string
		days int
		want string
	}{
		{"2024-01-31", 1, "2024-02-01"},
		{"2024-03-01", -1, "2024-02-29"},
		{"2024-12-31", 1, "2025-01-01"},
	}
	for _, tt := range tests {
		if got := shiftDate(tt.date, tt.days); got != tt.want {
			t.Errorf("shiftDate(%q, %d) = %q, want %q", tt.date, tt.days, got, tt.want)
		}
	}
	if got := shiftDate("nope", 0); got != today() {
		t.Errorf("unparsable date should shift from today, got %q", got)
	}
}

func TestValidateDate(t *testing.T) {
	for _, ok := range []string{"2024-01-01", " 2024-02-29 "} {
		if err := validateDate(ok); err != nil {
			t.Errorf("validateDate(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "2024-1-1", "2023-02-29", "01/02/2024"} {
		if validateDate(bad) == nil {
			t.Errorf("validateDate(%q) should fail", bad)
		}
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		h    float64
		want string
	}{
		{0, "0.0h"},
		{7.26, "7.3h"},
		{8, "8.0h"},
	}
	for _, tt := range tests {
		if got := formatHours(tt.h); got != tt.want {
			t.Errorf("formatHours(%v) = %q, want %q", tt.h, got, tt.want)
		}
	}
}

func TestGuideMentionsFiles(t *testing.T) {
	text := guideText("public")
	for _, f := range []string{store.TasksFile, store.MetricStudy.File(), store.MetricSleep.File()} {
		if !strings.Contains(text, f) {
			t.Fatalf("guide missing %s", f)
		}
	}
	if renderGuide("public", 60) == "" {
		t.Fatal("rendered guide should not be empty")
	}
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	expected := []string{"Dashboard", "Study", "Sleep"}
	if len(viewNames) != len(expected) {
		t.Fatalf("expected %d view names, got %d", len(expected), len(viewNames))
	}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestMetricView(t *testing.T) {
	if metricView(store.MetricStudy) != viewStudy || metricView(store.MetricSleep) != viewSleep {
		t.Fatal("metric views out of order")
	}
}
