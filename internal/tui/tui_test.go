package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/topsters/internal/config"
	"github.com/handiism/topsters/internal/model"
	"github.com/handiism/topsters/internal/pipeline"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	s := config.DefaultSettings()
	s.OutputPath = t.TempDir()
	s.AccessToken = ""
	return s
}

func TestNewModel_FromSettings(t *testing.T) {
	s := testSettings(t)
	s.Kind = "artist"
	s.TimeRange = "long_term"
	s.GridSize = 20

	m := NewModel(s)
	if kinds[m.kind] != model.KindArtist {
		t.Errorf("kind = %s, want artist", kinds[m.kind])
	}
	if ranges[m.timeRange] != model.RangeLong {
		t.Errorf("range = %s, want long_term", ranges[m.timeRange])
	}
	if m.grid != maxGrid {
		t.Errorf("grid = %d, want %d", m.grid, maxGrid)
	}
	if m.textInput.Value() != s.OutputPath {
		t.Errorf("output = %q, want %q", m.textInput.Value(), s.OutputPath)
	}
}

func TestModel_Toggles(t *testing.T) {
	tests := []struct {
		name     string
		keys     []tea.Msg
		wantKind model.ItemKind
		wantRng  model.TimeRange
		wantGrid int
	}{
		{"defaults", nil, model.KindAlbum, model.RangeShort, 5},
		{"cycle kind", []tea.Msg{runes("k"), runes("k")}, model.KindArtist, model.RangeShort, 5},
		{"kind wraps", []tea.Msg{runes("k"), runes("k"), runes("k")}, model.KindAlbum, model.RangeShort, 5},
		{"cycle range", []tea.Msg{runes("t")}, model.KindAlbum, model.RangeMedium, 5},
		{"grow grid", []tea.Msg{runes("+"), tea.KeyMsg{Type: tea.KeyUp}}, model.KindAlbum, model.RangeShort, 7},
		{"shrink grid stops at min", []tea.Msg{runes("-"), runes("-"), runes("-"), runes("-"), runes("-")}, model.KindAlbum, model.RangeShort, minGrid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := update(t, NewModel(testSettings(t)), tt.keys...)
			if kinds[m.kind] != tt.wantKind {
				t.Errorf("kind = %s, want %s", kinds[m.kind], tt.wantKind)
			}
			if ranges[m.timeRange] != tt.wantRng {
				t.Errorf("range = %s, want %s", ranges[m.timeRange], tt.wantRng)
			}
			if m.grid != tt.wantGrid {
				t.Errorf("grid = %d, want %d", m.grid, tt.wantGrid)
			}

			s := m.runSettings()
			if s.Kind != string(tt.wantKind) || s.TimeRange != string(tt.wantRng) || s.GridSize != tt.wantGrid {
				t.Errorf("runSettings() = %s/%s/%d", s.Kind, s.TimeRange, s.GridSize)
			}
		})
	}
}

func TestModel_EditOutput(t *testing.T) {
	s := testSettings(t)
	m := update(t, NewModel(s), runes("o"))
	if !m.editing {
		t.Fatal("o should start editing the output directory")
	}

	// Toggle keys are plain text while editing.
	m = update(t, m, runes("k"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.editing {
		t.Error("enter should stop editing")
	}
	if kinds[m.kind] != model.KindAlbum {
		t.Error("k changed kind while editing")
	}
	if got := m.runSettings().OutputPath; got != s.OutputPath+"k" {
		t.Errorf("OutputPath = %q, want %q", got, s.OutputPath+"k")
	}
	if m.settings.OutputPath != s.OutputPath {
		t.Error("runSettings must not modify the base settings")
	}
}

func TestModel_StartWithoutToken(t *testing.T) {
	m := update(t, NewModel(testSettings(t)), tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != StateError {
		t.Fatalf("state = %v, want StateError", m.state)
	}
	if !strings.Contains(m.err.Error(), config.EnvAccessToken) {
		t.Errorf("err = %v, want mention of %s", m.err, config.EnvAccessToken)
	}
	if m.manager != nil {
		t.Error("manager should not be created")
	}
}

func TestModel_StartInvalidSettings(t *testing.T) {
	s := testSettings(t)
	s.AccessToken = "token"
	s.Background = "not-a-colour"

	m := update(t, NewModel(s), tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != StateError || !errors.Is(m.err, config.ErrInvalidSettings) {
		t.Errorf("state = %v, err = %v, want ErrInvalidSettings", m.state, m.err)
	}
}

func TestModel_Logs(t *testing.T) {
	m := NewModel(testSettings(t))
	m = update(t, m,
		ProgressMsg{Event: pipeline.ProgressEvent{Message: "hidden", Level: pipeline.LevelVerbose}},
		ProgressMsg{Event: pipeline.ProgressEvent{Message: "shown", Level: pipeline.LevelInfo}},
	)
	if len(m.logs) != 1 || m.logs[0].Message != "shown" {
		t.Fatalf("logs = %+v, want only the info entry", m.logs)
	}

	for i := 0; i < 2*maxLogs; i++ {
		m = update(t, m, ProgressMsg{Event: pipeline.ProgressEvent{Message: fmt.Sprintf("m%d", i), Level: pipeline.LevelWarning}})
	}
	if len(m.logs) != maxLogs {
		t.Errorf("len(logs) = %d, want %d", len(m.logs), maxLogs)
	}
	if last := m.logs[len(m.logs)-1].Message; last != fmt.Sprintf("m%d", 2*maxLogs-1) {
		t.Errorf("last log = %q", last)
	}
}

func TestModel_Done(t *testing.T) {
	files := pipeline.SavedFiles{Collage: "/out/c.png", List: "/out/c_list.png"}

	t.Run("success", func(t *testing.T) {
		m := NewModel(testSettings(t))
		m.state = StateRunning
		m = update(t, m, DoneMsg{Files: files, Items: 25})

		if m.state != StateComplete {
			t.Fatalf("state = %v, want StateComplete", m.state)
		}
		view := m.View()
		for _, want := range []string{files.Collage, files.List, "25"} {
			if !strings.Contains(view, want) {
				t.Errorf("View() missing %q", want)
			}
		}
	})

	t.Run("failure", func(t *testing.T) {
		m := NewModel(testSettings(t))
		m.state = StateRunning
		m = update(t, m, DoneMsg{Err: pipeline.ErrInsufficientData})
		if m.state != StateError || !errors.Is(m.err, pipeline.ErrInsufficientData) {
			t.Errorf("state = %v, err = %v", m.state, m.err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		m := NewModel(testSettings(t))
		m.state = StateRunning
		m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		if m.state != StateError || !errors.Is(m.err, errCancelled) {
			t.Fatalf("state = %v, err = %v", m.state, m.err)
		}

		// A late result must not override the cancellation.
		m = update(t, m, DoneMsg{Files: files})
		if m.state != StateError {
			t.Errorf("state = %v after late DoneMsg", m.state)
		}

		m = update(t, m, runes("r"))
		if m.state != StateInput || m.err != nil || m.ctx.Err() != nil {
			t.Errorf("reset left state = %v, err = %v", m.state, m.err)
		}
	})
}

func TestModel_HelpText(t *testing.T) {
	m := NewModel(testSettings(t))
	if !strings.Contains(m.View(), "k: kind") {
		t.Error("input view should list toggle keys")
	}
	m.state = StateRunning
	if got := m.getHelpText(); got != "esc: cancel" {
		t.Errorf("running help = %q", got)
	}
}
