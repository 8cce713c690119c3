package registry

import (
	"testing"

	"github.com/vovakirdan/tui-2048/internal/core"
)

type fakeGame struct{ id string }

func (f *fakeGame) ID() string                           { return f.id }
func (f *fakeGame) Title() string                        { return "Fake " + f.id }
func (f *fakeGame) Reset(core.RuntimeConfig)             {}
func (f *fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (f *fakeGame) Render(*core.Screen)                  {}
func (f *fakeGame) State() core.GameState                { return core.GameState{} }

type describedGame struct{ fakeGame }

func (d *describedGame) Description() string { return "has a description" }

func TestRegisterAndCreate(t *testing.T) {
	Register("fake_b", func() Game { return &describedGame{fakeGame{id: "fake_b"}} })
	Register("fake_a", func() Game { return &fakeGame{id: "fake_a"} })

	if !Exists("fake_a") || Exists("fake_missing") {
		t.Fatal("Exists reports the wrong registrations")
	}

	g, err := Create("fake_a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "fake_a" {
		t.Errorf("ID() = %q, want fake_a", g.ID())
	}

	if _, err := Create("fake_missing"); err == nil {
		t.Error("Create() of an unknown game should fail")
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
		switch info.ID {
		case "fake_b":
			if info.Title != "Fake fake_b" || info.Description != "has a description" {
				t.Errorf("fake_b info = %+v", info)
			}
		case "fake_a":
			if info.Description != "" {
				t.Errorf("fake_a should have no description, got %q", info.Description)
			}
		}
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("List() not sorted: %v", ids)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("fake_dup", func() Game { return &fakeGame{id: "fake_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("registering the same ID twice should panic")
		}
	}()
	Register("fake_dup", func() Game { return &fakeGame{id: "fake_dup"} })
}
