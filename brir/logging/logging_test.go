package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/cwbudde/algo-brir/brir"
	"github.com/cwbudde/algo-brir/brir/speaker"
	"github.com/cwbudde/algo-brir/internal/testutil"
)

func TestLevelsAndFields(t *testing.T) {
	base, hook := test.NewNullLogger()
	l := New(base, "crop").With("speaker", "FL")

	l.Info("cropped %d samples", 12)
	l.Warning("late peak")
	l.Error("failed: %v", "boom")
	l.Success("done")

	entries := hook.AllEntries()
	if len(entries) != 4 {
		t.Fatalf("entries=%d want 4", len(entries))
	}

	want := []logrus.Level{logrus.InfoLevel, logrus.WarnLevel, logrus.ErrorLevel, logrus.InfoLevel}
	for i, e := range entries {
		if e.Level != want[i] {
			t.Fatalf("entry %d level %s want %s", i, e.Level, want[i])
		}

		if e.Data["component"] != "crop" || e.Data["speaker"] != "FL" {
			t.Fatalf("entry %d fields %v", i, e.Data)
		}
	}

	if entries[0].Message != "cropped 12 samples" {
		t.Fatalf("message %q", entries[0].Message)
	}

	if entries[3].Data["status"] != "success" {
		t.Fatalf("success entry fields %v", entries[3].Data)
	}
}

func TestStoreAdvisoriesReachLogrus(t *testing.T) {
	base, hook := test.NewNullLogger()

	store, err := brir.NewStore(48000, brir.WithLogger(New(base, "brir")))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	// Left speaker heard first on the right ear.
	if err := store.Set(speaker.FL, testutil.Impulse(1024, 300), testutil.Impulse(1024, 280)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if _, err := store.CropHeads(1); err != nil {
		t.Fatalf("CropHeads: %v", err)
	}

	last := hook.LastEntry()
	if last == nil || last.Level != logrus.WarnLevel {
		t.Fatalf("last entry %+v", last)
	}
}
