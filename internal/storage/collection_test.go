package storage_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"property-storefront/internal/storage"
)

type note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var noteSchema = storage.Schema[note]{
	ID: func(n *note) string { return n.ID },
	Init: func(n *note, id string, now time.Time) {
		n.ID = id
		n.CreatedAt = now
		n.UpdatedAt = now
	},
	Touch: func(n *note, now time.Time) { n.UpdatedAt = now },
}

func newNotes(t *testing.T, port storage.Port) *storage.Collection[note] {
	t.Helper()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seq := 0
	c := storage.NewCollection(port, "notes", noteSchema,
		storage.WithClock(func() time.Time {
			now = now.Add(time.Minute)
			return now
		}),
		storage.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("n%d", seq)
		}),
	)
	if _, err := c.LoadOrSeed(context.Background(), func() []note {
		return []note{{ID: "seed", Text: "seeded"}}
	}); err != nil {
		t.Fatalf("load: %v", err)
	}
	return c
}

func TestCollectionCreateAssignsIDAndPersists(t *testing.T) {
	ctx := context.Background()
	port := storage.NewMemoryPort()
	notes := newNotes(t, port)

	created, err := notes.Create(ctx, note{ID: "ignored", Text: "hello"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "n1" {
		t.Fatalf("expected id n1, got %q", created.ID)
	}
	if created.CreatedAt.IsZero() || !created.UpdatedAt.Equal(created.CreatedAt) {
		t.Fatalf("expected creation stamps, got %+v", created)
	}

	reopened := storage.NewCollection(port, "notes", noteSchema)
	items, err := reopened.LoadOrSeed(ctx, nil)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(items) != 2 || items[1].Text != "hello" {
		t.Fatalf("expected created note persisted after seed, got %+v", items)
	}
}

func TestCollectionUpdateTouchesAndMerges(t *testing.T) {
	ctx := context.Background()
	notes := newNotes(t, storage.NewMemoryPort())
	created, err := notes.Create(ctx, note{Text: "draft"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, found, err := notes.Update(ctx, created.ID, func(n *note) error {
		n.Text = "final"
		return nil
	})
	if err != nil || !found {
		t.Fatalf("update: found=%v err=%v", found, err)
	}
	if updated.Text != "final" {
		t.Fatalf("expected final, got %q", updated.Text)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Fatalf("expected updatedAt after createdAt, got %v <= %v", updated.UpdatedAt, updated.CreatedAt)
	}
	if got, _ := notes.Find(created.ID); got.Text != "final" {
		t.Fatalf("expected stored note updated, got %q", got.Text)
	}
}

func TestCollectionUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	port := storage.NewMemoryPort()
	notes := newNotes(t, port)
	before, _ := port.Read(ctx, "notes")

	_, found, err := notes.Update(ctx, "missing", func(n *note) error {
		t.Fatal("fn must not run for unknown id")
		return nil
	})
	if err != nil || found {
		t.Fatalf("expected silent no-op, got found=%v err=%v", found, err)
	}
	deleted, err := notes.Delete(ctx, "missing")
	if err != nil || deleted {
		t.Fatalf("expected silent no-op delete, got deleted=%v err=%v", deleted, err)
	}

	after, _ := port.Read(ctx, "notes")
	if string(before) != string(after) {
		t.Fatalf("expected persisted data untouched, got %q", after)
	}
}

func TestCollectionUpdateErrorAborts(t *testing.T) {
	ctx := context.Background()
	notes := newNotes(t, storage.NewMemoryPort())
	boom := errors.New("boom")

	_, _, err := notes.Update(ctx, "seed", func(n *note) error {
		n.Text = "changed"
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if got, _ := notes.Find("seed"); got.Text != "seeded" {
		t.Fatalf("expected note unchanged, got %q", got.Text)
	}
}

func TestCollectionDelete(t *testing.T) {
	ctx := context.Background()
	notes := newNotes(t, storage.NewMemoryPort())

	deleted, err := notes.Delete(ctx, "seed")
	if err != nil || !deleted {
		t.Fatalf("delete: deleted=%v err=%v", deleted, err)
	}
	if _, ok := notes.Find("seed"); ok {
		t.Fatal("expected note to be gone")
	}
	if len(notes.List()) != 0 {
		t.Fatalf("expected empty list, got %d", len(notes.List()))
	}
}

func TestNewTimeOrderedIDSorts(t *testing.T) {
	prev := storage.NewTimeOrderedID()
	for i := 0; i < 50; i++ {
		next := storage.NewTimeOrderedID()
		if next <= prev {
			t.Fatalf("expected %q > %q", next, prev)
		}
		prev = next
	}
}
