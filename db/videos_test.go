package db

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"video-metadata-api/config"
	"video-metadata-api/models"

	"github.com/sirupsen/logrus"
)

func newTestStore(t *testing.T) (*VideoStore, config.Config) {
	t.Helper()

	cfg := config.Config{DatabasePath: filepath.Join(t.TempDir(), "store.db")}
	log := logrus.New()
	log.SetOutput(io.Discard)

	conn, err := Open(cfg, log)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { Close(conn) })
	return NewVideoStore(conn), cfg
}

func ptr[T any](v T) *T { return &v }

func TestStoreCreateAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, 1); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("Get on empty store: %v", err)
	}

	in := models.Video{ID: 1, Name: "intro", Views: 3, Likes: 4}
	if _, err := store.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != in {
		t.Errorf("Get = %+v, want %+v", got, in)
	}
}

func TestStoreCreateConflict(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.Create(ctx, models.Video{ID: 2, Name: "a", Views: 1, Likes: 1})
	_, err := store.Create(ctx, models.Video{ID: 2, Name: "b", Views: 2, Likes: 2})
	if !errors.Is(err, ErrVideoExists) {
		t.Fatalf("second Create error = %v, want ErrVideoExists", err)
	}

	got, _ := store.Get(ctx, 2)
	if got.Name != "a" {
		t.Errorf("original overwritten: %+v", got)
	}
}

func TestStoreUpdate(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Update(ctx, 3, models.VideoPatch{Views: ptr(int64(1))}); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("Update missing: %v", err)
	}
	if _, err := store.Get(ctx, 3); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("Update created a record")
	}

	store.Create(ctx, models.Video{ID: 3, Name: "demo", Views: 10, Likes: 5})

	got, err := store.Update(ctx, 3, models.VideoPatch{Views: ptr(int64(0)), Name: ptr("renamed")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	want := models.Video{ID: 3, Name: "renamed", Views: 0, Likes: 5}
	if got != want {
		t.Errorf("Update = %+v, want %+v", got, want)
	}

	stored, _ := store.Get(ctx, 3)
	if stored != want {
		t.Errorf("stored = %+v, want %+v", stored, want)
	}
}

func TestStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Delete(ctx, 4); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("Delete missing: %v", err)
	}

	store.Create(ctx, models.Video{ID: 4, Name: "x"})
	if err := store.Delete(ctx, 4); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, 4); !errors.Is(err, ErrVideoNotFound) {
		t.Errorf("Get after Delete: %v", err)
	}
}

func TestOpenKeepsDataUnlessReset(t *testing.T) {
	store, cfg := newTestStore(t)
	ctx := context.Background()
	store.Create(ctx, models.Video{ID: 5, Name: "persisted"})

	log := logrus.New()
	log.SetOutput(io.Discard)

	conn, err := Open(cfg, log)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewVideoStore(conn).Get(ctx, 5); err != nil {
		t.Errorf("record lost on reopen: %v", err)
	}
	Close(conn)

	cfg.ResetDB = true
	conn, err = Open(cfg, log)
	if err != nil {
		t.Fatal(err)
	}
	defer Close(conn)
	if _, err := NewVideoStore(conn).Get(ctx, 5); !errors.Is(err, ErrVideoNotFound) {
		t.Errorf("RESET_DB kept the record: %v", err)
	}
}

func TestPing(t *testing.T) {
	store, _ := newTestStore(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}
