package points

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewValidatesScale(t *testing.T) {
	if _, err := New("x", "", 10, 10, 0); err == nil {
		t.Error("scale 0 should be rejected")
	}
	if _, err := New("x", "", 10, 10, -2); err == nil {
		t.Error("negative scale should be rejected")
	}
	p, err := New("x", "", 10, 10, 1.5)
	if err != nil {
		t.Fatalf("valid point rejected: %v", err)
	}
	if p.ID == "" {
		t.Error("new point should get an ID")
	}
}

func TestNewClampsPosition(t *testing.T) {
	tests := []struct {
		x, y, wantX, wantY float64
	}{
		{-5, 50, 0, 50},
		{105, 50, 100, 50},
		{50, -0.001, 50, 0},
		{50, 200, 50, 100},
	}
	for _, tt := range tests {
		p, err := New("x", "", tt.x, tt.y, 1)
		if err != nil {
			t.Fatalf("New(%v, %v): %v", tt.x, tt.y, err)
		}
		if p.X != tt.wantX || p.Y != tt.wantY {
			t.Errorf("New(%v, %v) = (%v, %v), want (%v, %v)",
				tt.x, tt.y, p.X, p.Y, tt.wantX, tt.wantY)
		}
	}
}

func TestNormalize(t *testing.T) {
	p := Normalize(Point{X: -10, Y: 250, Scale: -1})
	if p.X != 0 || p.Y != 100 {
		t.Errorf("position = (%v, %v), want clamped to (0, 100)", p.X, p.Y)
	}
	if p.Scale != 1 {
		t.Errorf("scale = %v, want defaulted to 1", p.Scale)
	}
	if p.ID == "" {
		t.Error("missing ID should be filled in")
	}
}

func TestDefaultsAreValid(t *testing.T) {
	pts := Defaults()
	if len(pts) == 0 {
		t.Fatal("default layout is empty")
	}
	for _, p := range pts {
		if p.X < 0 || p.X > 100 || p.Y < 0 || p.Y > 100 {
			t.Errorf("%s outside the world: (%v, %v)", p.Label, p.X, p.Y)
		}
		if p.Scale <= 0 {
			t.Errorf("%s has non-positive scale %v", p.Label, p.Scale)
		}
		if p.ID == "" || p.Label == "" {
			t.Errorf("default point missing id/label: %+v", p)
		}
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	cache, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	want := Defaults()[:3]
	if err := cache.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := cache.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: got %+v, want %+v", i, got[i], want[i])
		}
	}

	sess := Session{ShipX: 12.5, ShipY: 88}
	if err := cache.SaveSession(ctx, sess); err != nil {
		t.Fatalf("save session: %v", err)
	}
	got2, err := cache.LoadSession(ctx)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if got2 != sess {
		t.Errorf("session = %+v, want %+v", got2, sess)
	}
}

func TestRemoteStoreLoad(t *testing.T) {
	layout := Defaults()[:2]
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/points" || r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(layout)
	}))
	defer srv.Close()

	got, err := NewRemoteStore(srv.URL).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("loaded %d points, want 2", len(got))
	}
}

func TestRemoteStoreEmptyDataset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	_, err := NewRemoteStore(srv.URL).Load(context.Background())
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("err = %v, want ErrEmpty", err)
	}
}

func TestRemoteStoreSave(t *testing.T) {
	var gotBody []Point
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	pts := Defaults()[:4]
	if err := NewRemoteStore(srv.URL).Save(context.Background(), pts); err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(gotBody) != 4 {
		t.Errorf("server received %d points, want 4", len(gotBody))
	}
}

func TestServiceFallsBackToDefaults(t *testing.T) {
	// Remote unreachable, cache empty: Load must still produce a layout.
	cache, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	svc := &Service{
		Remote: NewRemoteStore("http://127.0.0.1:1"), // refused
		Cache:  cache,
	}

	pts := svc.Load(context.Background())
	if len(pts) == 0 {
		t.Fatal("Load returned an empty layout; defaults expected")
	}

	sess := svc.LoadSession(context.Background())
	if sess.ShipX != 50 || sess.ShipY != 50 {
		t.Errorf("default session = %+v, want centered ship", sess)
	}
}

func TestServicePrefersRemoteAndMirrorsCache(t *testing.T) {
	layout := Defaults()[:1]
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/points" && r.Method == http.MethodGet {
			json.NewEncoder(w).Encode(layout)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	cache, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	svc := &Service{Remote: NewRemoteStore(srv.URL), Cache: cache}

	pts := svc.Load(context.Background())
	if len(pts) != 1 {
		t.Fatalf("loaded %d points, want the remote layout", len(pts))
	}

	// The remote result must have been mirrored into the cache.
	cached, err := cache.Load(context.Background())
	if err != nil {
		t.Fatalf("cache load after remote load: %v", err)
	}
	if len(cached) != 1 || cached[0].ID != layout[0].ID {
		t.Error("cache does not mirror the remote layout")
	}
}
