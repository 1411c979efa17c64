// pointsd is the little HTTP store behind the galaxy map: it serves and
// persists the point-of-interest layout and the player session as JSON.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/joho/godotenv"

	"github.com/stardrift/stardrift/internal/points"
)

// fileStore is a mutex-guarded JSON document on disk.
type fileStore struct {
	mu   sync.Mutex
	path string
}

func (f *fileStore) read(out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (f *fileStore) write(in any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

type server struct {
	points  *fileStore
	session *fileStore
}

func (s *server) getPoints(w http.ResponseWriter, r *http.Request) {
	var pts []points.Point
	if err := s.points.read(&pts); err != nil {
		if os.IsNotExist(err) {
			pts = points.Defaults()
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, pts)
}

func (s *server) putPoints(w http.ResponseWriter, r *http.Request) {
	var pts []points.Point
	if err := json.NewDecoder(r.Body).Decode(&pts); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for i := range pts {
		pts[i] = points.Normalize(pts[i])
	}
	if err := s.points.write(pts); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) getSession(w http.ResponseWriter, r *http.Request) {
	sess := points.Session{ShipX: 50, ShipY: 50}
	if err := s.session.read(&sess); err != nil && !os.IsNotExist(err) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, sess)
}

func (s *server) putSession(w http.ResponseWriter, r *http.Request) {
	var sess points.Session
	if err := json.NewDecoder(r.Body).Decode(&sess); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.session.write(sess); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("pointsd: encode response: %v", err)
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file: %v", err)
	}

	dataDir := os.Getenv("POINTSD_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("create data dir: %v", err)
	}

	srv := &server{
		points:  &fileStore{path: filepath.Join(dataDir, "points.json")},
		session: &fileStore{path: filepath.Join(dataDir, "session.json")},
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/points", srv.getPoints)
	r.Put("/api/points", srv.putPoints)
	r.Get("/api/session", srv.getSession)
	r.Put("/api/session", srv.putSession)

	port := os.Getenv("POINTSD_PORT")
	if port == "" {
		port = "8090"
	}
	log.Printf("pointsd listening on :%s (data in %s)", port, dataDir)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}
