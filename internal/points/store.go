package points

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Session is the per-player record restored at startup.
type Session struct {
	ShipX float64 `json:"shipX"`
	ShipY float64 `json:"shipY"`
}

// Store loads and saves the point layout and the player session.
type Store interface {
	Load(ctx context.Context) ([]Point, error)
	Save(ctx context.Context, pts []Point) error
	LoadSession(ctx context.Context) (Session, error)
	SaveSession(ctx context.Context, s Session) error
}

// RemoteStore talks to a points server (cmd/pointsd or compatible) over
// plain JSON HTTP.
type RemoteStore struct {
	BaseURL string
	Client  *http.Client
}

// NewRemoteStore returns a store client for the given base URL.
func NewRemoteStore(baseURL string) *RemoteStore {
	return &RemoteStore{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (r *RemoteStore) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.BaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("points: GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("points: GET %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (r *RemoteStore) put(ctx context.Context, path string, in any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, r.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("points: PUT %s: %w", path, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("points: PUT %s: status %d", path, resp.StatusCode)
	}
	return nil
}

// Load fetches the point layout. An answered-but-empty layout is ErrEmpty so
// callers can fall through to the next source.
func (r *RemoteStore) Load(ctx context.Context) ([]Point, error) {
	var pts []Point
	if err := r.get(ctx, "/api/points", &pts); err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		return nil, ErrEmpty
	}
	for i := range pts {
		pts[i] = Normalize(pts[i])
	}
	return pts, nil
}

// Save uploads the full point layout.
func (r *RemoteStore) Save(ctx context.Context, pts []Point) error {
	return r.put(ctx, "/api/points", pts)
}

// LoadSession fetches the player session record.
func (r *RemoteStore) LoadSession(ctx context.Context) (Session, error) {
	var s Session
	err := r.get(ctx, "/api/session", &s)
	return s, err
}

// SaveSession uploads the player session record.
func (r *RemoteStore) SaveSession(ctx context.Context, s Session) error {
	return r.put(ctx, "/api/session", s)
}

// FileCache mirrors the layout to a local JSON file so the map still has
// data when the remote store is unreachable.
type FileCache struct {
	Dir string
}

// NewFileCache returns a cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("points: create cache dir: %w", err)
	}
	return &FileCache{Dir: dir}, nil
}

func (c *FileCache) pointsPath() string  { return filepath.Join(c.Dir, "points.json") }
func (c *FileCache) sessionPath() string { return filepath.Join(c.Dir, "session.json") }

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// writeJSON writes atomically: temp file then rename.
func writeJSON(path string, in any) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Load reads the cached layout.
func (c *FileCache) Load(ctx context.Context) ([]Point, error) {
	var pts []Point
	if err := readJSON(c.pointsPath(), &pts); err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		return nil, ErrEmpty
	}
	for i := range pts {
		pts[i] = Normalize(pts[i])
	}
	return pts, nil
}

// Save writes the layout to the cache file.
func (c *FileCache) Save(ctx context.Context, pts []Point) error {
	return writeJSON(c.pointsPath(), pts)
}

// LoadSession reads the cached session record.
func (c *FileCache) LoadSession(ctx context.Context) (Session, error) {
	var s Session
	err := readJSON(c.sessionPath(), &s)
	return s, err
}

// SaveSession writes the session record to the cache file.
func (c *FileCache) SaveSession(ctx context.Context, s Session) error {
	return writeJSON(c.sessionPath(), s)
}

// Service layers the remote store over the local cache with the built-in
// defaults as the last resort. Persistence failures are logged and absorbed;
// nothing here is allowed to stall or kill the simulation.
type Service struct {
	Remote Store // may be nil when no store URL is configured
	Cache  Store // may be nil when caching is disabled
}

// Load returns the best available layout: remote, then cache, then defaults.
// It never fails.
func (s *Service) Load(ctx context.Context) []Point {
	if s.Remote != nil {
		pts, err := s.Remote.Load(ctx)
		if err == nil {
			if s.Cache != nil {
				if cerr := s.Cache.Save(ctx, pts); cerr != nil {
					log.Printf("points: cache write failed: %v", cerr)
				}
			}
			return pts
		}
		log.Printf("points: remote load failed, trying cache: %v", err)
	}
	if s.Cache != nil {
		pts, err := s.Cache.Load(ctx)
		if err == nil {
			return pts
		}
		log.Printf("points: cache load failed, using defaults: %v", err)
	}
	return Defaults()
}

// Save pushes the layout to the remote store (best effort) and always
// mirrors it into the cache.
func (s *Service) Save(ctx context.Context, pts []Point) {
	if s.Remote != nil {
		if err := s.Remote.Save(ctx, pts); err != nil {
			log.Printf("points: remote save failed: %v", err)
		}
	}
	if s.Cache != nil {
		if err := s.Cache.Save(ctx, pts); err != nil {
			log.Printf("points: cache save failed: %v", err)
		}
	}
}

// LoadSession returns the restored session, or a centered default when no
// source has one.
func (s *Service) LoadSession(ctx context.Context) Session {
	if s.Remote != nil {
		if sess, err := s.Remote.LoadSession(ctx); err == nil {
			return sess
		}
	}
	if s.Cache != nil {
		if sess, err := s.Cache.LoadSession(ctx); err == nil {
			return sess
		}
	}
	return Session{ShipX: 50, ShipY: 50}
}

// SaveSession mirrors the session record like Save.
func (s *Service) SaveSession(ctx context.Context, sess Session) {
	if s.Remote != nil {
		if err := s.Remote.SaveSession(ctx, sess); err != nil {
			log.Printf("points: remote session save failed: %v", err)
		}
	}
	if s.Cache != nil {
		if err := s.Cache.SaveSession(ctx, sess); err != nil {
			log.Printf("points: cache session save failed: %v", err)
		}
	}
}
