package store

import (
	"log"
	"sync"
	"time"

	session_constants "Tally/constants/session"
	"Tally/models"
)

// Persistence is the durable snapshot backend. Save receives the full
// code->session mapping every time; Load returns whatever was last written
// (no TTL filtering, the store prunes).
type Persistence interface {
	Load() (map[string]*models.Session, error)
	Save(sessions map[string]*models.Session) error
}

// Archiver receives the same snapshots as Persistence but strictly
// best-effort, for reporting storage (PostgreSQL mirror).
type Archiver interface {
	ArchiveSessions(sessions map[string]*models.Session) error
}

// Store owns the process-wide code->session mapping. All mutation goes
// through the lifecycle engine, which serializes callers; the store's own
// lock only protects against the snapshot writer reading concurrently.
type Store struct {
	mu          sync.RWMutex
	sessions    map[string]*models.Session
	persistence Persistence
	archiver    Archiver // optional

	saveCh chan map[string]*models.Session
	done   chan struct{}
}

func NewStore(p Persistence) *Store {
	return &Store{
		sessions:    make(map[string]*models.Session),
		persistence: p,
		saveCh:      make(chan map[string]*models.Session, session_constants.SnapshotQueueSize),
		done:        make(chan struct{}),
	}
}

// SetArchiver attaches the optional PostgreSQL mirror. Must be called
// before StartWriter.
func (s *Store) SetArchiver(a Archiver) {
	s.archiver = a
}

// Load replaces the in-memory mapping with the persisted snapshot, dropping
// sessions past their TTL. Never fails: a missing or corrupt snapshot just
// yields an empty store.
func (s *Store) Load() {
	loaded, err := s.persistence.Load()
	if err != nil {
		log.Printf("[STORE] Could not load session snapshot, starting empty: %v", err)
		loaded = make(map[string]*models.Session)
	}

	now := time.Now()
	live := make(map[string]*models.Session, len(loaded))
	for code, sess := range loaded {
		if sess.Expired(now) {
			log.Printf("[STORE] Pruning expired session %s (created %s)", code, sess.CreatedAt)
			continue
		}
		live[code] = sess
	}

	s.mu.Lock()
	s.sessions = live
	s.mu.Unlock()

	log.Printf("[STORE] Loaded %d live sessions", len(live))
}

func (s *Store) Get(code string) (*models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[code]
	return sess, ok
}

func (s *Store) Put(code string, sess *models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[code] = sess
}

func (s *Store) Remove(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, code)
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// snapshot deep-copies the current mapping so the writer goroutine never
// observes an in-place mutation.
func (s *Store) snapshot() map[string]*models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(map[string]*models.Session, len(s.sessions))
	for code, sess := range s.sessions {
		snap[code] = sess.Clone()
	}
	return snap
}

// SaveAsync queues the current state for the background writer. Never
// blocks the caller: when the queue is full the oldest pending snapshot is
// dropped, since every snapshot is the full mapping the newest one wins.
func (s *Store) SaveAsync() {
	snap := s.snapshot()
	for {
		select {
		case s.saveCh <- snap:
			return
		default:
			select {
			case <-s.saveCh:
			default:
			}
		}
	}
}

// SaveSync writes the current state directly, used on shutdown.
func (s *Store) SaveSync() {
	s.write(s.snapshot())
}

// StartWriter launches the single persistence goroutine. One writer means
// snapshots hit the backend in submission order, so a crash can never leave
// a newer snapshot overwritten by an older one.
func (s *Store) StartWriter() {
	go func() {
		for snap := range s.saveCh {
			s.write(snap)
		}
		close(s.done)
	}()
}

// StopWriter drains the queue and waits for the writer to finish.
func (s *Store) StopWriter() {
	close(s.saveCh)
	<-s.done
}

func (s *Store) write(snap map[string]*models.Session) {
	if err := s.persistence.Save(snap); err != nil {
		log.Printf("[STORE-ERROR] Error persisting session snapshot: %v", err)
	}
	if s.archiver != nil {
		if err := s.archiver.ArchiveSessions(snap); err != nil {
			log.Printf("[STORE-ERROR] Error archiving sessions: %v", err)
		}
	}
}
