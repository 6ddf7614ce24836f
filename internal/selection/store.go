package selection

import (
    "crypto/rand"
    "encoding/hex"
    "errors"
    "sync"
    "time"

    "github.com/iliyamo/library-seat-availability/internal/model"
)

// ErrNoQuery is returned for selection operations on a session that has no
// availability snapshot loaded yet.
var ErrNoQuery = errors.New("no availability query loaded for this session")

// ErrStaleQuery is returned for selection operations carrying the token of
// an availability query that has since been replaced.  A new query always
// wins over operations still in flight for the old one.
var ErrStaleQuery = errors.New("selection refers to an outdated availability query")

// Snapshot is the availability result a session's selection is scoped to.
// Resource IDs and hours from a different date or space are not
// comparable, so the tracker is reset whenever the snapshot is replaced.
type Snapshot struct {
    Token    string       // opaque token identifying this query result
    SpaceID  uint64       // study space the grid was computed for
    SpacePID uint64       // page identifier for legacy search links
    Date     time.Time    // queried day
    Slots    []model.Slot // the parsed grid, resource-then-hour order
}

// Slot looks up the snapshot slot for a key.
func (s *Snapshot) Slot(k Key) (model.Slot, bool) {
    for _, slot := range s.Slots {
        if slot.ResourceID == k.ResourceID && slot.Hour == k.Hour {
            return slot, true
        }
    }
    return model.Slot{}, false
}

type session struct {
    snapshot Snapshot
    tracker  *Tracker
    // pending is the most recently reserved token.  A snapshot may only
    // be installed under its reservation while that reservation is still
    // the newest; a reservation made later always wins, regardless of
    // which query's response arrives first.
    pending string
}

// Store owns one tracker per caller session and binds it to the latest
// availability snapshot.  All access runs under a single mutex so tracker
// operations stay serialized even when a client fires requests
// concurrently; last-request-wins is enforced through the snapshot token.
type Store struct {
    mu       sync.Mutex
    sessions map[string]*session
}

// NewStore returns an empty session store.
func NewStore() *Store {
    return &Store{sessions: make(map[string]*session)}
}

// Reserve allocates a token for a query that is about to run and marks it
// as the session's newest.  Reserving never touches the installed snapshot
// or selection; a query that subsequently fails leaves both intact.
func (st *Store) Reserve(sessionID string) string {
    st.mu.Lock()
    defer st.mu.Unlock()

    sess, ok := st.sessions[sessionID]
    if !ok {
        sess = &session{tracker: NewTracker()}
        st.sessions[sessionID] = sess
    }
    sess.pending = newToken()
    return sess.pending
}

// Install binds a finished query result to its reservation.  The snapshot
// is installed, and the selection cleared, only while the token is still
// the session's newest reservation; a result overtaken by a later Reserve
// is discarded with ErrStaleQuery no matter the order the responses
// arrived in.  The Token field of the supplied snapshot is overwritten.
func (st *Store) Install(sessionID, token string, snap Snapshot) error {
    st.mu.Lock()
    defer st.mu.Unlock()

    sess, ok := st.sessions[sessionID]
    if !ok {
        return ErrNoQuery
    }
    if token != sess.pending {
        return ErrStaleQuery
    }
    snap.Token = token
    sess.snapshot = snap
    sess.tracker = NewTracker()
    return nil
}

// Begin replaces the session's snapshot with a fresh query result, clears
// its selection and returns the new snapshot token.  Any operation still
// holding the previous token will fail with ErrStaleQuery.  The Token
// field of the supplied snapshot is overwritten.
//
// Begin is Reserve and Install in one step, for callers whose result is
// already in hand.
func (st *Store) Begin(sessionID string, snap Snapshot) string {
    st.mu.Lock()
    defer st.mu.Unlock()

    snap.Token = newToken()
    st.sessions[sessionID] = &session{snapshot: snap, tracker: NewTracker(), pending: snap.Token}
    return snap.Token
}

// Do runs fn against the session's tracker and snapshot while holding the
// store lock.  The supplied token must match the session's current
// snapshot.
func (st *Store) Do(sessionID, token string, fn func(*Tracker, *Snapshot) error) error {
    st.mu.Lock()
    defer st.mu.Unlock()

    sess, ok := st.sessions[sessionID]
    if !ok || sess.snapshot.Token == "" {
        // reserved but never installed counts as no query
        return ErrNoQuery
    }
    if token != sess.snapshot.Token {
        return ErrStaleQuery
    }
    return fn(sess.tracker, &sess.snapshot)
}

// Drop removes the session's snapshot and selection entirely.
func (st *Store) Drop(sessionID string) {
    st.mu.Lock()
    defer st.mu.Unlock()
    delete(st.sessions, sessionID)
}

func newToken() string {
    buf := make([]byte, 16)
    if _, err := rand.Read(buf); err != nil {
        // rand.Read only fails when the OS entropy source is broken
        return hex.EncodeToString([]byte(time.Now().UTC().Format(time.RFC3339Nano)))
    }
    return hex.EncodeToString(buf)
}
