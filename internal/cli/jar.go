package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var bucketSession = []byte("session")

type storedCookie struct {
	Name    string     `json:"name"`
	Value   string     `json:"value"`
	Expires *time.Time `json:"expires,omitempty"`
}

// BoltJar is a cookie jar for a single gateway origin that survives restarts.
// Cookies live in memory and are written to bbolt after every change.
type BoltJar struct {
	db     *bbolt.DB
	origin *url.URL
	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	inner   *cookiejar.Jar
	expires map[string]time.Time
}

// NewBoltJar loads the cookies stored for origin, dropping expired ones.
// logger may be nil.
func NewBoltJar(db *bbolt.DB, origin string, logger *zap.Logger) (*BoltJar, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("invalid origin: %w", err)
	}
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	j := &BoltJar{
		db:      db,
		origin:  u,
		logger:  logger,
		now:     time.Now,
		inner:   inner,
		expires: make(map[string]time.Time),
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketSession)
		if err != nil {
			return fmt.Errorf("failed to create session bucket: %w", err)
		}
		raw := b.Get([]byte(u.Host))
		if raw == nil {
			return nil
		}
		var stored []storedCookie
		if err := json.Unmarshal(raw, &stored); err != nil {
			logger.Warn("discarding unreadable session", zap.Error(err))
			return nil
		}
		now := j.now()
		cookies := make([]*http.Cookie, 0, len(stored))
		for _, sc := range stored {
			cookie := &http.Cookie{Name: sc.Name, Value: sc.Value, Path: "/"}
			if sc.Expires != nil {
				if !now.Before(*sc.Expires) {
					continue
				}
				cookie.Expires = *sc.Expires
				j.expires[sc.Name] = *sc.Expires
			}
			cookies = append(cookies, cookie)
		}
		inner.SetCookies(u, cookies)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return j, nil
}

// SetCookies implements http.CookieJar.
func (j *BoltJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.inner.SetCookies(u, cookies)

	now := j.now()
	for _, c := range cookies {
		switch {
		case c.MaxAge > 0:
			j.expires[c.Name] = now.Add(time.Duration(c.MaxAge) * time.Second)
		case c.MaxAge < 0:
			delete(j.expires, c.Name)
		case !c.Expires.IsZero():
			j.expires[c.Name] = c.Expires
		default:
			delete(j.expires, c.Name)
		}
	}

	if err := j.persist(); err != nil {
		j.logger.Warn("failed to persist session cookies", zap.String("origin", j.origin.Host), zap.Error(err))
	}
}

// Cookies implements http.CookieJar.
func (j *BoltJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.inner.Cookies(u)
}

// Has reports whether a cookie named name is held for the origin.
func (j *BoltJar) Has(name string) bool {
	for _, c := range j.Cookies(j.origin) {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Clear forgets every stored cookie.
func (j *BoltJar) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	inner, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	j.inner = inner
	j.expires = make(map[string]time.Time)
	return j.persist()
}

// persist runs with mu held.
func (j *BoltJar) persist() error {
	current := j.inner.Cookies(j.origin)
	stored := make([]storedCookie, 0, len(current))
	for _, c := range current {
		sc := storedCookie{Name: c.Name, Value: c.Value}
		if exp, ok := j.expires[c.Name]; ok {
			sc.Expires = &exp
		}
		stored = append(stored, sc)
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return j.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSession).Put([]byte(j.origin.Host), data)
	})
}
