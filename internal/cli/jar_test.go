package cli

import (
	"encoding/json"
	"net/http"
	"net/url"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const jarOrigin = "http://pos.test:3000"

func openJarDB(t *testing.T) *bbolt.DB {
	t.Helper()
	db, err := bbolt.Open(filepath.Join(t.TempDir(), "jar.db"), 0o600, nil)
	require.NoError(t, err)
	return db
}

func storedSession(t *testing.T, db *bbolt.DB) []storedCookie {
	t.Helper()
	var stored []storedCookie
	require.NoError(t, db.View(func(tx *bbolt.Tx) error {
		return json.Unmarshal(tx.Bucket(bucketSession).Get([]byte("pos.test:3000")), &stored)
	}))
	return stored
}

func TestBoltJar_ExpiredCookiesAreNotRestored(t *testing.T) {
	db := openJarDB(t)
	t.Cleanup(func() { _ = db.Close() })
	origin, err := url.Parse(jarOrigin)
	require.NoError(t, err)

	jar, err := NewBoltJar(db, jarOrigin, nil)
	require.NoError(t, err)
	// cookies issued an hour ago: the 15 minute access cookie has since lapsed
	jar.now = func() time.Time { return time.Now().Add(-time.Hour) }
	jar.SetCookies(origin, []*http.Cookie{
		{Name: "accessToken", Value: "a1", Path: "/", MaxAge: 900},
		{Name: "refreshToken", Value: "r1", Path: "/", MaxAge: 604800},
	})

	stored := storedSession(t, db)
	require.Len(t, stored, 2)
	for _, sc := range stored {
		assert.NotNil(t, sc.Expires, sc.Name)
	}

	restored, err := NewBoltJar(db, jarOrigin, nil)
	require.NoError(t, err)
	assert.False(t, restored.Has("accessToken"))
	assert.True(t, restored.Has("refreshToken"))
}

func TestBoltJar_SessionCookiesKeepNoExpiry(t *testing.T) {
	db := openJarDB(t)
	t.Cleanup(func() { _ = db.Close() })
	origin, err := url.Parse(jarOrigin)
	require.NoError(t, err)

	jar, err := NewBoltJar(db, jarOrigin, nil)
	require.NoError(t, err)
	jar.SetCookies(origin, []*http.Cookie{{Name: "refreshToken", Value: "r1", Path: "/"}})

	stored := storedSession(t, db)
	require.Len(t, stored, 1)
	assert.Nil(t, stored[0].Expires)

	restored, err := NewBoltJar(db, jarOrigin, nil)
	require.NoError(t, err)
	assert.True(t, restored.Has("refreshToken"))
}

func TestBoltJar_LogsPersistFailures(t *testing.T) {
	db := openJarDB(t)
	origin, err := url.Parse(jarOrigin)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.WarnLevel)
	jar, err := NewBoltJar(db, jarOrigin, zap.New(core))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	jar.SetCookies(origin, []*http.Cookie{{Name: "accessToken", Value: "a1", Path: "/"}})
	assert.True(t, jar.Has("accessToken"))
	require.Equal(t, 1, logs.FilterMessage("failed to persist session cookies").Len())
}

func TestBoltJar_ConcurrentAccess(t *testing.T) {
	db := openJarDB(t)
	t.Cleanup(func() { _ = db.Close() })
	origin, err := url.Parse(jarOrigin)
	require.NoError(t, err)

	jar, err := NewBoltJar(db, jarOrigin, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			jar.SetCookies(origin, []*http.Cookie{{Name: "accessToken", Value: "a1", Path: "/", MaxAge: 900}})
		}()
		go func() {
			defer wg.Done()
			_ = jar.Cookies(origin)
			_ = jar.Has("accessToken")
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, jar.Clear())
		}()
	}
	wg.Wait()
}
