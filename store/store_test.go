package store

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/jsphweid/hummingbird/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	s, err := New(filepath.Join(t.TempDir(), "outputs"))
	require.NoError(t, err)
	return s
}

func age(t *testing.T, s *Store, name string, d time.Duration) {
	old := time.Now().Add(-d)
	require.NoError(t, os.Chtimes(filepath.Join(s.Dir(), name), old, old))
}

func TestSaveAndPath(t *testing.T) {
	s := newStore(t)
	name, err := s.Save("melody", ".mid", []byte("MThd"))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Regexp(regexp.MustCompile(`^melody_[0-9a-f-]{36}\.mid$`), name)

	p, err := s.Path(name)
	assert.NoError(err)
	data, err := os.ReadFile(p)
	assert.NoError(err)
	assert.Equal("MThd", string(data))

	other, err := s.Save("melody", "mid", nil)
	assert.NoError(err)
	assert.NotEqual(name, other)
}

func TestPathRejectsEscapes(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.Mkdir(filepath.Join(s.Dir(), "sub"), 0755))
	outside := filepath.Join(filepath.Dir(s.Dir()), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0644))

	for _, name := range []string{"", "..", "../secret.txt", "sub", "sub/../../secret.txt", "missing.mid", ".env"} {
		_, err := s.Path(name)
		assert.ErrorIs(t, err, errs.ErrNotFound, name)
	}
}

func TestCleanup(t *testing.T) {
	s := newStore(t)
	fresh, err := s.Save("melody", "mid", []byte("a"))
	require.NoError(t, err)
	stale, err := s.Save("accompaniment", "mid", []byte("b"))
	require.NoError(t, err)
	age(t, s, stale, 48*time.Hour)
	require.NoError(t, os.Mkdir(filepath.Join(s.Dir(), "keep"), 0755))

	n, err := s.Cleanup(24 * time.Hour)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(1, n)
	_, err = s.Path(fresh)
	assert.NoError(err)
	_, err = s.Path(stale)
	assert.ErrorIs(err, errs.ErrNotFound)
	assert.DirExists(filepath.Join(s.Dir(), "keep"))
}

func TestJanitorCoalescesTouches(t *testing.T) {
	s := newStore(t)
	for i := 0; i < 3; i++ {
		name, err := s.Save("old", "wav", []byte("x"))
		require.NoError(t, err)
		age(t, s, name, 2*time.Hour)
	}

	j := NewJanitor(s, time.Hour, 20*time.Millisecond, nil)
	j.swept = make(chan int, 4)
	j.Touch()
	j.Touch()
	j.Touch()

	select {
	case n := <-j.swept:
		assert.Equal(t, 3, n)
	case <-time.After(2 * time.Second):
		t.Fatal("janitor never swept")
	}

	select {
	case <-j.swept:
		t.Fatal("expected a single sweep")
	case <-time.After(100 * time.Millisecond):
	}
}
