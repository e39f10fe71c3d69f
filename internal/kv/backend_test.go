package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

// attachTestBackend attaches a SQLite backend in a temp dir and detaches it
// on cleanup.
func attachTestBackend(t *testing.T) (*Backend, string) {
	t.Helper()

	dataDir := t.TempDir()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}))
	t.Cleanup(func() { b.Detach() })
	return b, dataDir
}

// storages returns every Storage implementation under test.
func storages(t *testing.T) map[string]types.Storage {
	t.Helper()
	b, _ := attachTestBackend(t)
	return map[string]types.Storage{
		"sqlite": b,
		"memory": NewMemory(),
	}
}

func TestStorageContract(t *testing.T) {
	for name, s := range storages(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get("stages")
			assert.ErrorIs(t, err, types.ErrKeyNotFound)

			require.NoError(t, s.Set("stages", []byte(`[1]`)))
			got, err := s.Get("stages")
			require.NoError(t, err)
			assert.Equal(t, `[1]`, string(got))

			require.NoError(t, s.Set("stages", []byte(`[2]`)))
			got, err = s.Get("stages")
			require.NoError(t, err)
			assert.Equal(t, `[2]`, string(got), "Set replaces the previous value")

			require.NoError(t, s.Delete("stages"))
			_, err = s.Get("stages")
			assert.ErrorIs(t, err, types.ErrKeyNotFound)

			assert.NoError(t, s.Delete("never-set"), "deleting an absent key succeeds")
			assert.ErrorIs(t, s.Set("", []byte("x")), types.ErrInvalidKey)
		})
	}
}

func TestStorageKeysByPrefix(t *testing.T) {
	for name, s := range storages(t) {
		t.Run(name, func(t *testing.T) {
			for _, k := range []string{"pb-2", "completed-1", "pb-1", "language", "completed-10"} {
				require.NoError(t, s.Set(k, []byte("v")))
			}

			keys, err := s.Keys("completed-")
			require.NoError(t, err)
			assert.Equal(t, []string{"completed-1", "completed-10"}, keys)

			keys, err = s.Keys("pb-")
			require.NoError(t, err)
			assert.Equal(t, []string{"pb-1", "pb-2"}, keys)

			all, err := s.Keys("")
			require.NoError(t, err)
			assert.Len(t, all, 5)

			none, err := s.Keys("missing-")
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestBackendLifecycle(t *testing.T) {
	t.Run("attach creates the data dir and database", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), "nested", "data")
		b := NewBackend()
		require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}))
		defer b.Detach()

		_, err := os.Stat(filepath.Join(dataDir, DBFileName))
		assert.NoError(t, err)
	})

	t.Run("double attach returns ErrAlreadyAttached", func(t *testing.T) {
		b, dataDir := attachTestBackend(t)
		err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir})
		assert.ErrorIs(t, err, types.ErrAlreadyAttached)
	})

	t.Run("invalid config is rejected", func(t *testing.T) {
		b := NewBackend()
		err := b.Attach(types.Config{Backend: "postgres", DataDir: t.TempDir()})
		assert.ErrorIs(t, err, types.ErrBackendUnknown)
	})

	t.Run("operations after detach fail", func(t *testing.T) {
		b, _ := attachTestBackend(t)
		require.NoError(t, b.Detach())
		require.NoError(t, b.Detach(), "detach is idempotent")

		_, err := b.Get("stages")
		assert.ErrorIs(t, err, types.ErrStorageDetached)
		assert.ErrorIs(t, b.Set("stages", nil), types.ErrStorageDetached)
		assert.ErrorIs(t, b.Delete("stages"), types.ErrStorageDetached)
		_, err = b.Keys("")
		assert.ErrorIs(t, err, types.ErrStorageDetached)
	})

	t.Run("values survive reattach", func(t *testing.T) {
		dataDir := t.TempDir()
		cfg := types.Config{Backend: types.BackendSQLite, DataDir: dataDir}

		b := NewBackend()
		require.NoError(t, b.Attach(cfg))
		require.NoError(t, b.Set("language", []byte("zh-tw")))
		require.NoError(t, b.Detach())

		b2 := NewBackend()
		require.NoError(t, b2.Attach(cfg))
		defer b2.Detach()
		got, err := b2.Get("language")
		require.NoError(t, err)
		assert.Equal(t, "zh-tw", string(got))
	})
}

func TestOpen(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		b, err := Open(types.Config{Backend: types.BackendMemory}, nil)
		require.NoError(t, err)
		assert.IsType(t, &Memory{}, b)
		assert.NoError(t, b.Detach())
	})

	t.Run("sqlite", func(t *testing.T) {
		b, err := Open(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}, nil)
		require.NoError(t, err)
		assert.IsType(t, &Backend{}, b)
		assert.NoError(t, b.Detach())
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := Open(types.Config{Backend: "redis"}, nil)
		assert.ErrorIs(t, err, types.ErrBackendUnknown)
	})
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	buf := []byte("abc")
	require.NoError(t, m.Set("k", buf))
	buf[0] = 'z'

	got, err := m.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, err := m.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestMemoryLifecycle(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Set("language", []byte("en")))

	require.NoError(t, m.Detach())
	require.NoError(t, m.Detach(), "detach is idempotent")

	_, err := m.Get("language")
	assert.ErrorIs(t, err, types.ErrStorageDetached)
	assert.ErrorIs(t, m.Set("language", nil), types.ErrStorageDetached)
	assert.ErrorIs(t, m.Delete("language"), types.ErrStorageDetached)
	_, err = m.Keys("")
	assert.ErrorIs(t, err, types.ErrStorageDetached)

	require.NoError(t, m.Attach(types.Config{Backend: types.BackendMemory}))
	got, err := m.Get("language")
	require.NoError(t, err)
	assert.Equal(t, "en", string(got), "values survive reattach")
}

func TestMigrationsCreateOnlyKVTable(t *testing.T) {
	b, _ := attachTestBackend(t)

	rows, err := b.db.Query(`SELECT type, name FROM sqlite_master WHERE tbl_name = 'kv' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	require.NoError(t, err)
	defer rows.Close()

	var objects []string
	for rows.Next() {
		var typ, name string
		require.NoError(t, rows.Scan(&typ, &name))
		objects = append(objects, typ+" "+name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"table kv"}, objects, "prefix scans use the primary key; no extra index")
}
