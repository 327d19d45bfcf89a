package db

import (
	"errors"
	"io"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationSource(t *testing.T) {
	src, err := MigrationSource()
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	up, _, err := src.ReadUp(first)
	require.NoError(t, err)
	upSQL, err := io.ReadAll(up)
	require.NoError(t, err)
	_ = up.Close()
	for _, want := range []string{
		"CREATE TABLE IF NOT EXISTS catalogs",
		"CONSTRAINT catalogs_slug_key UNIQUE (slug)",
		"categories TEXT[] NOT NULL",
		"tags     TEXT[] NOT NULL",
		"CREATE TABLE IF NOT EXISTS queue",
	} {
		assert.Contains(t, string(upSQL), want)
	}

	down, _, err := src.ReadDown(first)
	require.NoError(t, err)
	downSQL, err := io.ReadAll(down)
	require.NoError(t, err)
	_ = down.Close()
	assert.Contains(t, string(downSQL), "DROP TABLE IF EXISTS catalogs")
}

type stubMigrator struct {
	upErr, downErr, stepsErr error
	steps                    int
	downCalled               bool
	version                  uint
	versionErr               error
}

func (s *stubMigrator) Up() error { return s.upErr }
func (s *stubMigrator) Down() error {
	s.downCalled = true
	return s.downErr
}
func (s *stubMigrator) Steps(n int) error {
	s.steps = n
	return s.stepsErr
}
func (s *stubMigrator) Version() (uint, bool, error) { return s.version, false, s.versionErr }
func (s *stubMigrator) Close() (error, error)        { return nil, nil }

func TestMigrateUp(t *testing.T) {
	tests := []struct {
		name    string
		m       *stubMigrator
		wantErr bool
	}{
		{name: "applied", m: &stubMigrator{version: 1}},
		{name: "no change", m: &stubMigrator{upErr: migrate.ErrNoChange, version: 1}},
		{name: "fresh database without version", m: &stubMigrator{versionErr: migrate.ErrNilVersion}},
		{name: "up fails", m: &stubMigrator{upErr: errors.New("syntax error")}, wantErr: true},
		{name: "version fails", m: &stubMigrator{versionErr: errors.New("conn closed")}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MigrateUp(tt.m)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMigrateDown(t *testing.T) {
	all := &stubMigrator{}
	require.NoError(t, MigrateDown(all, 0))
	assert.True(t, all.downCalled)

	one := &stubMigrator{}
	require.NoError(t, MigrateDown(one, 1))
	assert.Equal(t, -1, one.steps)
	assert.False(t, one.downCalled)

	noChange := &stubMigrator{downErr: migrate.ErrNoChange}
	assert.NoError(t, MigrateDown(noChange, 0))

	failing := &stubMigrator{stepsErr: errors.New("dirty database")}
	assert.Error(t, MigrateDown(failing, 2))
}
