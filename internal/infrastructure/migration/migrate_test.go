package migration

import (
	"errors"
	"io"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMigrator — мок для интерфейса Migrator
type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

func TestMigration_Up_Success(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(nil, nil)

	var gotURL string
	engine := func(src source.Driver, db string) (Migrator, error) {
		gotURL = db
		return mockM, nil
	}

	err := NewMigration(SQLite, "sqlite3:///tmp/vault.db", engine).Up()

	assert.NoError(t, err)
	assert.Equal(t, "sqlite3:///tmp/vault.db", gotURL)
	mockM.AssertExpectations(t)
}

func TestMigration_Up_NoChange(t *testing.T) {
	mockM := new(MockMigrator)
	// ErrNoChange не должна считаться ошибкой в методе Up()
	mockM.On("Up").Return(migrate.ErrNoChange)
	mockM.On("Close").Return(nil, nil)

	engine := func(source.Driver, string) (Migrator, error) {
		return mockM, nil
	}

	err := NewMigration(Postgres, "", engine).Up()

	assert.NoError(t, err)
}

func TestMigration_Up_Failure(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(errors.New("syntax error"))
	mockM.On("Close").Return(nil, errors.New("close db"))

	engine := func(source.Driver, string) (Migrator, error) {
		return mockM, nil
	}

	err := NewMigration(SQLite, "", engine).Up()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error")
	assert.Contains(t, err.Error(), "close db")
}

func TestMigration_Up_EngineError(t *testing.T) {
	// Ошибка на этапе создания мигратора (например, неверный драйвер)
	engine := func(source.Driver, string) (Migrator, error) {
		return nil, errors.New("engine crash")
	}

	err := NewMigration(SQLite, "", engine).Up()

	assert.Error(t, err)
	assert.Equal(t, "engine crash", err.Error())
}

func TestSource_EmbeddedDialects(t *testing.T) {
	for _, d := range []Dialect{SQLite, Postgres} {
		t.Run(string(d), func(t *testing.T) {
			src, err := Source(d)
			require.NoError(t, err)
			defer src.Close()

			version, err := src.First()
			require.NoError(t, err)
			assert.Equal(t, uint(1), version)

			r, _, err := src.ReadUp(version)
			require.NoError(t, err)
			body, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS tags")
		})
	}
}

func TestSource_UnknownDialect(t *testing.T) {
	_, err := Source("oracle")
	assert.Error(t, err)
}
