package utils

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	assert.Len(t, Hash("abc"), 56)
	assert.Equal(t, Hash("abc"), HashBytes([]byte("abc")))
	assert.NotEqual(t, Hash("abc"), Hash("abd"))
}

func TestGetTTLWithJitter(t *testing.T) {
	assert.Equal(t, time.Duration(0), GetTTLWithJitter(0))
	assert.Equal(t, time.Duration(0), GetTTLWithJitter(-5))
	assert.Equal(t, 5*time.Second, GetTTLWithJitter(5))

	for i := 0; i < 50; i++ {
		ttl := GetTTLWithJitter(3600)
		assert.GreaterOrEqual(t, ttl, 3600*time.Second)
		assert.Less(t, ttl, 3960*time.Second)
	}
}

func TestParseDateFromLogFileName(t *testing.T) {
	loc := time.UTC

	d, ok := ParseDateFromLogFileName("run.log.2025-10-28", loc)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 10, 28, 0, 0, 0, 0, loc), d)

	for _, name := range []string{"run.log", "gin", "run.log.yesterday"} {
		_, ok = ParseDateFromLogFileName(name, loc)
		assert.False(t, ok, name)
	}
}

func TestTimeFormat(t *testing.T) {
	assert.Equal(t, "1970-01-01 00:00:00", TimeFormat(int64(0), time.UTC))
}

func TestCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "run.log")

	require.NoError(t, CreateFile(path))
	assert.True(t, FileExist(path))
	require.NoError(t, CreateFile(path))
}

func TestNumberFormat(t *testing.T) {
	assert.Equal(t, 3.14, NumberFormat(3.14159))
	assert.Equal(t, 3.1, NumberFormat(float32(3.14159), 1))
}
