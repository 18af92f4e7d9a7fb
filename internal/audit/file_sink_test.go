package audit_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"piiguard/internal/audit"
	"piiguard/internal/domain"
)

func newEntry(text string) *domain.IngestEntry {
	return &domain.IngestEntry{
		ID:         uuid.New(),
		RequestID:  "req-1",
		Text:       text,
		ReceivedAt: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestFileSink_AppendsOneLinePerEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ingested_prompts.log")
	sink, err := audit.NewFileSink(path)
	require.NoError(t, err)

	require.NoError(t, sink.Append(context.Background(), newEntry("first message")))
	require.NoError(t, sink.Append(context.Background(), newEntry("second message")))
	require.NoError(t, sink.Close())

	assert.Equal(t, []string{"first message", "second message"}, readLines(t, path))
}

func TestFileSink_EscapesLineBreaks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	sink, err := audit.NewFileSink(path)
	require.NoError(t, err)

	require.NoError(t, sink.Append(context.Background(), newEntry("line one\nline two\r\nC:\\temp")))
	require.NoError(t, sink.Close())

	assert.Equal(t, []string{`line one\nline two\r\nC:\\temp`}, readLines(t, path))
}

func TestFileSink_PreservesUnicode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	sink, err := audit.NewFileSink(path)
	require.NoError(t, err)

	require.NoError(t, sink.Append(context.Background(), newEntry("José Müller, 東京")))
	require.NoError(t, sink.Close())

	assert.Equal(t, []string{"José Müller, 東京"}, readLines(t, path))
}

func TestFileSink_AppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	require.NoError(t, os.WriteFile(path, []byte("earlier\n"), 0o644))

	sink, err := audit.NewFileSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.Append(context.Background(), newEntry("later")))
	require.NoError(t, sink.Close())

	assert.Equal(t, []string{"earlier", "later"}, readLines(t, path))
}

func TestFileSink_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "audit.log")

	sink, err := audit.NewFileSink(path)
	require.NoError(t, err)
	defer func() { _ = sink.Close() }()

	_, err = os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, "file:"+path, sink.Name())
}

func TestFileSink_ConcurrentAppendsDoNotInterleave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	sink, err := audit.NewFileSink(path)
	require.NoError(t, err)

	const writers = 20
	payload := strings.Repeat("x", 4096)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, sink.Append(context.Background(), newEntry(payload)))
		}()
	}
	wg.Wait()
	require.NoError(t, sink.Close())

	lines := readLines(t, path)
	require.Len(t, lines, writers)
	for _, line := range lines {
		assert.Equal(t, payload, line)
	}
}

func TestFileSink_AppendAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	sink, err := audit.NewFileSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	err = sink.Append(context.Background(), newEntry("late"))

	assert.EqualError(t, err, "sink closed")
	assert.NoError(t, sink.Close())
}

func TestNewFileSink_EmptyPath(t *testing.T) {
	_, err := audit.NewFileSink("")

	assert.Error(t, err)
}
