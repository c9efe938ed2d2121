package app_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"eatery_catalog/internal/app"
	"eatery_catalog/internal/domain"
	"eatery_catalog/internal/storage/fs"
)

const fixtureDir = "testdata/eateries"

// ---- fakes ----

type memSource struct {
	order   []string
	blobs   map[string]string
	readErr map[string]error
	listErr error
}

func (m *memSource) String() string { return "mem" }

func (m *memSource) List(ctx context.Context) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]string(nil), m.order...), nil
}

func (m *memSource) Read(ctx context.Context, name string) ([]byte, error) {
	if err := m.readErr[name]; err != nil {
		return nil, err
	}
	b, ok := m.blobs[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return []byte(b), nil
}

func blobFor(id int, name string) string {
	return fmt.Sprintf(`{"id":%d,"name":%q,"category":["x"],"open_time":"9","close_time":"5",
"rating":4.5,"photo":"p","address":"a","phone_number":"n","reviews":["r%d"]}`, id, name, id)
}

func load(t *testing.T, src domain.BlobSource) (*domain.Catalog, app.LoadReport) {
	t.Helper()
	cat, report, err := app.NewLoader(src, 3, zerolog.Nop()).Load(context.Background())
	require.NoError(t, err)
	return cat, report
}

// ---- tests ----

func TestLoader_FixtureDirectory(t *testing.T) {
	cat, report := load(t, fs.NewDirSource(fixtureDir))

	require.Equal(t, 10, cat.Len())
	require.Equal(t, 10, report.Seen)
	require.Equal(t, 10, report.Loaded)
	require.Empty(t, report.Dropped)

	list := cat.List()
	for i, b := range list {
		require.Equal(t, uint64(i), b.ID)
	}
	require.Len(t, cat.SearchByName("c"), 4)
	require.Len(t, cat.SearchByName("college"), 2)
	require.Len(t, cat.SearchByName("xyz"), 0)
}

func TestLoader_SortsRegardlessOfEnumerationOrder(t *testing.T) {
	src := &memSource{
		order: []string{"c", "a", "b"},
		blobs: map[string]string{"a": blobFor(20, "A"), "b": blobFor(3, "B"), "c": blobFor(11, "C")},
	}
	cat, _ := load(t, src)

	var ids []uint64
	for _, b := range cat.List() {
		ids = append(ids, b.ID)
	}
	require.Equal(t, []uint64{3, 11, 20}, ids)
}

func TestLoader_DropsMalformedAndUnreadable(t *testing.T) {
	src := &memSource{
		order: []string{"good1", "norating", "textrating", "unreadable", "good2", "missing", "latin1"},
		blobs: map[string]string{
			"good1":      blobFor(1, "One"),
			"good2":      blobFor(2, "Two"),
			"norating":   `{"id":3,"name":"x","category":[],"open_time":"","close_time":"","photo":"","address":"","phone_number":"","reviews":[]}`,
			"textrating": `{"id":4,"name":"x","category":[],"open_time":"","close_time":"","rating":"high","photo":"","address":"","phone_number":"","reviews":[]}`,
			"unreadable": blobFor(5, "Five"),
			"latin1":     strings.Replace(blobFor(6, "Cafe"), "Cafe", "Caf\xe9", 1),
		},
		readErr: map[string]error{"unreadable": errors.New("permission denied")},
	}
	cat, report := load(t, src)

	require.Equal(t, 2, cat.Len())
	require.Equal(t, 7, report.Seen)
	require.Equal(t, 2, report.Loaded)
	require.Equal(t, report.Seen, report.Loaded+len(report.Dropped))

	reasons := map[string]string{}
	for _, d := range report.Dropped {
		reasons[d.Name] = d.Reason
	}
	require.Equal(t, map[string]string{
		"norating":   app.ReasonMalformed,
		"textrating": app.ReasonMalformed,
		"unreadable": app.ReasonRead,
		"missing":    app.ReasonRead,
		"latin1":     app.ReasonMalformed,
	}, reasons)

	_, ok := cat.Get(3)
	require.False(t, ok)
	_, ok = cat.Get(5)
	require.False(t, ok)
	_, ok = cat.Get(6)
	require.False(t, ok)
}

func TestLoader_EmptySource(t *testing.T) {
	cat, report := load(t, fs.NewDirSource(t.TempDir()))

	require.Equal(t, 0, cat.Len())
	require.Empty(t, cat.List())
	require.Equal(t, 0, report.Seen)
	_, ok := cat.Get(0)
	require.False(t, ok)
}

func TestLoader_UnreadableSourceIsFatal(t *testing.T) {
	src := fs.NewDirSource(filepath.Join(t.TempDir(), "nope"))

	cat, _, err := app.NewLoader(src, 2, zerolog.Nop()).Load(context.Background())
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
	require.Nil(t, cat)
}

func TestLoader_SubdirectoryIsDropped(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.json"), []byte(blobFor(1, "One")), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	cat, report := load(t, fs.NewDirSource(dir))
	require.Equal(t, 1, cat.Len())
	require.Len(t, report.Dropped, 1)
	require.Equal(t, "archive", report.Dropped[0].Name)
}

func TestLoader_DuplicateIDsReportedFirstEnumeratedWins(t *testing.T) {
	src := &memSource{
		order: []string{"first", "other", "second"},
		blobs: map[string]string{
			"first":  blobFor(7, "First"),
			"other":  blobFor(1, "Other"),
			"second": blobFor(7, "Second"),
		},
	}
	cat, report := load(t, src)

	require.Equal(t, 3, cat.Len())
	require.Equal(t, []uint64{7}, report.DuplicateIDs)
	got, ok := cat.Get(7)
	require.True(t, ok)
	require.Equal(t, "First", got.Name)
}

func TestLoader_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &memSource{order: []string{"a"}, blobs: map[string]string{"a": blobFor(1, "A")}}
	_, _, err := app.NewLoader(src, 1, zerolog.Nop()).Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoader_ReportVersionMatchesCatalog(t *testing.T) {
	cat, report := load(t, fs.NewDirSource(fixtureDir))
	require.Equal(t, cat.Version(), report.Version)
	require.NotEmpty(t, report.Version)
}
