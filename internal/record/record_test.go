package record

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
[[questions]]
id = "q1"
title = "Why does the cache miss?"
created_at = 2026-01-02T10:00:00Z
updated_at = 2026-03-01T10:00:00Z
links = ["o1"]

[[questions]]
id = "q2"
title = "What is a warm start?"
created_at = 2026-02-01T10:00:00Z

[[objectives]]
id = "o1"
title = "Ship the cache"
created_at = 2026-01-01T00:00:00Z

  [[objectives.sub_items]]
  title = "p99 under 5ms"
  done = true
`

const sampleYAML = `
questions:
  - id: q3
    title: How do we shard?
    created_at: 2026-04-01T00:00:00Z
objectives:
  - id: o2
    title: Scale out
    created_at: 2026-04-02T00:00:00Z
    sub_items:
      - title: three regions
        done: false
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_TOML(t *testing.T) {
	d, err := Load(writeFile(t, "records.toml", sampleTOML))
	require.NoError(t, err)

	require.Len(t, d.Questions, 2)
	require.Len(t, d.Objectives, 1)
	// q1 was updated in March, q2 only created in February.
	assert.Equal(t, "q1", d.Questions[0].ID)
	assert.Equal(t, []string{"o1"}, d.Questions[0].Links)
	assert.True(t, d.Objectives[0].HasCompleted())
}

func TestLoad_MergesFormats(t *testing.T) {
	jsonBody := `{"questions":[{"id":"q9","title":"json record","created_at":"2026-05-01T00:00:00Z"}]}`
	d, err := Load(
		writeFile(t, "a.toml", sampleTOML),
		writeFile(t, "b.yml", sampleYAML),
		writeFile(t, "c.json", jsonBody),
	)
	require.NoError(t, err)

	assert.Equal(t, 6, d.Len())
	assert.Equal(t, "q9", d.Questions[0].ID)
	assert.Equal(t, "o2", d.Objectives[0].ID)
	assert.False(t, d.Objectives[0].HasCompleted())
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	_, err := Load(writeFile(t, "records.csv", "id,title\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	d := &Dataset{
		Questions: []Record{
			{ID: "x", Title: "ok"},
			{ID: "y"},
		},
		Objectives: []Record{
			{ID: "x", Title: "duplicate"},
			{ID: "z", Title: "bad sub", SubItems: []SubItem{{Done: true}}},
		},
	}
	err := d.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "questions[1]: title is required")
	assert.Contains(t, err.Error(), `id "x" already used by questions[0]`)
	assert.Contains(t, err.Error(), "objectives[1]: title is required")
}

func TestNormalize_AssignsIDs(t *testing.T) {
	d := &Dataset{Questions: []Record{{Title: "no id"}, {ID: "kept", Title: "has id"}}}
	d.Normalize()

	ids := map[string]bool{}
	for _, r := range d.Questions {
		require.NotEmpty(t, r.ID)
		ids[r.ID] = true
	}
	assert.True(t, ids["kept"])
	assert.Len(t, ids, 2)
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rs := []Record{
		{ID: "old", CreatedAt: base},
		{ID: "touched", CreatedAt: base, UpdatedAt: base.Add(72 * time.Hour)},
		{ID: "new", CreatedAt: base.Add(48 * time.Hour)},
		{ID: "old-twin", CreatedAt: base},
	}
	SortNewestFirst(rs)

	var got []string
	for _, r := range rs {
		got = append(got, r.ID)
	}
	assert.Equal(t, []string{"touched", "new", "old", "old-twin"}, got)
}

func TestLastUpdated(t *testing.T) {
	c := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, c, Record{CreatedAt: c}.LastUpdated())
	u := c.Add(time.Hour)
	assert.Equal(t, u, Record{CreatedAt: c, UpdatedAt: u}.LastUpdated())
}
