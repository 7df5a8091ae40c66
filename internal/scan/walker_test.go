package scan

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirsnap/dirsnap/internal/snapshot"
)

// fakeLister serves a fabricated tree, keyed by directory path.
type fakeLister struct {
	entries map[string][]Entry
	errs    map[string]error
}

func (f *fakeLister) List(dir string) ([]Entry, error) {
	if err, ok := f.errs[dir]; ok {
		return nil, err
	}

	entries, ok := f.entries[dir]
	if !ok {
		return nil, fs.ErrNotExist
	}

	return entries, nil
}

func TestWalkCollectsFilesDepthFirst(t *testing.T) {
	p := filepath.FromSlash

	lister := &fakeLister{entries: map[string][]Entry{
		p("/r"): {
			{Name: "a", Dir: true},
			{Name: "top.txt", Size: 5},
		},
		p("/r/a"): {
			{Name: "sub", Dir: true},
			{Name: "x.txt", Size: 1},
			{Name: "y.txt", Size: 2},
		},
		p("/r/a/sub"): {
			{Name: "z.txt", Size: 3},
		},
	}}

	w := &walker{lister: lister}

	files, err := w.walk(p("/r"), nil)
	require.NoError(t, err)

	want := []snapshot.FileRecord{
		{Path: p("/r/a/sub/z.txt"), Size: 3},
		{Path: p("/r/a/x.txt"), Size: 1},
		{Path: p("/r/a/y.txt"), Size: 2},
		{Path: p("/r/top.txt"), Size: 5},
	}
	assert.Equal(t, want, files)
}

func TestWalkRootFailure(t *testing.T) {
	p := filepath.FromSlash

	lister := &fakeLister{errs: map[string]error{p("/r"): fs.ErrPermission}}

	w := &walker{lister: lister}

	files, err := w.walk(p("/r"), nil)
	assert.Nil(t, files)

	var terr *TraversalError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, p("/r"), terr.Root)
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestWalkSkipsUnreadableSubtree(t *testing.T) {
	p := filepath.FromSlash

	lister := &fakeLister{
		entries: map[string][]Entry{
			p("/r"): {
				{Name: "ok", Dir: true},
				{Name: "locked", Dir: true},
			},
			p("/r/ok"): {
				{Name: "f.txt", Size: 7},
			},
		},
		errs: map[string]error{p("/r/locked"): fs.ErrPermission},
	}

	w := &walker{lister: lister}

	var percents []int

	files, err := w.walk(p("/r"), func(_ string, pct int) {
		percents = append(percents, pct)
	})
	require.NoError(t, err)

	assert.Equal(t, []snapshot.FileRecord{{Path: p("/r/ok/f.txt"), Size: 7}}, files)

	for i := 1; i < len(percents); i++ {
		assert.GreaterOrEqual(t, percents[i], percents[i-1])
	}

	assert.LessOrEqual(t, percents[len(percents)-1], 100)
}

func TestWalkProgressSequence(t *testing.T) {
	p := filepath.FromSlash

	lister := &fakeLister{entries: map[string][]Entry{
		p("/r"): {
			{Name: "a", Dir: true},
			{Name: "b", Dir: true},
			{Name: "f1", Size: 1},
			{Name: "f2", Size: 1},
		},
		p("/r/a"): {
			{Name: "g1", Size: 1},
			{Name: "g2", Size: 1},
		},
		p("/r/b"): {},
	}}

	w := &walker{lister: lister}

	var paths []string

	var percents []int

	_, err := w.walk(p("/r"), func(path string, pct int) {
		paths = append(paths, path)
		percents = append(percents, pct)
	})
	require.NoError(t, err)

	// Six items total: four root entries plus two files under a.
	assert.Equal(t, []string{p("/r"), p("/r/a"), p("/r/b")}, paths)
	assert.Equal(t, []int{0, 16, 66}, percents)
}

func TestWalkSanitizesProgressPaths(t *testing.T) {
	p := filepath.FromSlash

	dir := filepath.Join(p("/r"), "evil\x1bname")

	lister := &fakeLister{entries: map[string][]Entry{
		p("/r"): {{Name: "evil\x1bname", Dir: true}},
		dir:     {},
	}}

	w := &walker{lister: lister}

	var seen []string

	_, err := w.walk(p("/r"), func(path string, _ int) {
		seen = append(seen, path)
	})
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, filepath.Join(p("/r"), "evil?name"), seen[1])
	assert.NotContains(t, seen[1], "\x1b")
}

func TestWalkEmptyRoot(t *testing.T) {
	p := filepath.FromSlash

	lister := &fakeLister{entries: map[string][]Entry{p("/r"): {}}}

	w := &walker{lister: lister}

	var percents []int

	files, err := w.walk(p("/r"), func(_ string, pct int) {
		percents = append(percents, pct)
	})
	require.NoError(t, err)

	assert.Empty(t, files)
	assert.Equal(t, []int{0}, percents)
}

// growingLister returns more entries each time a directory is listed,
// standing in for a tree that grows while the scan runs.
type growingLister struct {
	visits map[string]int
}

func (g *growingLister) List(dir string) ([]Entry, error) {
	if g.visits == nil {
		g.visits = make(map[string]int)
	}

	g.visits[dir]++

	p := filepath.FromSlash

	if dir != p("/r") {
		return nil, nil
	}

	if g.visits[dir] == 1 {
		return []Entry{{Name: "d1", Dir: true}}, nil
	}

	return []Entry{
		{Name: "d1", Dir: true},
		{Name: "d2", Dir: true},
		{Name: "d3", Dir: true},
	}, nil
}

func TestWalkClampsProgressWhenTreeGrows(t *testing.T) {
	p := filepath.FromSlash

	w := &walker{lister: &growingLister{}}

	var percents []int

	_, err := w.walk(p("/r"), func(_ string, pct int) {
		percents = append(percents, pct)
	})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 100, 100, 100}, percents)
}

func TestWalkCountMatchesVisited(t *testing.T) {
	p := filepath.FromSlash

	lister := &fakeLister{entries: map[string][]Entry{
		p("/r"): {
			{Name: "a", Dir: true},
			{Name: "f", Size: 1},
		},
		p("/r/a"): {
			{Name: "g", Size: 2},
			{Name: "h", Size: 3},
		},
	}}

	w := &walker{lister: lister}

	rootEntries, err := lister.List(p("/r"))
	require.NoError(t, err)

	state := &walkState{total: w.countFrom(p("/r"), rootEntries)}

	var files []snapshot.FileRecord

	w.collect(p("/r"), state, &files, nil)

	assert.Equal(t, 4, state.total)
	assert.Equal(t, state.total, state.visited)
}

func TestWalkStatePercent(t *testing.T) {
	tests := []struct {
		total   int
		visited int
		want    int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{10, 0, 0},
		{10, 5, 50},
		{3, 1, 33},
		{10, 10, 100},
		{10, 20, 100},
	}

	for _, tt := range tests {
		state := &walkState{total: tt.total, visited: tt.visited}
		assert.Equal(t, tt.want, state.percent(), "visited %d of %d", tt.visited, tt.total)
	}
}
