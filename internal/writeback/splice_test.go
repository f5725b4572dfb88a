package writeback

import (
	"os"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplice_ReplaceMiddle(t *testing.T) {
	got, err := Splice([]byte("AAA\nBBB\nCCC\n"), []Edit{{Start: 4, End: 7, Text: "bbbbb"}})
	require.NoError(t, err)
	assert.Equal(t, "AAA\nbbbbb\nCCC\n", string(got))
}

func TestSplice_MultipleEdits(t *testing.T) {
	src := []byte(`<label for="a">A</label><label for="b">B</label>`)
	edits := []Edit{
		{Start: 31, End: 34, Text: "htmlFor"},
		{Start: 7, End: 10, Text: "htmlFor"},
	}
	got, err := Splice(src, edits)
	require.NoError(t, err)
	assert.Equal(t, `<label htmlFor="a">A</label><label htmlFor="b">B</label>`, string(got))
	assert.Equal(t, 31, int(edits[0].Start), "edits are not reordered in place")
}

func TestSplice_DuplicateEditsCollapse(t *testing.T) {
	e := Edit{Start: 0, End: 3, Text: "xyz"}
	got, err := Splice([]byte("abcdef"), []Edit{e, e})
	require.NoError(t, err)
	assert.Equal(t, "xyzdef", string(got))
}

func TestSplice_EmptyText(t *testing.T) {
	got, err := Splice([]byte("AAA\nBBB\nCCC\n"), []Edit{{Start: 4, End: 8}})
	require.NoError(t, err)
	assert.Equal(t, "AAA\nCCC\n", string(got))
}

func TestSplice_Errors(t *testing.T) {
	_, err := Splice([]byte("short"), []Edit{{Start: 0, End: 100, Text: "x"}})
	assert.Error(t, err)

	_, err = Splice([]byte("short"), []Edit{{Start: 3, End: 1, Text: "x"}})
	assert.Error(t, err)

	_, err = Splice([]byte("abcdef"), []Edit{{Start: 0, End: 3, Text: "x"}, {Start: 2, End: 4, Text: "y"}})
	assert.ErrorIs(t, err, ErrOverlappingEdits)
}

func TestApplyEdits_Memfs(t *testing.T) {
	fs := memfs.New()
	src := `const x = <><label for="e">Email</label><Input id="e" /></>;`
	require.NoError(t, util.WriteFile(fs, "src/form.tsx", []byte(src), 0o644))

	err := ApplyEdits(t.Context(), fs, "src/form.tsx", []Edit{{Start: 19, End: 22, Text: "htmlFor"}})
	require.NoError(t, err)

	got, err := util.ReadFile(fs, "src/form.tsx")
	require.NoError(t, err)
	assert.Equal(t, `const x = <><label htmlFor="e">Email</label><Input id="e" /></>;`, string(got))

	entries, err := fs.ReadDir("src")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestApplyEdits_RejectsBrokenResult(t *testing.T) {
	fs := memfs.New()
	src := `const x = <Input id="e" />;`
	require.NoError(t, util.WriteFile(fs, "a.tsx", []byte(src), 0o644))

	err := ApplyEdits(t.Context(), fs, "a.tsx", []Edit{{Start: 24, End: 26, Text: ""}})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "a.tsx", ve.FilePath)

	got, err := util.ReadFile(fs, "a.tsx")
	require.NoError(t, err)
	assert.Equal(t, src, string(got), "file untouched")
}

func TestApplyEdits_PreservesPermissions(t *testing.T) {
	dir := t.TempDir()
	fs := osfs.New(dir)
	require.NoError(t, util.WriteFile(fs, "a.jsx", []byte(`<a aria-labeledby="x" />`), 0o755))

	require.NoError(t, ApplyEdits(t.Context(), fs, "a.jsx", []Edit{{Start: 3, End: 17, Text: "aria-labelledby"}}))

	info, err := os.Stat(fs.Join(dir, "a.jsx"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestApplyEdits_NonexistentFile(t *testing.T) {
	err := ApplyEdits(t.Context(), memfs.New(), "nope.tsx", []Edit{{Start: 0, End: 1}})
	assert.Error(t, err)
}

func TestApplyEdits_NoEdits(t *testing.T) {
	assert.NoError(t, ApplyEdits(t.Context(), memfs.New(), "nope.tsx", nil))
}
