package writeback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	src := []byte(`const x = <Button>Save</Button>;`)
	assert.NoError(t, Validate(t.Context(), "a.tsx", nil, src))
}

func TestValidate_Broken(t *testing.T) {
	src := []byte(`const x = <Button>Save</Button;`)
	err := Validate(t.Context(), "a.jsx", nil, src)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "a.jsx", ve.FilePath)
	assert.Contains(t, err.Error(), "a.jsx:1:")
}

func TestValidate_AlreadyBroken(t *testing.T) {
	before := []byte(`const x = <Button>Save</Button;`)
	after := []byte(`const x = <Button>Save!</Button;`)
	assert.NoError(t, Validate(t.Context(), "a.tsx", before, after), "edits need not repair existing errors")
}

func TestValidate_UnknownExtension_PassThrough(t *testing.T) {
	assert.NoError(t, Validate(t.Context(), "notes.md", nil, []byte("<<<")))
}
