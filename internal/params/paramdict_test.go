package params

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDict_DefaultsAndConversions(t *testing.T) {
	d := NewDict()
	d.SetInt(0, 16)
	d.SetFloat(18, 1.5)
	d.SetFloats(10, []float32{0, 6})

	assert.Equal(t, 16, d.GetInt(0, -1))
	assert.Equal(t, -1, d.GetInt(99, -1))
	assert.Equal(t, float32(1.5), d.GetFloat(18, 0))
	assert.Equal(t, 1, d.GetInt(18, 0), "float entries truncate to int")
	assert.Equal(t, float32(16), d.GetFloat(0, 0), "int entries convert to float")
	assert.Equal(t, []float32{0, 6}, d.GetFloats(10))
	assert.Nil(t, d.GetFloats(11))
	assert.True(t, d.Has(0))
	assert.False(t, d.Has(1))
}

func TestDict_FloatsAreCopied(t *testing.T) {
	d := NewDict()
	src := []float32{1, 2}
	d.SetFloats(10, src)
	src[0] = 99

	got := d.GetFloats(10)
	assert.Equal(t, float32(1), got[0])

	got[1] = 99
	assert.Equal(t, float32(2), d.GetFloats(10)[1])
}

func TestLoadYAML(t *testing.T) {
	doc := `
0: 16
1: 3
5: 1
18: 0.5
10: [0.0, 6.0]
`
	d, err := LoadYAML(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, 16, d.GetInt(0, -1))
	assert.Equal(t, 3, d.GetInt(1, -1))
	assert.Equal(t, 1, d.GetInt(5, 0))
	assert.Equal(t, float32(0.5), d.GetFloat(18, 0))
	assert.Equal(t, []float32{0, 6}, d.GetFloats(10))
}

func TestLoadYAML_RejectsUnsupportedValues(t *testing.T) {
	_, err := LoadYAML(strings.NewReader(`0: "sixteen"`))
	require.Error(t, err)
}

func TestModelBin_FromReader(t *testing.T) {
	var buf bytes.Buffer
	values := []float32{1.5, -2.25, 3}
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, values))

	mb := FromReader(&buf)
	got, err := mb.Load(3)
	require.NoError(t, err)
	assert.Equal(t, values, got)

	_, err = mb.Load(1)
	assert.Error(t, err, "stream is exhausted")
}

func TestModelBin_FromSlices(t *testing.T) {
	mb := FromSlices([]float32{1, 2}, []float32{3})

	first, err := mb.Load(2)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, first)

	second, err := mb.Load(1)
	require.NoError(t, err)
	assert.Equal(t, []float32{3}, second)

	_, err = mb.Load(1)
	assert.Error(t, err)
}

func TestModelBin_FromSlicesLengthChecked(t *testing.T) {
	mb := FromSlices([]float32{1, 2})
	_, err := mb.Load(3)
	require.Error(t, err)
}
