package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_KnownDoctors(t *testing.T) {
	dir := Default()

	doc, ok := dir.Find(2)
	require.True(t, ok)
	assert.Equal(t, "Dr. Jane Smith", doc.Name)
	assert.Equal(t, "Neurology", doc.Specialty)

	_, ok = dir.Find(99)
	assert.False(t, ok)
}

func TestAll_OrderedAndDetached(t *testing.T) {
	dir := New([]Doctor{
		{ID: 3, Name: "C", Specialty: "x"},
		{ID: 1, Name: "A", Specialty: "y"},
	})

	all := dir.All()
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, 3, all[1].ID)

	all[0].Name = "changed"
	doc, _ := dir.Find(1)
	assert.Equal(t, "A", doc.Name)
	assert.Equal(t, "A", dir.All()[0].Name)
}

func TestNew_CopiesInput(t *testing.T) {
	src := []Doctor{{ID: 1, Name: "A", Specialty: "y"}}
	dir := New(src)
	src[0].Name = "mutated"

	doc, _ := dir.Find(1)
	assert.Equal(t, "A", doc.Name)
}
