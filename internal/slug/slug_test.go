package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	assert.Equal(t, "acme-interiors", Make("Acme Interiors"))
	assert.Equal(t, "loft-42", Make("  Loft 42  "))
	assert.Equal(t, "caf-nord", Make("Café & Nord"))
	assert.Equal(t, "a-b", Make("A --- B"))
	assert.Equal(t, "", Make("!!!"))
}

func TestMakeIdempotent(t *testing.T) {
	names := []string{"Acme Interiors", "Loft 42", "studio-one"}
	for _, name := range names {
		once := Make(name)
		assert.Equal(t, once, Make(once))
	}
}

func TestDenormalize(t *testing.T) {
	assert.Equal(t, "acme interiors", Denormalize("Acme-Interiors"))
	assert.Equal(t, "loft 42", Denormalize("loft-42"))
}
