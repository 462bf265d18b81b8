package azure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitIDs(t *testing.T) {
	assert.Equal(t, []string{"sub-1", "sub-2"}, splitIDs("sub-1, sub-2"))
	assert.Equal(t, []string{"sub-1"}, splitIDs("sub-1,,  "))
	assert.Nil(t, splitIDs(""))
}
