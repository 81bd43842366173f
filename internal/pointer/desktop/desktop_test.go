package desktop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/v0xg/mousereplay/internal/pointer"
)

func TestButtonName(t *testing.T) {
	assert.Equal(t, "left", buttonName(pointer.Left))
	assert.Equal(t, "right", buttonName(pointer.Right))
	assert.Equal(t, "center", buttonName(pointer.Middle))
}

var _ pointer.Driver = (*Driver)(nil)
