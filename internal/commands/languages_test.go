package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Languages(t *testing.T) {
	// Test: Lists every registered generator name, aliases included,
	// in stable sorted order
	var out bytes.Buffer
	ctrl := &Controller{Flags: &Flags{}, Stdout: &out}

	require.NoError(t, ctrl.Languages(context.Background()))
	assert.Equal(t, "kotlin\nkt\n", out.String())
}
