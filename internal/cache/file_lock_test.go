package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCache_LockForIsStableAndBounded(t *testing.T) {
	t.Parallel()

	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	assert.Same(t, c.lockFor("heinz baked beans 415g"), c.lockFor("heinz baked beans 415g"))

	seen := make(map[any]struct{})
	for i := range 10_000 {
		seen[c.lockFor(fmt.Sprintf("query %d", i))] = struct{}{}
	}
	assert.LessOrEqual(t, len(seen), lockStripes)
}
