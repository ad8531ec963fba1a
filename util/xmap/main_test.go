package xmap

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1}
	keys := Keys(m)
	sort.Strings(keys)
	assert.Equal(t, []string{"a", "b"}, keys)
	assert.Equal(t, []string{}, Keys(map[string]struct{}{}))
}
