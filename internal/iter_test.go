package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"a": 1, "b": 2}
	b := map[string]int{"b": 20, "c": 30}

	merged := maps.Collect(IterSeq2Concat(maps.All(a), maps.All(b)))
	assert.Equal(map[string]int{"a": 1, "b": 20, "c": 30}, merged)

	count := 0
	for range IterSeq2Concat(maps.All(a), maps.All(b)) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)
}

func TestIterSeq2Indexed(t *testing.T) {
	assert := assert.New(t)

	got := maps.Collect(IterSeq2Indexed([]string{"zero", "one", "two"}, func(n int) float64 {
		return float64(n * 10)
	}))
	assert.Equal(map[string]float64{"zero": 0, "one": 10, "two": 20}, got)
}
