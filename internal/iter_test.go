package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcatSeq2(t *testing.T) {
	assert := assert.New(t)

	first := map[string]string{"A": "1", "B": "2"}
	second := map[string]string{"B": "3", "C": "4"}

	merged := maps.Collect(ConcatSeq2(maps.All(first), maps.All(second)))
	assert.Equal(map[string]string{"A": "1", "B": "3", "C": "4"}, merged)

	var count int
	for range ConcatSeq2(maps.All(first), maps.All(second)) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(3, count)

	assert.Empty(maps.Collect(ConcatSeq2[string, string]()))
}
