package conversations

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chative-support-desk/server/internal/agent/model"
)

func TestAppendDoesNotAliasHistory(t *testing.T) {
	base := make([]model.Turn, 1, 4)
	base[0] = model.Turn{Query: "first", Response: "one"}

	a := Append(base, model.Turn{Query: "a", Response: "ra"})
	b := Append(base, model.Turn{Query: "b", Response: "rb"})

	assert.Len(t, base, 1)
	assert.Equal(t, "a", a[1].Query)
	assert.Equal(t, "b", b[1].Query)
}

func TestAppendSkipsEmptyResponse(t *testing.T) {
	history := []model.Turn{{Query: "first", Response: "one"}}
	out := Append(history, model.Turn{Query: "second"})
	assert.Len(t, out, 1)
}

func TestRecent(t *testing.T) {
	history := []model.Turn{{Query: "1"}, {Query: "2"}, {Query: "3"}}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"zero returns all", 0, []string{"1", "2", "3"}},
		{"negative returns all", -1, []string{"1", "2", "3"}},
		{"tail", 2, []string{"2", "3"}},
		{"larger than history", 10, []string{"1", "2", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, turn := range Recent(history, tt.n) {
				got = append(got, turn.Query)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
