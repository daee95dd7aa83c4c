package reorder

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item int64

func (i item) ItemID() int64 { return int64(i) }

func items(ids ...int64) []item {
	out := make([]item, len(ids))
	for i, id := range ids {
		out[i] = item(id)
	}
	return out
}

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []int64
	}{
		{"backward", 2, 0, []int64{3, 1, 2, 4}},
		{"forward", 0, 2, []int64{2, 3, 1, 4}},
		{"to end", 0, 3, []int64{2, 3, 4, 1}},
		{"adjacent", 1, 2, []int64{1, 3, 2, 4}},
		{"same index", 1, 1, []int64{1, 2, 3, 4}},
		{"out of range", 5, 0, []int64{1, 2, 3, 4}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := []int64{1, 2, 3, 4}
			got := Move(in, tc.from, tc.to)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, []int64{1, 2, 3, 4}, in, "input must not change")
		})
	}
}

// Her a≠b için: a, b'nin eski pozisyonuna yerleşir (b'ye bitişik),
// üye kümesi aynı kalır, diğer elemanların göreli sırası korunur.
func TestCompleteDrag_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for n := 2; n <= 12; n++ {
		base := make([]int64, n)
		for i := range base {
			base[i] = int64(100 + i)
		}
		rng.Shuffle(n, func(i, j int) { base[i], base[j] = base[j], base[i] })

		for ai := 0; ai < n; ai++ {
			for bi := 0; bi < n; bi++ {
				if ai == bi {
					continue
				}
				a, b := base[ai], base[bi]
				e := NewEditor(items(base...))

				got, changed, err := e.CompleteDrag(a, b)
				require.NoError(t, err)
				require.True(t, changed)

				assert.ElementsMatch(t, base, got, "same member set")
				assert.Equal(t, a, got[bi], "a lands on b's original index")

				bNew := indexOf(got, b)
				assert.Equal(t, 1, abs(bNew-bi), "b shifts by exactly one, staying adjacent to a")

				assert.Equal(t, without(base, a), without(got, a), "relative order of others preserved")
			}
		}
	}
}

func TestCompleteDrag_Identity(t *testing.T) {
	e := NewEditor(items(1, 2, 3, 4))
	require.NoError(t, e.BeginDrag(3))

	got, changed, err := e.CompleteDrag(3, 3)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, []int64{1, 2, 3, 4}, got)
	assert.Equal(t, Idle, e.DragState(3))
}

func indexOf(ids []int64, id int64) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func without(ids []int64, id int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
