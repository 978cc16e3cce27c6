package stats

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/data"
)

// ErrGrouping means a grouping cannot be computed on the table.
var ErrGrouping = errors.New("invalid grouping")

// Grouping partitions records by one or two categorical columns. With two
// keys the second one splits every bar of the first (the hue).
type Grouping struct {
	Name string
	Keys []string
	// Orders pins the display order of a key's levels. Keys without an
	// entry are shown in ascending natural order.
	Orders map[string][]string
}

// Group is one cell of a grouping.
type Group struct {
	Keys         []string
	Count        int
	Survived     int
	SurvivalRate float64
}

// Summary holds the aggregate of every non-empty group.
type Summary struct {
	Grouping Grouping
	// Levels are the ordered values present for each key.
	Levels [][]string
	// Groups enumerate the first key outermost.
	Groups []Group
}

// Aggregate counts records and averages Survived per group.
func Aggregate(df dataframe.DataFrame, g Grouping) (Summary, error) {
	if len(g.Keys) == 0 || len(g.Keys) > 2 {
		return Summary{}, fmt.Errorf("%w: %s has %d keys, want 1 or 2", ErrGrouping, g.Name, len(g.Keys))
	}
	if err := data.RequireColumns(df, append([]string{data.ColSurvived}, g.Keys...)...); err != nil {
		return Summary{}, err
	}
	survived, err := df.Col(data.ColSurvived).Int()
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %s: %v", ErrGrouping, data.ColSurvived, err)
	}

	keyCols := make([][]string, len(g.Keys))
	levels := make([][]string, len(g.Keys))
	for i, key := range g.Keys {
		col := df.Col(key)
		mask := data.MissingMask(col)
		if row := slices.Index(mask, true); row >= 0 {
			return Summary{}, fmt.Errorf("%w: %s row %d is missing", ErrGrouping, key, row+1)
		}
		keyCols[i] = col.Records()
		levels[i] = orderLevels(keyCols[i], col.Type(), g.Orders[key])
	}

	acc := make(map[string]*Group)
	for row := range survived {
		keys := make([]string, len(keyCols))
		for i := range keyCols {
			keys[i] = keyCols[i][row]
		}
		id := groupID(keys)
		grp, ok := acc[id]
		if !ok {
			grp = &Group{Keys: keys}
			acc[id] = grp
		}
		grp.Count++
		grp.Survived += survived[row]
	}

	s := Summary{Grouping: g, Levels: levels}
	for _, keys := range combinations(levels) {
		grp, ok := acc[groupID(keys)]
		if !ok {
			continue
		}
		grp.SurvivalRate = float64(grp.Survived) / float64(grp.Count)
		s.Groups = append(s.Groups, *grp)
	}
	return s, nil
}

// Lookup returns the group with the given key values.
func (s Summary) Lookup(keys ...string) (Group, bool) {
	for _, g := range s.Groups {
		if slices.Equal(g.Keys, keys) {
			return g, true
		}
	}
	return Group{}, false
}

// Total returns the number of records over all groups.
func (s Summary) Total() int {
	n := 0
	for _, g := range s.Groups {
		n += g.Count
	}
	return n
}

// Overall returns the count-weighted mean of the group survival rates.
func (s Summary) Overall() float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	var sum float64
	for _, g := range s.Groups {
		sum += g.SurvivalRate * float64(g.Count)
	}
	return sum / float64(total)
}

// orderLevels lists the distinct values of col. Values named in pinned come
// first in that order, the rest follow in natural order.
func orderLevels(col []string, t series.Type, pinned []string) []string {
	seen := make(map[string]bool)
	var rest []string
	for _, v := range col {
		if seen[v] {
			continue
		}
		seen[v] = true
		if !slices.Contains(pinned, v) {
			rest = append(rest, v)
		}
	}

	numeric := t == series.Int || t == series.Float
	sort.Slice(rest, func(i, j int) bool {
		if numeric {
			a, errA := strconv.ParseFloat(rest[i], 64)
			b, errB := strconv.ParseFloat(rest[j], 64)
			if errA == nil && errB == nil {
				return a < b
			}
		}
		return rest[i] < rest[j]
	})

	levels := make([]string, 0, len(seen))
	for _, v := range pinned {
		if seen[v] {
			levels = append(levels, v)
		}
	}
	return append(levels, rest...)
}

func combinations(levels [][]string) [][]string {
	out := [][]string{{}}
	for _, lv := range levels {
		var next [][]string
		for _, prefix := range out {
			for _, v := range lv {
				next = append(next, append(slices.Clone(prefix), v))
			}
		}
		out = next
	}
	return out
}

func groupID(keys []string) string {
	return strings.Join(keys, "\x1f")
}
