package script

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Step is one parsed script row. Steps are read-only once parsed.
type Step struct {
	Order int
	Type  string
	Text  string
}

// headerTokens are first-column values that mark a header row.
var headerTokens = map[string]struct{}{
	"run":   {},
	"order": {},
	"ordem": {},
}

// Parse reads tab-separated script rows. Four columns are
// run/order/type/text, three are order/type/text; anything narrower is
// dropped. Rows are sorted by order ascending.
func Parse(r io.Reader) []Step {
	var steps []Step
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		step, ok := parseRow(scanner.Text())
		if !ok {
			continue
		}
		steps = append(steps, step)
	}
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Order < steps[j].Order })
	return steps
}

func parseRow(line string) (Step, bool) {
	cols := strings.Split(line, "\t")
	if len(cols) < 3 {
		return Step{}, false
	}
	first := strings.ToLower(strings.TrimSpace(cols[0]))
	if _, ok := headerTokens[first]; ok {
		return Step{}, false
	}

	var orderCol, typeCol, textCol string
	if len(cols) >= 4 {
		orderCol, typeCol, textCol = cols[1], cols[2], cols[3]
	} else {
		orderCol, typeCol, textCol = cols[0], cols[1], cols[2]
	}
	order, err := strconv.Atoi(strings.TrimSpace(orderCol))
	if err != nil {
		return Step{}, false
	}
	return Step{
		Order: order,
		Type:  strings.ToLower(strings.TrimSpace(typeCol)),
		Text:  strings.TrimSpace(textCol),
	}, true
}
