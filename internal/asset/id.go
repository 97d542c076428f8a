package asset

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

const idPrefix = "CON-"

// IDGenerator issues CON-NNN identifiers. The zero value is ready to use and
// safe for concurrent callers.
type IDGenerator struct {
	mu   sync.Mutex
	last int
}

// Next returns an id absent from existing and never returned before by g.
func (g *IDGenerator) Next(existing map[string]struct{}) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.last
	for id := range existing {
		if v, ok := idNumber(id); ok && v > n {
			n = v
		}
	}
	for {
		n++
		id := fmt.Sprintf("%s%03d", idPrefix, n)
		if _, taken := existing[id]; !taken {
			g.last = n
			return id
		}
	}
}

func idNumber(id string) (int, bool) {
	rest, ok := strings.CutPrefix(strings.ToUpper(strings.TrimSpace(id)), idPrefix)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(rest)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
