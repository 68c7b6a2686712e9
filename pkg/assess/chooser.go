package assess

import (
	"math/rand"
	"sync"
	"time"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
)

// Chooser picks the computer's line: any line that closes a box if one
// exists, otherwise any free line. It looks one move ahead and no further.
type Chooser struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewChooser(seed int64) *Chooser {
	return &Chooser{r: rand.New(rand.NewSource(seed))}
}

var defaultChooser = NewChooser(time.Now().UnixNano())

func ChooseMove(g chess.Grid, placed chess.LineSet) (chess.Line, bool) {
	return defaultChooser.Choose(g, placed)
}

// CompletingMoves lists the free lines that would close at least one box.
func CompletingMoves(g chess.Grid, placed chess.LineSet) (lines []chess.Line) {
	for _, l := range g.FreeLines(placed) {
		if !(Move{Grid: g, Placed: placed, Line: l}).WillChangeTurn() {
			lines = append(lines, l)
		}
	}
	return
}

// Choose returns false when no free line is left.
func (c *Chooser) Choose(g chess.Grid, placed chess.LineSet) (chess.Line, bool) {
	free := g.FreeLines(placed)
	if len(free) == 0 {
		return chess.Line{}, false
	}

	candidates := free
	if completing := CompletingMoves(g, placed); len(completing) > 0 {
		candidates = completing
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return candidates[c.r.Intn(len(candidates))], true
}
