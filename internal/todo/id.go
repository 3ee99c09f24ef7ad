package todo

import "time"

// idGen hands out millisecond-timestamp ids that never repeat, even when
// several tasks are created within the same millisecond.
type idGen struct {
	last int64
}

func (g *idGen) observe(id int64) {
	if id > g.last {
		g.last = id
	}
}

func (g *idGen) next(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
