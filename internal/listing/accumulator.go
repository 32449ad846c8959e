package listing

import "hireable-backend/internal/domain"

// Page is one response from the listing collaborator.
type Page struct {
	Items []domain.CandidateListing
	Total int
}

// Accumulator is the ordered list of loaded candidates. Its offset is
// always its length.
type Accumulator struct {
	items   []domain.CandidateListing
	total   int
	hasMore bool
}

func (a *Accumulator) Reset() {
	a.items = nil
	a.total = 0
	a.hasMore = false
}

// Replace swaps in a first page wholesale.
func (a *Accumulator) Replace(p Page) {
	a.Reset()
	a.Append(p)
}

// Append adds a page in server order. The list never grows past the
// reported total, and an empty page ends the list.
func (a *Accumulator) Append(p Page) {
	a.total = p.Total
	if len(p.Items) == 0 {
		a.hasMore = false
		return
	}
	room := p.Total - len(a.items)
	if room < 0 {
		room = 0
	}
	items := p.Items
	if len(items) > room {
		items = items[:room]
	}
	a.items = append(a.items, items...)
	a.hasMore = len(a.items) < a.total
}

func (a *Accumulator) Offset() int   { return len(a.items) }
func (a *Accumulator) Total() int    { return a.total }
func (a *Accumulator) HasMore() bool { return a.hasMore }
func (a *Accumulator) Len() int      { return len(a.items) }

// Items returns a copy of the loaded candidates.
func (a *Accumulator) Items() []domain.CandidateListing {
	out := make([]domain.CandidateListing, len(a.items))
	copy(out, a.items)
	return out
}

func (a *Accumulator) stop() { a.hasMore = false }
