package quiz

// Pool is the shuffled queue of records not yet asked in the current pass.
type Pool struct {
	records []Record
	queue   []Record
	rng     Rand
}

// NewPool builds a pool over records and shuffles it once.
func NewPool(records []Record, rng Rand) *Pool {
	p := &Pool{records: records, rng: rng}
	p.Reset()
	return p
}

// Reset reshuffles every record into a fresh pass, dropping any remainder.
func (p *Pool) Reset() {
	p.queue = shuffled(p.rng, p.records)
}

// Next pops the next record. When the pass is exhausted the pool is reset
// first and reshuffled reports true.
func (p *Pool) Next() (rec Record, reshuffled bool, err error) {
	if len(p.records) == 0 {
		return Record{}, false, ErrNoRecords
	}
	if len(p.queue) == 0 {
		p.Reset()
		reshuffled = true
	}
	last := len(p.queue) - 1
	rec = p.queue[last]
	p.queue = p.queue[:last]
	return rec, reshuffled, nil
}

// Remaining is the number of records left in the current pass.
func (p *Pool) Remaining() int {
	return len(p.queue)
}

// Size is the number of records across a full pass.
func (p *Pool) Size() int {
	return len(p.records)
}
