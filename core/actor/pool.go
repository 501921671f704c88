package actor

import "sync"

// Pool shares a bounded set of runtimes across many logical users. Each
// Acquire is assigned to the member with the fewest active users; members
// start lazily, and the whole pool is torn down once global usage drops to
// zero.
type Pool struct {
	mu      sync.Mutex
	opts    Options
	members []poolMember
	users   int
}

type poolMember struct {
	rt    *ConcurrentScheduler
	users int
}

// NewPool creates a pool of size runtimes, each configured with opts.
// Members always run their main scheduler in the background.
func NewPool(size int, opts Options) *Pool {
	if size <= 0 {
		size = 1
	}
	opts.BackgroundMain = true
	return &Pool{opts: opts, members: make([]poolMember, size)}
}

// Acquire returns the least-loaded member runtime and a release func. The
// release is idempotent; once every user across the pool has released, all
// members are finished and the pool resets to empty.
func (p *Pool) Acquire() (*ConcurrentScheduler, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	best := 0
	for i := range p.members {
		if p.members[i].users < p.members[best].users {
			best = i
		}
	}
	m := &p.members[best]
	if m.rt == nil {
		m.rt = New(p.opts)
		m.rt.Start()
	}
	m.users++
	p.users++

	var once sync.Once
	rt := m.rt
	release := func() { once.Do(func() { p.release(best) }) }
	return rt, release
}

// Users returns the number of active users across the pool.
func (p *Pool) Users() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.users
}

func (p *Pool) release(i int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.members[i].users--
	p.users--
	if p.users > 0 {
		return
	}
	// last user gone: lazy teardown of every started member
	for j := range p.members {
		if rt := p.members[j].rt; rt != nil {
			rt.Finish()
			p.members[j] = poolMember{}
		}
	}
}
