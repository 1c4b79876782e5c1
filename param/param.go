// Package param holds application-level parameters that a control
// surface can track: float, int and bool values with optional min/max
// bounds and change subscriptions.
package param

import "sync"

// Param is the closed set of parameter kinds a controller can bind.
// The three implementations are *Float, *Int and *Bool.
type Param interface {
	Name() string

	sealed()
}

// Subscription is an owned handle to a change listener. Releasing it
// stops the listener; releasing twice (or a nil handle) is harmless.
type Subscription struct {
	release func()
}

func (s *Subscription) Release() {
	if s == nil || s.release == nil {
		return
	}
	s.release()
	s.release = nil
}

// Float is a bounded float64 parameter.
type Float struct {
	name string
	min  float64
	max  float64

	lock  sync.Mutex
	value float64
	subs  map[int]func(float64)
	next  int
}

func NewFloat(name string, value, min, max float64) *Float {
	return &Float{name: name, value: value, min: min, max: max}
}

func (p *Float) Name() string { return p.name }
func (p *Float) Min() float64 { return p.min }
func (p *Float) Max() float64 { return p.max }

func (p *Float) Get() float64 {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.value
}

// Set stores the value and notifies every subscriber. Listeners run on
// the caller's goroutine, outside the parameter's lock.
func (p *Float) Set(v float64) {
	p.lock.Lock()
	p.value = v
	subs := collect(p.subs)
	p.lock.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

func (p *Float) Subscribe(fn func(float64)) *Subscription {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.subs == nil {
		p.subs = make(map[int]func(float64))
	}
	id := p.next
	p.next++
	p.subs[id] = fn

	return &Subscription{release: func() {
		p.lock.Lock()
		delete(p.subs, id)
		p.lock.Unlock()
	}}
}

func (p *Float) sealed() {}

// Int is a bounded int parameter.
type Int struct {
	name string
	min  int
	max  int

	lock  sync.Mutex
	value int
	subs  map[int]func(int)
	next  int
}

func NewInt(name string, value, min, max int) *Int {
	return &Int{name: name, value: value, min: min, max: max}
}

func (p *Int) Name() string { return p.name }
func (p *Int) Min() int     { return p.min }
func (p *Int) Max() int     { return p.max }

func (p *Int) Get() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.value
}

func (p *Int) Set(v int) {
	p.lock.Lock()
	p.value = v
	subs := collect(p.subs)
	p.lock.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

func (p *Int) Subscribe(fn func(int)) *Subscription {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.subs == nil {
		p.subs = make(map[int]func(int))
	}
	id := p.next
	p.next++
	p.subs[id] = fn

	return &Subscription{release: func() {
		p.lock.Lock()
		delete(p.subs, id)
		p.lock.Unlock()
	}}
}

func (p *Int) sealed() {}

// Bool is an on/off parameter.
type Bool struct {
	name string

	lock  sync.Mutex
	value bool
	subs  map[int]func(bool)
	next  int
}

func NewBool(name string, value bool) *Bool {
	return &Bool{name: name, value: value}
}

func (p *Bool) Name() string { return p.name }

func (p *Bool) Get() bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.value
}

func (p *Bool) Set(v bool) {
	p.lock.Lock()
	p.value = v
	subs := collect(p.subs)
	p.lock.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

func (p *Bool) Subscribe(fn func(bool)) *Subscription {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.subs == nil {
		p.subs = make(map[int]func(bool))
	}
	id := p.next
	p.next++
	p.subs[id] = fn

	return &Subscription{release: func() {
		p.lock.Lock()
		delete(p.subs, id)
		p.lock.Unlock()
	}}
}

func (p *Bool) sealed() {}

func collect[T any](m map[int]func(T)) []func(T) {
	if len(m) == 0 {
		return nil
	}
	subs := make([]func(T), 0, len(m))
	for _, fn := range m {
		subs = append(subs, fn)
	}
	return subs
}
