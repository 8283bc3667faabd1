package nav

// Feed is an Events source driven by its host: each Emit invokes the
// attached listeners in subscription order.
type Feed struct {
	next      int
	listeners map[int]func()
	order     []int
}

// Subscribe attaches fn until the returned cancel func is called.
func (f *Feed) Subscribe(fn func()) (cancel func()) {
	if f.listeners == nil {
		f.listeners = make(map[int]func())
	}
	id := f.next
	f.next++
	f.listeners[id] = fn
	f.order = append(f.order, id)
	return func() {
		delete(f.listeners, id)
	}
}

// Emit notifies every attached listener.
func (f *Feed) Emit() {
	ids := append([]int(nil), f.order...)
	for _, id := range ids {
		if fn, ok := f.listeners[id]; ok {
			fn()
		}
	}
	live := f.order[:0]
	for _, id := range f.order {
		if _, ok := f.listeners[id]; ok {
			live = append(live, id)
		}
	}
	f.order = live
}

// Listeners reports how many listeners are attached.
func (f *Feed) Listeners() int {
	return len(f.listeners)
}
