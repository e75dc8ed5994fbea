package modal

import "slices"

// Page is the host document the modal is mounted on. It only models what
// the shell needs: pointer down listeners. Page must be used from the same
// dispatcher as the shell.
type Page struct {
	next      uint64
	listeners map[uint64]func(target string)
}

func NewPage() *Page {
	return &Page{listeners: make(map[uint64]func(string))}
}

// AddPointerDownListener registers f and returns function removing it.
func (p *Page) AddPointerDownListener(f func(target string)) (remove func()) {
	p.next++
	id := p.next
	p.listeners[id] = f
	return func() { delete(p.listeners, id) }
}

// PointerDown delivers pointer down on element with target id to listeners
// in registration order.
func (p *Page) PointerDown(target string) {
	ids := make([]uint64, 0, len(p.listeners))
	for id := range p.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		// listener could have been removed by previous one
		if f, ok := p.listeners[id]; ok {
			f(target)
		}
	}
}

// Listeners returns number of registered listeners.
func (p *Page) Listeners() int {
	return len(p.listeners)
}
