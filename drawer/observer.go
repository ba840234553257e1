// ABOUTME: Observer callbacks fired by the drawer and a func-slot adapter
// ABOUTME: Multicasts events to registered observers in registration order

package drawer

// Observer receives drawer events. All methods run on the host goroutine.
type Observer interface {
	WillTransition(from, to Position)
	DidTransition(to Position)
	DidMove(offset float64)
	WillBeginDragging()
	WillEndDragging()
}

// ObserverFuncs adapts optional funcs to Observer; nil slots are no-ops
type ObserverFuncs struct {
	OnWillTransition    func(from, to Position)
	OnDidTransition     func(to Position)
	OnDidMove           func(offset float64)
	OnWillBeginDragging func()
	OnWillEndDragging   func()
}

// WillTransition calls OnWillTransition when set
func (o *ObserverFuncs) WillTransition(from, to Position) {
	if o.OnWillTransition != nil {
		o.OnWillTransition(from, to)
	}
}

// DidTransition calls OnDidTransition when set
func (o *ObserverFuncs) DidTransition(to Position) {
	if o.OnDidTransition != nil {
		o.OnDidTransition(to)
	}
}

// DidMove calls OnDidMove when set
func (o *ObserverFuncs) DidMove(offset float64) {
	if o.OnDidMove != nil {
		o.OnDidMove(offset)
	}
}

// WillBeginDragging calls OnWillBeginDragging when set
func (o *ObserverFuncs) WillBeginDragging() {
	if o.OnWillBeginDragging != nil {
		o.OnWillBeginDragging()
	}
}

// WillEndDragging calls OnWillEndDragging when set
func (o *ObserverFuncs) WillEndDragging() {
	if o.OnWillEndDragging != nil {
		o.OnWillEndDragging()
	}
}

type observerEntry struct {
	id       int
	observer Observer
}

// observerList dispatches over a snapshot so observers may add or remove
// observers from inside a callback.
type observerList struct {
	entries []observerEntry
	nextID  int
}

func (l *observerList) add(o Observer) int {
	l.nextID++
	l.entries = append(l.entries, observerEntry{id: l.nextID, observer: o})
	return l.nextID
}

func (l *observerList) remove(id int) {
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return
		}
	}
}

func (l *observerList) each(fn func(Observer)) {
	snapshot := l.entries
	for _, e := range snapshot {
		fn(e.observer)
	}
}

func (l *observerList) willTransition(from, to Position) {
	l.each(func(o Observer) { o.WillTransition(from, to) })
}

func (l *observerList) didTransition(to Position) {
	l.each(func(o Observer) { o.DidTransition(to) })
}

func (l *observerList) didMove(offset float64) {
	l.each(func(o Observer) { o.DidMove(offset) })
}

func (l *observerList) willBeginDragging() {
	l.each(func(o Observer) { o.WillBeginDragging() })
}

func (l *observerList) willEndDragging() {
	l.each(func(o Observer) { o.WillEndDragging() })
}
