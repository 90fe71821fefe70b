package goal

// Simple is completed by a single event.
type Simple struct {
	Base
	complete bool
}

func NewSimple(name, description string, points int) *Simple {
	return &Simple{Base: Base{name: name, description: description, points: points}}
}

func (g *Simple) Kind() Kind       { return KindSimple }
func (g *Simple) IsComplete() bool { return g.complete }

// RecordEvent awards the base points once. Later events earn nothing.
func (g *Simple) RecordEvent() Award {
	if g.complete {
		return Award{AlreadyComplete: true}
	}
	g.complete = true
	return Award{Points: g.points, Completed: true}
}

func (g *Simple) Status() string {
	if g.complete {
		return "[X]"
	}
	return "[ ]"
}

func (g *Simple) SaveFormat() string {
	return joinRecord(string(KindSimple), g.name, g.description, itoa(g.points), formatBool(g.complete))
}
