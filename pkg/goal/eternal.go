package goal

// EternalStatus is the marker shown for goals that never complete.
const EternalStatus = "[∞]"

// Eternal pays out on every event and is never complete.
type Eternal struct {
	Base
}

func NewEternal(name, description string, points int) *Eternal {
	return &Eternal{Base: Base{name: name, description: description, points: points}}
}

func (g *Eternal) Kind() Kind         { return KindEternal }
func (g *Eternal) IsComplete() bool   { return false }
func (g *Eternal) RecordEvent() Award { return Award{Points: g.points} }
func (g *Eternal) Status() string     { return EternalStatus }

func (g *Eternal) SaveFormat() string {
	return joinRecord(string(KindEternal), g.name, g.description, itoa(g.points))
}
