package render

// DrawList is the ordered set of primitives submitted for one frame. Later
// primitives paint over earlier ones.
type DrawList struct {
	Clear Color
	Items []Primitive
}

func NewDrawList(clear Color) *DrawList {
	return &DrawList{Clear: clear, Items: make([]Primitive, 0, 64)}
}

func (d *DrawList) Add(p ...Primitive) {
	d.Items = append(d.Items, p...)
}

func (d *DrawList) Len() int { return len(d.Items) }
