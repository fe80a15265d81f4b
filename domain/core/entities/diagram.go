package entities

// DiagramObjectType distinguishes the kinds of objects placed on a view
type DiagramObjectType string

const (
	DiagramObjectElement DiagramObjectType = "element"
	DiagramObjectNote    DiagramObjectType = "note"
	DiagramObjectGroup   DiagramObjectType = "group"
	DiagramObjectImage   DiagramObjectType = "image"
)

// DiagramObject is a figure on a view. ConceptID is set for element figures;
// ImagePath is set when the figure shows a stored image.
type DiagramObject struct {
	ID        string
	Type      DiagramObjectType
	Name      string
	ConceptID string
	ImagePath string
	Children  []*DiagramObject
}

// DiagramModel is a view
type DiagramModel struct {
	id            string
	name          string
	documentation string
	children      []*DiagramObject
}

// NewDiagramModel creates an empty view
func NewDiagramModel(id, name string) *DiagramModel {
	return &DiagramModel{id: id, name: name}
}

func (d *DiagramModel) ID() string            { return d.id }
func (d *DiagramModel) Name() string          { return d.name }
func (d *DiagramModel) Documentation() string { return d.documentation }

// SetName renames the view
func (d *DiagramModel) SetName(name string) {
	d.name = name
}

// SetDocumentation sets the view documentation
func (d *DiagramModel) SetDocumentation(documentation string) {
	d.documentation = documentation
}

// Children returns the top-level figures
func (d *DiagramModel) Children() []*DiagramObject {
	out := make([]*DiagramObject, len(d.children))
	copy(out, d.children)
	return out
}

// AddChild places a figure at the top level
func (d *DiagramModel) AddChild(obj *DiagramObject) {
	d.children = append(d.children, obj)
}

// Walk visits every figure depth-first
func (d *DiagramModel) Walk(fn func(obj *DiagramObject)) {
	var walk func(objs []*DiagramObject)
	walk = func(objs []*DiagramObject) {
		for _, obj := range objs {
			fn(obj)
			walk(obj.Children)
		}
	}
	walk(d.children)
}
