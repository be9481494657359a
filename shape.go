package curveray

// Shape is a primitive that can be placed in a bounding volume hierarchy.
// NodeIndex is scratch space owned by the hierarchy: it holds the index of the
// leaf node that contains the primitive after a build.
type Shape interface {
	Bounds() Box
	NodeIndex() int
	SetNodeIndex(int)
}

var (
	_ Shape = (*Triangle)(nil)
	_ Shape = (*CurveTriangle)(nil)
)
