package orbit3d

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

type NodeKind int

const (
	LeafKind NodeKind = iota + 1
	GroupKind
)

func (k NodeKind) String() string {
	switch k {
	case LeafKind:
		return "leaf"
	case GroupKind:
		return "group"
	}
	return "invalid"
}

// Node is a scene graph entry: either a drawable Mesh (leaf) or a nested
// Model (group). The zero Node is invalid.
type Node struct {
	kind  NodeKind
	mesh  *Mesh
	model *Model
}

func Leaf(m *Mesh) Node {
	if m == nil {
		return Node{}
	}
	return Node{kind: LeafKind, mesh: m}
}

func Group(m *Model) Node {
	if m == nil {
		return Node{}
	}
	return Node{kind: GroupKind, model: m}
}

func (n Node) Kind() NodeKind { return n.kind }

func (n Node) Valid() bool { return n.kind == LeafKind || n.kind == GroupKind }

// Mesh returns the leaf mesh, or nil for groups.
func (n Node) Mesh() *Mesh { return n.mesh }

// Model returns the group model, or nil for leaves.
func (n Node) Model() *Model { return n.model }

// Transform is the node's own transform. For a group that is its root's.
func (n Node) Transform() (*Transform, error) {
	switch n.kind {
	case LeafKind:
		return n.mesh.Transform, nil
	case GroupKind:
		return n.model.Transform()
	}
	return nil, ErrInvalidChild
}

// Draw renders a leaf at parent * local, or a group with parent as its view.
func (n Node) Draw(parent mgl64.Mat4) error {
	switch n.kind {
	case LeafKind:
		return n.mesh.Draw(parent)
	case GroupKind:
		return n.model.Draw(parent)
	}
	return errors.WithStack(ErrInvalidChild)
}
