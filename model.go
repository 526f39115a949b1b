package orbit3d

import (
	"log"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// RootName is the child whose transform stands for the whole model.
const RootName = "root"

// Model is a named group of nodes. Its "root" child carries the group
// transform; every other child is placed relative to it.
type Model struct {
	Name     string
	children map[string]Node
}

func NewModel(name string) *Model {
	return &Model{
		Name:     name,
		children: make(map[string]Node),
	}
}

// AddMesh registers node under name. A node may not be added twice under the
// same name, and a model may not contain itself.
func (m *Model) AddMesh(name string, node Node) error {
	if name == "" {
		return errors.Wrapf(ErrInvalidChild, "model %q: empty child name", m.Name)
	}
	if !node.Valid() {
		return errors.Wrapf(ErrInvalidChild, "model %q: child %q is neither mesh nor model", m.Name, name)
	}
	if _, ok := m.children[name]; ok {
		return errors.Wrapf(ErrDuplicateChild, "model %q: %q", m.Name, name)
	}
	if node.kind == GroupKind && node.model.contains(m) {
		return errors.Wrapf(ErrInvalidChild, "model %q: adding %q would create a cycle", m.Name, name)
	}
	m.children[name] = node
	return nil
}

func (m *Model) contains(target *Model) bool {
	if m == target {
		return true
	}
	for _, c := range m.children {
		if c.kind == GroupKind && c.model.contains(target) {
			return true
		}
	}
	return false
}

func (m *Model) Child(name string) (Node, bool) {
	n, ok := m.children[name]
	return n, ok
}

// Names lists children with the root first and the rest sorted.
func (m *Model) Names() []string {
	names := make([]string, 0, len(m.children))
	for name := range m.children {
		if name != RootName {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := m.children[RootName]; ok {
		names = append([]string{RootName}, names...)
	}
	return names
}

func (m *Model) Root() (Node, error) {
	root, ok := m.children[RootName]
	if !ok {
		return Node{}, errors.Wrapf(ErrMissingRoot, "model %q", m.Name)
	}
	return root, nil
}

// Transform is the root child's transform.
func (m *Model) Transform() (*Transform, error) {
	root, err := m.Root()
	if err != nil {
		return nil, err
	}
	return root.Transform()
}

func (m *Model) Rotate(degrees mgl64.Vec3) error {
	t, err := m.Transform()
	if err != nil {
		return err
	}
	t.Rotate(degrees)
	return nil
}

func (m *Model) SetRotation(degrees mgl64.Vec3) error {
	t, err := m.Transform()
	if err != nil {
		return err
	}
	t.SetRotation(degrees)
	return nil
}

func (m *Model) SetPosition(x, y, z float64) error {
	t, err := m.Transform()
	if err != nil {
		return err
	}
	t.SetPosition(x, y, z)
	return nil
}

func (m *Model) Move(x, y, z float64) error {
	t, err := m.Transform()
	if err != nil {
		return err
	}
	t.Translate(x, y, z)
	return nil
}

func (m *Model) LookAt(target mgl64.Vec3) error {
	t, err := m.Transform()
	if err != nil {
		return err
	}
	t.LookAt(target)
	return nil
}

func (m *Model) RotateAround(degrees, pivot mgl64.Vec3, parentWorld mgl64.Mat4) (mgl64.Mat4, error) {
	t, err := m.Transform()
	if err != nil {
		return mgl64.Mat4{}, err
	}
	return t.RotateAround(degrees, pivot, parentWorld), nil
}

// Orbit places the model on a sphere of the given radius around its parent's
// origin and turns it to face away from the centre. inclination is the polar
// angle from +Y and angle the azimuth, both in degrees. counterRotation
// (degrees, usually the parent's Euler angles) is undone first so the orbit
// is independent of how the parent is spinning. The result depends only on
// the arguments.
func (m *Model) Orbit(radius, angle, inclination float64, counterRotation mgl64.Vec3) error {
	t, err := m.Transform()
	if err != nil {
		return err
	}

	p := SphericalPoint(radius, angle, inclination)

	undo := mgl64.HomogRotate3DX(mgl64.DegToRad(-counterRotation.X())).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(-counterRotation.Y()))).
		Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(-counterRotation.Z())))
	p = mgl64.TransformCoordinate(p, undo)

	t.SetPosition(p.X(), p.Y(), p.Z())
	t.LookAt(mgl64.Vec3{})
	t.Rotate(mgl64.Vec3{0, 180, 0})
	return nil
}

// Draw renders every child, the root included, at view * root * child. Nested
// models receive view * root as their view. A child that fails to draw is
// logged and skipped; the first such error is returned once all children have
// been visited.
func (m *Model) Draw(view mgl64.Mat4) error {
	root, err := m.Root()
	if err != nil {
		return err
	}
	rootTransform, err := root.Transform()
	if err != nil {
		return errors.Wrapf(err, "model %q root", m.Name)
	}
	localToWorld := view.Mul4(rootTransform.Matrix())

	var first error
	for _, name := range m.Names() {
		if err := m.children[name].Draw(localToWorld); err != nil {
			log.Printf("Model %q: drawing %q failed: %v", m.Name, name, err)
			if first == nil {
				first = errors.Wrapf(err, "model %q child %q", m.Name, name)
			}
		}
	}
	return first
}
