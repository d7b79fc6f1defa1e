package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/fpscore/common"
)

// Body is the impulse receiver of a target registered in a Space.
type Body struct {
	body   *cp.Body
	static bool
	// offset locates static shapes, which all share the space's static body
	offset cp.Vector
}

// ApplyImpulseAt pushes the body in the ground plane. Static bodies refuse.
func (b *Body) ApplyImpulseAt(impulse, point common.Vec3) bool {
	if b == nil || b.body == nil || b.static {
		return false
	}
	b.body.ApplyImpulseAtWorldPoint(cp.Vector{X: impulse.X, Y: impulse.Y}, cp.Vector{X: point.X, Y: point.Y})
	return true
}

func (b *Body) Static() bool { return b == nil || b.static }

// Position returns the body's ground-plane position with Z set to 0.
func (b *Body) Position() common.Vec3 {
	if b == nil || b.body == nil {
		return common.Vec3{}
	}
	if b.static {
		return common.V3(b.offset.X, b.offset.Y, 0)
	}
	p := b.body.Position()
	return common.V3(p.X, p.Y, 0)
}

func (b *Body) Velocity() common.Vec3 {
	if b == nil || b.body == nil || b.static {
		return common.Vec3{}
	}
	v := b.body.Velocity()
	return common.V3(v.X, v.Y, 0)
}
