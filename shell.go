package curveray

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// Shell is a convex bound of a curved patch made of a cap triangle over
// the three shell points and three wings joining the root point to each pair of
// adjacent shell points. It must enclose the whole patch surface; a shell
// that does not will make rays miss the patch.
type Shell [4]Triangle

// NewShell returns the shell with apex root over the given shell points.
func NewShell(root ms3.Vec, shellPoints [3]ms3.Vec) Shell {
	return Shell{
		NewTriangle(shellPoints[0], shellPoints[1], shellPoints[2]),
		NewTriangle(root, shellPoints[0], shellPoints[1]),
		NewTriangle(root, shellPoints[1], shellPoints[2]),
		NewTriangle(root, shellPoints[2], shellPoints[0]),
	}
}

// Slice returns the interval of ray parameters between the first and last
// shell triangle hit. It is a loose bracket used to seed root finding.
// (-1, -1) is returned if the ray misses the shell or the shell is behind the ray.
func (s *Shell) Slice(r Ray) (tEnter, tExit float32) {
	tEnter, tExit = math32.Inf(1), -1
	for i := range s {
		t, _, ok := s[i].Intersect(r)
		if ok {
			tEnter = math32.Min(t, tEnter)
			tExit = math32.Max(t, tExit)
		}
	}
	if tEnter > tExit || tExit < 0 {
		return -1, -1
	}
	return math32.Max(tEnter, 0), tExit
}
