package mesh

import (
	"slices"

	"github.com/Faultbox/freestyle-sculpt/pkg/math"
)

// maxLeafFaces is the largest face count stored in a single leaf.
const maxLeafFaces = 4

type bvhNode struct {
	bounds math.AABB
	left   int32 // child node index, -1 for leaves
	right  int32
	start  int32 // range into BVH.faces for leaves
	count  int32
}

func (n *bvhNode) isLeaf() bool { return n.left < 0 }

// BVH is a bounding volume hierarchy over the faces of a Graph.
// Queries return faces in a fixed order for a given tree, so identical
// queries produce identical results.
type BVH struct {
	nodes      []bvhNode
	faces      []FaceID
	faceBounds []math.AABB // indexed by FaceID
}

// NewBVH builds a hierarchy over every face of g using median splits on
// the longest centroid axis.
func NewBVH(g *Graph) *BVH {
	n := g.FaceCount()
	b := &BVH{
		nodes: make([]bvhNode, 0, 2*n/maxLeafFaces+1),
		faces: make([]FaceID, n),
	}
	b.faceBounds = make([]math.AABB, n)
	centroids := make([]math.Vec3, n)
	for i := range b.faces {
		b.faces[i] = FaceID(i)
		b.faceBounds[i] = g.FaceBounds(FaceID(i))
		centroids[i] = b.faceBounds[i].Center()
	}
	if n > 0 {
		b.build(0, n, b.faceBounds, centroids)
	}
	return b
}

func (b *BVH) build(start, end int, bounds []math.AABB, centroids []math.Vec3) int32 {
	idx := int32(len(b.nodes))
	b.nodes = append(b.nodes, bvhNode{left: -1, right: -1})

	box := math.EmptyAABB()
	centerBox := math.EmptyAABB()
	for _, f := range b.faces[start:end] {
		box = box.Union(bounds[f])
		centerBox = centerBox.Extend(centroids[f])
	}

	count := end - start
	if count <= maxLeafFaces {
		b.nodes[idx] = bvhNode{bounds: box, left: -1, right: -1, start: int32(start), count: int32(count)}
		return idx
	}

	axis := centerBox.LongestAxis()
	span := b.faces[start:end]
	slices.SortStableFunc(span, func(x, y FaceID) int {
		cx, cy := centroids[x].Component(axis), centroids[y].Component(axis)
		switch {
		case cx < cy:
			return -1
		case cx > cy:
			return 1
		default:
			return int(x) - int(y)
		}
	})

	mid := start + count/2
	left := b.build(start, mid, bounds, centroids)
	right := b.build(mid, end, bounds, centroids)
	b.nodes[idx] = bvhNode{bounds: box, left: left, right: right}
	return idx
}

// Bounds returns the root bounds, or an empty box for an empty tree.
func (b *BVH) Bounds() math.AABB {
	if len(b.nodes) == 0 {
		return math.EmptyAABB()
	}
	return b.nodes[0].bounds
}

// Refit recomputes node bounds from the current face geometry without
// changing the tree shape. Children always follow their parent in the
// node slice, so a reverse sweep visits them first.
func (b *BVH) Refit(g *Graph) {
	for f := range b.faceBounds {
		b.faceBounds[f] = g.FaceBounds(FaceID(f))
	}
	for i := len(b.nodes) - 1; i >= 0; i-- {
		n := &b.nodes[i]
		if n.isLeaf() {
			box := math.EmptyAABB()
			for _, f := range b.faces[n.start : n.start+n.count] {
				box = box.Union(b.faceBounds[f])
			}
			n.bounds = box
			continue
		}
		n.bounds = b.nodes[n.left].bounds.Union(b.nodes[n.right].bounds)
	}
}

// IntersectAABB appends to out every face whose bounds intersect box.
func (b *BVH) IntersectAABB(box math.AABB, out []FaceID) []FaceID {
	if len(b.nodes) == 0 || box.IsEmpty() {
		return out
	}
	stack := make([]int32, 0, 32)
	stack = append(stack, 0)
	for len(stack) > 0 {
		n := &b.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if !n.bounds.Intersects(box) {
			continue
		}
		if n.isLeaf() {
			for _, f := range b.faces[n.start : n.start+n.count] {
				if b.faceBounds[f].Intersects(box) {
					out = append(out, f)
				}
			}
			continue
		}
		stack = append(stack, n.right, n.left)
	}
	return out
}

// visitRay calls fn for every leaf face whose node bounds the ray hits
// closer than the current best distance returned by fn.
func (b *BVH) visitRay(r math.Ray, fn func(f FaceID) (best float32)) {
	if len(b.nodes) == 0 {
		return
	}
	best := float32(3.4e38)
	stack := []int32{0}
	for len(stack) > 0 {
		n := &b.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		t, hit := r.IntersectAABB(n.bounds)
		if !hit {
			continue
		}
		// An origin inside the box reports the exit distance, so only
		// prune boxes the ray enters beyond the best hit.
		if t > best && !n.bounds.Contains(r.Origin) {
			continue
		}
		if n.isLeaf() {
			for _, f := range b.faces[n.start : n.start+n.count] {
				best = fn(f)
			}
			continue
		}
		stack = append(stack, n.right, n.left)
	}
}
