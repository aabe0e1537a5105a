package dungeon

import "math/rand"

const (
	// bspIterations bounds the partition depth, so leaf count (and room
	// count) tops out at 2^bspIterations regardless of the requested
	// room count.
	bspIterations = 4

	// minLeafSize is the smallest partition side that still fits a
	// minimum room plus a 1-tile margin on each side.
	minLeafSize = minBSPRoom + 2

	// minBSPRoom is the minimum room dimension inside a leaf.
	minBSPRoom = 3

	// aspectLimit forces the split axis once a partition gets this
	// stretched, keeping leaves roughly rectangular.
	aspectLimit = 1.25
)

// bspNode is a node in the partition tree. Internal nodes own exactly
// two children; leaves own at most one room.
type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
	room          *Room
}

func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// bspLayout subdivides the playable area into a binary partition tree
// and places one room per leaf. The tree is kept between the place and
// connect passes so siblings can be linked bottom-up.
type bspLayout struct {
	root *bspNode
}

func (b *bspLayout) place(width, height, _ int, rng *rand.Rand) []Room {
	b.root = &bspNode{x: 1, y: 1, width: width - 2, height: height - 2}
	b.split(b.root, 0, rng)

	var rooms []Room
	b.createRooms(b.root, &rooms, rng)
	return rooms
}

// split recursively divides a node until the iteration budget runs out
// or the node is too small to split.
func (b *bspLayout) split(n *bspNode, depth int, rng *rand.Rand) {
	if depth >= bspIterations {
		return
	}

	// Random axis, overridden when the node is stretched: a wide node
	// must split vertically (dividing its width), a tall one
	// horizontally.
	vertical := rng.Intn(2) == 0
	if float64(n.width)/float64(n.height) >= aspectLimit {
		vertical = true
	} else if float64(n.height)/float64(n.width) >= aspectLimit {
		vertical = false
	}

	span := n.height
	if vertical {
		span = n.width
	}
	if span < minLeafSize*2 {
		return // too small to split
	}
	pos := minLeafSize + rng.Intn(span-minLeafSize*2+1)

	if vertical {
		n.left = &bspNode{x: n.x, y: n.y, width: pos, height: n.height}
		n.right = &bspNode{x: n.x + pos, y: n.y, width: n.width - pos, height: n.height}
	} else {
		n.left = &bspNode{x: n.x, y: n.y, width: n.width, height: pos}
		n.right = &bspNode{x: n.x, y: n.y + pos, width: n.width, height: n.height - pos}
	}

	b.split(n.left, depth+1, rng)
	b.split(n.right, depth+1, rng)
}

// createRooms places one randomly sized room in every leaf, keeping a
// 1-tile margin to the leaf's edges.
func (b *bspLayout) createRooms(n *bspNode, rooms *[]Room, rng *rand.Rand) {
	if n == nil {
		return
	}
	if !n.isLeaf() {
		b.createRooms(n.left, rooms, rng)
		b.createRooms(n.right, rooms, rng)
		return
	}

	maxW := n.width - 2
	maxH := n.height - 2
	if maxW < minBSPRoom || maxH < minBSPRoom {
		return
	}

	room := Room{
		Width:  minBSPRoom + rng.Intn(maxW-minBSPRoom+1),
		Height: minBSPRoom + rng.Intn(maxH-minBSPRoom+1),
	}
	room.X = n.x + 1 + rng.Intn(n.width-room.Width-1)
	room.Y = n.y + 1 + rng.Intn(n.height-room.Height-1)

	n.room = &room
	*rooms = append(*rooms, room)
}

// connect links the two subtrees of every internal node, bottom-up, by
// carving a corridor between one random room from each side.
func (b *bspLayout) connect(g *Grid, _ []Room, rng *rand.Rand) {
	b.link(g, b.root, rng)
}

func (b *bspLayout) link(g *Grid, n *bspNode, rng *rand.Rand) {
	if n == nil || n.isLeaf() {
		return
	}
	b.link(g, n.left, rng)
	b.link(g, n.right, rng)

	left := randomRoom(n.left, rng)
	right := randomRoom(n.right, rng)
	if left == nil || right == nil {
		return
	}

	x1, y1 := left.Center()
	x2, y2 := right.Center()
	if rng.Intn(2) == 0 {
		g.carveHorizontal(x1, x2, y1)
		g.carveVertical(y1, y2, x2)
	} else {
		g.carveVertical(y1, y2, x1)
		g.carveHorizontal(x1, x2, y2)
	}
}

// randomRoom picks a uniformly random room from the subtree, or nil when
// the subtree placed none.
func randomRoom(n *bspNode, rng *rand.Rand) *Room {
	var rooms []*Room
	collectRooms(n, &rooms)
	if len(rooms) == 0 {
		return nil
	}
	return rooms[rng.Intn(len(rooms))]
}

func collectRooms(n *bspNode, rooms *[]*Room) {
	if n == nil {
		return
	}
	if n.room != nil {
		*rooms = append(*rooms, n.room)
	}
	collectRooms(n.left, rooms)
	collectRooms(n.right, rooms)
}

// doorCandidate: a wall sitting between at least two floor regions.
func (b *bspLayout) doorCandidate(g *Grid, x, y int) bool {
	return g.floorNeighbors(x, y) >= 2
}
