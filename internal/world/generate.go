package world

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/consolefps/internal/telemetry"
)

const (
	// BSP parameters
	minRoomSize = 3 // Minimum room extent
	maxRoomSize = 9 // Maximum room extent
	minLeafSize = 6 // Minimum BSP leaf size before stopping split
)

// generator carves rooms and corridors into a solid map.
type generator struct {
	m     *Map
	rooms []Room
	rng   *rand.Rand
}

// Generate creates a width x height layout of rooms joined by corridors
// using binary space partitioning. The border is always solid. Maps too
// small to hold a room fall back to an open interior.
func Generate(ctx context.Context, width, height int, rng *rand.Rand) (*Map, []Room) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "map.generate")
	defer span.End()

	startTime := time.Now()

	g := &generator{
		m: &Map{
			Width:  width,
			Height: height,
			tiles:  make([]Tile, width*height),
		},
		rng: rng,
	}
	for i := range g.m.tiles {
		g.m.tiles[i] = TileWall
	}

	// Start BSP with everything inside the border as root
	root := &bspNode{
		x:    1,
		y:    1,
		rows: height - 2,
		cols: width - 2,
	}

	g.splitNode(root)
	g.createRooms(root)
	g.connectRooms(root)

	if len(g.rooms) == 0 {
		g.m = New(width, height)
	}

	span.SetAttributes(
		attribute.Int("map.width", width),
		attribute.Int("map.height", height),
		attribute.Int("map.room_count", len(g.rooms)),
		attribute.Int("map.open_cells", g.m.OpenCount()),
		attribute.Int64("map.generation_ms", time.Since(startTime).Milliseconds()),
	)

	return g.m, g.rooms
}

// bspNode represents a node in the BSP tree.
type bspNode struct {
	x, y        int
	rows, cols  int
	left, right *bspNode
	room        *Room
}

// isLeaf returns true if this node has no children.
func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// splitNode recursively splits a BSP node.
func (g *generator) splitNode(node *bspNode) {
	if node.rows < minLeafSize*2 && node.cols < minLeafSize*2 {
		return
	}

	// Split across the longer side when possible
	var splitRows bool
	if node.cols > node.rows && node.cols >= minLeafSize*2 {
		splitRows = false
	} else if node.rows >= minLeafSize*2 {
		splitRows = true
	} else if node.cols >= minLeafSize*2 {
		splitRows = false
	} else {
		return
	}

	extent := node.cols
	if splitRows {
		extent = node.rows
	}
	lo, hi := minLeafSize, extent-minLeafSize
	if hi <= lo {
		return
	}
	splitPos := lo + g.rng.Intn(hi-lo+1)

	if splitRows {
		node.left = &bspNode{x: node.x, y: node.y, rows: splitPos, cols: node.cols}
		node.right = &bspNode{x: node.x + splitPos, y: node.y, rows: node.rows - splitPos, cols: node.cols}
	} else {
		node.left = &bspNode{x: node.x, y: node.y, rows: node.rows, cols: splitPos}
		node.right = &bspNode{x: node.x, y: node.y + splitPos, rows: node.rows, cols: node.cols - splitPos}
	}

	g.splitNode(node.left)
	g.splitNode(node.right)
}

// createRooms creates rooms in leaf nodes of the BSP tree.
func (g *generator) createRooms(node *bspNode) {
	if node == nil {
		return
	}

	if !node.isLeaf() {
		g.createRooms(node.left)
		g.createRooms(node.right)
		return
	}

	// Leaves must leave a wall margin around the room
	if node.rows < minRoomSize+2 || node.cols < minRoomSize+2 {
		return
	}

	rows := minRoomSize + g.rng.Intn(min(maxRoomSize-minRoomSize+1, node.rows-minRoomSize+1))
	cols := minRoomSize + g.rng.Intn(min(maxRoomSize-minRoomSize+1, node.cols-minRoomSize+1))
	rows = min(rows, node.rows-2)
	cols = min(cols, node.cols-2)

	room := Room{
		X:    node.x + 1 + g.rng.Intn(node.rows-rows-1),
		Y:    node.y + 1 + g.rng.Intn(node.cols-cols-1),
		Rows: rows,
		Cols: cols,
	}
	node.room = &room
	g.rooms = append(g.rooms, room)
	g.carveRoom(room)
}

// carveRoom opens every cell of the room.
func (g *generator) carveRoom(room Room) {
	for x := room.X; x < room.X+room.Rows; x++ {
		for y := room.Y; y < room.Y+room.Cols; y++ {
			g.carve(x, y)
		}
	}
}

// connectRooms connects sibling subtrees with corridors.
func (g *generator) connectRooms(node *bspNode) {
	if node == nil || node.isLeaf() {
		return
	}

	g.connectRooms(node.left)
	g.connectRooms(node.right)

	leftRoom := g.getRoom(node.left)
	rightRoom := g.getRoom(node.right)
	if leftRoom != nil && rightRoom != nil {
		g.carveCorridor(*leftRoom, *rightRoom)
	}
}

// getRoom returns a room from a subtree (any room will do).
func (g *generator) getRoom(node *bspNode) *Room {
	if node == nil {
		return nil
	}
	if node.room != nil {
		return node.room
	}
	if room := g.getRoom(node.left); room != nil {
		return room
	}
	return g.getRoom(node.right)
}

// carveCorridor creates an L-shaped corridor between two room centres.
func (g *generator) carveCorridor(a, b Room) {
	x1, y1 := a.Center()
	x2, y2 := b.Center()

	if g.rng.Intn(2) == 0 {
		g.carveAlongY(y1, y2, x1)
		g.carveAlongX(x1, x2, y2)
	} else {
		g.carveAlongX(x1, x2, y1)
		g.carveAlongY(y1, y2, x2)
	}
}

// carveAlongX opens cells from x1 to x2 in column y.
func (g *generator) carveAlongX(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		g.carve(x, y)
	}
}

// carveAlongY opens cells from y1 to y2 in row x.
func (g *generator) carveAlongY(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		g.carve(x, y)
	}
}

// carve opens a single interior cell; the border is never touched.
func (g *generator) carve(x, y int) {
	if x > 0 && x < g.m.Height-1 && y > 0 && y < g.m.Width-1 {
		g.m.tiles[x*g.m.Width+y] = TileOpen
	}
}
