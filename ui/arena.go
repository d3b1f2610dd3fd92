package ui

// nodeArena hands out layout nodes for one frame and recycles them all at
// once on reset. Blocks are fixed-size so handed-out pointers stay valid
// while the arena grows; growth only happens the first time a frame needs
// more nodes, after that every frame is allocation-free.
type nodeArena struct {
	blocks [][]layoutNode
	block  int
	used   int
}

const arenaBlockSize = 256

func (a *nodeArena) alloc() *layoutNode {
	if a.block >= len(a.blocks) {
		a.blocks = append(a.blocks, make([]layoutNode, arenaBlockSize))
	}
	b := a.blocks[a.block]
	n := &b[a.used]
	*n = layoutNode{}
	a.used++
	if a.used == arenaBlockSize {
		a.block++
		a.used = 0
	}
	return n
}

func (a *nodeArena) reset() {
	a.block = 0
	a.used = 0
}
