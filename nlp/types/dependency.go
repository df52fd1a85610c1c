package types

// Graph is a decoded dependency tree: predicted head and label per token
// position of Sentence, ROOT included (ROOT keeps -1 for both).
type Graph struct {
	Sentence *Sentence
	Heads    []int
	Labels   []int
}

func (g *Graph) NumberOfNodes() int {
	return len(g.Heads)
}

// NumberOfArcs counts tokens that received a head.
func (g *Graph) NumberOfArcs() int {
	var arcs int
	for _, head := range g.Heads {
		if head >= 0 {
			arcs++
		}
	}
	return arcs
}

// Modifiers lists the tokens attached to head in ascending order.
func (g *Graph) Modifiers(head int) []int {
	retval := make([]int, 0, 3)
	for i, h := range g.Heads {
		if h == head {
			retval = append(retval, i)
		}
	}
	return retval
}
