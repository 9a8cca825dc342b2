package epubtoc

// Walk visits points and all of their descendants in pre-order: a node is
// visited before its children, and siblings in document order. depth is 0
// for the entries of points. Walk stops early when fn returns false.
func Walk(points []NavPoint, fn func(np NavPoint, depth int) bool) {
	walk(points, 0, fn)
}

func walk(points []NavPoint, depth int, fn func(NavPoint, int) bool) bool {
	for _, np := range points {
		if !fn(np, depth) {
			return false
		}
		if !walk(np.Children, depth+1, fn) {
			return false
		}
	}
	return true
}

// Flatten returns points and all of their descendants in pre-order.
func Flatten(points []NavPoint) []NavPoint {
	var flat []NavPoint
	Walk(points, func(np NavPoint, _ int) bool {
		flat = append(flat, np)
		return true
	})
	return flat
}

// Descendants returns every navPoint nested under np, at any depth, in
// pre-order. np itself is not included.
func (np NavPoint) Descendants() []NavPoint {
	return Flatten(np.Children)
}

// Count returns the number of navPoints in points, including descendants.
func Count(points []NavPoint) int {
	n := 0
	Walk(points, func(NavPoint, int) bool {
		n++
		return true
	})
	return n
}
