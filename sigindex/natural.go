package sigindex

import "sort"

// sortNatural orders children by numeric-aware name comparison, so bus[2]
// sorts before bus[10]. Used only when the caller asks for the natural
// display mode; declaration order is the default.
func sortNatural(children []Child) {
	sort.SliceStable(children, func(i, j int) bool {
		return naturalLess(children[i].Name, children[j].Name)
	})
}

func naturalLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		if isDigit(a[0]) && isDigit(b[0]) {
			na, ra := leadingInt(a)
			nb, rb := leadingInt(b)
			if na != nb {
				return na < nb
			}
			a, b = ra, rb

			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}

	return len(a) < len(b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func leadingInt(s string) (uint64, string) {
	var n uint64
	i := 0
	for i < len(s) && isDigit(s[i]) {
		n = n*10 + uint64(s[i]-'0')
		i++
	}

	return n, s[i:]
}
