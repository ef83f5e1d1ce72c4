package cursor

var bracketPairs = map[string][2]rune{
	"(": {'(', ')'}, ")": {'(', ')'}, "b": {'(', ')'},
	"[": {'[', ']'}, "]": {'[', ']'},
	"{": {'{', '}'}, "}": {'{', '}'}, "B": {'{', '}'},
	"<": {'<', '>'}, ">": {'<', '>'},
}

var quoteChars = map[string]rune{`"`: '"', "'": '\'', "`": '`'}

// textObject resolves an inner ("i") or around ("a") object at p. The
// returned range is inclusive. ok is false when nothing encloses p.
func (b buffer) textObject(p Pos, around bool, key string) (start, end Pos, ok bool) {
	if pair, found := bracketPairs[key]; found {
		return b.bracketObject(p, around, pair[0], pair[1])
	}
	if q, found := quoteChars[key]; found {
		return b.quoteObject(p, around, q)
	}
	if key == "w" || key == "W" {
		return b.wordObject(p, around)
	}
	return p, p, false
}

func (b buffer) bracketObject(p Pos, around bool, open, closing rune) (Pos, Pos, bool) {
	openPos, ok := b.findOpen(p, open, closing)
	if !ok {
		return p, p, false
	}
	closePos, ok := b.findClose(openPos, open, closing)
	if !ok {
		return p, p, false
	}
	if around {
		return openPos, closePos, true
	}
	start, ok := b.next(openPos)
	if !ok {
		return p, p, false
	}
	end, ok := b.prev(closePos)
	if !ok || end.Before(start) || closePos == start {
		return p, p, false
	}
	return start, end, true
}

// findOpen locates the unmatched open bracket enclosing p, or the bracket
// under p itself.
func (b buffer) findOpen(p Pos, open, closing rune) (Pos, bool) {
	if r, ok := b.at(p); ok && r == open {
		return p, true
	}
	depth := 0
	cur := p
	for {
		next, ok := b.prev(cur)
		if !ok || next == cur {
			return p, false
		}
		cur = next
		r, _ := b.at(cur)
		switch r {
		case closing:
			depth++
		case open:
			if depth <= 0 {
				return cur, true
			}
			depth--
		}
	}
}

func (b buffer) findClose(openPos Pos, open, closing rune) (Pos, bool) {
	depth := 0
	cur := openPos
	for {
		next, ok := b.next(cur)
		if !ok || next == cur {
			return openPos, false
		}
		cur = next
		r, _ := b.at(cur)
		switch r {
		case open:
			depth++
		case closing:
			if depth == 0 {
				return cur, true
			}
			depth--
		}
	}
}

// quoteObject pairs quotes on p's row from the left, skipping escaped ones,
// and picks the pair containing p or the first pair after it.
func (b buffer) quoteObject(p Pos, around bool, q rune) (Pos, Pos, bool) {
	line := b.runes(p.Row)
	var quotes []int
	for i, r := range line {
		if r == q && (i == 0 || line[i-1] != '\\') {
			quotes = append(quotes, i)
		}
	}
	a, z := -1, -1
	for i := 0; i+1 < len(quotes); i += 2 {
		if p.Col <= quotes[i+1] {
			a, z = quotes[i], quotes[i+1]
			break
		}
	}
	if a < 0 {
		return p, p, false
	}
	at := func(col int) Pos { return Pos{Row: p.Row, Col: col, Side: p.Side} }
	if !around {
		if z == a+1 {
			return p, p, false
		}
		return at(a + 1), at(z - 1), true
	}
	end := z
	for end+1 < len(line) && isSpace(line[end+1]) {
		end++
	}
	start := a
	if end == z {
		for start > 0 && isSpace(line[start-1]) {
			start--
		}
	}
	return at(start), at(end), true
}

// wordObject selects the run under p: a word, or a stretch of whitespace.
// The around form adds the following whitespace, or the preceding
// whitespace when nothing follows.
func (b buffer) wordObject(p Pos, around bool) (Pos, Pos, bool) {
	line := b.runes(p.Row)
	if p.Col >= len(line) {
		return p, p, false
	}
	space := isSpace(line[p.Col])
	start, end := p.Col, p.Col
	for start > 0 && isSpace(line[start-1]) == space {
		start--
	}
	for end+1 < len(line) && isSpace(line[end+1]) == space {
		end++
	}
	if around {
		if space {
			for end+1 < len(line) && !isSpace(line[end+1]) {
				end++
			}
		} else {
			trail := end
			for trail+1 < len(line) && isSpace(line[trail+1]) {
				trail++
			}
			if trail > end {
				end = trail
			} else {
				for start > 0 && isSpace(line[start-1]) {
					start--
				}
			}
		}
	}
	at := func(col int) Pos { return Pos{Row: p.Row, Col: col, Side: p.Side} }
	return at(start), at(end), true
}
