package document

// moveLeft steps the cursor back by one position. When the cursor is at the
// start of its chunk it crosses to the end of the nearest previous node,
// searching outward from the chunk to the page.
func moveLeft(d Document) (Document, bool) {
	at := d.Cursor
	for l := LevelChar; l >= LevelPage; l-- {
		if at.At(l) == 0 {
			continue
		}
		p := at.Set(l, at.At(l)-1)
		for deeper := l + 1; deeper <= LevelChar; deeper++ {
			n := d.Content.Count(p, deeper)
			if deeper != LevelChar {
				n--
			}
			p = p.Set(deeper, n)
		}
		d.Cursor = p
		return d, true
	}
	return d, false
}

// moveRight steps the cursor forward by one position, crossing to the start
// of the nearest following node at the end of a chunk.
func moveRight(d Document) (Document, bool) {
	at := d.Cursor
	for l := LevelChar; l >= LevelPage; l-- {
		n := d.Content.Count(at, l)
		if l != LevelChar {
			n--
		}
		if at.At(l) >= n {
			continue
		}
		p := at.Set(l, at.At(l)+1)
		for deeper := l + 1; deeper <= LevelChar; deeper++ {
			p = p.Set(deeper, 0)
		}
		d.Cursor = p
		return d, true
	}
	return d, false
}
