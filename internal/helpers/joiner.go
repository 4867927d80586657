package helpers

// Joiner accumulates the printer's output fragments and joins them once,
// in a single allocation sized from the recorded lengths, when Done is
// called. Fragments are recorded as-is; nothing is copied until then.
type Joiner struct {
	pieces []piece
	length int
}

// piece holds one fragment: str for the common literal-text case, bytes
// for pre-rendered output like a quoted string literal. Exactly one is
// set.
type piece struct {
	str   string
	bytes []byte
}

func (j *Joiner) AddString(data string) {
	j.pieces = append(j.pieces, piece{str: data})
	j.length += len(data)
}

func (j *Joiner) AddBytes(data []byte) {
	j.pieces = append(j.pieces, piece{bytes: data})
	j.length += len(data)
}

func (j *Joiner) Done() []byte {
	buffer := make([]byte, 0, j.length)
	for _, p := range j.pieces {
		if p.bytes != nil {
			buffer = append(buffer, p.bytes...)
		} else {
			buffer = append(buffer, p.str...)
		}
	}
	return buffer
}
