package matrix

// Uint32Matrix is a dense table of occurrence counts, e.g. how many
// tokens of word w the sampler currently assigns to topic k.
type Uint32Matrix struct {
	nrow uint32
	ncol uint32
	data []uint32
}

// NewUint32Matrix creates a zeroed r x c count table. It panics with
// ErrBadShape if either dimension is zero. Storage is row major, i.e.
// the (i*c + j)-th element of the backing slice is the [i, j]-th count.
func NewUint32Matrix(r, c uint32) *Uint32Matrix {
	if r == 0 || c == 0 {
		panic(ErrBadShape)
	}
	return &Uint32Matrix{
		nrow: r,
		ncol: c,
		data: make([]uint32, int(r)*int(c)),
	}
}

// get the shape of the matrix
func (m *Uint32Matrix) Shape() (uint32, uint32) {
	return m.nrow, m.ncol
}

func (m *Uint32Matrix) offset(r, c uint32) int {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	return int(r)*int(m.ncol) + int(c)
}

// get the [r, c]-th count
func (m *Uint32Matrix) Get(r, c uint32) uint32 {
	return m.data[m.offset(r, c)]
}

// set the [r, c]-th count to val
func (m *Uint32Matrix) Set(r, c uint32, val uint32) {
	m.data[m.offset(r, c)] = val
}

// increment the [r, c]-th count by val
func (m *Uint32Matrix) Incr(r, c uint32, val uint32) {
	m.data[m.offset(r, c)] += val
}

// Decr decrements the [r, c]-th count by val. A sampler that removes
// more assignments than it added is broken, so underflow panics.
func (m *Uint32Matrix) Decr(r, c uint32, val uint32) {
	i := m.offset(r, c)
	if m.data[i] < val {
		panic(ErrNegativeCount)
	}
	m.data[i] -= val
}

// Row returns a copy of the r-th row.
func (m *Uint32Matrix) Row(r uint32) []uint32 {
	if r >= m.nrow {
		panic(ErrIndexOutOfRange)
	}
	start := int(r) * int(m.ncol)
	row := make([]uint32, m.ncol)
	copy(row, m.data[start:start+int(m.ncol)])
	return row
}

// RowSum adds up the counts of the r-th row.
func (m *Uint32Matrix) RowSum(r uint32) uint64 {
	if r >= m.nrow {
		panic(ErrIndexOutOfRange)
	}
	start := int(r) * int(m.ncol)
	var sum uint64
	for _, v := range m.data[start : start+int(m.ncol)] {
		sum += uint64(v)
	}
	return sum
}

// ColSum adds up the counts of the c-th column.
func (m *Uint32Matrix) ColSum(c uint32) uint64 {
	if c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	var sum uint64
	for r := uint32(0); r < m.nrow; r += 1 {
		sum += uint64(m.data[int(r)*int(m.ncol)+int(c)])
	}
	return sum
}

// Total adds up every count in the table.
func (m *Uint32Matrix) Total() uint64 {
	var sum uint64
	for _, v := range m.data {
		sum += uint64(v)
	}
	return sum
}
