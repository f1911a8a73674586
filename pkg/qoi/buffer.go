package qoi

import (
	"io"
)

// readBufferSize is the chunk size pulled from the underlying source.
const readBufferSize = 128

// byteReader pulls fixed-size chunks from an io.Reader into a small staging
// buffer and hands out one byte at a time. Once the source is exhausted it
// yields zero bytes instead of an error: decoding is driven by the pixel
// count from the header, so a truncated stream is only detectable in
// aggregate, never per read.
type byteReader struct {
	r   io.Reader
	buf [readBufferSize]byte
	pos int
	n   int
	eof bool
}

func newByteReader(r io.Reader) *byteReader {
	return &byteReader{r: r}
}

func (br *byteReader) refill() {
	br.pos = 0
	br.n = 0
	for !br.eof && br.n == 0 {
		n, err := br.r.Read(br.buf[:])
		br.n = n
		if err != nil {
			br.eof = true
		}
	}
}

// readByte returns the next byte of the stream, or 0 past its end.
func (br *byteReader) readByte() byte {
	if br.pos >= br.n {
		if br.eof {
			return 0
		}
		br.refill()
		if br.n == 0 {
			return 0
		}
	}
	b := br.buf[br.pos]
	br.pos++
	return b
}

func (br *byteReader) readUint32() uint32 {
	z := uint32(br.readByte()) << 24
	z |= uint32(br.readByte()) << 16
	z |= uint32(br.readByte()) << 8
	z |= uint32(br.readByte())
	return z
}

// writeBufferSize is the staging area of the byte sink. Opcodes are at most
// 5 bytes, so a flush always frees enough room.
const writeBufferSize = 64

// byteWriter stages bytes in a small fixed buffer and flushes to the
// underlying sink when full. Write errors are sticky; callers check once via
// close.
type byteWriter struct {
	w    io.Writer
	buf  [writeBufferSize]byte
	used int
	err  error
}

func newByteWriter(w io.Writer) *byteWriter {
	return &byteWriter{w: w}
}

func (bw *byteWriter) flush() {
	if bw.used == 0 || bw.err != nil {
		bw.used = 0
		return
	}
	_, bw.err = bw.w.Write(bw.buf[:bw.used])
	bw.used = 0
}

func (bw *byteWriter) writeByte(b byte) {
	if bw.used+1 > writeBufferSize {
		bw.flush()
	}
	bw.buf[bw.used] = b
	bw.used++
}

func (bw *byteWriter) write3(a, b, c byte) {
	if bw.used+3 > writeBufferSize {
		bw.flush()
	}
	n := bw.used
	bw.buf[n] = a
	bw.buf[n+1] = b
	bw.buf[n+2] = c
	bw.used = n + 3
}

func (bw *byteWriter) write(p []byte) {
	for _, b := range p {
		bw.writeByte(b)
	}
}

func (bw *byteWriter) writeUint32(v uint32) {
	if bw.used+4 > writeBufferSize {
		bw.flush()
	}
	n := bw.used
	bw.buf[n] = byte(v >> 24)
	bw.buf[n+1] = byte(v >> 16)
	bw.buf[n+2] = byte(v >> 8)
	bw.buf[n+3] = byte(v)
	bw.used = n + 4
}

// close flushes the staging buffer and reports the first write error seen.
func (bw *byteWriter) close() error {
	bw.flush()
	return bw.err
}
