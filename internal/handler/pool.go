package handler

import (
	"bytes"
	"sync"
)

const (
	encodeBufferSize = 512
	// Buffers grown past this by a large listing are dropped rather than pooled
	maxPooledBufferSize = 64 << 10
)

var encodeBuffers = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, encodeBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return encodeBuffers.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferSize {
		return
	}
	buf.Reset()
	encodeBuffers.Put(buf)
}
