package ufc

import (
	"bytes"
	"sync"
)

var (
	// bufferPool pools query buffers; Reset keeps their capacity
	// Used for every query encoded for the merchant handler
	bufferPool = sync.Pool{
		New: func() interface{} {
			return new(bytes.Buffer)
		},
	}

	// fieldsPool pools decoded field maps
	// A decoded map never outlives the operation that consumes it
	fieldsPool = sync.Pool{
		New: func() interface{} {
			return make(Fields, 16)
		},
	}
)

// getBuffer retrieves an empty buffer from the pool
func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putBuffer returns a buffer to the pool. Outliers are dropped so one huge
// query does not pin its memory.
func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 4*1024 {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}

// getFields retrieves an empty field map from the pool
func getFields() Fields {
	fields := fieldsPool.Get().(Fields)
	for k := range fields {
		delete(fields, k)
	}
	return fields
}

// putFields clears the decoded response (it may hold card data) and returns it to the pool
func putFields(fields Fields) {
	for k := range fields {
		delete(fields, k)
	}
	fieldsPool.Put(fields)
}
