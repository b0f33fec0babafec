package index

import (
	"bytes"
	"io"
)

// chunkSize is the read granularity used while looking for newlines
const chunkSize = 64 * 1024

// Scan reads r in chunks and calls fn once per line, without the trailing
// "\n" or "\r\n". A final line without a newline is reported too; an input
// ending in a newline does not produce an extra empty line.
//
// The slice passed to fn is only valid during the call.
func Scan(r io.Reader, fn func(line []byte) error) error {
	buf := make([]byte, chunkSize)
	var carry []byte

	for {
		n, err := r.Read(buf)

		// Find all newlines in this chunk
		chunk := buf[:n]
		for len(chunk) > 0 {
			idx := bytes.IndexByte(chunk, '\n')
			if idx == -1 {
				carry = append(carry, chunk...)
				break
			}

			line := chunk[:idx]
			if len(carry) > 0 {
				carry = append(carry, line...)
				line = carry
			}
			if ferr := fn(bytes.TrimSuffix(line, []byte{'\r'})); ferr != nil {
				return ferr
			}
			carry = carry[:0]
			chunk = chunk[idx+1:]
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}

	if len(carry) > 0 {
		return fn(bytes.TrimSuffix(carry, []byte{'\r'}))
	}
	return nil
}
