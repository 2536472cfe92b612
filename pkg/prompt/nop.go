package prompt

import "io"

// NopCloser wraps a writer so promptui can own it without closing the
// underlying stream.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
