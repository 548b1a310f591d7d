/*
Copyright 2011-2017 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package snappy

import "fmt"

// Kind classifies a CodecError the way spec.md §7 taxonomizes failures:
// by cause, not by exception type.
type Kind int

const (
	KindMalformedInput Kind = iota + 1
	KindLengthMismatch
	KindOutputOverrun
	KindInvalidArgument
)

func (k Kind) String() string {
	switch k {
	case KindMalformedInput:
		return "malformed input"
	case KindLengthMismatch:
		return "length mismatch"
	case KindOutputOverrun:
		return "output overrun"
	case KindInvalidArgument:
		return "invalid argument"
	default:
		return "unknown"
	}
}

// Numeric error codes, in the style of Kanzi.go's ERR_* block: a stable
// identifier a caller can switch on without string-matching Message.
const (
	ErrVarintOverflow = iota + 1
	ErrVarintTruncated
	ErrBadOffset
	ErrBadCopyLength
	ErrBadLiteralLength
	ErrShortOutput
	ErrShortInput
	ErrLengthMismatch
	ErrOutputOverrun
	ErrNilBuffer
	ErrOversizeFragment
	ErrIOVecOverflow
)

// CodecError is the error type returned by this package. It carries a
// Kind for coarse-grained handling and a numeric Code for precise
// diagnostics, mirroring io/CompressedStream.go's IOError{msg, code}.
type CodecError struct {
	Kind    Kind
	Code    int
	Message string
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("snappy: %s: %s", e.Kind, e.Message)
}

func malformedInput(code int, format string, args ...interface{}) *CodecError {
	return &CodecError{Kind: KindMalformedInput, Code: code, Message: fmt.Sprintf(format, args...)}
}

func lengthMismatch(format string, args ...interface{}) *CodecError {
	return &CodecError{Kind: KindLengthMismatch, Code: ErrLengthMismatch, Message: fmt.Sprintf(format, args...)}
}

func outputOverrun(format string, args ...interface{}) *CodecError {
	return &CodecError{Kind: KindOutputOverrun, Code: ErrOutputOverrun, Message: fmt.Sprintf(format, args...)}
}

func invalidArgument(format string, args ...interface{}) *CodecError {
	return &CodecError{Kind: KindInvalidArgument, Code: ErrNilBuffer, Message: fmt.Sprintf(format, args...)}
}
