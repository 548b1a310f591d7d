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

import (
	"fmt"
	"time"
)

// Event types, generalized from Event.go's codec-transform lifecycle to
// the block compress/decompress lifecycle of this package.
const (
	EVT_COMPRESS_BLOCK_START = iota
	EVT_COMPRESS_BLOCK_END
	EVT_DECOMPRESS_BLOCK_START
	EVT_DECOMPRESS_BLOCK_END
)

// Event reports one step of a block's progress through EncodeStream or
// DecodeStream (stream.go). It is purely observational: no listener can
// influence the codec's output.
type Event struct {
	eventType int
	blockID   int
	size      int64
	checksum  uint64
	checksumd bool
	eventTime time.Time
}

func newEvent(evtType, blockID int, size int64, checksum uint64, checksumd bool) *Event {
	return &Event{
		eventType: evtType,
		blockID:   blockID,
		size:      size,
		checksum:  checksum,
		checksumd: checksumd,
		eventTime: time.Now(),
	}
}

func (this *Event) Type() int {
	return this.eventType
}

func (this *Event) BlockID() int {
	return this.blockID
}

func (this *Event) Size() int64 {
	return this.size
}

func (this *Event) Checksum() (uint64, bool) {
	return this.checksum, this.checksumd
}

func (this *Event) Time() time.Time {
	return this.eventTime
}

func (this *Event) String() string {
	t := ""

	switch this.eventType {
	case EVT_COMPRESS_BLOCK_START:
		t = "COMPRESS_BLOCK_START"
	case EVT_COMPRESS_BLOCK_END:
		t = "COMPRESS_BLOCK_END"
	case EVT_DECOMPRESS_BLOCK_START:
		t = "DECOMPRESS_BLOCK_START"
	case EVT_DECOMPRESS_BLOCK_END:
		t = "DECOMPRESS_BLOCK_END"
	}

	sum := ""
	if this.checksumd {
		sum = fmt.Sprintf(", \"checksum\":\"%016x\"", this.checksum)
	}

	return fmt.Sprintf("{ \"type\":\"%s\", \"block\":%d, \"size\":%d, \"time\":%d%s }",
		t, this.blockID, this.size, this.eventTime.UnixNano()/1000000, sum)
}

// Listener receives Events emitted by EncodeStream/DecodeStream.
type Listener interface {
	ProcessEvent(evt *Event)
}

// notifyListeners delivers evt to every non-nil listener, swallowing
// nothing: a panicking listener is a caller bug, not ours to hide.
func notifyListeners(listeners []Listener, evt *Event) {
	for _, l := range listeners {
		if l != nil {
			l.ProcessEvent(evt)
		}
	}
}
