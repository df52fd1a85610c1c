package featurevector

import (
	"encoding/binary"
	"fmt"
)

// Vector holds one configuration's features split into the three
// channels a scoring function embeds separately.
type Vector struct {
	Word  []int
	POS   []int
	Label []int
}

func New(words, pos, labels int) *Vector {
	return &Vector{
		Word:  make([]int, words),
		POS:   make([]int, pos),
		Label: make([]int, labels),
	}
}

func (v *Vector) Len() int {
	return len(v.Word) + len(v.POS) + len(v.Label)
}

// Flat concatenates the channels in word, pos, label order.
func (v *Vector) Flat() []int {
	retval := make([]int, 0, v.Len())
	retval = append(retval, v.Word...)
	retval = append(retval, v.POS...)
	return append(retval, v.Label...)
}

// Key is a byte encoding of the vector; equal vectors have equal keys.
func (v *Vector) Key() []byte {
	buf := make([]byte, 0, 3*binary.MaxVarintLen32+v.Len()*2)
	for _, channel := range [3][]int{v.Word, v.POS, v.Label} {
		buf = binary.AppendUvarint(buf, uint64(len(channel)))
		for _, feat := range channel {
			buf = binary.AppendVarint(buf, int64(feat))
		}
	}
	return buf
}

func (v *Vector) Copy() *Vector {
	return &Vector{
		Word:  append([]int(nil), v.Word...),
		POS:   append([]int(nil), v.POS...),
		Label: append([]int(nil), v.Label...),
	}
}

func (v *Vector) String() string {
	return fmt.Sprintf("w%v p%v l%v", v.Word, v.POS, v.Label)
}
