package control

import (
	"errors"
	"io"
	"math/big"

	"github.com/calebcase/oops"
)

// MaxSize is the largest data size a block may declare.
const MaxSize = 1 << 24

// chunk bounds the buffer allocated ahead of the bytes actually read.
const chunk = 1 << 16

// Decoder reads control blocks.
type Decoder interface {
	Next() (ok bool)
	Err() (err error)

	Type() Type
	Consumed() uint64

	Size() (_ uint64, err error)
	Data() (data []byte, err error)
}

type decoder struct {
	r io.Reader

	consumed uint64

	value    [1]byte
	t        Type
	finished bool

	size uint64
	data []byte

	err error
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) Decoder {
	return &decoder{
		r: r,
	}
}

// read fills buf from the reader and counts the bytes consumed.
func (d *decoder) read(buf []byte) (err error) {
	n, err := io.ReadFull(d.r, buf)
	d.consumed += uint64(n)
	if err != nil {
		return Error.Wrap(err)
	}

	return nil
}

// Next moves to the next block. It returns false at the end of the input or
// on error (check Err).
func (d *decoder) Next() (ok bool) {
	// Ensure current field was fully read before moving on...
	if !d.finished && d.t != Unknown {
		_, d.err = d.Data()
		if d.err != nil {
			return false
		}
	}

	// Reset state for next field.
	d.value[0] = 0
	d.t = Unknown

	d.size = 0
	d.data = nil
	d.finished = false

	// Read the field control block.
	_, d.err = io.ReadFull(d.r, d.value[:])
	if d.err != nil {
		if errors.Is(d.err, io.EOF) {
			d.err = nil
			return false
		}

		d.err = Error.Wrap(d.err)

		return false
	}

	d.consumed += 1

	t, ok := Types.Match(d.value[0])
	if !ok {
		d.err = Error.New("unexpected byte: %08b", d.value[0])

		return false
	}

	switch t {
	case Data, Null:
		d.finished = true
	}

	d.t = t

	return true
}

func (d *decoder) Err() error {
	return d.err
}

func (d *decoder) Type() Type {
	return d.t
}

func (d *decoder) Consumed() uint64 {
	return d.consumed
}

// Size returns the number of data bytes in the current block.
func (d *decoder) Size() (_ uint64, err error) {
	defer func() {
		if err != nil {
			d.size = 0
			d.err = err
		}
	}()

	if d.size != 0 {
		return d.size, nil
	}

	switch d.t {
	case Data:
		d.size = 1
	case DataSize:
		d.size = uint64(d.value[0]&d.t.Mask) + 1
	case Data1:
		d.size = 2
	case Data2:
		d.size = 3
	case DataSizeSize:
		sizeSize := uint64(d.value[0]&d.t.Mask) + 1

		sizeBytes := make([]byte, sizeSize)
		err = d.read(sizeBytes)
		if err != nil {
			return 0, err
		}

		size := new(big.Int).SetBytes(sizeBytes)
		size.Add(size, big.NewInt(1))
		if size.Cmp(big.NewInt(MaxSize)) > 0 {
			return 0, Error.New("data size %s exceeds max of %d", size, MaxSize)
		}

		d.size = size.Uint64()
	default:
		return 0, oops.Trace(ErrInvalidOperation)
	}

	return d.size, nil
}

// Data reads data bits and bytes from the field. If the field does not contain
// data it returns nil and ErrInvalidOperation.
func (d *decoder) Data() (data []byte, err error) {
	defer func() {
		if err != nil {
			d.data = nil
			d.err = err
		}
	}()

	switch d.t {
	case Data, DataSize, Data1, Data2, DataSizeSize:
	default:
		return nil, oops.Trace(ErrInvalidOperation)
	}

	if d.data != nil {
		return d.data, nil
	}

	_, err = d.Size()
	if err != nil {
		return nil, err
	}

	switch d.t {
	case Data, Data1, Data2:
		d.data = make([]byte, d.size)
	}

	switch d.t {
	case Data:
		d.data[0] = d.value[0] & d.t.Mask
	case Data1, Data2:
		d.data[0] = d.value[0] & d.t.Mask

		err = d.read(d.data[1:])
		if err != nil {
			return nil, err
		}
	case DataSize, DataSizeSize:
		d.data, err = d.readSized(d.size)
		if err != nil {
			return nil, err
		}
	}

	d.finished = true

	return d.data, nil
}

// readSized reads size bytes growing the buffer a chunk at a time, so a
// declared size larger than the input never allocates more than one chunk
// past what was read.
func (d *decoder) readSized(size uint64) (data []byte, err error) {
	data = make([]byte, 0, min(size, chunk))

	for remaining := size; remaining > 0; {
		n := min(remaining, chunk)
		start := len(data)

		data = append(data, make([]byte, n)...)

		err = d.read(data[start:])
		if err != nil {
			return nil, err
		}

		remaining -= n
	}

	return data, nil
}
