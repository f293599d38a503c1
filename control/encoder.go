package control

import (
	"io"
	"math/big"
)

// Encoder writes control blocks.
type Encoder interface {
	Data(data []byte) (err error)
	Null() (err error)
}

type encoder struct {
	w io.Writer
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) Encoder {
	return &encoder{
		w: w,
	}
}

// Data writes data using the smallest block that can hold it.
func (e *encoder) Data(data []byte) (err error) {
	size := len(data)

	switch {
	case size == 0:
		return Error.New("invalid: size=0")
	case size == 1 && Data.Fits(data[0]):
		_, err = e.w.Write([]byte{
			Data.Prefix | data[0],
		})
	case size == 2 && Data1.Fits(data[0]):
		_, err = e.w.Write([]byte{
			Data1.Prefix | data[0],
			data[1],
		})
	case size == 3 && Data2.Fits(data[0]):
		_, err = e.w.Write([]byte{
			Data2.Prefix | data[0],
			data[1],
			data[2],
		})
	case size <= 64:
		_, err = e.w.Write(append(
			[]byte{DataSize.Prefix | byte(size-1)},
			data...,
		))
	default:
		s := new(big.Int).SetUint64(uint64(size - 1))
		sb := s.Bytes()

		_, err = e.w.Write([]byte{DataSizeSize.Prefix | byte(len(sb)-1)})
		if err != nil {
			return Error.Wrap(err)
		}

		_, err = e.w.Write(sb)
		if err != nil {
			return Error.Wrap(err)
		}

		_, err = e.w.Write(data)
	}

	if err != nil {
		return Error.Wrap(err)
	}

	return nil
}

// Null writes a null block.
func (e *encoder) Null() (err error) {
	_, err = e.w.Write([]byte{
		Null.Prefix,
	})
	if err != nil {
		return Error.Wrap(err)
	}

	return nil
}
