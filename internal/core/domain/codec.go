package domain

import (
	"encoding/binary"
	"errors"
	"fmt"
	"reflect"

	"github.com/near/borsh-go"
)

var errShortBuffer = errors.New("not enough bytes")

// deserialize decodes buf into v. Length prefixes of strings and vectors are
// checked against the available bytes first, so that the decoder never
// allocates more than buf can hold.
func deserialize(v interface{}, buf []byte) (err error) {
	if _, err := scanLayout(reflect.TypeOf(v).Elem(), buf); err != nil {
		return fmt.Errorf("failed to decode: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to decode: %v", r)
		}
	}()
	return borsh.Deserialize(v, buf)
}

// scanLayout walks buf as the borsh encoding of a value of type t and returns
// the number of bytes it spans.
func scanLayout(t reflect.Type, buf []byte) (int, error) {
	switch t.Kind() {
	case reflect.Bool, reflect.Uint8, reflect.Int8:
		return fixedSize(buf, 1)
	case reflect.Uint16, reflect.Int16:
		return fixedSize(buf, 2)
	case reflect.Uint32, reflect.Int32:
		return fixedSize(buf, 4)
	case reflect.Uint64, reflect.Int64:
		return fixedSize(buf, 8)

	case reflect.String:
		n, err := lengthPrefix(buf, 1)
		if err != nil {
			return 0, err
		}
		return 4 + n, nil

	case reflect.Slice:
		elem := t.Elem()
		count, err := lengthPrefix(buf, minLayoutSize(elem))
		if err != nil {
			return 0, err
		}
		offset := 4
		for i := 0; i < count; i++ {
			n, err := scanLayout(elem, buf[offset:])
			if err != nil {
				return 0, err
			}
			offset += n
		}
		return offset, nil

	case reflect.Struct:
		offset := 0
		for i := 0; i < t.NumField(); i++ {
			n, err := scanLayout(t.Field(i).Type, buf[offset:])
			if err != nil {
				return 0, err
			}
			offset += n
		}
		return offset, nil

	default:
		return 0, fmt.Errorf("unsupported type %s", t)
	}
}

// lengthPrefix reads the u32 count at the beginning of buf and checks that
// the following bytes can hold count items of at least itemSize bytes each.
func lengthPrefix(buf []byte, itemSize int) (int, error) {
	if len(buf) < 4 {
		return 0, errShortBuffer
	}
	count := uint64(binary.LittleEndian.Uint32(buf))
	if count*uint64(itemSize) > uint64(len(buf)-4) {
		return 0, fmt.Errorf(
			"%w: length prefix %d exceeds %d remaining bytes",
			errShortBuffer, count, len(buf)-4,
		)
	}
	return int(count), nil
}

func fixedSize(buf []byte, size int) (int, error) {
	if len(buf) < size {
		return 0, errShortBuffer
	}
	return size, nil
}

// minLayoutSize returns the least number of bytes a value of type t takes,
// never less than 1.
func minLayoutSize(t reflect.Type) int {
	size := 0
	switch t.Kind() {
	case reflect.Uint16, reflect.Int16:
		size = 2
	case reflect.Uint32, reflect.Int32, reflect.String, reflect.Slice:
		size = 4
	case reflect.Uint64, reflect.Int64:
		size = 8
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			size += minLayoutSize(t.Field(i).Type)
		}
	}
	if size < 1 {
		size = 1
	}
	return size
}
