package cose

import "fmt"

// peekTag inspects the leading bytes of a CBOR item. If the item is a tagged
// value (major type 6), it returns the tag number, whether it was tagged, and
// the remaining bytes (the tagged content, itself a complete CBOR item). If
// the item isn't tagged, tagged=false and content==data.
//
// This is a structural probe only — spec §6 allows detecting COSE_Sign1 vs.
// COSE_Encrypt0 "by CBOR tag or by probing the 4-tuple shape when untagged",
// and this is the tag half of that rule.
func peekTag(data []byte) (tagNumber uint64, tagged bool, content []byte, err error) {
	if len(data) == 0 {
		return 0, false, nil, fmt.Errorf("cose: empty input")
	}
	majorType := data[0] >> 5
	if majorType != 6 {
		return 0, false, data, nil
	}

	additional := data[0] & 0x1F
	switch {
	case additional < 24:
		return uint64(additional), true, data[1:], nil
	case additional == 24:
		if len(data) < 2 {
			return 0, false, nil, fmt.Errorf("cose: truncated tag header")
		}
		return uint64(data[1]), true, data[2:], nil
	case additional == 25:
		if len(data) < 3 {
			return 0, false, nil, fmt.Errorf("cose: truncated tag header")
		}
		return uint64(data[1])<<8 | uint64(data[2]), true, data[3:], nil
	case additional == 26:
		if len(data) < 5 {
			return 0, false, nil, fmt.Errorf("cose: truncated tag header")
		}
		n := uint64(0)
		for i := 1; i <= 4; i++ {
			n = n<<8 | uint64(data[i])
		}
		return n, true, data[5:], nil
	case additional == 27:
		if len(data) < 9 {
			return 0, false, nil, fmt.Errorf("cose: truncated tag header")
		}
		n := uint64(0)
		for i := 1; i <= 8; i++ {
			n = n<<8 | uint64(data[i])
		}
		return n, true, data[9:], nil
	default:
		return 0, false, nil, fmt.Errorf("cose: indefinite-length tag not supported")
	}
}

// PeekTag exports peekTag for the pipeline driver (C8), which needs to probe
// the outer CBOR item's tag/shape to decide whether an Encrypt0 layer is
// present before choosing which parser to hand the bytes to.
func PeekTag(data []byte) (tagNumber uint64, tagged bool, content []byte, err error) {
	return peekTag(data)
}

// ArrayLen exports arrayLength for the same reason as PeekTag.
func ArrayLen(data []byte) (int, error) {
	return arrayLength(data)
}

// arrayLength reports the number of elements in a definite-length CBOR array
// header at the start of data, without decoding the elements.
func arrayLength(data []byte) (n int, err error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("cose: empty input")
	}
	majorType := data[0] >> 5
	if majorType != 4 {
		return 0, fmt.Errorf("cose: expected CBOR array, got major type %d", majorType)
	}
	additional := data[0] & 0x1F
	switch {
	case additional < 24:
		return int(additional), nil
	case additional == 24:
		if len(data) < 2 {
			return 0, fmt.Errorf("cose: truncated array header")
		}
		return int(data[1]), nil
	default:
		return 0, fmt.Errorf("cose: unsupported array length encoding")
	}
}
