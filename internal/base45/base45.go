// Package base45 implements RFC 9285 Base45 encoding, the QR-alphanumeric-safe
// text encoding used as the outermost wire stage of the Claim169 pipeline (C1).
//
// The alphabet is the 45-character set used by QR code "alphanumeric mode":
// 0-9 A-Z $%*+-./: and space. Bytes are packed two at a time into three
// characters; a trailing single byte produces two characters. Input is
// processed exactly as received: no whitespace trimming, no case folding.
package base45

import "fmt"

// Alphabet is the 45-character RFC 9285 alphabet, in index order.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

const maxPairValue = 65535 // largest value a 3-char group may carry (encodes 2 bytes)

var decodeTable [256]int8

func init() {
	for i := range decodeTable {
		decodeTable[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		decodeTable[Alphabet[i]] = int8(i)
	}
}

// Encode converts arbitrary bytes to their Base45 text representation.
// Output length is deterministic from len(data): ceil(len(data)/2)*3 bytes for
// an even length, minus one for a trailing odd byte.
func Encode(data []byte) string {
	out := make([]byte, 0, (len(data)/2)*3+2)
	for i := 0; i+1 < len(data); i += 2 {
		n := int(data[i])<<8 | int(data[i+1])
		out = append(out, encodeTriplet(n)...)
	}
	if len(data)%2 == 1 {
		n := int(data[len(data)-1])
		out = append(out, encodePair(n)...)
	}
	return string(out)
}

func encodeTriplet(n int) []byte {
	c := n % 45
	n /= 45
	d := n % 45
	e := n / 45
	return []byte{Alphabet[c], Alphabet[d], Alphabet[e]}
}

func encodePair(n int) []byte {
	c := n % 45
	d := n / 45
	return []byte{Alphabet[c], Alphabet[d]}
}

// Decode converts Base45 text back into the original bytes. The input is
// consumed exactly as given: no trimming or normalization.
//
// Fails when: a character outside Alphabet appears, the input length mod 3 is
// 1, or a 3-character group decodes to a value greater than 65535.
func Decode(text string) ([]byte, error) {
	n := len(text)
	if n%3 == 1 {
		return nil, fmt.Errorf("base45: invalid input length %d (mod 3 == 1)", n)
	}

	out := make([]byte, 0, (n/3)*2+1)

	i := 0
	for ; i+3 <= n; i += 3 {
		c, err := lookup(text[i])
		if err != nil {
			return nil, err
		}
		d, err := lookup(text[i+1])
		if err != nil {
			return nil, err
		}
		e, err := lookup(text[i+2])
		if err != nil {
			return nil, err
		}
		val := int(c) + int(d)*45 + int(e)*45*45
		if val > maxPairValue {
			return nil, fmt.Errorf("base45: group value %d exceeds maximum %d", val, maxPairValue)
		}
		out = append(out, byte(val>>8), byte(val&0xff))
	}

	if n-i == 2 {
		c, err := lookup(text[i])
		if err != nil {
			return nil, err
		}
		d, err := lookup(text[i+1])
		if err != nil {
			return nil, err
		}
		val := int(c) + int(d)*45
		if val > 255 {
			return nil, fmt.Errorf("base45: trailing pair value %d exceeds 255", val)
		}
		out = append(out, byte(val))
	}

	return out, nil
}

func lookup(b byte) (int8, error) {
	v := decodeTable[b]
	if v < 0 {
		return 0, fmt.Errorf("base45: character %q is not in the Base45 alphabet", b)
	}
	return v, nil
}
