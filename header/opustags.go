package header

import (
	"encoding/binary"
	"unicode/utf8"
)

const opusTagsMagic = "OpusTags"

// Comment is a single "KEY=value" vendor-comment entry from the comment
// list, per RFC 7845 Section 5.2. The list is kept as an ordered slice
// rather than a map: RFC 7845 explicitly permits repeated keys and
// requires comments be preserved in the order they appeared on the
// wire, which a map cannot represent.
type Comment struct {
	Key   string
	Value string
}

// OpusTags is the comment header: the second packet of an Opus-in-Ogg
// logical bitstream, carrying the encoder vendor string and an
// arbitrary list of user comments.
type OpusTags struct {
	Vendor   string
	Comments []Comment
}

func readLengthPrefixed(data []byte, offset int) (string, int, error) {
	if len(data) < offset+4 {
		return "", 0, ErrInvalidData
	}
	size := binary.LittleEndian.Uint32(data[offset : offset+4])
	offset += 4
	if uint64(offset)+uint64(size) > uint64(len(data)) {
		return "", 0, ErrInvalidData
	}
	raw := data[offset : offset+int(size)]
	if !utf8.Valid(raw) {
		return "", 0, ErrNonUTF8
	}
	return string(raw), offset + int(size), nil
}

// ParseOpusTags decodes an OpusTags packet.
func ParseOpusTags(data []byte) (*OpusTags, error) {
	if len(data) < 8 {
		return nil, ErrInvalidData
	}
	if string(data[0:8]) != opusTagsMagic {
		return nil, ErrNotOpusTags
	}

	vendor, offset, err := readLengthPrefixed(data, 8)
	if err != nil {
		return nil, err
	}

	if len(data) < offset+4 {
		return nil, ErrInvalidData
	}
	count := binary.LittleEndian.Uint32(data[offset : offset+4])
	offset += 4

	tags := &OpusTags{Vendor: vendor}
	for i := uint32(0); i < count; i++ {
		entry, next, err := readLengthPrefixed(data, offset)
		if err != nil {
			return nil, err
		}
		offset = next

		key, value := splitComment(entry)
		tags.Comments = append(tags.Comments, Comment{Key: key, Value: value})
	}

	return tags, nil
}

func splitComment(entry string) (key, value string) {
	for i := 0; i < len(entry); i++ {
		if entry[i] == '=' {
			return entry[:i], entry[i+1:]
		}
	}
	return entry, ""
}

// Encode serializes t back to its wire bytes.
func (t *OpusTags) Encode() []byte {
	writeLengthPrefixed := func(buf []byte, s string) []byte {
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(s)))
		buf = append(buf, lenBuf[:]...)
		return append(buf, s...)
	}

	buf := make([]byte, 0, 8+4+len(t.Vendor)+4)
	buf = append(buf, opusTagsMagic...)
	buf = writeLengthPrefixed(buf, t.Vendor)

	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(len(t.Comments)))
	buf = append(buf, countBuf[:]...)

	for _, c := range t.Comments {
		buf = writeLengthPrefixed(buf, c.Key+"="+c.Value)
	}

	return buf
}
