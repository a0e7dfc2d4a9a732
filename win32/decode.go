package win32

// Parse decodes a complete Kyoshin WIN32 byte stream: the leading info
// block followed by zero or more second blocks running to EOF. Any
// structural mismatch surfaces as a *FormatError; the decoder never
// attempts resynchronization.
func Parse(b []byte) (InfoBlock, []SecondBlock, error) {
	info, offset, err := DecodeHeader(b)
	if err != nil {
		return info, nil, err
	}

	var seconds []SecondBlock
	for offset < int64(len(b)) {
		blk, n, err := DecodeSecondBlock(b[offset:], offset)
		if err != nil {
			return info, nil, err
		}
		seconds = append(seconds, blk)
		offset += n
	}

	return info, seconds, nil
}
