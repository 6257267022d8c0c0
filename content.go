package mboxevent

// contentRange computes the byte range a new-message notification should
// carry for the given inclusion mode. trunc is the configured truncation
// size threshold, zero meaning unlimited. ok is false when the message is
// excluded entirely (standard mode over the threshold).
func contentRange(mode InclusionMode, trunc, size, headerSize int64) (offset, n int64, ok bool) {
	body := size - headerSize
	switch mode {
	case IncludeStandard:
		if trunc == 0 || size <= trunc {
			return 0, size, true
		}
		return 0, 0, false
	case IncludeMessage:
		if trunc > 0 && size > trunc {
			return 0, trunc, true
		}
		return 0, size, true
	case IncludeHeader:
		if trunc > 0 && headerSize > trunc {
			return 0, trunc, true
		}
		return 0, headerSize, true
	case IncludeBody:
		if trunc > 0 && body > trunc {
			return headerSize, trunc, true
		}
		return headerSize, body, true
	case IncludeHeaderBody:
		if trunc > 0 && body > trunc {
			return 0, headerSize + trunc, true
		}
		return 0, size, true
	}
	return 0, 0, false
}
