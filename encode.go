package mboxevent

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ChannelEvent is the fixed channel tag every rendered notification is
// delivered under.
const ChannelEvent = "EVENT"

// splitAddress decodes a composite "host;port" value. The separator is the
// first semicolon; the port parse is best-effort and yields 0 on garbage.
func splitAddress(v string) (host string, port int) {
	i := strings.IndexByte(v, ';')
	if i < 0 {
		return v, 0
	}
	port, _ = strconv.Atoi(v[i+1:])
	return v[:i], port
}

// encodeDocument renders one finished emission as an ordered JSON document:
// the event name first, then every filled parameter in catalog order.
// flagNames is the per-emission flag list decided by the split loop; the
// accumulated parameter map never carries flagNames itself.
func encodeDocument(emitKind Kind, e *Event, flagNames string) []byte {
	var b bytes.Buffer
	b.WriteByte('{')
	writeKey(&b, "event")
	writeString(&b, emitKind.WireName())

	for p := ParamID(0); p < numParams; p++ {
		if p == ParamFlagNames {
			if flagNames != "" {
				b.WriteByte(',')
				writeKey(&b, p.Key())
				writeString(&b, flagNames)
			}
			continue
		}
		v, ok := e.param(p)
		if !ok {
			continue
		}
		b.WriteByte(',')
		switch p {
		case ParamServerAddress:
			host, port := splitAddress(v.String())
			writeKey(&b, "serverDomain")
			writeString(&b, host)
			b.WriteByte(',')
			writeKey(&b, "serverPort")
			b.WriteString(strconv.Itoa(port))
		case ParamClientAddress:
			host, port := splitAddress(v.String())
			writeKey(&b, "clientIP")
			writeString(&b, host)
			b.WriteByte(',')
			writeKey(&b, "clientPort")
			b.WriteString(strconv.Itoa(port))
		default:
			writeKey(&b, p.Key())
			switch p.Kind() {
			case ValueString:
				writeString(&b, v.String())
			case ValueInteger:
				b.WriteString(strconv.FormatInt(v.Int(), 10))
			case ValueStringArray:
				writeArray(&b, v.List())
			}
		}
	}

	b.WriteByte('}')
	return b.Bytes()
}

func writeKey(b *bytes.Buffer, key string) {
	writeString(b, key)
	b.WriteByte(':')
}

func writeString(b *bytes.Buffer, s string) {
	// json.Marshal on a string cannot fail
	enc, _ := json.Marshal(s)
	b.Write(enc)
}

func writeArray(b *bytes.Buffer, items []string) {
	b.WriteByte('[')
	for i, it := range items {
		if i > 0 {
			b.WriteByte(',')
		}
		writeString(b, it)
	}
	b.WriteByte(']')
}
