package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Calculator computes document checksums.
type Calculator interface {
	// CalculateRaw hashes the content byte for byte.
	CalculateRaw(content []byte) string

	// CalculateNormalized hashes the content after removing XML comments
	// and insignificant whitespace.
	CalculateNormalized(content []byte) string
}

// SHA256 implements Calculator with SHA-256. It is a zero-size type and
// safe for concurrent use.
type SHA256 struct{}

func New() SHA256 {
	return SHA256{}
}

func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func (c SHA256) CalculateNormalized(content []byte) string {
	hash := sha256.Sum256([]byte(c.normalize(string(content))))
	return hex.EncodeToString(hash[:])
}

type scanState int

const (
	stText scanState = iota
	stTag
	stQuote
	stComment
	stCDATA
)

// normalize drops comments, removes whitespace between markup, and
// collapses other whitespace runs to a single space. Quoted attribute
// values and CDATA sections are kept verbatim.
func (c SHA256) normalize(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	state := stText
	var quote byte
	pendingSpace := false

	flushSpace := func(next byte) {
		if pendingSpace && next != '<' && next != '>' && next != '/' && b.Len() > 0 {
			last := b.String()[b.Len()-1]
			if last != '>' && last != '<' {
				b.WriteByte(' ')
			}
		}
		pendingSpace = false
	}

	for i := 0; i < len(content); i++ {
		ch := content[i]
		switch state {
		case stComment:
			if strings.HasPrefix(content[i:], "-->") {
				state = stText
				i += 2
			}
			continue
		case stCDATA:
			b.WriteByte(ch)
			if strings.HasPrefix(content[i:], "]]>") {
				b.WriteString("]>")
				state = stText
				i += 2
			}
			continue
		case stQuote:
			b.WriteByte(ch)
			if ch == quote {
				state = stTag
			}
			continue
		}

		if isSpace(ch) {
			pendingSpace = true
			continue
		}

		switch {
		case state == stText && strings.HasPrefix(content[i:], "<!--"):
			state = stComment
			i += 3
			continue
		case state == stText && strings.HasPrefix(content[i:], "<![CDATA["):
			flushSpace(ch)
			b.WriteString("<![CDATA[")
			state = stCDATA
			i += 8
			continue
		}

		flushSpace(ch)
		b.WriteByte(ch)
		switch {
		case state == stText && ch == '<':
			state = stTag
		case state == stTag && ch == '>':
			state = stText
		case state == stTag && (ch == '"' || ch == '\''):
			quote = ch
			state = stQuote
		}
	}
	return b.String()
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
