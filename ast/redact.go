package ast

import (
	"encoding/base32"
	"encoding/binary"
	"strings"

	"github.com/dchest/siphash"
)

// redact mirrors the teacher's expr.redactString: every Field and
// Literal value reachable from a node is student-authored content and
// may be sensitive, so diagnostic text built for error messages or
// debug dumps hashes it instead of printing it verbatim.
const redactK0, redactK1 = 0x5175656573, 0x426c6f636b // "Quees"/"Block" in hex, arbitrary fixed keys

func redactString(s string) string {
	sum := siphash.Hash(redactK0, redactK1, []byte(s))
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], sum)
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf[:])
}

// Redact renders a one-line, privacy-preserving summary of the
// subtree rooted at n: opcodes, field names, and input names are kept
// (they come from the fixed Scratch block vocabulary), but every
// Field and Literal value is replaced with a redacted digest.
func Redact(n Node) string {
	var b strings.Builder
	redactInto(&b, n)
	return b.String()
}

func redactInto(b *strings.Builder, n Node) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	switch v := n.(type) {
	case *Program:
		b.WriteString("Program(")
		for i, s := range v.sequences {
			if i > 0 {
				b.WriteByte(' ')
			}
			redactInto(b, s)
		}
		b.WriteByte(')')
	case *Sequence:
		b.WriteString("Sequence(")
		for i, blk := range v.blocks {
			if i > 0 {
				b.WriteByte(' ')
			}
			redactInto(b, blk)
		}
		b.WriteByte(')')
	case *Block:
		b.WriteString(v.Opcode)
		b.WriteByte('(')
		for i, f := range v.fields {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(f.Name)
			b.WriteByte('=')
			b.WriteString(redactString(f.Value))
		}
		for _, in := range v.inputs {
			b.WriteByte(' ')
			redactInto(b, in)
		}
		b.WriteByte(')')
	case *Input:
		b.WriteString(v.Name)
		b.WriteByte(':')
		if v.Expr != nil {
			redactInto(b, v.Expr)
		} else {
			b.WriteString("<empty>")
		}
	case *Literal:
		b.WriteString(redactString(v.Value))
	default:
		b.WriteString("<?>")
	}
}
