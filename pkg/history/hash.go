package history

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// AbbrevLen is the length of abbreviated hashes.
const AbbrevLen = 7

// hashNamespace scopes generated commit hashes.
var hashNamespace = uuid.MustParse("5b0b6c1e-8f0e-4a8c-9d3a-2f6f1c7e4b10")

// commitHash derives a deterministic hash from the commit's position and
// content. The same operations replayed on a fresh graph produce the same
// hashes.
func commitHash(seq int, branch, subject string, parents []string) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(seq))
	b.WriteByte(0)
	b.WriteString(branch)
	b.WriteByte(0)
	b.WriteString(subject)
	for _, p := range parents {
		b.WriteByte(0)
		b.WriteString(p)
	}
	id := uuid.NewSHA1(hashNamespace, []byte(b.String()))
	return strings.ReplaceAll(id.String(), "-", "")
}

// Abbrev shortens a hash to AbbrevLen characters.
func Abbrev(hash string) string {
	if len(hash) <= AbbrevLen {
		return hash
	}
	return hash[:AbbrevLen]
}

func abbrevAll(hashes []string) []string {
	if len(hashes) == 0 {
		return nil
	}
	out := make([]string, len(hashes))
	for i, h := range hashes {
		out[i] = Abbrev(h)
	}
	return out
}
