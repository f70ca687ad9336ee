package rules

import (
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the content of every rule in order. Two sets with the
// same fingerprint decorate identically.
func (rs *RuleSet) Fingerprint() uint64 {
	d := xxhash.New()
	for _, r := range rs.Rules() {
		d.WriteString(r.Tint.String())
		d.WriteString("\x00")
		d.WriteString(r.OverrideImage)
		d.WriteString("\x00")
		d.WriteString(strconv.FormatBool(r.ApplyToChildren))
		d.WriteString(strconv.FormatBool(r.ApplyToNonFolders))
		d.WriteString(strconv.FormatUint(uint64(math.Float32bits(r.NonFolderAlpha)), 16))
		for _, p := range r.Patterns {
			d.WriteString("\x01")
			d.WriteString(p)
		}
		d.WriteString("\x02")
	}
	return d.Sum64()
}
