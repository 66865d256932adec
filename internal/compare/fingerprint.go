package compare

import "encoding/json"

// fingerprint returns a canonical key for structural patch equality, used
// by PatchSet deduplication. Patch values originate from decoded JSON (or
// int positions), so marshaling cannot fail in practice; a failure is
// folded into the key rather than dropped so distinct patches never
// collide silently.
func (p Patch) fingerprint() string {
	b, err := json.Marshal(p)
	if err != nil {
		return string(p.Kind) + "\x00" + err.Error()
	}
	return string(b)
}
