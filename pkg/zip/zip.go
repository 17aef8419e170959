// Package zip bundles a product's rendered creatives into a single
// downloadable archive.
package zip

import (
	"archive/zip"
	"bytes"
)

// Creative is one artifact destined for the archive.
type Creative struct {
	Filename string
	Data     []byte
}

// Archive packs the creatives into an in-memory zip. Entries that cannot be
// created are skipped; a write failure aborts the archive since a truncated
// download is worse than none.
func Archive(creatives []Creative) []byte {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, c := range creatives {
		w, err := zw.Create(c.Filename)
		if err != nil {
			continue
		}
		if _, err := w.Write(c.Data); err != nil {
			return nil
		}
	}
	_ = zw.Close()
	return buf.Bytes()
}
