package form

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
)

// ContentHash returns a stable SHA-256 hex digest of the structure.
// Fields are written in a fixed order with length prefixes, so the
// digest depends only on content, never on map iteration or JSON
// field ordering. Used as the compile-cache key.
func (s FormStructure) ContentHash() string {
	h := sha256.New()
	writeStr(h, s.Title)
	writeStr(h, s.Description)
	writeStr(h, strconv.Itoa(len(s.Questions)))
	for _, q := range s.Questions {
		writeStr(h, string(q.Kind))
		writeStr(h, q.Text)
		writeStr(h, strconv.FormatBool(q.Required))
		writeStr(h, strconv.Itoa(len(q.Options)))
		for _, o := range q.Options {
			writeStr(h, o)
		}
		if q.Scale != nil {
			fmt.Fprintf(h, "scale:%d:%d:%s:%s;", q.Scale.Low, q.Scale.High, q.Scale.LowLabel, q.Scale.HighLabel)
		}
		if q.Grid != nil {
			writeStr(h, "grid")
			for _, r := range q.Grid.Rows {
				writeStr(h, r)
			}
			writeStr(h, "|")
			for _, c := range q.Grid.Columns {
				writeStr(h, c)
			}
		}
		if q.Upload != nil {
			fmt.Fprintf(h, "upload:%d:%d;", q.Upload.MaxFiles, q.Upload.MaxFileSizeMB)
			for _, t := range q.Upload.AllowedFileTypes {
				writeStr(h, t)
			}
		}
		if q.Media != nil {
			fmt.Fprintf(h, "media:%s:%s:%s:%d:%d;", q.Media.ContentURI, q.Media.YoutubeURI, q.Media.Alignment, q.Media.Width, q.Media.Height)
		}
		if q.Grading != nil {
			fmt.Fprintf(h, "grading:%d;", q.Grading.PointValue)
			for _, a := range q.Grading.CorrectAnswers {
				writeStr(h, a)
			}
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeStr(w io.Writer, s string) {
	fmt.Fprintf(w, "%d:%s;", len(s), s)
}
