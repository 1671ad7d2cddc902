package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// ArtifactExt is the file extension of every stored artifact.
const ArtifactExt = ".png"

// maxNameBytes bounds the UTF-8 length of a derived name. With the hash
// suffix and extension a file name stays well under the 255 byte NAME_MAX.
const maxNameBytes = 200

// ArtifactSource tells where a resolved artifact came from
type ArtifactSource string

const (
	SourceCached      ArtifactSource = "cached"
	SourceRemote      ArtifactSource = "remote"
	SourcePlaceholder ArtifactSource = "placeholder"
)

// SlideRequest pairs a slide label with the prompt describing its illustration
type SlideRequest struct {
	Label  string
	Prompt string
}

// Artifact is an image file associated with one slide label
type Artifact struct {
	Label     string
	Prompt    string
	Path      string
	Source    ArtifactSource
	RunID     string
	CreatedAt time.Time
}

// ArtifactName derives the deterministic, filesystem-safe base name for a label.
// Letters and digits are lower-cased and kept, everything else becomes '_'.
func ArtifactName(label string) string {
	if label == "" {
		return "untitled"
	}

	var b strings.Builder
	b.Grow(len(label))
	for _, r := range strings.ToLower(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	name := b.String()
	if len(name) <= maxNameBytes {
		return name
	}

	// cut on a rune boundary
	cut := 0
	for cut < len(name) {
		_, size := utf8.DecodeRuneInString(name[cut:])
		if cut+size > maxNameBytes {
			break
		}
		cut += size
	}
	sum := sha256.Sum256([]byte(label))
	return name[:cut] + "_" + hex.EncodeToString(sum[:4])
}

// ArtifactPath returns the artifact location for a label inside dir
func ArtifactPath(dir, label string) string {
	return filepath.Join(dir, ArtifactName(label)+ArtifactExt)
}
