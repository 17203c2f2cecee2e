// pkg/probe/archive.go
package probe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/blakesmith/ar"
	"go.uber.org/zap"
)

var (
	// ErrNotArchive means a static artifact does not start with the ar magic
	ErrNotArchive = errors.New("not an ar archive")
	// ErrEmptyArchive means a static artifact holds no object members
	ErrEmptyArchive = errors.New("archive has no object members")
)

var arMagic = []byte("!<arch>\n")

// ArchiveInfo describes the members of a static archive
type ArchiveInfo struct {
	Path    string
	Members []string // object members, without the symbol and name tables
	Size    int64    // total member bytes
}

// InspectArchive opens a static library and lists its object members
func InspectArchive(path string) (*ArchiveInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	magic := make([]byte, len(arMagic))
	if _, err := io.ReadFull(f, magic); err != nil || !bytes.Equal(magic, arMagic) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotArchive)
	}

	info := &ArchiveInfo{Path: path}
	reader := ar.NewReader(io.MultiReader(bytes.NewReader(magic), f))
	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading ar entry in %s: %w", path, err)
		}

		name := strings.TrimRight(header.Name, "/ ")
		// GNU symbol table ("/"), long name table ("//") and BSD symbol tables
		if name == "" || name == "/SYM64" || strings.HasPrefix(name, "__.SYMDEF") {
			continue
		}

		Logger().Debug("archive member",
			zap.String("archive", path),
			zap.String("member", name),
			zap.Int64("size", header.Size))

		info.Members = append(info.Members, name)
		info.Size += header.Size
	}

	return info, nil
}

// VerifyArchive checks that the static artifact of c is a readable ar
// archive with at least one object member
func VerifyArchive(c Capability) (*ArchiveInfo, error) {
	if c.Static == nil {
		return nil, fmt.Errorf("%s: no static artifact", c.Name)
	}
	// MSVC .lib files use the same container
	info, err := InspectArchive(c.Static.Path)
	if err != nil {
		return nil, err
	}
	if len(info.Members) == 0 {
		return nil, fmt.Errorf("%s: %w", c.Static.Path, ErrEmptyArchive)
	}
	return info, nil
}
