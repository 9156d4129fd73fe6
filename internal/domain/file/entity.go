package file

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindFolder Kind = "folder"
	KindFile   Kind = "file"
	KindImage  Kind = "image"
)

func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindFolder, KindFile, KindImage:
		return k, true
	}
	return "", false
}

// HasContent reports whether entities of this kind carry a blob.
func (k Kind) HasContent() bool { return k == KindFile || k == KindImage }

// ParentRef is either Root or a reference to a folder id.
// On the wire Root is the number 0 and a folder is its id string.
type ParentRef struct {
	id uuid.UUID
}

var Root = ParentRef{}

func FolderRef(id uuid.UUID) ParentRef { return ParentRef{id: id} }

func (p ParentRef) IsRoot() bool { return p.id == uuid.Nil }

// FolderID returns the referenced folder id; ok is false for Root.
func (p ParentRef) FolderID() (uuid.UUID, bool) { return p.id, !p.IsRoot() }

func (p ParentRef) String() string {
	if p.IsRoot() {
		return "0"
	}
	return p.id.String()
}

// ParseParentRef accepts "", "0" for Root and a uuid for a folder. The nil
// uuid is no folder's id and is rejected.
func ParseParentRef(s string) (ParentRef, error) {
	if s == "" || s == "0" {
		return Root, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return Root, fmt.Errorf("invalid parent id %q: %w", s, err)
	}
	if id == uuid.Nil {
		return Root, fmt.Errorf("invalid parent id %q: nil uuid", s)
	}
	return FolderRef(id), nil
}

func (p ParentRef) MarshalJSON() ([]byte, error) {
	if p.IsRoot() {
		return []byte("0"), nil
	}
	return json.Marshal(p.id.String())
}

func (p *ParentRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte("0")) {
		*p = Root
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("parentId must be 0 or a folder id: %w", err)
	}
	ref, err := ParseParentRef(s)
	if err != nil {
		return err
	}
	*p = ref
	return nil
}

type (
	File struct {
		UUID      uuid.UUID
		OwnerID   uuid.UUID
		Name      string
		Kind      Kind
		ParentID  ParentRef
		IsPublic  bool
		LocalPath string

		CreatedAt time.Time
	}
	Files []*File
)

// RenditionPath is the deterministic location of a derived copy of width w.
func RenditionPath(localPath string, w int) string {
	return fmt.Sprintf("%s_%d", localPath, w)
}

// RenditionWidths are the widths derived for every image.
var RenditionWidths = []int{500, 250, 100}

// Upload is the caller-supplied input of a new file or folder. ParentID is
// parsed with ParseParentRef, Data is the base64 payload, ignored for folders.
type Upload struct {
	Name     string
	Type     string
	ParentID string
	IsPublic bool
	Data     string
}
