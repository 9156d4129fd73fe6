package file

import (
	"bytes"
	"encoding/json"

	"files-manager-api/internal/domain/file"
)

func ToResponseFile(fDomain file.File) File {
	return File{
		UUID:      fDomain.UUID,
		UserID:    fDomain.OwnerID,
		Name:      fDomain.Name,
		Type:      fDomain.Kind,
		IsPublic:  fDomain.IsPublic,
		ParentID:  fDomain.ParentID,
		LocalPath: fDomain.LocalPath,
	}
}

func ToResponseFiles(fsDomain file.Files) Files {
	fs := make(Files, len(fsDomain))
	for idx, f := range fsDomain {
		fs[idx] = ToResponseFile(*f)
	}

	return fs
}

func ToDomainUpload(req Request) file.Upload {
	return file.Upload{
		Name:     req.Name,
		Type:     req.Type,
		ParentID: parentID(req.ParentID),
		IsPublic: req.IsPublic,
		Data:     req.Data,
	}
}

// parentID flattens the wire forms of parentId (absent, null, 0, "0", "<id>")
// into the string form file.ParseParentRef reads.
func parentID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
