package file

import (
	domain "files-manager-api/internal/domain/file"

	"github.com/google/uuid"
)

func fromDBModel(model *File) *domain.File {
	var f = &domain.File{
		UUID:     model.UUID,
		OwnerID:  model.OwnerID,
		Name:     model.Name,
		Kind:     domain.Kind(model.Kind),
		ParentID: domain.Root,
		IsPublic: model.IsPublic,

		CreatedAt: model.CreatedAt,
	}
	if model.ParentID != nil {
		f.ParentID = domain.FolderRef(*model.ParentID)
	}
	if model.LocalPath != nil {
		f.LocalPath = *model.LocalPath
	}

	return f
}

func fromDBModels(models Files) domain.Files {
	fs := make(domain.Files, len(models))
	for idx, f := range models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}

func parentArg(p domain.ParentRef) *uuid.UUID {
	id, ok := p.FolderID()
	if !ok {
		return nil
	}
	return &id
}

func localPathArg(f *domain.File) *string {
	if !f.Kind.HasContent() {
		return nil
	}
	return &f.LocalPath
}
