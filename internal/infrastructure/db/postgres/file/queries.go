package file

const (
	fileColumns = `seq, id, owner_id, name, kind, parent_id, is_public, local_path, created_at`

	InsertFile = `
		INSERT INTO files (owner_id, name, kind, parent_id, is_public, local_path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + fileColumns
	SelectFileByID = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE id = $1
	`
	SelectOwnedFile = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE id = $1 AND owner_id = $2
	`
	SelectChildren = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE owner_id = $1 AND parent_id IS NOT DISTINCT FROM $2
		ORDER BY seq
		LIMIT $3 OFFSET $4
	`
	UpdateIsPublic = `
		UPDATE files
		SET is_public = $3
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + fileColumns
	CountFiles = `SELECT count(*) FROM files`
)
