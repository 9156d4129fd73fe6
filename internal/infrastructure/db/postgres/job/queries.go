package job

const (
	InsertJob = `
		INSERT INTO derivation_jobs (id, file_id, owner_id, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`
	UpdateProcessing = `
		UPDATE derivation_jobs
		SET status = $2, attempts = $3, updated_at = now()
		WHERE id = $1
	`
	UpdateStatus = `
		UPDATE derivation_jobs
		SET status = $2, last_error = $3, updated_at = now()
		WHERE id = $1
	`
	SelectJob = `
		SELECT id, file_id, owner_id, status, attempts, last_error, updated_at
		FROM derivation_jobs
		WHERE id = $1
	`
)
