package sessions

const (
	sqliteFindActive = `
		SELECT session_id, username, start_time, end_time, is_archived
		FROM sessions
		WHERE username = ?
		  AND is_archived = 0
		  AND start_time >= ?
		ORDER BY start_time DESC, session_id DESC
		LIMIT 1
	`

	sqliteCreate = `
		INSERT INTO sessions (username, start_time, is_archived)
		VALUES (?, ?, 0)
		RETURNING session_id
	`

	sqliteGet = `
		SELECT session_id, username, start_time, end_time, is_archived
		FROM sessions
		WHERE session_id = ?
	`

	sqliteListByUsername = `
		SELECT session_id, username, start_time, end_time, is_archived
		FROM sessions
		WHERE username = ?
		ORDER BY start_time DESC, session_id DESC
		LIMIT ?
	`

	sqliteArchiveStartedBefore = `
		UPDATE sessions
		SET is_archived = 1,
		    end_time = COALESCE(
		        (SELECT MAX(m.timestamp) FROM messages m WHERE m.session_id = sessions.session_id),
		        start_time
		    )
		WHERE is_archived = 0
		  AND start_time < ?
	`
)

const (
	postgresFindActive = `
		SELECT session_id, username, start_time, end_time, is_archived
		FROM sessions
		WHERE username = $1
		  AND is_archived = FALSE
		  AND start_time >= $2
		ORDER BY start_time DESC, session_id DESC
		LIMIT 1
	`

	postgresCreate = `
		INSERT INTO sessions (username, start_time, is_archived)
		VALUES ($1, $2, FALSE)
		RETURNING session_id
	`

	postgresGet = `
		SELECT session_id, username, start_time, end_time, is_archived
		FROM sessions
		WHERE session_id = $1
	`

	postgresListByUsername = `
		SELECT session_id, username, start_time, end_time, is_archived
		FROM sessions
		WHERE username = $1
		ORDER BY start_time DESC, session_id DESC
		LIMIT $2
	`

	postgresArchiveStartedBefore = `
		UPDATE sessions
		SET is_archived = TRUE,
		    end_time = COALESCE(
		        (SELECT MAX(m.timestamp) FROM messages m WHERE m.session_id = sessions.session_id),
		        start_time
		    )
		WHERE is_archived = FALSE
		  AND start_time < $1
	`
)
