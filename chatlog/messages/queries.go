package messages

const (
	sqliteInsert = `
		INSERT INTO messages (username, message, timestamp, session_id)
		VALUES (?, ?, ?, ?)
		RETURNING message_id
	`

	sqliteListSince = `
		SELECT message_id, username, message, timestamp, session_id
		FROM messages
		WHERE message_id > ?
		ORDER BY message_id ASC
		LIMIT ?
	`
)

// message ids must become visible in id order for cursor readers, so inserts take a
// transaction-scoped advisory lock before allocating the id
const postgresInsertLockKey int64 = 0x7a617261

const (
	postgresInsertLock = `SELECT pg_advisory_xact_lock($1)`

	postgresInsert = `
		INSERT INTO messages (username, message, timestamp, session_id)
		VALUES ($1, $2, $3, $4)
		RETURNING message_id
	`

	postgresListSince = `
		SELECT message_id, username, message, timestamp, session_id
		FROM messages
		WHERE message_id > $1
		ORDER BY message_id ASC
		LIMIT $2
	`
)
