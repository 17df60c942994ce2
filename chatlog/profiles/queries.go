package profiles

// sqlite variants (timestamps in unix micros)
const (
	sqliteUpsert = `
		INSERT INTO player_profiles (username, first_seen, last_seen, session_count)
		VALUES (?, ?, ?, 0)
		ON CONFLICT (username) DO UPDATE SET last_seen = excluded.last_seen
	`

	sqliteIncrementSessionCount = `
		UPDATE player_profiles
		SET session_count = session_count + 1
		WHERE username = ?
	`

	sqliteGet = `
		SELECT username, first_seen, last_seen, session_count
		FROM player_profiles
		WHERE username = ?
	`
)

// postgres variants
const (
	postgresUpsert = `
		INSERT INTO player_profiles (username, first_seen, last_seen, session_count)
		VALUES ($1, $2, $2, 0)
		ON CONFLICT (username) DO UPDATE SET last_seen = EXCLUDED.last_seen
	`

	postgresIncrementSessionCount = `
		UPDATE player_profiles
		SET session_count = session_count + 1
		WHERE username = $1
	`

	postgresGet = `
		SELECT username, first_seen, last_seen, session_count
		FROM player_profiles
		WHERE username = $1
	`
)
