package migrate

// all is the ordered, hardcoded migration list. Versions are contiguous and
// ascending; new migrations are appended, existing entries are never edited
// once shipped. An explicit reviewed list is preferred over discovering SQL
// files at runtime — schema changes here are rare and every entry gets read
// in review.
var all = []Migration{
	{
		Version: 1,
		Name:    "create_trips",
		Up: `CREATE TABLE trips (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			startDate TEXT NOT NULL,
			endDate TEXT,
			startLocation TEXT NOT NULL,
			destination TEXT NOT NULL,
			isComplete INTEGER DEFAULT 0,
			createdAt TEXT NOT NULL
		)`,
		Down: `DROP TABLE trips`,
	},
	{
		Version: 2,
		Name:    "create_observations",
		Up: `CREATE TABLE observations (
			id TEXT PRIMARY KEY,
			tripId TEXT NOT NULL,
			stateCode TEXT NOT NULL,
			spottedAt TEXT NOT NULL,
			FOREIGN KEY(tripId) REFERENCES trips(id) ON DELETE CASCADE,
			UNIQUE(tripId, stateCode)
		)`,
		Down: `DROP TABLE observations`,
	},
	{
		Version: 3,
		Name:    "index_observations_trip",
		Up:      `CREATE INDEX idx_observations_tripId ON observations(tripId)`,
		Down:    `DROP INDEX idx_observations_tripId`,
	},
	{
		Version: 4,
		Name:    "index_observations_state",
		Up:      `CREATE INDEX idx_observations_stateCode ON observations(stateCode)`,
		Down:    `DROP INDEX idx_observations_stateCode`,
	},
}
