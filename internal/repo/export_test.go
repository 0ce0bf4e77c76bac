package repo

// TimestampFormat exposes the createdAt/spottedAt storage layout to external
// tests.
const TimestampFormat = timestampFormat
