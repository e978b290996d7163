package constants

const (
	// AppName is used for the keyring service, the Postgres search path and
	// log prefixes.
	AppName = "routinely"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DefaultConfigPath is the default SQLite database location.
	DefaultConfigPath = "~/.config/routinely/routinely.db"

	// DefaultKeyringUser is the keyring account under which the database
	// connection string is stored.
	DefaultKeyringUser = "default"

	// DefaultOwner is the profile used when no --owner flag is given.
	DefaultOwner = "local"

	// DefaultHabitDurationMin is the estimated duration assigned to a habit
	// when none is provided.
	DefaultHabitDurationMin = 15

	// MaterializeWindowDays is the size of the forward-looking window the
	// materializer expands a routine over, counting today.
	MaterializeWindowDays = 7

	// DefaultRefreshTime is when the watch daemon re-materializes active
	// routines each day.
	DefaultRefreshTime = "00:05"

	// EndOfDay caps derived event end times so a long habit never rolls past
	// midnight into the next date.
	EndOfDay = "23:59"
)
