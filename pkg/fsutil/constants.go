package fsutil

// File and directory permission constants.
const (
	// FileModeDefault is used for regular files (-rw-r--r--).
	FileModeDefault = 0o644
	// FileModeSecure is used for downloaded feed data (-rw-r-----).
	FileModeSecure = 0o640

	// DirModeDefault is used for directories (drwxr-xr-x).
	DirModeDefault = 0o755
	// DirModeSecure is used for cache directories (drwxr-x---).
	DirModeSecure = 0o750
)
