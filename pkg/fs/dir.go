package fs

import (
	"errors"
	"os"
)

// MustCreateDir ensures the named directory exists, creating it if needed.
// An existing regular file at the path is an error.
func MustCreateDir(dirName string) error {
	err := os.Mkdir(dirName, 0o755)
	if err == nil {
		return nil
	}

	if os.IsExist(err) {
		stat, err := os.Stat(dirName)
		if err != nil {
			return err
		}

		if !stat.IsDir() {
			return errors.New("path exists but is not a directory")
		}
		return nil
	}

	return err
}
