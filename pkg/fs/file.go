package fs

import (
	"os"
)

// CreateFile creates (or truncates) the named file for writing.
func CreateFile(fileName string) (*os.File, error) {
	file, err := os.Create(fileName)
	return file, err
}

// OpenFile opens the named file for reading.
func OpenFile(fileName string) (*os.File, error) {
	file, err := os.Open(fileName)
	return file, err
}
