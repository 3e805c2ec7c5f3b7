package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/natefinch/atomic"
)

// CheckFilePermissionsForExecution checks whether the given filePath owner, group and permissions
// are safe to use this file for execution by chased.
func CheckFilePermissionsForExecution(filePath string) (bool, error) {
	file, err := filepath.EvalSymlinks(filePath)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(file)
	if os.IsNotExist(err) {
		return false, errors.New("file not found")
	}

	stat := info.Sys().(*syscall.Stat_t)
	if stat.Uid != 0 {
		return false, errors.New("owner is not root")
	}

	if stat.Gid != 0 {
		mode := info.Mode()
		groupWrite := mode & (os.FileMode(0o020))
		if groupWrite != 0 {
			return false, errors.New("group is not root but has write permission")
		}
	}

	otherWrite := info.Mode() & (os.FileMode(0o002))
	if otherWrite != 0 {
		return false, errors.New("others have write permission")
	}

	return true, nil
}

func ReadIntFromFile(path string) (value int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return -1, err
	}
	text := string(data)
	if len(text) <= 0 {
		return -1, fmt.Errorf("file is empty: %s", path)
	}
	text = strings.TrimSpace(text)
	value, err = strconv.Atoi(text)
	return value, err
}

// WriteIntToFileAtomic writes a single integer to the given path,
// guaranteeing that readers never observe a partially written value.
func WriteIntToFileAtomic(value int, path string) error {
	evaluatedPath, err := resolvePath(path)
	if len(evaluatedPath) > 0 && err == nil {
		path = evaluatedPath
	}
	valueAsString := fmt.Sprintf("%d", value)
	valueReader := strings.NewReader(valueAsString)
	return atomic.WriteFile(path, valueReader)
}

func resolvePath(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}
