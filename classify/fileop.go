package classify

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
)

type fileOp func(src, dest string) error

func copyFile(src, dest string) error {
	slog.Debug("copying", "from", src, "to", dest)

	if err := checkFile(src, dest); err != nil {
		return err
	}
	return copyContents(src, dest)
}

// moveFile renames src to dest, falling back to copy and remove when the
// rename fails, e.g. across file systems.
func moveFile(src, dest string) error {
	slog.Debug("moving", "from", src, "to", dest)

	if err := checkFile(src, dest); err != nil {
		return err
	}

	if err := os.Rename(src, dest); err == nil {
		return nil
	}
	if err := copyContents(src, dest); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("could not remove source file %q: %w", src, err)
	}
	return nil
}

func copyContents(src, dest string) (err error) {
	inFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("could not open source file %q: %w", src, err)
	}
	defer func() {
		if closeErr := inFile.Close(); closeErr != nil {
			slog.Error("could not close source file", "name", src, "error", closeErr)
		}
	}()

	outFile, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("could not open destination file %q: %w", dest, err)
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close destination file %q: %w", dest, closeErr)
		}
	}()

	if _, err = io.Copy(outFile, inFile); err != nil {
		return fmt.Errorf("could not copy from %q to %q: %w", src, dest, err)
	}

	if err = outFile.Sync(); err != nil {
		return fmt.Errorf("could not flush destination file %q: %w", dest, err)
	}
	return nil
}

func checkFile(src, dest string) error {
	srcFileInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("cannot stat source file %q: %w", src, err)
	}
	if !srcFileInfo.Mode().IsRegular() {
		return fmt.Errorf("cannot transfer non-regular file %q: %s", srcFileInfo.Name(), srcFileInfo.Mode().String())
	}

	destFileInfo, err := os.Stat(dest)
	switch {
	case err == nil:
		return fmt.Errorf("destination file already exists: %q", destFileInfo.Name())
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("cannot stat destination file %q: %w", dest, err)
	}
	return nil
}
