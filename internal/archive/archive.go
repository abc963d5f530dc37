// Package archive extracts downloaded artifacts into a yard folder,
// dispatching by filename suffix, and sets the executable bit on the
// binaries the installed application declares.
package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

// ErrCannotExtract wraps the underlying I/O or format cause when an archive
// fails to extract.
var ErrCannotExtract = errors.New("cannot extract archive")

// safeJoin joins targetDir with an archive entry's name and rejects the
// result if it would land outside targetDir (a malicious "../" entry).
func safeJoin(targetDir, name string) (string, error) {
	target := filepath.Join(targetDir, name)
	rel, err := filepath.Rel(targetDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Wrapf(ErrCannotExtract, "entry %q escapes target directory", name)
	}
	return target, nil
}

// ExtractAll writes every entry of the archive named filename (its suffix
// picks the decoder) into targetDir, preserving relative paths. Filenames
// without a recognized archive suffix are treated as a single raw
// executable and written as targetDir/filename.
func ExtractAll(filename string, data []byte, targetDir string) error {
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return errors.Wrapf(err, "create %q", targetDir)
	}
	switch {
	case hasSuffix(filename, ".tar.gz") || hasSuffix(filename, ".tgz"):
		return extractTarGz(data, targetDir)
	case hasSuffix(filename, ".tar.xz"):
		return extractTarXz(data, targetDir)
	case hasSuffix(filename, ".zip"):
		return extractZip(data, targetDir)
	case hasSuffix(filename, ".gz"):
		return extractBareGz(filename, data, targetDir)
	default:
		return writeRawExecutable(filename, data, targetDir)
	}
}

func hasSuffix(filename, suffix string) bool {
	return len(filename) >= len(suffix) && strings.EqualFold(filename[len(filename)-len(suffix):], suffix)
}

func extractTarGz(data []byte, targetDir string) error {
	gzReader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(ErrCannotExtract, err.Error())
	}
	defer gzReader.Close()
	return extractTar(gzReader, targetDir)
}

func extractTarXz(data []byte, targetDir string) error {
	xzReader, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(ErrCannotExtract, err.Error())
	}
	return extractTar(xzReader, targetDir)
}

func extractTar(r io.Reader, targetDir string) error {
	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(ErrCannotExtract, err.Error())
		}
		target, err := safeJoin(targetDir, header.Name)
		if err != nil {
			return err
		}
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return errors.Wrapf(ErrCannotExtract, "mkdir %q: %s", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return errors.Wrapf(ErrCannotExtract, "mkdir %q: %s", filepath.Dir(target), err)
			}
			if err := writeFile(target, tr, os.FileMode(header.Mode)); err != nil {
				return err
			}
		}
	}
}

func extractZip(data []byte, targetDir string) error {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return errors.Wrap(ErrCannotExtract, err.Error())
	}
	for _, f := range r.File {
		target, err := safeJoin(targetDir, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return errors.Wrapf(ErrCannotExtract, "mkdir %q: %s", target, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return errors.Wrapf(ErrCannotExtract, "mkdir %q: %s", filepath.Dir(target), err)
		}
		rc, err := f.Open()
		if err != nil {
			return errors.Wrap(ErrCannotExtract, err.Error())
		}
		err = writeFile(target, rc, f.Mode())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// extractBareGz decompresses a single gzip-wrapped file (no tar container)
// to targetDir, named after filename with its ".gz" suffix stripped.
func extractBareGz(filename string, data []byte, targetDir string) error {
	gzReader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(ErrCannotExtract, err.Error())
	}
	defer gzReader.Close()
	target := filepath.Join(targetDir, strings.TrimSuffix(filepath.Base(filename), ".gz"))
	return writeFile(target, gzReader, 0o644)
}

func writeRawExecutable(filename string, data []byte, targetDir string) error {
	target := filepath.Join(targetDir, filepath.Base(filename))
	return writeFile(target, bytes.NewReader(data), 0o644)
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return errors.Wrapf(ErrCannotExtract, "create %q: %s", target, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return errors.Wrapf(ErrCannotExtract, "write %q: %s", target, err)
	}
	return nil
}
