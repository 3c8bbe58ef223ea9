package ops

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"taskledger/internal/model"
	"taskledger/internal/task"
)

// Manifest describes what Backup wrote.
type Manifest struct {
	Files []string
	Bytes int64
}

// Backup archives every regular file under dataDir into a tar.gz at
// archivePath. Leftover temp files from interrupted saves are skipped.
func Backup(dataDir, archivePath string) (Manifest, error) {
	dataDir = filepath.Clean(strings.TrimSpace(dataDir))
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	if dataDir == "" || archivePath == "" {
		return Manifest{}, fmt.Errorf("dataDir and archivePath are required")
	}
	info, err := os.Stat(dataDir)
	if err != nil {
		return Manifest{}, err
	}
	if !info.IsDir() {
		return Manifest{}, fmt.Errorf("source is not a directory: %s", dataDir)
	}
	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return Manifest{}, err
	}

	f, err := os.Create(archivePath)
	if err != nil {
		return Manifest{}, err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	var m Manifest
	walkErr := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dataDir || d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		if isTempFile(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(dataDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = rel
		if info.IsDir() {
			hdr.Name += "/"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()

		n, err := io.Copy(tw, src)
		if err != nil {
			return err
		}
		m.Files = append(m.Files, rel)
		m.Bytes += n
		return nil
	})
	if walkErr != nil {
		return Manifest{}, walkErr
	}
	if err := tw.Close(); err != nil {
		return Manifest{}, err
	}
	if err := gz.Close(); err != nil {
		return Manifest{}, err
	}
	return m, f.Close()
}

// Restore unpacks a Backup archive into targetDir.
func Restore(archivePath, targetDir string) error {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	targetDir = filepath.Clean(strings.TrimSpace(targetDir))
	if archivePath == "" || targetDir == "" {
		return fmt.Errorf("archivePath and targetDir are required")
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return err
	}

	return eachEntry(archivePath, func(hdr *tar.Header, r io.Reader) error {
		rel, err := sanitizeArchiveRelPath(hdr.Name)
		if err != nil {
			return err
		}
		outPath := filepath.Join(targetDir, rel)

		switch hdr.Typeflag {
		case tar.TypeDir:
			return os.MkdirAll(outPath, os.FileMode(hdr.Mode))
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return err
			}
			dst, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode))
			if err != nil {
				return err
			}
			if _, err := io.Copy(dst, r); err != nil {
				_ = dst.Close()
				return err
			}
			return dst.Close()
		default:
			return nil
		}
	})
}

// ErrEntryNotFound is returned by InspectTasks when the archive has no
// entry with the requested name.
var ErrEntryNotFound = errors.New("archive entry not found")

// InspectTasks decodes the task file stored as name inside a Backup
// archive, picking the codec from the name's extension.
func InspectTasks(archivePath, name string) ([]model.Task, error) {
	codec, err := task.CodecFor(name, "")
	if err != nil {
		return nil, err
	}
	want := filepath.ToSlash(filepath.Clean(name))

	var (
		found bool
		tasks []model.Task
	)
	err = eachEntry(archivePath, func(hdr *tar.Header, r io.Reader) error {
		if found || hdr.Typeflag != tar.TypeReg || filepath.ToSlash(filepath.Clean(hdr.Name)) != want {
			return nil
		}
		found = true
		b, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		if len(strings.TrimSpace(string(b))) == 0 {
			tasks = []model.Task{}
			return nil
		}
		tasks, err = codec.Decode(b)
		if err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func eachEntry(archivePath string, fn func(hdr *tar.Header, r io.Reader) error) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(hdr, tr); err != nil {
			return err
		}
	}
}

func isTempFile(name string) bool {
	return strings.Contains(name, ".tmp.")
}

func sanitizeArchiveRelPath(name string) (string, error) {
	name = filepath.Clean(strings.TrimSpace(name))
	if name == "." || name == "" {
		return "", fmt.Errorf("invalid archive entry path")
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("invalid absolute archive entry path: %s", name)
	}
	if strings.HasPrefix(name, ".."+string(filepath.Separator)) || name == ".." {
		return "", fmt.Errorf("invalid archive entry path traversal: %s", name)
	}
	return name, nil
}
