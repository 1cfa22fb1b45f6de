package fs

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
)

// excluded names are left out of archives.
var excluded = map[string]bool{".DS_Store": true}

// Archive writes dir as a gzip-compressed tarball to dest, with dir's base
// name as the top-level entry. The system tar is used when available;
// otherwise the archive is produced in-process.
func Archive(ctx context.Context, dir, dest string) error {
	if tarPath, err := exec.LookPath("tar"); err == nil {
		abs, err := filepath.Abs(dest)
		if err != nil {
			return err
		}
		cmd := exec.CommandContext(ctx, tarPath,
			"--exclude=.DS_Store",
			"-czf", abs,
			"-C", filepath.Dir(dir),
			filepath.Base(dir),
		)
		if err := cmd.Run(); err == nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return ArchiveInProcess(ctx, dir, dest)
}

// ArchiveInProcess is Archive without the external tar.
func ArchiveInProcess(ctx context.Context, dir, dest string) (err error) {
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(dest)
		}
	}()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	root := filepath.Dir(dir)
	walkErr := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if excluded[d.Name()] {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		return addToTar(tw, root, p, d)
	})
	if walkErr != nil {
		return walkErr
	}
	if err := tw.Close(); err != nil {
		return err
	}
	return gz.Close()
}

func addToTar(tw *tar.Writer, root, p string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() && !info.IsDir() {
		return nil
	}

	rel, err := filepath.Rel(root, p)
	if err != nil {
		return err
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = filepath.ToSlash(rel)
	if info.IsDir() {
		hdr.Name += "/"
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	if info.IsDir() {
		return nil
	}

	src, err := os.Open(p)
	if err != nil {
		return err
	}
	defer src.Close()
	_, err = io.Copy(tw, src)
	return err
}
