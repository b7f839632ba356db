package service

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	errors "github.com/Laisky/errors/v2"
	"github.com/google/uuid"

	"fileserver/internal/web/files/model"
)

const (
	// ArchiveName is the attachment name every download responds with,
	// single files included.
	ArchiveName = "archive.zip"
	// ArchiveContentType is the download response content type.
	ArchiveContentType = "application/x-zip-compressed"
)

// FetchResult is either a single file or the physical paths of every
// file under a directory subtree.
type FetchResult struct {
	File  *model.File
	Paths []string
}

// Fetch resolves a path or identifier to a single file or a directory
// subtree, scoped to the user. UUID-shaped input is tried as a directory
// id, then a file id. Anything else is tried as an exact file path
// first, then as a directory name taken from the final path component.
func (s *Service) Fetch(ctx context.Context, user *model.User, pathOrID string) (*FetchResult, error) {
	if id, err := uuid.Parse(pathOrID); err == nil {
		return s.fetchByID(ctx, user, id)
	}
	return s.fetchByPath(ctx, user, pathOrID)
}

func (s *Service) fetchByID(ctx context.Context, user *model.User, id uuid.UUID) (*FetchResult, error) {
	dir, err := s.dao.GetDirectoryByID(ctx, id, user.ID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if dir != nil {
		paths, err := s.directoryFiles(ctx, user, dir)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return &FetchResult{Paths: paths}, nil
	}

	file, err := s.dao.GetFileByID(ctx, id, user.ID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if file != nil {
		return &FetchResult{File: file}, nil
	}

	return nil, NewError(ErrCodeNotFound, "no file or directory with that id")
}

func (s *Service) fetchByPath(ctx context.Context, user *model.User, path string) (*FetchResult, error) {
	// an exact file path wins over a directory with the same final name
	file, err := s.dao.GetFileByPath(ctx, path, user.ID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if file != nil {
		return &FetchResult{File: file}, nil
	}

	path = strings.TrimSuffix(path, "/")
	name := path[strings.LastIndex(path, "/")+1:]
	dir, err := s.dao.GetDirectoryByName(ctx, name, user.ID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if dir != nil {
		paths, err := s.directoryFiles(ctx, user, dir)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return &FetchResult{Paths: paths}, nil
	}

	return nil, NewError(ErrCodeNotFound, "no file or directory with that path")
}

// directoryFiles reconstructs the physical location of dir by walking
// the parent chain up to the root, then collects every file under it.
func (s *Service) directoryFiles(ctx context.Context, user *model.User, dir *model.Directory) ([]string, error) {
	// explicit loop with a visited set, a corrupted parent chain must
	// not recurse forever
	names := []string{}
	visited := map[uuid.UUID]bool{}
	current := dir
	for {
		if visited[current.ID] {
			return nil, NewError(ErrCodeInternal, "directory parent chain contains a cycle")
		}
		visited[current.ID] = true
		names = append(names, current.Name)

		if current.ParentID == nil {
			break
		}
		parent, err := s.dao.GetDirectoryByID(ctx, *current.ParentID, user.ID)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if parent == nil {
			return nil, NewError(ErrCodeInternal, "directory parent chain is broken")
		}
		current = parent
	}

	// collected leaf-to-root, physical paths are root-to-leaf
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}

	root := filepath.Join(append([]string{s.baseDir}, names...)...)
	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		// a row without a physical tree downloads as an empty archive
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "walk directory `%s`", root)
	}

	return files, nil
}

// Archive builds an in-memory zip of the fetch result. A single file is
// stored under its logical name; a directory result keeps each file's
// on-disk path as the entry name.
func (s *Service) Archive(result *FetchResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := zip.NewWriter(buf)

	if result.File != nil {
		if err := writeZipEntry(writer, result.File.Path, result.File.Name); err != nil {
			return nil, errors.WithStack(err)
		}
	} else {
		for _, path := range result.Paths {
			if err := writeZipEntry(writer, path, path); err != nil {
				return nil, errors.WithStack(err)
			}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "finalize archive")
	}

	return buf.Bytes(), nil
}

func writeZipEntry(writer *zip.Writer, src, name string) error {
	entry, err := writer.CreateHeader(&zip.FileHeader{
		Name:   name,
		Method: zip.Deflate,
	})
	if err != nil {
		return errors.Wrapf(err, "create archive entry `%s`", name)
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "open `%s`", src)
	}
	defer in.Close()

	if _, err = io.Copy(entry, in); err != nil {
		return errors.Wrapf(err, "archive `%s`", src)
	}

	return nil
}
