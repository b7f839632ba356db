package service

import "strings"

// resolvePath turns a user-supplied logical path into ordered directory
// segments and a leaf file name, all inside the user's namespace. The
// first segment is always the username so each user's physical tree is
// isolated.
//
// The input is a directory target when it ends with a separator or its
// final component carries no extension token; the leaf then comes from
// the uploaded file's own name. Otherwise the final component is the
// leaf and the preceding components are the segments.
//
// Pure string transformation; any input is accepted.
func resolvePath(username, inPath, uploadName string) (segments []string, leaf string, isDir bool) {
	inPath = strings.TrimPrefix(inPath, "/")
	isDir = isDirTarget(inPath)

	segments = []string{username}
	for _, part := range strings.Split(inPath, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}

	if isDir {
		return segments, uploadName, true
	}

	leaf = segments[len(segments)-1]
	return segments[:len(segments)-1], leaf, false
}

// isDirTarget classifies a logical path as directory or file target. A
// trailing separator always means directory; otherwise a final component
// without "." does.
func isDirTarget(path string) bool {
	if strings.HasSuffix(path, "/") {
		return true
	}

	last := path[strings.LastIndex(path, "/")+1:]
	return !strings.Contains(last, ".")
}
