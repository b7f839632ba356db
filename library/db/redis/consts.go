package redis

import "fmt"

const keyPrefix = "fileserver/"

// KeyFileList composes the cache key for a user's file listing.
func KeyFileList(userID string, limit, offset int) string {
	return fmt.Sprintf("%sfile_list/%s/%d/%d", keyPrefix, userID, limit, offset)
}

// KeyFileSearch composes the cache key for one search query shape.
func KeyFileSearch(userID, path, extension, orderBy string, limit int) string {
	return fmt.Sprintf("%ssearch_files/%s/%s/%s/%s/%d", keyPrefix, userID, path, extension, orderBy, limit)
}

// KeyFileRevisions composes the cache key for a revision listing.
func KeyFileRevisions(userID, path string, limit int) string {
	return fmt.Sprintf("%srevision_files/%s/%s/%d", keyPrefix, userID, path, limit)
}
