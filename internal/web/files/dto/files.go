// Package dto defines the response shapes of the files API.
package dto

import "github.com/google/uuid"

// FolderUsage is one directory's aggregated disk usage.
type FolderUsage struct {
	Used  int64 `json:"used"`
	Files int64 `json:"files"`
}

// StatusInfo identifies the account in a status summary.
type StatusInfo struct {
	AccountID    uuid.UUID  `json:"account_id"`
	HomeFolderID *uuid.UUID `json:"home_folder_id,omitempty"`
}

// UserStatus is the disk usage summary for one user.
type UserStatus struct {
	Info    StatusInfo               `json:"info"`
	Folders []map[string]FolderUsage `json:"folders"`
}

// Token is an issued access token.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
