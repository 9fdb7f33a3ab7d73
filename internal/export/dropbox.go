package export

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/sharing"
)

// DropboxUploader uploads reports in overwrite mode and hands back a
// direct-download shared link. The SDK carries no context plumbing, so
// the bound on the call lives in the HTTP client timeout.
type DropboxUploader struct {
	files   files.Client
	sharing sharing.Client
}

func NewDropboxUploader(token string, timeout time.Duration) *DropboxUploader {
	cfg := dropbox.Config{
		Token:  token,
		Client: &http.Client{Timeout: timeout},
	}
	return &DropboxUploader{files: files.New(cfg), sharing: sharing.New(cfg)}
}

func (u *DropboxUploader) Upload(ctx context.Context, localPath, remotePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	arg := files.NewUploadArg(remotePath)
	arg.Mode = &files.WriteMode{Tagged: dropbox.Tagged{Tag: "overwrite"}}
	if _, err := u.files.Upload(arg, f); err != nil {
		return "", fmt.Errorf("dropbox upload: %w", err)
	}

	url, err := u.sharedLink(remotePath)
	if err != nil {
		return "", fmt.Errorf("dropbox share: %w", err)
	}
	// Dropbox hands out preview links; dl=1 makes them direct downloads.
	return strings.Replace(url, "?dl=0", "?dl=1", 1), nil
}

func (u *DropboxUploader) sharedLink(remotePath string) (string, error) {
	md, err := u.sharing.CreateSharedLinkWithSettings(sharing.NewCreateSharedLinkWithSettingsArg(remotePath))
	if err == nil {
		if fl, ok := md.(*sharing.FileLinkMetadata); ok {
			return fl.Url, nil
		}
		return "", fmt.Errorf("unexpected link metadata type %T", md)
	}

	// A link may already exist from a previous export of the same file.
	listArg := sharing.NewListSharedLinksArg()
	listArg.Path = remotePath
	res, listErr := u.sharing.ListSharedLinks(listArg)
	if listErr != nil {
		return "", err
	}
	if len(res.Links) == 0 {
		return "", err
	}
	if fl, ok := res.Links[0].(*sharing.FileLinkMetadata); ok {
		return fl.Url, nil
	}
	return "", err
}
