package drive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"vesper/internal/config"
)

// GoogleStore implements Store against the Drive v3 API.
type GoogleStore struct {
	srv *driveapi.Service
}

// NewGoogleStore builds a Drive client from OAuth refresh-token credentials.
func NewGoogleStore(ctx context.Context, cfg *config.Config) (*GoogleStore, error) {
	if err := cfg.ValidateCredentials(); err != nil {
		return nil, err
	}
	conf := &oauth2.Config{
		ClientID:     cfg.Drive.ClientID,
		ClientSecret: cfg.Drive.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{driveapi.DriveScope},
	}
	token := &oauth2.Token{RefreshToken: cfg.Drive.RefreshToken}
	httpClient := conf.Client(ctx, token)

	srv, err := driveapi.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &GoogleStore{srv: srv}, nil
}

// ListFolder returns the non-trashed children of a folder, following pages.
func (g *GoogleStore) ListFolder(ctx context.Context, folderID string) ([]File, error) {
	query := NewQuery().InParent(folderID).NotTrashed()
	var out []File
	pageToken := ""
	for {
		call := g.srv.Files.List().
			Q(query.String()).
			Fields("nextPageToken, files(id,name,mimeType)").
			PageSize(200).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list folder %s: %w", folderID, err)
		}
		for _, f := range resp.Files {
			out = append(out, File{ID: f.Id, Name: f.Name, MimeType: f.MimeType})
		}
		if resp.NextPageToken == "" {
			return out, nil
		}
		pageToken = resp.NextPageToken
	}
}

// Download fetches a file's content.
func (g *GoogleStore) Download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := g.srv.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", fileID, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read download %s: %w", fileID, err)
	}
	return data, nil
}

// Upload writes a file inside a folder and returns its ID. An existing file
// with the same name is replaced in place, so repeated uploads of documents
// like the recency state never accumulate duplicates.
func (g *GoogleStore) Upload(ctx context.Context, folderID, name string, data []byte, mimeType string) (string, error) {
	existing, err := g.findFile(ctx, folderID, name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return "", err
	}
	if err == nil {
		call := g.srv.Files.Update(existing, &driveapi.File{}).
			Media(bytes.NewReader(data), googleapi.ContentType(mimeType)).
			Fields("id").
			Context(ctx)
		updated, err := call.Do()
		if err != nil {
			return "", fmt.Errorf("replace %s in %s: %w", name, folderID, err)
		}
		return updated.Id, nil
	}

	meta := &driveapi.File{Name: name, Parents: []string{folderID}}
	call := g.srv.Files.Create(meta).
		Media(bytes.NewReader(data), googleapi.ContentType(mimeType)).
		Fields("id").
		Context(ctx)
	created, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("upload %s to %s: %w", name, folderID, err)
	}
	return created.Id, nil
}

// findFile locates a non-folder child by exact name.
func (g *GoogleStore) findFile(ctx context.Context, folderID, name string) (string, error) {
	query := NewQuery().InParent(folderID).NotTrashed().NameEquals(name)
	resp, err := g.srv.Files.List().
		Q(query.String()).
		Fields("files(id,name,mimeType)").
		PageSize(10).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("find file %s in %s: %w", name, folderID, err)
	}
	for _, f := range resp.Files {
		if f.MimeType != MimeFolder {
			return f.Id, nil
		}
	}
	return "", fmt.Errorf("file %s in %s: %w", name, folderID, ErrNotFound)
}

// FindFolder locates a child folder by exact name.
func (g *GoogleStore) FindFolder(ctx context.Context, parentID, name string) (string, error) {
	query := NewQuery().InParent(parentID).NotTrashed().NameEquals(name).IsFolder()
	resp, err := g.srv.Files.List().
		Q(query.String()).
		Fields("files(id,name,mimeType)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("find folder %s under %s: %w", name, parentID, err)
	}
	if len(resp.Files) == 0 {
		return "", fmt.Errorf("folder %s under %s: %w", name, parentID, ErrNotFound)
	}
	return resp.Files[0].Id, nil
}

// EnsureFolder locates a child folder by exact name, creating it if absent.
func (g *GoogleStore) EnsureFolder(ctx context.Context, parentID, name string) (string, error) {
	id, err := g.FindFolder(ctx, parentID, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", err
	}
	meta := &driveapi.File{
		Name:     name,
		MimeType: MimeFolder,
		Parents:  []string{parentID},
	}
	created, err := g.srv.Files.Create(meta).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create folder %s under %s: %w", name, parentID, err)
	}
	return created.Id, nil
}
