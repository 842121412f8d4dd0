package photos

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/gni-robotics/fieldrover/internal/log"
)

// DriveSyncConfig configures the Google Drive uploader.
type DriveSyncConfig struct {
	ClientID     string
	ClientSecret string
	// FolderID is the Drive folder captures land in. Empty uploads
	// to the Drive root.
	FolderID string
	// TokenPath is the OAuth token file, provisioned once from a
	// machine with a browser. The refresh token inside keeps the
	// rover authenticated in the field.
	TokenPath string
}

// DriveSync mirrors new captures to Google Drive in the background.
// Uploads ride a queue so Capture never waits on the uplink; a failed
// upload is logged and the photo stays local.
type DriveSync struct {
	svc      *drive.Service
	folderID string
	dir      string

	queue chan Photo
	done  chan struct{}
}

// NewDriveSync builds the uploader from a stored OAuth token. It
// returns an error when credentials or the token file are missing, so
// the caller can run without sync.
func NewDriveSync(store *Store, cfg DriveSyncConfig) (*DriveSync, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("drive sync requires a client ID and secret")
	}
	if cfg.TokenPath == "" {
		homeDir, _ := os.UserHomeDir()
		cfg.TokenPath = filepath.Join(homeDir, ".fieldrover", "google_token.json")
	}

	token, err := loadToken(cfg.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("loading drive token: %w", err)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       []string{drive.DriveFileScope},
		Endpoint:     google.Endpoint,
	}

	ctx := context.Background()
	client := oauthConfig.Client(ctx, token)

	svc, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}

	d := &DriveSync{
		svc:      svc,
		folderID: cfg.FolderID,
		dir:      store.Dir(),
		queue:    make(chan Photo, 32),
		done:     make(chan struct{}),
	}
	go d.loop()
	return d, nil
}

// Enqueue schedules a photo for upload. It never blocks; when the
// queue is full the photo is skipped and stays local only.
func (d *DriveSync) Enqueue(p Photo) {
	select {
	case d.queue <- p:
	default:
		log.Warn("drive queue full, photo stays local", "name", p.ID)
	}
}

// Close drains queued uploads and stops the uploader. Stop capturing
// before calling it.
func (d *DriveSync) Close() {
	close(d.queue)
	<-d.done
}

func (d *DriveSync) loop() {
	for p := range d.queue {
		d.upload(p)
	}
	close(d.done)
}

func (d *DriveSync) upload(p Photo) {
	f, err := os.Open(filepath.Join(d.dir, p.ID))
	if err != nil {
		log.Warn("drive upload skipped", "name", p.ID, "error", err)
		return
	}
	defer f.Close()

	meta := &drive.File{Name: p.ID}
	if d.folderID != "" {
		meta.Parents = []string{d.folderID}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if _, err := d.svc.Files.Create(meta).Media(f).Context(ctx).Do(); err != nil {
		log.Warn("drive upload failed", "name", p.ID, "error", err)
		return
	}
	log.Info("uploaded photo to drive", "name", p.ID)
}

// loadToken reads the OAuth token from disk.
func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, err
	}
	return &token, nil
}
