package testsupport

import (
	"fmt"
	"testing"

	"vesper/internal/drive"
)

// DriveFixture holds the fake store plus the folder IDs tests care about.
type DriveFixture struct {
	Store      *drive.Fake
	Config     string
	Scripts    string
	ImagesRoot string
	SlotImages string
	MusicBG    string
	MusicMaria string
}

// NewDriveFixture seeds a fake asset store with the fixed folder structure,
// a slot image pool, and one background music track.
func NewDriveFixture(t testing.TB, slot string, imageCount int) *DriveFixture {
	t.Helper()

	fake := drive.NewFake()
	fixture := &DriveFixture{Store: fake}
	fixture.Config = fake.AddFolder("root", drive.FolderConfig)
	fixture.Scripts = fake.AddFolder("root", drive.FolderScripts)

	assets := fake.AddFolder("root", drive.FolderAssets)
	fixture.ImagesRoot = fake.AddFolder(assets, drive.FolderImages)
	fixture.SlotImages = fake.AddFolder(fixture.ImagesRoot, slot)
	fixture.MusicBG = fake.AddFolder(assets, drive.FolderMusicBG)
	fixture.MusicMaria = fake.AddFolder(assets, drive.FolderMusicMaria)

	for i := 0; i < imageCount; i++ {
		fake.AddFile(fixture.SlotImages, fmt.Sprintf("%s_%02d.jpg", slot, i), []byte("jpeg"), drive.MimeJPEG)
	}
	fake.AddFile(fixture.MusicBG, "calm.mp3", []byte("mp3"), "audio/mpeg")
	return fixture
}

// AddWorkOrders uploads the work-order document to the config folder.
func (f *DriveFixture) AddWorkOrders(t testing.TB, body string) {
	t.Helper()
	f.Store.AddFile(f.Config, drive.WorkOrdersName, []byte(body), drive.MimeJSON)
}

// AddScript uploads a script file for a slot and language.
func (f *DriveFixture) AddScript(t testing.TB, slot, lang, body string) {
	t.Helper()
	name := fmt.Sprintf("%s_%s.tsv", slot, lang)
	f.Store.AddFile(f.Scripts, name, []byte(body), drive.MimeText)
}
