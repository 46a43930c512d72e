package assets

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

type fakeFolder struct {
	name   string
	parent string
}

type fakeUpload struct {
	folderID string
	fileName string
	mimeType string
	body     string
}

// fakeStorage is an in-memory folder tree. Unknown parent ids behave like
// folders deleted out of band.
type fakeStorage struct {
	mu      sync.Mutex
	folders map[string]fakeFolder
	nextID  int
	finds   int
	creates int
	uploads []fakeUpload

	FindErrFunc   func(name, parentID string) error
	CreateErrFunc func(name, parentID string) error
	UploadErrFunc func(folderID string) error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{folders: map[string]fakeFolder{}}
}

func staleErr(id string) error {
	return fmt.Errorf("%w: folder %s", platformerrors.ErrStaleReference, id)
}

func (s *fakeStorage) FindFolder(ctx context.Context, credential, name, parentID string) (Folder, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finds++
	if s.FindErrFunc != nil {
		if err := s.FindErrFunc(name, parentID); err != nil {
			return Folder{}, false, err
		}
	}
	if parentID != "" {
		if _, ok := s.folders[parentID]; !ok {
			return Folder{}, false, staleErr(parentID)
		}
	}
	for id, f := range s.folders {
		if f.name == name && f.parent == parentID {
			return Folder{ID: id, ShareLink: "https://drive.test/" + id}, true, nil
		}
	}
	return Folder{}, false, nil
}

func (s *fakeStorage) CreateFolder(ctx context.Context, credential, name, parentID string) (Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErrFunc != nil {
		if err := s.CreateErrFunc(name, parentID); err != nil {
			return Folder{}, err
		}
	}
	if parentID != "" {
		if _, ok := s.folders[parentID]; !ok {
			return Folder{}, staleErr(parentID)
		}
	}
	s.creates++
	s.nextID++
	id := fmt.Sprintf("folder-%d", s.nextID)
	s.folders[id] = fakeFolder{name: name, parent: parentID}
	return Folder{ID: id, ShareLink: "https://drive.test/" + id}, nil
}

func (s *fakeStorage) UploadFile(ctx context.Context, credential, folderID, fileName, mimeType string, body io.Reader) (File, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return File{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, fakeUpload{folderID: folderID, fileName: fileName, mimeType: mimeType, body: string(data)})
	if s.UploadErrFunc != nil {
		if err := s.UploadErrFunc(folderID); err != nil {
			return File{}, err
		}
	}
	id := fmt.Sprintf("file-%d", len(s.uploads))
	return File{ID: id, ShareLink: "https://drive.test/file/" + id}, nil
}

func (s *fakeStorage) DownloadFile(ctx context.Context, credential, fileID string) (io.ReadCloser, string, error) {
	return io.NopCloser(strings.NewReader("media")), "video/mp4", nil
}

// pathOf returns the folder names from the top level down to id.
func (s *fakeStorage) pathOf(id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var names []string
	for id != "" {
		f, ok := s.folders[id]
		if !ok {
			return nil
		}
		names = append([]string{f.name}, names...)
		id = f.parent
	}
	return names
}

type fakeCompanyUpdater struct {
	mu      sync.Mutex
	updates []map[string]any
}

func (u *fakeCompanyUpdater) Update(ctx context.Context, id string, fields map[string]any) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.updates = append(u.updates, fields)
	return nil
}

func (u *fakeCompanyUpdater) last() map[string]any {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.updates) == 0 {
		return nil
	}
	return u.updates[len(u.updates)-1]
}
