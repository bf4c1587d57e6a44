package blob

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/biosearch/internal/domain"
	domblob "github.com/kailas-cloud/biosearch/internal/domain/blob"
)

// --- Mocks ---

type mockRepo struct {
	blobs    map[string]domblob.Blob
	fetchErr error
	putCalls int
}

func (m *mockRepo) Fetch(_ context.Context, container, name string) (domblob.Blob, error) {
	if m.fetchErr != nil {
		return domblob.Blob{}, m.fetchErr
	}
	b, ok := m.blobs[container+"/"+name]
	if !ok {
		return domblob.Blob{}, domain.ErrNotFound
	}
	return b, nil
}

func (m *mockRepo) Put(_ context.Context, container, name string, b domblob.Blob) error {
	m.putCalls++
	if m.blobs == nil {
		m.blobs = map[string]domblob.Blob{}
	}
	m.blobs[container+"/"+name] = b
	return nil
}

func (m *mockRepo) Delete(_ context.Context, container, name string) error {
	delete(m.blobs, container+"/"+name)
	return nil
}

func (m *mockRepo) List(_ context.Context, _ string) ([]string, error) {
	names := make([]string, 0, len(m.blobs))
	for k := range m.blobs {
		names = append(names, k)
	}
	return names, nil
}

// --- Tests ---

func TestFetch_Found(t *testing.T) {
	repo := &mockRepo{blobs: map[string]domblob.Blob{
		"transcripts/a.txt": domblob.New([]byte("hi"), "text/plain"),
	}}
	svc := New(repo, []string{"transcripts"})

	b, err := svc.Fetch(context.Background(), "transcripts", "a.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b.Data) != "hi" {
		t.Errorf("unexpected data %q", b.Data)
	}
}

func TestFetch_NotFound(t *testing.T) {
	svc := New(&mockRepo{}, nil)

	_, err := svc.Fetch(context.Background(), "transcripts", "missing.txt")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFetch_UnknownContainer(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, []string{"transcripts"})

	_, err := svc.Fetch(context.Background(), "secrets", "a.txt")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFetch_InvalidName(t *testing.T) {
	svc := New(&mockRepo{}, nil)

	_, err := svc.Fetch(context.Background(), "transcripts", "a:b")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFetch_RepoError(t *testing.T) {
	svc := New(&mockRepo{fetchErr: errors.New("boom")}, nil)

	_, err := svc.Fetch(context.Background(), "transcripts", "a.txt")
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected repo error, got %v", err)
	}
}

func TestPut_ValidatesBeforeWrite(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, []string{"images"})

	if err := svc.Put(context.Background(), "other", "a.jpg", []byte{1}, ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if repo.putCalls != 0 {
		t.Error("repo should not be called for invalid input")
	}

	if err := svc.Put(context.Background(), "images", "a.jpg", []byte{1}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := repo.blobs["images/a.jpg"].ContentType; got != domblob.DefaultContentType {
		t.Errorf("expected default content type, got %q", got)
	}
}
