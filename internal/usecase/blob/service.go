package blob

import (
	"context"
	"fmt"
	"slices"

	"github.com/kailas-cloud/biosearch/internal/domain"
	domblob "github.com/kailas-cloud/biosearch/internal/domain/blob"
)

// Service serves blobs from an allow-listed set of containers.
type Service struct {
	repo       Repository
	containers []string
}

// New creates a blob service. An empty containers list allows any container.
func New(repo Repository, containers []string) *Service {
	return &Service{repo: repo, containers: containers}
}

// Fetch returns a blob, domain.ErrNotFound when absent.
func (s *Service) Fetch(ctx context.Context, container, name string) (domblob.Blob, error) {
	if err := s.validate(container, name); err != nil {
		return domblob.Blob{}, err
	}
	b, err := s.repo.Fetch(ctx, container, name)
	if err != nil {
		return domblob.Blob{}, fmt.Errorf("fetch blob: %w", err)
	}
	return b, nil
}

// Put stores a blob.
func (s *Service) Put(ctx context.Context, container, name string, data []byte, contentType string) error {
	if err := s.validate(container, name); err != nil {
		return err
	}
	if err := s.repo.Put(ctx, container, name, domblob.New(data, contentType)); err != nil {
		return fmt.Errorf("put blob: %w", err)
	}
	return nil
}

// Delete removes a blob.
func (s *Service) Delete(ctx context.Context, container, name string) error {
	if err := s.validate(container, name); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, container, name); err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

// List returns the blob names in a container.
func (s *Service) List(ctx context.Context, container string) ([]string, error) {
	if err := s.validateContainer(container); err != nil {
		return nil, err
	}
	names, err := s.repo.List(ctx, container)
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}
	return names, nil
}

func (s *Service) validate(container, name string) error {
	if err := s.validateContainer(container); err != nil {
		return err
	}
	if err := domblob.ValidateName("blob", name); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

func (s *Service) validateContainer(container string) error {
	if err := domblob.ValidateName("container", container); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if len(s.containers) > 0 && !slices.Contains(s.containers, container) {
		return fmt.Errorf("%w: unknown container %q", domain.ErrInvalidInput, container)
	}
	return nil
}
