// Package registry is the in-memory backing for clients, projects and the
// deliverable-tag palette. It implements the same repository interfaces as
// the postgres layer, guarded by a single RWMutex; there is no cross-process
// consistency guarantee and concurrent writers are last-write-wins.
package registry

import (
	"context"
	"sync"
	"time"

	"weshow/internal/domain/client"
	"weshow/internal/domain/project"
	"weshow/internal/slug"
	apperrors "weshow/pkg/errors"

	"github.com/google/uuid"
)

const (
	errClientNotFound    = "client not found"
	errProjectNotFound   = "project not found"
	errTagNotFound       = "deliverable tag not found"
	errTagStillInUse     = "deliverable tag is still in use"
	errNoDeliverablesMsg = "Please select at least one deliverable"
)

type Registry struct {
	mu       sync.RWMutex
	clients  map[uuid.UUID]*client.Client
	projects map[uuid.UUID]*project.Project

	// insertion order, so listings and tag first-appearance are stable
	clientOrder  []uuid.UUID
	projectOrder []uuid.UUID

	// one palette per studio, presets seeded on first touch
	palettes map[uuid.UUID][]string
}

func New() *Registry {
	return &Registry{
		clients:  make(map[uuid.UUID]*client.Client),
		projects: make(map[uuid.UUID]*project.Project),
		palettes: make(map[uuid.UUID][]string),
	}
}

func (r *Registry) Create(ctx context.Context, input client.CreateClientInput) (*client.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	c := &client.Client{
		ID:           uuid.New(),
		StudioID:     input.StudioID,
		Name:         input.Name,
		Slug:         slug.Make(input.Name),
		ContactName:  input.ContactName,
		ContactEmail: input.ContactEmail,
		Phone:        input.Phone,
		Address:      input.Address,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	r.clients[c.ID] = c
	r.clientOrder = append(r.clientOrder, c.ID)

	copied := *c
	return &copied, nil
}

func (r *Registry) GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[id]
	if !ok {
		return nil, apperrors.NotFound(errClientNotFound)
	}

	copied := *c
	return &copied, nil
}

func (r *Registry) ListClients(ctx context.Context, studioID uuid.UUID) ([]*client.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var clients []*client.Client
	for _, id := range r.clientOrder {
		c := r.clients[id]
		if c == nil || c.StudioID != studioID {
			continue
		}
		copied := *c
		copied.ProjectCount = r.countProjectsLocked(c.ID)
		clients = append(clients, &copied)
	}

	return clients, nil
}

func (r *Registry) Update(ctx context.Context, id uuid.UUID, input client.UpdateClientInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[id]
	if !ok {
		return apperrors.NotFound(errClientNotFound)
	}

	if input.Name != nil {
		c.Name = *input.Name
		c.Slug = slug.Make(*input.Name)
	}
	if input.ContactName != nil {
		c.ContactName = *input.ContactName
	}
	if input.ContactEmail != nil {
		c.ContactEmail = *input.ContactEmail
	}
	if input.Phone != nil {
		c.Phone = *input.Phone
	}
	if input.Address != nil {
		c.Address = *input.Address
	}
	c.UpdatedAt = time.Now()

	return nil
}

// Delete removes a client and its projects. Project removal keeps the
// client-facing viewer from resolving orphaned galleries.
func (r *Registry) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[id]; !ok {
		return apperrors.NotFound(errClientNotFound)
	}

	delete(r.clients, id)
	r.clientOrder = removeID(r.clientOrder, id)

	var orphaned []uuid.UUID
	for pid, p := range r.projects {
		if p.ClientID == id {
			orphaned = append(orphaned, pid)
		}
	}
	for _, pid := range orphaned {
		delete(r.projects, pid)
		r.projectOrder = removeID(r.projectOrder, pid)
	}

	return nil
}

// CreateProject rejects an empty deliverable selection outright.
func (r *Registry) CreateProject(ctx context.Context, input project.CreateProjectInput) (*project.Project, error) {
	if len(input.Tags) == 0 {
		return nil, apperrors.Validation(errNoDeliverablesMsg)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	owner, ok := r.clients[input.ClientID]
	if !ok {
		return nil, apperrors.NotFound(errClientNotFound)
	}

	status := input.Status
	if status == "" {
		status = project.StatusDraft
	}
	if err := status.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := time.Now()
	p := &project.Project{
		ID:         uuid.New(),
		ClientID:   input.ClientID,
		Name:       input.Name,
		Slug:       slug.Make(input.Name),
		Status:     status,
		Tags:       append([]string(nil), input.Tags...),
		LastUpdate: now,
		CreatedAt:  now,
	}

	r.projects[p.ID] = p
	r.projectOrder = append(r.projectOrder, p.ID)
	r.adoptTagsLocked(owner.StudioID, p.Tags)

	copied := clone(p)
	return copied, nil
}

func (r *Registry) GetProject(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, apperrors.NotFound(errProjectNotFound)
	}

	return clone(p), nil
}

func (r *Registry) ListProjects(ctx context.Context, clientID uuid.UUID) ([]*project.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var projects []*project.Project
	for _, id := range r.projectOrder {
		p := r.projects[id]
		if p != nil && p.ClientID == clientID {
			projects = append(projects, clone(p))
		}
	}

	return projects, nil
}

func (r *Registry) ListByStudio(ctx context.Context, studioID uuid.UUID) ([]*project.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.listByStudioLocked(studioID), nil
}

func (r *Registry) UpdateProject(ctx context.Context, id uuid.UUID, input project.UpdateProjectInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return apperrors.NotFound(errProjectNotFound)
	}

	if input.Name != nil {
		p.Name = *input.Name
		p.Slug = slug.Make(*input.Name)
	}
	if input.Status != nil {
		if err := input.Status.Validate(); err != nil {
			return apperrors.Validation(err.Error())
		}
		p.Status = *input.Status
	}
	if input.Tags != nil {
		if len(*input.Tags) == 0 {
			return apperrors.Validation(errNoDeliverablesMsg)
		}
		p.Tags = append([]string(nil), (*input.Tags)...)
		if owner := r.clients[p.ClientID]; owner != nil {
			r.adoptTagsLocked(owner.StudioID, p.Tags)
		}
	}
	if input.HeroPhotoURL != nil {
		p.HeroPhotoURL = *input.HeroPhotoURL
	}
	if input.Photos != nil {
		p.Photos = append([]project.Photo(nil), (*input.Photos)...)
	}
	if input.Videos != nil {
		p.Videos = append([]project.Video(nil), (*input.Videos)...)
	}
	p.LastUpdate = time.Now()

	return nil
}

func (r *Registry) DeleteProject(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[id]; !ok {
		return apperrors.NotFound(errProjectNotFound)
	}

	delete(r.projects, id)
	r.projectOrder = removeID(r.projectOrder, id)

	return nil
}

// ReorderProjectPhotos applies a drag operation to a project's photo set.
// Invalid index pairs leave the project untouched.
func (r *Registry) ReorderProjectPhotos(ctx context.Context, id uuid.UUID, src, dest int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return apperrors.NotFound(errProjectNotFound)
	}

	reordered := ReorderPhotos(p.Photos, src, dest)
	p.Photos = reordered
	p.LastUpdate = time.Now()

	return nil
}

// SeedPalette installs the preset palette for a studio. The in-memory backend
// also seeds lazily on first palette touch, so calling this is optional here.
func (r *Registry) SeedPalette(ctx context.Context, studioID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensurePaletteLocked(studioID)

	return nil
}

// Palette returns one studio's tag palette with recomputed usage.
func (r *Registry) Palette(ctx context.Context, studioID uuid.UUID) ([]TagUsage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	labels, ok := r.palettes[studioID]
	if !ok {
		labels = PresetTags
	}

	usage := ComputeTagUsage(r.listByStudioLocked(studioID))
	counts := make(map[string]TagUsage, len(usage))
	for _, u := range usage {
		counts[u.Label] = u
	}

	view := make([]TagUsage, 0, len(labels))
	for _, label := range labels {
		if u, ok := counts[label]; ok {
			view = append(view, u)
			continue
		}
		view = append(view, TagUsage{Label: label})
	}

	return view, nil
}

// RemoveTag deletes a palette entry only when its recomputed usage is zero.
// A locked tag (nonzero usage) makes this a no-op and returns the guard error.
// The palette is per studio: another tenant's labels are not visible here.
func (r *Registry) RemoveTag(ctx context.Context, studioID uuid.UUID, label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	labels := r.ensurePaletteLocked(studioID)

	idx := -1
	for i, l := range labels {
		if l == label {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperrors.NotFound(errTagNotFound)
	}

	if UsageOf(r.listByStudioLocked(studioID), label) > 0 {
		return apperrors.TagInUse(errTagStillInUse)
	}

	r.palettes[studioID] = append(labels[:idx], labels[idx+1:]...)

	return nil
}

func (r *Registry) countProjectsLocked(clientID uuid.UUID) int {
	count := 0
	for _, p := range r.projects {
		if p.ClientID == clientID {
			count++
		}
	}

	return count
}

func (r *Registry) listByStudioLocked(studioID uuid.UUID) []*project.Project {
	var projects []*project.Project
	for _, id := range r.projectOrder {
		p := r.projects[id]
		if p == nil {
			continue
		}
		c := r.clients[p.ClientID]
		if c == nil || c.StudioID != studioID {
			continue
		}
		projects = append(projects, clone(p))
	}

	return projects
}

// adoptTagsLocked adds custom labels to the owning studio's palette on first use.
func (r *Registry) adoptTagsLocked(studioID uuid.UUID, tags []string) {
	labels := r.ensurePaletteLocked(studioID)

	known := make(map[string]bool, len(labels))
	for _, l := range labels {
		known[l] = true
	}

	for _, tag := range tags {
		if !known[tag] {
			labels = append(labels, tag)
			known[tag] = true
		}
	}

	r.palettes[studioID] = labels
}

// ensurePaletteLocked seeds the presets the first time a studio's palette is
// written to or inspected for deletion.
func (r *Registry) ensurePaletteLocked(studioID uuid.UUID) []string {
	if labels, ok := r.palettes[studioID]; ok {
		return labels
	}

	labels := make([]string, len(PresetTags))
	copy(labels, PresetTags)
	r.palettes[studioID] = labels

	return labels
}

func clone(p *project.Project) *project.Project {
	copied := *p
	copied.Tags = append([]string(nil), p.Tags...)
	copied.Photos = append([]project.Photo(nil), p.Photos...)
	copied.Videos = append([]project.Video(nil), p.Videos...)

	return &copied
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}

	return ids
}
