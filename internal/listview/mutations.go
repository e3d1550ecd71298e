package listview

import (
	"context"

	"github.com/Sachintlgt/brd-admin-sub000/internal/dtos"
	"github.com/Sachintlgt/brd-admin-sub000/internal/utils"
)

// Delete removes a property optimistically: the row disappears from the
// applied page immediately, rolls back if the server rejects, and the list
// is refetched either way. The refetch may flicker if it reorders pages.
func (s *State) Delete(ctx context.Context, id string) error {
	snapshot := s.snapshotCurrent()

	s.mu.Lock()
	if s.current != nil {
		kept := s.current.Properties[:0:0]
		for _, p := range s.current.Properties {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		s.current.Properties = kept
	}
	s.mu.Unlock()

	err := s.api.DeleteProperty(ctx, id)
	if err != nil {
		s.restoreCurrent(snapshot)
		s.opts.OnError(err)
	}
	s.Invalidate()
	s.Refetch()
	return err
}

// ToggleActive flips isActive optimistically and reverts on rejection.
func (s *State) ToggleActive(ctx context.Context, id string, isActive bool) error {
	return s.toggle(ctx, id,
		func(p *dtos.Property) { p.IsActive = isActive },
		func(ctx context.Context) (*dtos.Property, error) { return s.api.ToggleActive(ctx, id, isActive) },
	)
}

// ToggleFeatured flips isFeatured optimistically and reverts on rejection.
func (s *State) ToggleFeatured(ctx context.Context, id string, isFeatured bool) error {
	return s.toggle(ctx, id,
		func(p *dtos.Property) { p.IsFeatured = isFeatured },
		func(ctx context.Context) (*dtos.Property, error) { return s.api.ToggleFeatured(ctx, id, isFeatured) },
	)
}

func (s *State) toggle(
	ctx context.Context,
	id string,
	apply func(*dtos.Property),
	call func(context.Context) (*dtos.Property, error),
) error {
	snapshot := s.snapshotCurrent()

	s.mu.Lock()
	if s.current != nil {
		for i := range s.current.Properties {
			if s.current.Properties[i].ID == id {
				apply(&s.current.Properties[i])
				break
			}
		}
	}
	s.mu.Unlock()

	if _, err := call(ctx); err != nil {
		s.restoreCurrent(snapshot)
		s.opts.OnError(err)
		utils.Logger.WithError(err).Warn("Optimistic toggle rolled back")
		return err
	}

	s.Invalidate()
	s.Refetch()
	return nil
}

// snapshotCurrent deep-copies the applied page so a failed mutation can
// restore the exact pre-call state.
func (s *State) snapshotCurrent() *dtos.PropertyPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	cp.Properties = make([]dtos.Property, len(s.current.Properties))
	copy(cp.Properties, s.current.Properties)
	return &cp
}

func (s *State) restoreCurrent(snapshot *dtos.PropertyPage) {
	s.mu.Lock()
	s.current = snapshot
	s.mu.Unlock()
	if snapshot != nil {
		s.opts.OnPage(snapshot)
	}
}
