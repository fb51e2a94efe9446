package client

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/Arawerawer/RouteLink/src/core/models"
)

// Notifier surfaces mutation failures to the user, the way the web
// client raises a blocking alert.
type Notifier interface {
	Notify(message string)
}

type logNotifier struct{}

func (logNotifier) Notify(message string) { log.Println(message) }

// Hooks bundles the cached reads and mutations the UI consumes. Reads
// never block: they serve whatever is cached (or an empty placeholder)
// and refetch in the background once the data goes stale. Mutations
// invalidate the matching key so the next read reconciles with the
// server.
type Hooks struct {
	api    TripAPI
	cache  *QueryCache
	notify Notifier
}

func NewHooks(api TripAPI, cache *QueryCache, notify Notifier) *Hooks {
	if cache == nil {
		cache = NewQueryCache(DefaultStaleTime)
	}
	if notify == nil {
		notify = logNotifier{}
	}
	return &Hooks{api: api, cache: cache, notify: notify}
}

// Locations returns the cached location list, newest first. An empty
// slice stands in while the first fetch is still loading.
func (h *Hooks) Locations(ctx context.Context) []models.Location {
	data, ok, fresh := h.cache.Get(KeyLocations)
	if !ok || !fresh {
		h.fetchLocations(ctx)
	}
	if ok {
		return data.([]models.Location)
	}
	return []models.Location{}
}

// Schedules returns the cached schedule list, oldest first. An empty
// slice stands in while the first fetch is still loading.
func (h *Hooks) Schedules(ctx context.Context) []models.ScheduleWithLocation {
	data, ok, fresh := h.cache.Get(KeySchedules)
	if !ok || !fresh {
		h.fetchSchedules(ctx)
	}
	if ok {
		return data.([]models.ScheduleWithLocation)
	}
	return []models.ScheduleWithLocation{}
}

func (h *Hooks) fetchLocations(ctx context.Context) {
	fetchCtx := h.cache.BeginFetch(ctx, KeyLocations)
	go func() {
		rows, err := h.api.ListLocations()
		if err != nil {
			log.Printf("Failed to fetch locations: %v\n", err)
			return
		}
		h.cache.SetFetched(fetchCtx, KeyLocations, rows)
	}()
}

func (h *Hooks) fetchSchedules(ctx context.Context) {
	fetchCtx := h.cache.BeginFetch(ctx, KeySchedules)
	go func() {
		rows, err := h.api.ListSchedules()
		if err != nil {
			log.Printf("Failed to fetch schedules: %v\n", err)
			return
		}
		h.cache.SetFetched(fetchCtx, KeySchedules, rows)
	}()
}

// AddLocation creates a location and invalidates the location cache.
func (h *Hooks) AddLocation(name, address string) error {
	if _, err := h.api.CreateLocation(name, address); err != nil {
		h.notify.Notify("Failed to add location")
		log.Printf("Failed to add location: %v\n", err)
		return err
	}
	h.cache.Invalidate(KeyLocations)
	return nil
}

// EditLocation rewrites a location's name and address.
func (h *Hooks) EditLocation(id uuid.UUID, name, address string) error {
	if _, err := h.api.UpdateLocation(id, name, address); err != nil {
		h.notify.Notify("Failed to update location")
		log.Printf("Failed to update location: %v\n", err)
		return err
	}
	h.cache.Invalidate(KeyLocations)
	return nil
}

// RemoveLocation deletes a location.
func (h *Hooks) RemoveLocation(id uuid.UUID) error {
	if _, err := h.api.DeleteLocation(id); err != nil {
		h.notify.Notify("Failed to delete location")
		log.Printf("Failed to delete location: %v\n", err)
		return err
	}
	h.cache.Invalidate(KeyLocations)
	return nil
}

// AddSchedule adds a location to the schedule list.
func (h *Hooks) AddSchedule(locationID uuid.UUID) error {
	if _, err := h.api.CreateSchedule(locationID, nil); err != nil {
		h.notify.Notify("Failed to add schedule")
		log.Printf("Failed to add schedule: %v\n", err)
		return err
	}
	h.cache.Invalidate(KeySchedules)
	return nil
}

// EditNote replaces a schedule's note; nil clears it.
func (h *Hooks) EditNote(id uuid.UUID, note *string) error {
	if _, err := h.api.UpdateNote(id, note); err != nil {
		h.notify.Notify("Failed to update schedule")
		log.Printf("Failed to update schedule: %v\n", err)
		return err
	}
	h.cache.Invalidate(KeySchedules)
	return nil
}

// RemoveSchedule deletes a schedule.
func (h *Hooks) RemoveSchedule(id uuid.UUID) error {
	if _, err := h.api.DeleteSchedule(id); err != nil {
		h.notify.Notify("Failed to delete schedule")
		log.Printf("Failed to delete schedule: %v\n", err)
		return err
	}
	h.cache.Invalidate(KeySchedules)
	return nil
}

// ToggleCompleted optimistically flips one schedule's completed flag.
// The cached list is rewritten before the server round-trip, restored
// verbatim when the update fails, and invalidated either way so the next
// read reconciles with server truth. In-flight schedule fetches are
// cancelled first so a stale response cannot clobber the optimistic
// write.
func (h *Hooks) ToggleCompleted(id uuid.UUID, completed bool) error {
	h.cache.CancelQueries(KeySchedules)

	previous, hadPrevious, _ := h.cache.Get(KeySchedules)
	if hadPrevious {
		old := previous.([]models.ScheduleWithLocation)
		next := make([]models.ScheduleWithLocation, len(old))
		copy(next, old)
		for i := range next {
			if next[i].ID == id {
				next[i].Completed = completed
			}
		}
		h.cache.Set(KeySchedules, next)
	}

	_, err := h.api.UpdateCompleted(id, completed)
	if err != nil {
		if hadPrevious {
			h.cache.Set(KeySchedules, previous)
		}
		h.notify.Notify("Failed to update schedule")
		log.Printf("Failed to update schedule: %v\n", err)
	}

	h.cache.Invalidate(KeySchedules)
	return err
}
