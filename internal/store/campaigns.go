package store

import (
	"errors"
	"sync"

	"nexus-engine/internal/models"
)

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrDuplicateID      = errors.New("campaign id already exists")
	ErrLeadNotFound     = errors.New("lead not found")
)

// CampaignStore keeps campaigns in insertion order plus the active campaign id.
// Every read returns a deep copy; nothing inside the store is handed out.
type CampaignStore struct {
	mu       sync.RWMutex
	order    []string
	byID     map[string]*models.Campaign
	activeID string

	listenerMu sync.RWMutex
	listeners  []func(models.Campaign)
}

func NewCampaignStore() *CampaignStore {
	return &CampaignStore{byID: make(map[string]*models.Campaign)}
}

// OnChange registers fn to receive a copy of a campaign after each mutation.
func (s *CampaignStore) OnChange(fn func(models.Campaign)) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *CampaignStore) notify(c models.Campaign) {
	s.listenerMu.RLock()
	fns := make([]func(models.Campaign), len(s.listeners))
	copy(fns, s.listeners)
	s.listenerMu.RUnlock()
	for _, fn := range fns {
		fn(c.Clone())
	}
}

func (s *CampaignStore) Create(c models.Campaign) error {
	if c.ID == "" {
		return errors.New("campaign id is required")
	}
	s.mu.Lock()
	if _, ok := s.byID[c.ID]; ok {
		s.mu.Unlock()
		return ErrDuplicateID
	}
	stored := c.Clone()
	s.byID[c.ID] = &stored
	s.order = append(s.order, c.ID)
	s.mu.Unlock()

	s.notify(stored)
	return nil
}

func (s *CampaignStore) Get(id string) (models.Campaign, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	if !ok {
		return models.Campaign{}, false
	}
	return c.Clone(), true
}

// Update merges patch into the campaign. Unknown ids are a no-op and report false.
func (s *CampaignStore) Update(id string, patch models.CampaignPatch) (models.Campaign, bool) {
	return s.mutate(id, func(c *models.Campaign) error {
		patch.Apply(c)
		return nil
	})
}

// AppendLead adds a lead at the end of the campaign's queue in one step,
// so concurrent appends never drop each other.
func (s *CampaignStore) AppendLead(id string, lead models.Lead) (models.Campaign, bool) {
	return s.mutate(id, func(c *models.Campaign) error {
		c.Leads = append(c.Leads, lead)
		return nil
	})
}

func (s *CampaignStore) AppendFunnel(id string, funnel models.Funnel) (models.Campaign, bool) {
	return s.mutate(id, func(c *models.Campaign) error {
		c.Funnels = append(c.Funnels, funnel.Clone())
		return nil
	})
}

// UpdateLeadStatus changes one lead's status. It fails with ErrCampaignNotFound
// or ErrLeadNotFound.
func (s *CampaignStore) UpdateLeadStatus(id, leadID string, status models.CallStatus) (models.Campaign, error) {
	var leadErr error
	c, ok := s.mutate(id, func(c *models.Campaign) error {
		for i := range c.Leads {
			if c.Leads[i].ID == leadID {
				c.Leads[i].Status = status
				return nil
			}
		}
		leadErr = ErrLeadNotFound
		return leadErr
	})
	if leadErr != nil {
		return models.Campaign{}, leadErr
	}
	if !ok {
		return models.Campaign{}, ErrCampaignNotFound
	}
	return c, nil
}

func (s *CampaignStore) mutate(id string, fn func(*models.Campaign) error) (models.Campaign, bool) {
	s.mu.Lock()
	c, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return models.Campaign{}, false
	}
	working := c.Clone()
	if err := fn(&working); err != nil {
		s.mu.Unlock()
		return models.Campaign{}, false
	}
	*c = working
	out := working.Clone()
	s.mu.Unlock()

	s.notify(out)
	return out, true
}

// List returns campaigns in creation order.
func (s *CampaignStore) List() []models.Campaign {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Campaign, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id].Clone())
	}
	return out
}

func (s *CampaignStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// ActiveID returns the active campaign id, or "" when none is set.
func (s *CampaignStore) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Active returns the active campaign. Having none is a valid state.
func (s *CampaignStore) Active() (models.Campaign, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeID == "" {
		return models.Campaign{}, false
	}
	c, ok := s.byID[s.activeID]
	if !ok {
		return models.Campaign{}, false
	}
	return c.Clone(), true
}

// SetActive marks an existing campaign active. An empty id clears the selection.
func (s *CampaignStore) SetActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" {
		s.activeID = ""
		return nil
	}
	if _, ok := s.byID[id]; !ok {
		return ErrCampaignNotFound
	}
	s.activeID = id
	return nil
}

// EnsureSeeded fills an empty store with seed and activates the first entry.
// It reports whether seeding happened.
func (s *CampaignStore) EnsureSeeded(seed []models.Campaign) (bool, error) {
	if len(seed) == 0 || s.Len() > 0 {
		return false, nil
	}
	for _, c := range seed {
		if err := s.Create(c); err != nil {
			return false, err
		}
	}
	return true, s.SetActive(seed[0].ID)
}
