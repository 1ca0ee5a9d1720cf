package event

import (
	"context"
	"log/slog"
	"sync"
)

const (
	// PopularFeedLimit caps the friend-popularity source per feed load.
	PopularFeedLimit = 50
	// InitialForYouLimit is the first "for you" page size.
	InitialForYouLimit = 10
	// MoreForYouLimit is the "show more" page size.
	MoreForYouLimit = 5
)

type FeedService interface {
	// LoadInitial composes the feed from both sources. Source failures
	// degrade to an emptier feed; the page never hard-fails.
	LoadInitial(ctx context.Context, userID string) *FeedResponse
	// LoadMore fetches the next "for you" page at the source's own cursor
	// and deduplicates it against the current popular set.
	LoadMore(ctx context.Context, userID string, offset int) (*FeedPageResponse, error)
}

type feedService struct {
	repo EventRepository
}

func NewFeedService(repo EventRepository) FeedService {
	return &feedService{repo: repo}
}

func (s *feedService) LoadInitial(ctx context.Context, userID string) *FeedResponse {
	var (
		wg         sync.WaitGroup
		popular    []Event
		forYou     []Event
		popularErr error
		forYouErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		if userID == "" {
			return
		}
		popular, popularErr = s.repo.FindPopularWithFriends(ctx, userID, PopularFeedLimit, 0)
	}()
	go func() {
		defer wg.Done()
		forYou, forYouErr = s.repo.FindUpcomingForUser(ctx, userID, InitialForYouLimit, 0)
	}()
	wg.Wait()

	// Popular ranking is best-effort: drop it and serve recommendations
	// only, per the fallback path.
	if popularErr != nil {
		slog.Error("popular feed fetch failed", "userID", userID, "error", popularErr)
		popular = nil
	}
	if forYouErr != nil {
		slog.Error("for-you feed fetch failed", "userID", userID, "error", forYouErr)
		forYou = nil
	}

	rawForYouCount := len(forYou)
	deduped := dedupAgainst(forYou, eventIDSet(popular))

	return &FeedResponse{
		Popular:    s.withSummaries(ctx, popular),
		ForYou:     s.withSummaries(ctx, deduped),
		HasMore:    rawForYouCount == InitialForYouLimit,
		NextOffset: rawForYouCount,
	}
}

func (s *feedService) LoadMore(ctx context.Context, userID string, offset int) (*FeedPageResponse, error) {
	if offset < 0 {
		offset = 0
	}

	page, err := s.repo.FindUpcomingForUser(ctx, userID, MoreForYouLimit, offset)
	if err != nil {
		return nil, err
	}

	popularIDs, err := s.repo.FindPopularIDs(ctx, userID, PopularFeedLimit)
	if err != nil {
		// Same fallback as the initial load: serve the page undeduplicated
		// rather than failing it.
		slog.Error("popular id fetch failed", "userID", userID, "error", err)
		popularIDs = nil
	}

	idSet := make(map[string]struct{}, len(popularIDs))
	for _, id := range popularIDs {
		idSet[id] = struct{}{}
	}

	rawCount := len(page)
	deduped := dedupAgainst(page, idSet)

	return &FeedPageResponse{
		Events:     s.withSummaries(ctx, deduped),
		HasMore:    rawCount == MoreForYouLimit,
		NextOffset: offset + rawCount,
	}, nil
}

// withSummaries attaches attendee and organizer summaries. Summary fetch
// failures leave the lists empty instead of failing the feed.
func (s *feedService) withSummaries(ctx context.Context, events []Event) []EventResponse {
	responses := make([]EventResponse, 0, len(events))
	if len(events) == 0 {
		return responses
	}

	ids := make([]string, 0, len(events))
	organizerIDs := make([]string, 0)
	for _, e := range events {
		ids = append(ids, e.ID)
		if e.OrganizerID != nil {
			organizerIDs = append(organizerIDs, *e.OrganizerID)
		}
	}

	attendees, err := s.repo.FindAttendees(ctx, ids)
	if err != nil {
		slog.Error("attendee fetch failed", "error", err)
		attendees = map[string][]Attendee{}
	}
	organizers, err := s.repo.FindProfileSummaries(ctx, organizerIDs)
	if err != nil {
		slog.Error("organizer fetch failed", "error", err)
		organizers = map[string]Attendee{}
	}

	for i := range events {
		e := &events[i]
		var organizer *Attendee
		if e.OrganizerID != nil {
			if o, ok := organizers[*e.OrganizerID]; ok {
				organizer = &o
			}
		}
		responses = append(responses, toResponse(e, attendees[e.ID], organizer))
	}
	return responses
}

func eventIDSet(events []Event) map[string]struct{} {
	set := make(map[string]struct{}, len(events))
	for _, e := range events {
		set[e.ID] = struct{}{}
	}
	return set
}

// dedupAgainst drops events whose ID is already in the popular set; the
// popular list always wins.
func dedupAgainst(events []Event, seen map[string]struct{}) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		out = append(out, e)
	}
	return out
}
